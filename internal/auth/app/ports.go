package app

import (
	"context"

	"github.com/agrimap/market/internal/auth/domain"
)

type UserRepo interface {
	UpsertByEmail(ctx context.Context, u domain.User) (domain.User, error)
	Get(ctx context.Context, id string) (domain.User, error)
}

type SessionRepo interface {
	Create(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, token string) (domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// Identity is what the external provider vouches for.
type Identity struct {
	Email   string
	Name    string
	Picture string
}

// IdentityProvider exchanges a provider-issued session id for an identity.
// Implementations return ErrUnauthenticated for rejected ids; any other error
// is transient and propagates.
type IdentityProvider interface {
	Resolve(ctx context.Context, providerSessionID string) (Identity, error)
}
