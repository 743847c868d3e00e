package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agrimap/market/internal/auth/domain"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
)

type Service struct {
	users    UserRepo
	sessions SessionRepo
	provider IdentityProvider

	ttl time.Duration
	now func() time.Time
}

func NewService(users UserRepo, sessions SessionRepo, provider IdentityProvider, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	return &Service{
		users:    users,
		sessions: sessions,
		provider: provider,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login exchanges a provider session id for a local session token. The expiry
// is computed once here and stored as a canonical timestamp.
func (s *Service) Login(ctx context.Context, providerSessionID string) (domain.User, domain.Session, error) {
	providerSessionID = strings.TrimSpace(providerSessionID)
	if providerSessionID == "" {
		return domain.User{}, domain.Session{}, ErrUnauthenticated
	}

	identity, err := s.provider.Resolve(ctx, providerSessionID)
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}
	if identity.Email == "" {
		return domain.User{}, domain.Session{}, ErrUnauthenticated
	}

	user, err := s.users.UpsertByEmail(ctx, domain.User{
		Email:   identity.Email,
		Name:    identity.Name,
		Picture: identity.Picture,
	})
	if err != nil {
		return domain.User{}, domain.Session{}, fmt.Errorf("upsert user: %w", err)
	}

	now := s.now().UTC()
	session := domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.User{}, domain.Session{}, fmt.Errorf("create session: %w", err)
	}

	return user, session, nil
}

// Authenticate resolves a bearer token to its user. Unknown, malformed, and
// expired tokens all report ErrUnauthenticated so the caller can degrade to a
// guest rather than fail the request.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.User{}, ErrUnauthenticated
	}

	session, err := s.sessions.Get(ctx, token)
	if errors.Is(err, ErrUnauthenticated) {
		return domain.User{}, ErrUnauthenticated
	}
	if err != nil {
		return domain.User{}, err
	}

	if session.Expired(s.now().UTC()) {
		_ = s.sessions.Delete(ctx, token)
		return domain.User{}, ErrUnauthenticated
	}

	user, err := s.users.Get(ctx, session.UserID)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}
