package app

import (
	"context"

	"github.com/agrimap/market/internal/checkout/domain"
)

// Line is a cart line as checkout sees it, already enriched with pricing.
type Line struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice float64
	Total     float64
}

type CartReader interface {
	List(ctx context.Context, owner domain.Owner) ([]Line, error)
	Clear(ctx context.Context, owner domain.Owner) error
}

type GatewayLine struct {
	Name       string
	UnitAmount int64 // minor units
	Quantity   int64
}

type GatewaySession struct {
	ID  string
	URL string
}

type CreateSessionRequest struct {
	Lines      []GatewayLine
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

type WebhookEvent struct {
	SessionID string
	Status    domain.TransactionStatus
}

// PaymentGateway is the third-party payments boundary. VerifyWebhook returns
// ErrInvalidWebhook for payloads that fail signature verification.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (GatewaySession, error)
	SessionStatus(ctx context.Context, sessionID string) (domain.TransactionStatus, error)
	VerifyWebhook(payload []byte, signature string) (WebhookEvent, error)
}

type TransactionRepo interface {
	Create(ctx context.Context, tx domain.PaymentTransaction) (domain.PaymentTransaction, error)
	GetBySessionID(ctx context.Context, sessionID string) (domain.PaymentTransaction, error)
	UpdateStatus(ctx context.Context, sessionID string, status domain.TransactionStatus) error
	// MarkPaid flips the transaction to paid and reports whether this call
	// performed the transition; later calls return false.
	MarkPaid(ctx context.Context, sessionID string) (bool, error)
}
