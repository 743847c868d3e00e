package domain

import "time"

// Owner mirrors the cart partition a checkout was initiated for.
type Owner struct {
	UserID       string
	SessionToken string
}

type TransactionStatus string

const (
	StatusPending TransactionStatus = "pending"
	StatusPaid    TransactionStatus = "paid"
	StatusFailed  TransactionStatus = "failed"
	StatusExpired TransactionStatus = "expired"
)

func (s TransactionStatus) Terminal() bool {
	return s == StatusPaid || s == StatusFailed || s == StatusExpired
}

// PaymentTransaction is the local record of one gateway checkout session.
// Amount is computed server-side from the cart; client-supplied amounts are
// never trusted.
type PaymentTransaction struct {
	ID               string
	GatewaySessionID string
	Owner            Owner
	Amount           float64
	Currency         string
	Status           TransactionStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
