package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/agrimap/market/internal/checkout/domain"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidTotal   = errors.New("cart total must be positive")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrInvalidWebhook = errors.New("invalid webhook")
)

type Service struct {
	cart     CartReader
	gateway  PaymentGateway
	txs      TransactionRepo
	currency string
}

func NewService(cart CartReader, gateway PaymentGateway, txs TransactionRepo, currency string) *Service {
	if currency == "" {
		currency = "inr"
	}

	return &Service{
		cart:     cart,
		gateway:  gateway,
		txs:      txs,
		currency: currency,
	}
}

// CreateSession opens a gateway checkout for the owner's current cart. The
// amount is derived from the server-side cart; an empty cart or a zero total
// gates with ErrEmptyCart, a negative total with lines is corrupted data and
// gates with ErrInvalidTotal.
func (s *Service) CreateSession(ctx context.Context, owner domain.Owner, originURL string) (domain.PaymentTransaction, string, error) {
	originURL = strings.TrimRight(strings.TrimSpace(originURL), "/")
	if originURL == "" {
		return domain.PaymentTransaction{}, "", ErrInvalidInput
	}

	lines, err := s.cart.List(ctx, owner)
	if err != nil {
		return domain.PaymentTransaction{}, "", err
	}

	var total float64
	for _, line := range lines {
		total += line.Total
	}

	if len(lines) == 0 || total == 0 {
		return domain.PaymentTransaction{}, "", ErrEmptyCart
	}
	if total < 0 {
		return domain.PaymentTransaction{}, "", ErrInvalidTotal
	}

	gatewayLines := make([]GatewayLine, 0, len(lines))
	for _, line := range lines {
		gatewayLines = append(gatewayLines, GatewayLine{
			Name:       line.Name,
			UnitAmount: toMinorUnits(line.UnitPrice),
			Quantity:   int64(line.Quantity),
		})
	}

	session, err := s.gateway.CreateSession(ctx, CreateSessionRequest{
		Lines:      gatewayLines,
		Currency:   s.currency,
		SuccessURL: originURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  originURL + "/cart",
		Metadata:   ownerMetadata(owner),
	})
	if err != nil {
		return domain.PaymentTransaction{}, "", fmt.Errorf("gateway create session: %w", err)
	}

	tx, err := s.txs.Create(ctx, domain.PaymentTransaction{
		GatewaySessionID: session.ID,
		Owner:            owner,
		Amount:           total,
		Currency:         s.currency,
		Status:           domain.StatusPending,
	})
	if err != nil {
		return domain.PaymentTransaction{}, "", fmt.Errorf("record transaction: %w", err)
	}

	return tx, session.URL, nil
}

// Status reports the transaction and polls the gateway while the payment is
// still open. The owner's cart is cleared exactly once, on the first observed
// transition to paid.
func (s *Service) Status(ctx context.Context, sessionID string) (domain.PaymentTransaction, error) {
	tx, err := s.txs.GetBySessionID(ctx, sessionID)
	if err != nil {
		return domain.PaymentTransaction{}, err
	}

	if tx.Status.Terminal() {
		return tx, nil
	}

	status, err := s.gateway.SessionStatus(ctx, sessionID)
	if err != nil {
		return domain.PaymentTransaction{}, fmt.Errorf("gateway status: %w", err)
	}

	if err := s.applyStatus(ctx, &tx, status); err != nil {
		return domain.PaymentTransaction{}, err
	}
	return tx, nil
}

// HandleWebhook applies a gateway-pushed status change.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.VerifyWebhook(payload, signature)
	if err != nil {
		return err
	}
	if event.SessionID == "" {
		return nil
	}

	tx, err := s.txs.GetBySessionID(ctx, event.SessionID)
	if errors.Is(err, ErrNotFound) {
		// Not a session we initiated; acknowledge and move on.
		return nil
	}
	if err != nil {
		return err
	}

	return s.applyStatus(ctx, &tx, event.Status)
}

func (s *Service) applyStatus(ctx context.Context, tx *domain.PaymentTransaction, status domain.TransactionStatus) error {
	// A settled transaction never moves again; stale or replayed gateway
	// events are acknowledged without a write.
	if tx.Status.Terminal() {
		return nil
	}

	switch status {
	case domain.StatusPaid:
		flipped, err := s.txs.MarkPaid(ctx, tx.GatewaySessionID)
		if err != nil {
			return err
		}
		tx.Status = domain.StatusPaid
		if flipped {
			if err := s.cart.Clear(ctx, tx.Owner); err != nil {
				return fmt.Errorf("clear cart after payment: %w", err)
			}
		}
	case domain.StatusFailed, domain.StatusExpired:
		if err := s.txs.UpdateStatus(ctx, tx.GatewaySessionID, status); err != nil {
			return err
		}
		tx.Status = status
	}
	return nil
}

func ownerMetadata(owner domain.Owner) map[string]string {
	m := map[string]string{}
	if owner.UserID != "" {
		m["user_id"] = owner.UserID
	}
	if owner.SessionToken != "" {
		m["session_token"] = owner.SessionToken
	}
	return m
}

func toMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
