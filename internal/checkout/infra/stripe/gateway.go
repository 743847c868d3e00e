package stripe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agrimap/market/internal/checkout/app"
	"github.com/agrimap/market/internal/checkout/domain"
	stripego "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

// Gateway implements the payment gateway port on Stripe Checkout.
type Gateway struct {
	sessions      *session.Client
	webhookSecret string
}

func New(apiKey, webhookSecret string) *Gateway {
	return &Gateway{
		sessions: &session.Client{
			B:   stripego.GetBackend(stripego.APIBackend),
			Key: apiKey,
		},
		webhookSecret: webhookSecret,
	}
}

func (g *Gateway) CreateSession(ctx context.Context, req app.CreateSessionRequest) (app.GatewaySession, error) {
	lineItems := make([]*stripego.CheckoutSessionLineItemParams, 0, len(req.Lines))
	for _, line := range req.Lines {
		lineItems = append(lineItems, &stripego.CheckoutSessionLineItemParams{
			Quantity: stripego.Int64(line.Quantity),
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripego.String(req.Currency),
				UnitAmount: stripego.Int64(line.UnitAmount),
				ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripego.String(line.Name),
				},
			},
		})
	}

	params := &stripego.CheckoutSessionParams{
		Params:     stripego.Params{Context: ctx, Metadata: req.Metadata},
		Mode:       stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL: stripego.String(req.SuccessURL),
		CancelURL:  stripego.String(req.CancelURL),
		LineItems:  lineItems,
	}

	s, err := g.sessions.New(params)
	if err != nil {
		return app.GatewaySession{}, fmt.Errorf("stripe: %w", err)
	}

	return app.GatewaySession{ID: s.ID, URL: s.URL}, nil
}

func (g *Gateway) SessionStatus(ctx context.Context, sessionID string) (domain.TransactionStatus, error) {
	s, err := g.sessions.Get(sessionID, &stripego.CheckoutSessionParams{
		Params: stripego.Params{Context: ctx},
	})
	if err != nil {
		return "", fmt.Errorf("stripe: %w", err)
	}

	return mapStatus(s), nil
}

func (g *Gateway) VerifyWebhook(payload []byte, signature string) (app.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return app.WebhookEvent{}, fmt.Errorf("%w: %v", app.ErrInvalidWebhook, err)
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.expired", "checkout.session.async_payment_failed":
	default:
		return app.WebhookEvent{}, nil
	}

	var s stripego.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return app.WebhookEvent{}, fmt.Errorf("%w: %v", app.ErrInvalidWebhook, err)
	}

	status := mapStatus(&s)
	if event.Type == "checkout.session.async_payment_failed" {
		status = domain.StatusFailed
	}

	return app.WebhookEvent{SessionID: s.ID, Status: status}, nil
}

func mapStatus(s *stripego.CheckoutSession) domain.TransactionStatus {
	switch {
	case s.PaymentStatus == stripego.CheckoutSessionPaymentStatusPaid:
		return domain.StatusPaid
	case s.Status == stripego.CheckoutSessionStatusExpired:
		return domain.StatusExpired
	default:
		return domain.StatusPending
	}
}
