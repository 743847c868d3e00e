package web

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	checkoutapp "github.com/agrimap/market/internal/checkout/app"
	checkoutdomain "github.com/agrimap/market/internal/checkout/domain"
)

type CheckoutHandler struct {
	checkout *checkoutapp.Service
	log      *slog.Logger
}

func NewCheckoutHandler(checkout *checkoutapp.Service, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, log: log}
}

type createSessionRequest struct {
	OriginURL string `json:"origin_url" binding:"required"`
}

func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_ARGUMENT", "detail": err.Error()})
		return
	}

	actor := actorFrom(c)
	owner := checkoutdomain.Owner{UserID: actor.UserID}
	if owner.UserID == "" {
		owner.SessionToken = actor.SessionToken
	}
	if owner.UserID == "" && owner.SessionToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_ARGUMENT", "detail": "missing session identity"})
		return
	}

	tx, checkoutURL, err := h.checkout.CreateSession(c.Request.Context(), owner, req.OriginURL)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":   tx.GatewaySessionID,
		"checkout_url": checkoutURL,
		"amount":       tx.Amount,
		"currency":     tx.Currency,
	})
}

func (h *CheckoutHandler) Status(c *gin.Context) {
	tx, err := h.checkout.Status(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": tx.GatewaySessionID,
		"status":     string(tx.Status),
		"amount":     tx.Amount,
		"currency":   tx.Currency,
	})
}

func (h *CheckoutHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_WEBHOOK"})
		return
	}

	err = h.checkout.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
