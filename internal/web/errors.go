package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authapp "github.com/agrimap/market/internal/auth/app"
	cartapp "github.com/agrimap/market/internal/cart/app"
	catalogapp "github.com/agrimap/market/internal/catalog/app"
	checkoutapp "github.com/agrimap/market/internal/checkout/app"
)

// httpStatusFromErr maps the service error taxonomy to a status and a stable
// machine-readable code. Anything unmapped is an internal error; transient
// storage failures propagate here unchanged.
func httpStatusFromErr(err error) (int, string) {
	switch {
	case errors.Is(err, cartapp.ErrNotFound),
		errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, checkoutapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusBadRequest, "EMPTY_CART"
	case errors.Is(err, checkoutapp.ErrInvalidTotal):
		return http.StatusBadRequest, "INVALID_TOTAL"
	case errors.Is(err, cartapp.ErrInvalidQuantity):
		return http.StatusBadRequest, "INVALID_QUANTITY"
	case errors.Is(err, checkoutapp.ErrInvalidWebhook):
		return http.StatusBadRequest, "INVALID_WEBHOOK"
	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrInvalidInput),
		errors.Is(err, authapp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, authapp.ErrUnauthenticated):
		return http.StatusUnauthorized, "UNAUTHENTICATED"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func respondError(c *gin.Context, log *slog.Logger, err error) {
	status, code := httpStatusFromErr(err)

	if status == http.StatusInternalServerError {
		log.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.Any("err", err),
		)
		c.JSON(status, gin.H{"error": code})
		return
	}

	c.JSON(status, gin.H{"error": code, "detail": err.Error()})
}
