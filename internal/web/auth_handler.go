package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authapp "github.com/agrimap/market/internal/auth/app"
	authdomain "github.com/agrimap/market/internal/auth/domain"
	cartapp "github.com/agrimap/market/internal/cart/app"
	cartdomain "github.com/agrimap/market/internal/cart/domain"
)

type AuthHandler struct {
	auth *authapp.Service
	cart *cartapp.Service
	log  *slog.Logger
}

func NewAuthHandler(auth *authapp.Service, cart *cartapp.Service, log *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, cart: cart, log: log}
}

type loginRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type userResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

func toUserResponse(u authdomain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Picture: u.Picture}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_ARGUMENT", "detail": err.Error()})
		return
	}

	user, session, err := h.auth.Login(c.Request.Context(), req.SessionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	// Fold the caller's guest cart into the account. Best effort: the login
	// succeeded either way, and the guest cart is still there to retry.
	if guest := guestToken(c); guest != "" {
		err := h.cart.MergeGuest(c.Request.Context(),
			cartdomain.Guest(guest),
			cartdomain.Authenticated(user.ID),
		)
		if err != nil {
			h.log.Warn("guest cart merge failed",
				slog.String("user_id", user.ID),
				slog.Any("err", err),
			)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          toUserResponse(user),
		"session_token": session.Token,
		"expires_at":    session.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	token := c.GetString(bearerTokenKey)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED"})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), c.GetString(bearerTokenKey)); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
