package web

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	authapp "github.com/agrimap/market/internal/auth/app"
	cartdomain "github.com/agrimap/market/internal/cart/domain"
)

const (
	actorKey       = "actor"
	bearerTokenKey = "bearerToken"

	guestHeader = "X-Session-ID"
	guestCookie = "session_token"
)

// WithActor resolves the caller identity for every request.
//
// An Authorization bearer token is checked against the session store; a
// valid one yields an authenticated actor. An invalid or expired token
// never fails the request, the caller simply degrades to guest so that
// browsing and carting keep working after a session lapses. Guest identity
// comes from the X-Session-ID header, falling back to the session_token
// cookie.
func WithActor(auth *authapp.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := cartdomain.Actor{SessionToken: guestToken(c)}

		if token := bearerToken(c); token != "" {
			c.Set(bearerTokenKey, token)
			if user, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				actor.UserID = user.ID
			}
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func guestToken(c *gin.Context) string {
	if t := c.GetHeader(guestHeader); t != "" {
		return t
	}
	if t, err := c.Cookie(guestCookie); err == nil {
		return t
	}
	return ""
}

func actorFrom(c *gin.Context) cartdomain.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(cartdomain.Actor); ok {
			return a
		}
	}
	return cartdomain.Actor{}
}

// RequestLogger emits one structured line per request.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}
