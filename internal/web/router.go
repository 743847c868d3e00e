package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authapp "github.com/agrimap/market/internal/auth/app"
	cartapp "github.com/agrimap/market/internal/cart/app"
	catalogapp "github.com/agrimap/market/internal/catalog/app"
	checkoutapp "github.com/agrimap/market/internal/checkout/app"
)

type RouterConfig struct {
	CORSOrigins []string

	Catalog  *catalogapp.Service
	Cart     *cartapp.Service
	Auth     *authapp.Service
	Checkout *checkoutapp.Service

	Log *slog.Logger
}

func allowAll(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// NewRouter assembles the HTTP surface. Every /api route runs behind actor
// resolution; the webhook route does too, but its identity comes from the
// transaction record rather than the caller.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(cfg.Log))

	corsCfg := cors.DefaultConfig()
	if allowAll(cfg.CORSOrigins) {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", guestHeader)
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	products := NewProductHandler(cfg.Catalog, cfg.Log)
	carts := NewCartHandler(cfg.Cart, cfg.Log)
	auth := NewAuthHandler(cfg.Auth, cfg.Cart, cfg.Log)
	checkout := NewCheckoutHandler(cfg.Checkout, cfg.Log)

	api := r.Group("/api")
	api.Use(WithActor(cfg.Auth))
	{
		api.GET("/products", products.List)
		api.GET("/products/:id", products.Get)
		api.POST("/products", products.Create)

		api.GET("/cart", carts.List)
		api.POST("/cart/items", carts.AddItem)
		api.PUT("/cart/items/:product_id", carts.SetQuantity)
		api.DELETE("/cart/items/:product_id", carts.RemoveItem)

		api.POST("/auth/login", auth.Login)
		api.GET("/auth/me", auth.Me)
		api.POST("/auth/logout", auth.Logout)

		api.POST("/checkout/create-session", checkout.CreateSession)
		api.GET("/checkout/status/:session_id", checkout.Status)
		api.POST("/checkout/webhook", checkout.Webhook)
	}

	return r
}
