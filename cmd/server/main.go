package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	authapp "github.com/agrimap/market/internal/auth/app"
	authmongo "github.com/agrimap/market/internal/auth/infra/mongo"
	"github.com/agrimap/market/internal/auth/infra/provider"
	cartapp "github.com/agrimap/market/internal/cart/app"
	cartadapter "github.com/agrimap/market/internal/cart/infra/adapter"
	cartmongo "github.com/agrimap/market/internal/cart/infra/mongo"
	catalogapp "github.com/agrimap/market/internal/catalog/app"
	catalogmongo "github.com/agrimap/market/internal/catalog/infra/mongo"
	checkoutapp "github.com/agrimap/market/internal/checkout/app"
	checkoutadapter "github.com/agrimap/market/internal/checkout/infra/adapter"
	checkoutmongo "github.com/agrimap/market/internal/checkout/infra/mongo"
	"github.com/agrimap/market/internal/checkout/infra/stripe"
	"github.com/agrimap/market/internal/web"
	"github.com/agrimap/market/pkg/config"
	"github.com/agrimap/market/pkg/logger"
	pkgmongo "github.com/agrimap/market/pkg/mongo"
	"github.com/agrimap/market/pkg/shutdown"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Service: "market",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server exited", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	client, db, err := pkgmongo.Open(ctx, pkgmongo.Config{
		URL:      cfg.MongoURL,
		Database: cfg.MongoDB,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn("mongo disconnect", slog.Any("err", err))
		}
	}()
	log.Info("mongo connected", slog.String("db", cfg.MongoDB))

	productRepo := catalogmongo.NewProductRepo(db)
	ledgerRepo := cartmongo.NewLedgerRepo(db)
	userRepo := authmongo.NewUserRepo(db)
	sessionRepo := authmongo.NewSessionRepo(db)
	transactionRepo := checkoutmongo.NewTransactionRepo(db)

	indexCtx, cancelIdx := context.WithTimeout(ctx, 30*time.Second)
	defer cancelIdx()
	for name, ensure := range map[string]func(context.Context) error{
		"cart_lines":           ledgerRepo.EnsureIndexes,
		"users":                userRepo.EnsureIndexes,
		"sessions":             sessionRepo.EnsureIndexes,
		"payment_transactions": transactionRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			return fmt.Errorf("ensure indexes %s: %w", name, err)
		}
	}

	catalogSvc := catalogapp.NewService(productRepo)
	if err := catalogSvc.SeedIfEmpty(ctx, log); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	cartSvc := cartapp.NewService(ledgerRepo, cartadapter.NewCatalogServiceReader(catalogSvc), 10)
	authSvc := authapp.NewService(userRepo, sessionRepo, provider.New(cfg.AuthProviderURL), cfg.SessionTTL)

	gateway := stripe.New(cfg.StripeAPIKey, cfg.StripeWebhookSecret)
	checkoutSvc := checkoutapp.NewService(checkoutadapter.NewCartServiceReader(cartSvc), gateway, transactionRepo, "inr")

	router := web.NewRouter(web.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		Catalog:     catalogSvc,
		Cart:        cartSvc,
		Auth:        authSvc,
		Checkout:    checkoutSvc,
		Log:         log,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	log.Info("bye")
	return nil
}
