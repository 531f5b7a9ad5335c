package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ds-storefront/internal/cart"
	"ds-storefront/internal/catalog"
	"ds-storefront/internal/config"
	"ds-storefront/internal/customizer"
	"ds-storefront/internal/db"
	"ds-storefront/internal/handoff"
	"ds-storefront/internal/httpapi"
	"ds-storefront/internal/logger"
	"ds-storefront/internal/metrics"
	"ds-storefront/internal/middleware"
	"ds-storefront/internal/order"
	"ds-storefront/internal/payment"
	"ds-storefront/internal/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Swappable in tests.
var (
	initDBFunc      = db.NewDatabase
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	st, closeStorage, err := newStorage(cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter()
	go limiter.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(ctx, cfg, st, cat, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("storefront server running", zap.String("addr", srv.Addr), zap.String("storage", cfg.CartStorage))
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newServer loads the cart and wires the core into the HTTP API.
func newServer(ctx context.Context, cfg *config.Config, st storage.Storage, cat *catalog.Catalog, limiter *middleware.RateLimiter) http.Handler {
	store := cart.NewStore(st, cfg.CartStorageKey)
	store.OnChange(func(s cart.Snapshot) {
		logger.L().Debug("cart changed", zap.Int("count", s.Count), zap.Int64("total", s.Total))
	})
	if err := store.Load(ctx); err != nil {
		// the in-memory cart carries on empty
		logger.L().Warn("cart not restored", zap.Error(err))
	}

	builder := order.NewBuilder(store, handoff.New(cfg.Handoff), order.Options{
		Recipient: cfg.WhatsAppNumber,
		Bank: payment.BankDetails{
			AccountNumber: cfg.BankAccountNumber,
			AccountName:   cfg.BankAccountName,
			Bank:          cfg.BankName,
			Branch:        cfg.BankBranch,
		},
		OnSubmitted: func(ctx context.Context, msg *order.Message) {
			logger.FromCtx(ctx).Info("order confirmation shown", zap.String("order_ref", msg.Reference))
		},
	})

	h := httpapi.NewHandler(cat, store, customizer.NewSession(), builder, &metrics.Storefront{})
	return httpapi.NewRouter(h, limiter)
}

// newStorage builds the configured backend. Remote backends sit behind a
// circuit breaker so a dead server fails fast instead of stalling every click.
func newStorage(cfg *config.Config) (storage.Storage, func(), error) {
	noop := func() {}

	switch cfg.CartStorage {
	case "memory":
		return storage.NewMemory(), noop, nil

	case "file":
		f, err := storage.NewFile(cfg.CartDataDir)
		if err != nil {
			return nil, nil, err
		}
		return f, noop, nil

	case "postgres":
		database, err := initDBFunc(cfg)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewBreaker("postgres", storage.NewPostgres(database)), closeDB(database), nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		return storage.NewBreaker("redis", storage.NewRedis(client)), func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown CART_STORAGE %q", cfg.CartStorage)
	}
}

func closeDB(database *sql.DB) func() {
	return func() { _ = database.Close() }
}

// loadCatalog tolerates a missing file so the cart works without a catalog.
func loadCatalog(path string) (*catalog.Catalog, error) {
	cat, err := catalog.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.L().Warn("catalog file not found, serving no templates", zap.String("path", path))
		return catalog.New(nil), nil
	}
	return cat, err
}
