package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"storevista-be/internal/api"
	"storevista-be/internal/config"
	"storevista-be/internal/db"
	"storevista-be/internal/logger"
	"storevista-be/internal/metrics"
	"storevista-be/internal/middleware"
	"storevista-be/internal/order"
	"storevista-be/internal/product"
	"storevista-be/internal/search"
	"storevista-be/internal/store"
	"storevista-be/internal/user"

	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewLimiter(cfg.InternalKey)
	go limiter.Run(ctx)

	handler := newServer(cfg, database)
	defer func() {
		if err := handler.Stats.Shutdown(context.Background()); err != nil {
			logger.L().Warn("metrics shutdown", zap.Error(err))
		}
	}()

	router := setupRouter(handler, cfg, limiter)

	addr := ":" + cfg.AppPort
	logger.L().Info("server starting", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
	return startServerFunc(ctx, addr, router)
}

// newServer wires repositories and services into the API handler.
func newServer(cfg *config.Config, database *sql.DB) *api.Handler {
	stats := metrics.NewOrderStats()

	storeRepo := store.NewRepository(database)
	productRepo := product.NewRepository(database)
	orderRepo := order.NewRepository(database)
	userRepo := user.NewRepository(database)

	return api.NewHandler(
		user.NewService(userRepo),
		store.NewService(storeRepo),
		product.NewService(productRepo, storeRepo),
		search.NewService(productRepo),
		order.NewService(orderRepo, storeRepo, metrics.NewRepository(database), stats),
		stats,
	)
}

func setupRouter(h *api.Handler, cfg *config.Config, limiter *middleware.Limiter) http.Handler {
	mux := http.NewServeMux()
	h.Routes(mux)

	var handler http.Handler = mux
	handler = limiter.Middleware(handler)
	handler = middleware.AuthMiddleware(handler)
	handler = middleware.CORS(cfg.CORSOrigin)(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)
	return handler
}

func startServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.L().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
