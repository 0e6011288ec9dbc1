package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/routr/backend/internal/config"
	"github.com/routr/backend/internal/handler"
	"github.com/routr/backend/internal/middleware"
	"github.com/routr/backend/internal/repo"
	"github.com/routr/backend/internal/report"
	"github.com/routr/backend/internal/service"
	"github.com/routr/backend/internal/telemetry"
)

// ServeCmd runs the API server. Settings come from the environment (see config.Load).
type ServeCmd struct {
	SecureCookies bool `name:"secure-cookies" env:"SECURE_COOKIES" help:"Mark the session cookie Secure (serve behind HTTPS)."`
	AutoMigrate   bool `name:"auto-migrate" env:"AUTO_MIGRATE" help:"Apply pending migrations before serving."`
}

// Run starts the server and blocks until ctx is cancelled.
func (c *ServeCmd) Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, "routr")
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("tracer shutdown", "error", err)
		}
	}()

	if c.AutoMigrate {
		if err := migrate(ctx, cfg.DatabaseURL, "up", logger); err != nil {
			return err
		}
	}

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connection established")

	// --- Metrics ----------------------------------------------------------
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// --- Services ---------------------------------------------------------
	trips := repo.NewTripRepo(pool)
	stops := repo.NewStopRepo(pool)
	fuel := repo.NewFuelPurchaseRepo(pool)
	users := repo.NewUserRepo(pool)

	if cfg.LLM.APIKey == "" {
		logger.Warn("LLM_API_KEY not set; trip reports are disabled")
	}
	generator := report.NewGenerator(
		report.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout),
		cfg.LLM.Model,
		logger,
		report.NewMetrics(reg),
	)

	authSvc := service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL)
	srv := handler.NewServer(handler.Services{
		Trips:   service.NewTripService(trips),
		Stops:   service.NewStopService(trips, stops),
		Fuel:    service.NewFuelService(trips, fuel),
		Auth:    authSvc,
		Reports: service.NewReportService(trips, fuel, generator),
		Export:  service.NewExportService(trips, fuel),
		DB:      pool,
	}, handler.WithLogger(logger), handler.WithSecureCookies(c.SecureCookies))

	// --- Router -----------------------------------------------------------
	// Tracing runs before the logger so log lines and spans share a request.
	// Recoverer sits inside the logger and metrics so panics are recorded as 500s.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Tracing)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewHTTPMetrics(reg).Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srv.Routes(r, middleware.RequireAuth(authSvc), promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	// --- HTTP Server ------------------------------------------------------
	// The write timeout has to outlast a report's completion call.
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.LLM.Timeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
