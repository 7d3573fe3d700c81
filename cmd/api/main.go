package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvukoje/ordersvc/internal/config"
	"github.com/dvukoje/ordersvc/internal/database"
	idempostgres "github.com/dvukoje/ordersvc/internal/idempotency/postgres"
	"github.com/dvukoje/ordersvc/internal/kafka"
	"github.com/dvukoje/ordersvc/internal/orders/adapters"
	httpadapter "github.com/dvukoje/ordersvc/internal/orders/adapters/http"
	orderspostgres "github.com/dvukoje/ordersvc/internal/orders/adapters/postgres"
	"github.com/dvukoje/ordersvc/internal/orders/adapters/restclient"
	ordersapp "github.com/dvukoje/ordersvc/internal/orders/app"
	ordersmetrics "github.com/dvukoje/ordersvc/internal/orders/metrics"
	"github.com/dvukoje/ordersvc/internal/telemetry"
	"go.opentelemetry.io/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(parseLogLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
		EnableTracing:  cfg.Telemetry.EnableTracing,
		EnableMetrics:  cfg.Telemetry.EnableMetrics,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	}()

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		logger.Info("running database migrations", "path", cfg.Database.MigrationsPath)
		if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations completed successfully")
	}

	orderMetrics, err := ordersmetrics.NewMetrics(otel.Meter("ordersvc/orders"))
	if err != nil {
		logger.Error("failed to create order metrics", "error", err)
		os.Exit(1)
	}
	dbMetrics, err := database.NewMetrics(otel.Meter("ordersvc/database"))
	if err != nil {
		logger.Error("failed to create database metrics", "error", err)
		os.Exit(1)
	}
	busMetrics, err := kafka.NewMetrics(otel.Meter("ordersvc/kafka"))
	if err != nil {
		logger.Error("failed to create event bus metrics", "error", err)
		os.Exit(1)
	}
	httpMetrics, err := httpadapter.NewMetrics(otel.Meter("ordersvc/http"))
	if err != nil {
		logger.Error("failed to create http metrics", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: cfg.Clients.Timeout}
	productClient := restclient.NewProductClient(cfg.Clients.ProductServiceURL, httpClient)
	paymentClient := restclient.NewPaymentClient(cfg.Clients.PaymentServiceURL, httpClient)

	repo := adapters.NewObservableRepository(orderspostgres.NewRepository(pool), dbMetrics)
	inventory := adapters.NewObservableInventoryClient(productClient, orderMetrics)
	payments := adapters.NewObservablePaymentClient(paymentClient, orderMetrics)
	eventBus := adapters.NewObservableEventBus(kafka.NewNoopEventBus(), busMetrics)
	details := restclient.NewDetailsClient(productClient, paymentClient)
	idemStore := idempostgres.NewStore(pool)

	service := ordersapp.NewService(repo, inventory, payments, eventBus, details, idemStore, logger, orderMetrics)
	ordersHandler := httpadapter.NewHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := database.CheckHealth(r.Context(), pool); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	mux.HandleFunc(cfg.HTTP.MetricsPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("# metrics are exported via OTLP\n"))
	})

	ordersHandler.Register(mux)

	handler := httpadapter.WithRecovery(
		httpadapter.WithRequestID(
			httpadapter.WithLogging(
				httpadapter.WithMetrics(mux, httpMetrics),
				logger,
			),
		),
		logger,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("http server stopped")
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
