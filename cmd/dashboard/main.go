package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Botopia-SAS/DashboardSafestays/internal/api"
	"github.com/Botopia-SAS/DashboardSafestays/internal/circuitbreaker"
	"github.com/Botopia-SAS/DashboardSafestays/internal/config"
	"github.com/Botopia-SAS/DashboardSafestays/internal/gsheets"
	"github.com/Botopia-SAS/DashboardSafestays/internal/metrics"
	"github.com/Botopia-SAS/DashboardSafestays/internal/storage"
	"github.com/Botopia-SAS/DashboardSafestays/internal/trigger"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backends := make(map[string]api.Pinger)

	// Listing sheet
	client, err := gsheets.NewWithCredentials(ctx, cfg.SpreadsheetID, cfg.SheetsTimeout, gsheets.CredentialSource{
		Base64:      cfg.GoogleCredentials,
		File:        cfg.GoogleCredentialsFile,
		Development: cfg.Development(),
	})
	if err != nil {
		logger.Error("failed to create sheets client", "error", err)
		os.Exit(1)
	}

	breaker := circuitbreaker.New("sheets", cfg.BreakerMaxFailures, cfg.BreakerResetTimeout)
	breaker.OnStateChange(func(name string, from, to circuitbreaker.State) {
		metrics.SetBreakerState(name, int(to))
		logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
	})
	metrics.SetBreakerState(breaker.Name(), int(breaker.State()))

	sheets := storage.NewSheetsStore(client, storage.SheetsConfig{
		SheetName: cfg.SheetName,
		SheetID:   cfg.SheetID,
	}, breaker, logger)
	backends["sheets"] = sheets
	logger.Info("sheets store ready", "sheet", cfg.SheetName, "sheet_id", cfg.SheetID)

	// Locations and persisted subscribers need PostgreSQL.
	var (
		locations       storage.LocationStore
		subscriberStore trigger.SubscriberStore
	)
	if cfg.LocationsEnabled() {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		logger.Info("connected to database")

		if err := storage.RunMigrations(ctx, pool); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations complete")

		prometheus.MustRegister(metrics.NewPoolCollector(pool))
		locations = storage.NewPostgresLocationStore(pool, cfg.QueryTimeout)
		subscriberStore = trigger.NewPostgresSubscriberStore(pool, cfg.QueryTimeout)
		backends["postgres"] = pool
	} else {
		logger.Warn("DATABASE_URL not set, locations disabled")
	}

	// Change notifications
	subscribers := trigger.NewSubscriberRegistry(subscriberStore)
	if err := subscribers.LoadAll(ctx); err != nil {
		logger.Error("failed to load subscribers", "error", err)
		os.Exit(1)
	}
	for _, endpoint := range cfg.NotifyEndpoints {
		if subscribers.HasEndpoint(endpoint) {
			continue
		}
		s := &trigger.Subscriber{Name: endpoint, Endpoint: endpoint}
		if err := subscribers.Register(ctx, s); err != nil {
			logger.Error("failed to register subscriber", "endpoint", endpoint, "error", err)
			os.Exit(1)
		}
	}
	notifier := trigger.NewNotifier(subscribers,
		trigger.NewRPCClient(cfg.NotifyRetryMax, cfg.NotifyRetryBackoff, cfg.NotifyRPCTimeout), logger)
	logger.Info("notifier ready", "subscribers", len(subscribers.List()))

	// Start HTTP server
	handler := api.NewServer(logger, api.Dependencies{
		Listings:    sheets,
		Locations:   locations,
		Subscribers: subscribers,
		Notifier:    notifier,
		Backends:    backends,
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
	if err := notifier.Wait(shutdownCtx); err != nil {
		logger.Warn("notifications still in flight at shutdown", "error", err)
	}

	logger.Info("shutdown complete")
}
