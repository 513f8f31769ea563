package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Botopia-SAS/DashboardSafestays/internal/metrics"
	"github.com/Botopia-SAS/DashboardSafestays/internal/storage"
	"github.com/Botopia-SAS/DashboardSafestays/internal/trigger"
)

// Dependencies are the stores and services the HTTP API serves.
type Dependencies struct {
	Listings storage.ListingStore
	// Locations is optional; nil leaves /api/locations unregistered.
	Locations   storage.LocationStore
	Subscribers *trigger.SubscriberRegistry
	Notifier    *trigger.Notifier
	// Backends are pinged by the readiness probe.
	Backends map[string]Pinger
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(logger *slog.Logger, deps Dependencies) http.Handler {
	mux := chi.NewRouter()

	mux.Use(RequestID)
	mux.Use(Logging(logger))
	mux.Use(Recovery(logger))
	mux.Use(metrics.Metrics)

	config := huma.DefaultConfig("Safestays Dashboard API", "1.0.0")
	config.Info.Description = "Rental listings kept in a spreadsheet, the locations catalogue, and change subscribers."
	api := humachi.New(mux, config)

	registerListingRoutes(api, NewListingHandler(deps.Listings, deps.Notifier, logger))
	if deps.Locations != nil {
		registerLocationRoutes(api, NewLocationHandler(deps.Locations, deps.Notifier, logger))
	}

	subscribers := deps.Subscribers
	if subscribers == nil {
		subscribers = trigger.NewSubscriberRegistry()
	}
	registerSubscriberRoutes(api, NewSubscriberHandler(subscribers, logger))

	health := NewHealthHandler(deps.Backends, logger)
	mux.Get("/v1/livez", health.Livez)
	mux.Get("/v1/readyz", health.Readyz)
	mux.Get("/v1/health", health.Readyz)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
