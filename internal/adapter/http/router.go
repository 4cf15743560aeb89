package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/hausledger/internal/adapter/http/handler"
	"github.com/iho/hausledger/internal/adapter/http/middleware"
	"github.com/iho/hausledger/internal/infrastructure/metrics"
	"github.com/iho/hausledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler    *handler.AccountHandler
	JournalHandler    *handler.JournalHandler
	LedgerHandler     *handler.LedgerHandler
	AllocationHandler *handler.AllocationHandler
	UnitHandler       *handler.UnitHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	IdempotencyTTL    time.Duration
	RateLimiter       *middleware.RateLimiter
	Logger            zerolog.Logger
	Metrics           *metrics.Metrics
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	r.Use(middleware.Recovery)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Chart of accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Post("/seed", cfg.AccountHandler.SeedChart)
			r.Get("/code/{code}", cfg.AccountHandler.GetByCode)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Patch("/{id}", cfg.AccountHandler.Update)
			r.Delete("/{id}", cfg.AccountHandler.Deactivate)
			r.Get("/{id}/balance", cfg.LedgerHandler.GetBalance)
			r.Get("/{id}/ledger", cfg.LedgerHandler.GetLedger)
			r.Get("/{id}/entries", cfg.JournalHandler.ListByAccount)
		})

		// Journal entries
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.JournalHandler.Create)
			r.Get("/", cfg.JournalHandler.List)
			r.Get("/{id}", cfg.JournalHandler.Get)
			r.Post("/{id}/reverse", cfg.JournalHandler.Reverse)
			r.Get("/{id}/allocation", cfg.AllocationHandler.GetForEntry)
		})

		// Cost allocations
		r.Route("/allocations", func(r chi.Router) {
			r.Get("/strategies", cfg.AllocationHandler.ListStrategies)
			r.Post("/preview", cfg.AllocationHandler.Preview)
			r.Post("/", cfg.AllocationHandler.Create)
		})

		// Units
		r.Route("/units", func(r chi.Router) {
			r.Post("/", cfg.UnitHandler.Create)
			r.Get("/", cfg.UnitHandler.List)
			r.Get("/{id}", cfg.UnitHandler.Get)
			r.Patch("/{id}", cfg.UnitHandler.Update)
		})

		// Reports
		r.Get("/reports/trial-balance", cfg.LedgerHandler.GetTrialBalance)
	})

	return r
}
