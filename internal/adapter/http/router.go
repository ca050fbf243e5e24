package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/fxledger/internal/adapter/http/handler"
	"github.com/iho/fxledger/internal/adapter/http/middleware"
	"github.com/iho/fxledger/internal/infrastructure/metrics"
	"github.com/iho/fxledger/internal/usecase"
)

// RouterConfig holds dependencies for the router. Optional parts are left
// nil to disable them.
type RouterConfig struct {
	PeriodHandler  *handler.PeriodHandler
	FxRateHandler  *handler.FxRateHandler
	JournalHandler *handler.JournalHandler
	ReportHandler  *handler.ReportHandler
	CapitalHandler *handler.CapitalHandler
	AccountHandler *handler.AccountHandler
	HealthHandler  *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequestMeta)
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
		}

		r.Route("/periods", func(r chi.Router) {
			r.Post("/", cfg.PeriodHandler.Create)
			r.Get("/", cfg.PeriodHandler.List)
			r.Get("/latest", cfg.PeriodHandler.Latest)
			r.Get("/{id}", cfg.PeriodHandler.Get)
			r.Post("/{id}/close", cfg.PeriodHandler.Close)
			r.Post("/{id}/lock-rates", cfg.PeriodHandler.LockRates)
		})

		r.Route("/fx-rates", func(r chi.Router) {
			r.Post("/", cfg.FxRateHandler.Create)
			r.Get("/", cfg.FxRateHandler.List)
			r.Get("/latest", cfg.FxRateHandler.Latest)
			r.Get("/{id}", cfg.FxRateHandler.Get)
		})

		r.Route("/journals", func(r chi.Router) {
			r.Post("/", cfg.JournalHandler.Create)
			r.Get("/", cfg.JournalHandler.List)
			r.Get("/{id}", cfg.JournalHandler.Get)
			r.Post("/{id}/lines", cfg.JournalHandler.AddLine)
			r.Post("/{id}/post", cfg.JournalHandler.Post)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/trial-balance", cfg.ReportHandler.TrialBalance)
			r.Get("/general-ledger", cfg.ReportHandler.GeneralLedger)
		})
		r.Get("/ledger/consistency", cfg.ReportHandler.Consistency)

		r.Route("/capital-movements", func(r chi.Router) {
			r.Post("/", cfg.CapitalHandler.Record)
			r.Get("/", cfg.CapitalHandler.List)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}/parent", cfg.AccountHandler.SetParent)
		})
	})

	return r
}
