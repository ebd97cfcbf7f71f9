package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gosplit/internal/adapter/http/handler"
	"github.com/iho/gosplit/internal/adapter/http/middleware"
	"github.com/iho/gosplit/internal/infrastructure/metrics"
	"github.com/iho/gosplit/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EventHandler      *handler.EventHandler
	UserHandler       *handler.UserHandler
	ExpenseHandler    *handler.ExpenseHandler
	PaymentHandler    *handler.PaymentHandler
	SettlementHandler *handler.SettlementHandler
	HealthHandler     *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter

	// Metrics is optional. When set, request metrics are recorded and
	// exposed on /metrics using Gatherer (prometheus.DefaultGatherer if nil).
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	Logger zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.Metrics != nil {
		gatherer := cfg.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
		}

		r.Route("/events", func(r chi.Router) {
			r.Post("/", cfg.EventHandler.Create)
			r.Get("/", cfg.EventHandler.List)
			r.Get("/{id}", cfg.EventHandler.Get)
			r.Put("/{id}", cfg.EventHandler.Update)
			r.Delete("/{id}", cfg.EventHandler.Delete)
			r.Get("/{id}/expenses", cfg.ExpenseHandler.ListByEvent)
			r.Get("/{id}/payments", cfg.PaymentHandler.ListByEvent)
			r.Get("/{id}/balances", cfg.SettlementHandler.Balances)
			r.Get("/{id}/settlements", cfg.SettlementHandler.Suggest)
			r.Get("/{id}/consistency", cfg.SettlementHandler.Consistency)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", cfg.UserHandler.Create)
			r.Get("/", cfg.UserHandler.List)
			r.Get("/{id}", cfg.UserHandler.Get)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", cfg.ExpenseHandler.Create)
			r.Get("/{id}", cfg.ExpenseHandler.Get)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", cfg.PaymentHandler.Record)
			r.Get("/{id}", cfg.PaymentHandler.Get)
			r.Post("/{id}/settle", cfg.PaymentHandler.Settle)
		})
	})

	return r
}
