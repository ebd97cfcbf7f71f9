package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Expense metrics
	ExpensesCreated *prometheus.CounterVec
	ExpenseAmount   prometheus.Histogram

	// Payment metrics
	PaymentsRecorded prometheus.Counter
	PaymentsSettled  prometheus.Counter

	// Settlement metrics
	SettlementPlans    prometheus.Counter
	TransfersSuggested prometheus.Histogram
	PlanDuration       prometheus.Histogram
	ConsistencyFaults  prometheus.Counter

	// Outbox metrics
	OutboxPublished prometheus.Counter
	OutboxErrors    prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Redis metrics
	CacheLookups *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates all metrics and registers them on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ExpensesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosplit_expenses_created_total",
				Help: "Total number of expenses created by split strategy",
			},
			[]string{"strategy"},
		),
		ExpenseAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gosplit_expense_amount",
			Help:    "Expense amounts",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 10000},
		}),

		PaymentsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "gosplit_payments_recorded_total",
			Help: "Total number of payments recorded",
		}),
		PaymentsSettled: factory.NewCounter(prometheus.CounterOpts{
			Name: "gosplit_payments_settled_total",
			Help: "Total number of payments moved to settled",
		}),

		SettlementPlans: factory.NewCounter(prometheus.CounterOpts{
			Name: "gosplit_settlement_plans_total",
			Help: "Total number of settlement plans computed",
		}),
		TransfersSuggested: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gosplit_transfers_suggested",
			Help:    "Number of transfers in each settlement plan",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		PlanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gosplit_settlement_plan_duration_seconds",
			Help:    "Duration of balance aggregation and settlement planning",
			Buckets: prometheus.DefBuckets,
		}),
		ConsistencyFaults: factory.NewCounter(prometheus.CounterOpts{
			Name: "gosplit_consistency_faults_total",
			Help: "Total number of events whose balances did not sum to zero",
		}),

		OutboxPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "gosplit_outbox_published_total",
			Help: "Total number of outbox events published",
		}),
		OutboxErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "gosplit_outbox_errors_total",
			Help: "Total number of outbox publish failures",
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosplit_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gosplit_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gosplit_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosplit_cache_lookups_total",
				Help: "User name cache lookups by result",
			},
			[]string{"result"},
		),

		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosplit_rate_limit_hits_total",
				Help: "Requests rejected by the rate limiter",
			},
			[]string{"path"},
		),
	}
}
