package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics and implements usecase.LedgerMetrics.
type Metrics struct {
	// Ledger metrics
	JournalsPosted         prometheus.Counter
	PostingRejections      *prometheus.CounterVec
	TrialBalanceImbalances prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Outbox metrics
	EventsPublished *prometheus.CounterVec
	EventErrors     *prometheus.CounterVec
}

// New creates metrics registered on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates metrics registered on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		JournalsPosted: factory.NewCounter(prometheus.CounterOpts{
			Name: "fxledger_journals_posted_total",
			Help: "Total number of journals posted",
		}),
		PostingRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxledger_posting_rejections_total",
				Help: "Total number of rejected posting attempts by reason",
			},
			[]string{"reason"},
		),
		TrialBalanceImbalances: factory.NewCounter(prometheus.CounterOpts{
			Name: "fxledger_trial_balance_imbalances_total",
			Help: "Total number of trial balances whose base totals differed",
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"path"},
		),

		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxledger_outbox_events_published_total",
				Help: "Total outbox events published",
			},
			[]string{"event_type"},
		),
		EventErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxledger_outbox_event_errors_total",
				Help: "Total outbox events that failed to publish",
			},
			[]string{"event_type"},
		),
	}
}

// RecordJournalPosted counts a successful post.
func (m *Metrics) RecordJournalPosted() {
	m.JournalsPosted.Inc()
}

// RecordPostingRejected counts a rejected post by reason.
func (m *Metrics) RecordPostingRejected(reason string) {
	m.PostingRejections.WithLabelValues(reason).Inc()
}

// RecordTrialBalanceImbalance counts a trial balance that failed to balance.
func (m *Metrics) RecordTrialBalanceImbalance() {
	m.TrialBalanceImbalances.Inc()
}

// RecordEventPublished counts a published outbox event.
func (m *Metrics) RecordEventPublished(eventType string) {
	m.EventsPublished.WithLabelValues(eventType).Inc()
}

// RecordEventError counts an outbox event that failed to publish.
func (m *Metrics) RecordEventError(eventType string) {
	m.EventErrors.WithLabelValues(eventType).Inc()
}
