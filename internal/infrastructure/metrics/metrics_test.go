package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/fxledger/internal/usecase"
)

var _ usecase.LedgerMetrics = (*Metrics)(nil)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegisterer(registry)

	if m.JournalsPosted == nil || m.HTTPRequests == nil || m.EventsPublished == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.RecordJournalPosted()
	m.HTTPRequests.WithLabelValues("GET", "/health", "200").Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestLedgerCounters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.RecordJournalPosted()
	m.RecordJournalPosted()
	m.RecordPostingRejected("unbalanced")
	m.RecordPostingRejected("locked_period")
	m.RecordPostingRejected("unbalanced")
	m.RecordTrialBalanceImbalance()
	m.RecordEventPublished("journal.posted")
	m.RecordEventError("journal.posted")

	if got := testutil.ToFloat64(m.JournalsPosted); got != 2 {
		t.Fatalf("expected 2 posted journals, got %v", got)
	}
	if got := testutil.ToFloat64(m.PostingRejections.WithLabelValues("unbalanced")); got != 2 {
		t.Fatalf("expected 2 unbalanced rejections, got %v", got)
	}
	if got := testutil.ToFloat64(m.TrialBalanceImbalances); got != 1 {
		t.Fatalf("expected 1 imbalance, got %v", got)
	}
	if got := testutil.ToFloat64(m.EventErrors.WithLabelValues("journal.posted")); got != 1 {
		t.Fatalf("expected 1 event error, got %v", got)
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewWithRegisterer(registry)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected duplicate registration to panic")
		}
	}()
	NewWithRegisterer(registry)
}
