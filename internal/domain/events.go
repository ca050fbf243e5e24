package domain

import "time"

// Event types
const (
	EventTypePeriodCreated  = "period.created"
	EventTypePeriodClosed   = "period.closed"
	EventTypeFxRateCreated  = "fx_rate.created"
	EventTypeRatesLocked    = "fx_rate.locked"
	EventTypeJournalCreated = "journal.created"
	EventTypeJournalPosted  = "journal.posted"
)

// Aggregate types
const (
	AggregateTypePeriod  = "period"
	AggregateTypeFxRate  = "fx_rate"
	AggregateTypeJournal = "journal"
)

// OutboxEvent is written in the same transaction as the change it describes
// and published afterwards.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// JournalPostedEvent payload
type JournalPostedEvent struct {
	JournalID   string `json:"journal_id"`
	Reference   string `json:"reference"`
	PeriodID    string `json:"period_id"`
	TotalDebit  string `json:"total_debit"`
	TotalCredit string `json:"total_credit"`
	PostedBy    string `json:"posted_by"`
	PostedAt    string `json:"posted_at"`
}

// PeriodClosedEvent payload
type PeriodClosedEvent struct {
	PeriodID    string `json:"period_id"`
	Period      string `json:"period"`
	LockedBy    string `json:"locked_by"`
	RatesLocked int64  `json:"rates_locked"`
}

// PeriodCreatedEvent payload
type PeriodCreatedEvent struct {
	PeriodID string `json:"period_id"`
	Period   string `json:"period"`
	Status   string `json:"status"`
}

// FxRateCreatedEvent payload
type FxRateCreatedEvent struct {
	FxRateID      string `json:"fx_rate_id"`
	FromCurrency  string `json:"from_currency"`
	ToCurrency    string `json:"to_currency"`
	Rate          string `json:"rate"`
	EffectiveDate string `json:"effective_date"`
	IsLocked      bool   `json:"is_locked"`
}

// RatesLockedEvent payload
type RatesLockedEvent struct {
	PeriodID    string `json:"period_id"`
	Period      string `json:"period"`
	RatesLocked int64  `json:"rates_locked"`
}

// JournalCreatedEvent payload
type JournalCreatedEvent struct {
	JournalID string `json:"journal_id"`
	Reference string `json:"reference"`
	PeriodID  string `json:"period_id"`
}
