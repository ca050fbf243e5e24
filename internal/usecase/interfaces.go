package usecase

//go:generate mockgen -destination=gomocks/mock_interfaces.go -package=gomocks github.com/iho/fxledger/internal/usecase AuditLogger,Cache,LedgerMetrics,ReportRepository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDTx(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByCode(ctx context.Context, code string) (*domain.Account, error)
	UpdateParent(ctx context.Context, tx Transaction, id string, parentID *string, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// PeriodRepository defines data access for accounting periods.
type PeriodRepository interface {
	Create(ctx context.Context, tx Transaction, period *domain.Period) error
	GetByID(ctx context.Context, id string) (*domain.Period, error)
	// GetByIDForUpdate locks the period row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Period, error)
	// GetByIDForShare blocks a concurrent close without blocking other writers.
	GetByIDForShare(ctx context.Context, tx Transaction, id string) (*domain.Period, error)
	ExistsForMonth(ctx context.Context, tx Transaction, year, month int) (bool, error)
	// GetLatest returns nil, nil when no period exists. tx may be nil.
	GetLatest(ctx context.Context, tx Transaction) (*domain.Period, error)
	// FindForDateForShare returns the period containing date, locked for share,
	// or nil, nil when no period contains it.
	FindForDateForShare(ctx context.Context, tx Transaction, date time.Time) (*domain.Period, error)
	Lock(ctx context.Context, tx Transaction, id, actor string, lockedAt time.Time) error
	SetFxRateLocked(ctx context.Context, tx Transaction, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Period, error)
}

// FxRateRepository defines data access for fx rates.
type FxRateRepository interface {
	Create(ctx context.Context, tx Transaction, rate *domain.FxRate) error
	GetByID(ctx context.Context, id string) (*domain.FxRate, error)
	GetByIDTx(ctx context.Context, tx Transaction, id string) (*domain.FxRate, error)
	Exists(ctx context.Context, tx Transaction, from, to string, effectiveDate time.Time) (bool, error)
	// GetLatest returns nil, nil when no rate is effective at asOf.
	GetLatest(ctx context.Context, from, to string, asOf time.Time) (*domain.FxRate, error)
	CountUnlockedInRange(ctx context.Context, tx Transaction, from, to time.Time) (int64, error)
	LockInRange(ctx context.Context, tx Transaction, from, to time.Time) (int64, error)
	List(ctx context.Context, from, to string, limit, offset int) ([]*domain.FxRate, error)
}

// JournalRepository defines data access for journals.
type JournalRepository interface {
	Create(ctx context.Context, tx Transaction, journal *domain.Journal) error
	GetByID(ctx context.Context, id string) (*domain.Journal, error)
	// GetByIDForUpdate locks the journal row; it is the posting serialization point.
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Journal, error)
	ReferenceExists(ctx context.Context, tx Transaction, periodID, reference string) (bool, error)
	CountDraftsInPeriod(ctx context.Context, tx Transaction, periodID string) (int64, error)
	MarkPosted(ctx context.Context, tx Transaction, id string, totalDebit, totalCredit decimal.Decimal, postedBy string, postedAt time.Time) error
	List(ctx context.Context, filter JournalFilter) ([]*domain.Journal, error)
}

// JournalFilter narrows journal listings.
type JournalFilter struct {
	PeriodID string
	Status   domain.JournalStatus
	Limit    int
	Offset   int
}

// JournalLineRepository defines data access for journal lines.
type JournalLineRepository interface {
	Create(ctx context.Context, tx Transaction, line *domain.JournalLine) error
	LineNumberExists(ctx context.Context, tx Transaction, journalID string, lineNumber int) (bool, error)
	ListByJournal(ctx context.Context, journalID string) ([]*domain.JournalLine, error)
	ListByJournalTx(ctx context.Context, tx Transaction, journalID string) ([]*domain.JournalLine, error)
}

// CapitalMovementRepository defines data access for capital movements.
type CapitalMovementRepository interface {
	Create(ctx context.Context, tx Transaction, movement *domain.CapitalMovement) error
	ListByPartner(ctx context.Context, partnerID string, limit, offset int) ([]*domain.CapitalMovement, error)
}

// ReportRepository reads posted data for reports. Reads run outside any
// write transaction at read-committed isolation.
type ReportRepository interface {
	TrialBalanceRows(ctx context.Context, periodID string) ([]domain.TrialBalanceRow, error)
	GeneralLedgerRows(ctx context.Context, filter domain.GeneralLedgerFilter) ([]domain.GeneralLedgerRow, error)
	PostedTotals(ctx context.Context) (domain.LedgerTotals, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// AuditLogger records mutations. Failures never roll back the mutation.
type AuditLogger interface {
	Record(ctx context.Context, log *domain.AuditLog) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyInFlight is the value a claimed key holds until Update stores
// the response.
const IdempotencyInFlight = "processing"

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claim so the key can be reused.
	Release(ctx context.Context, key string) error
}

// Retrier re-runs an operation on transient store failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// LedgerMetrics records ledger engine outcomes.
type LedgerMetrics interface {
	RecordJournalPosted()
	RecordPostingRejected(reason string)
	RecordTrialBalanceImbalance()
}
