package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

const journalColumns = `id, reference, description, journal_date, period_id, status,
	total_debit, total_credit, fx_rate_id, created_by, posted_by, posted_at, created_at`

// JournalRepository implements usecase.JournalRepository.
type JournalRepository struct {
	db DB
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(db DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Create inserts a new journal.
func (r *JournalRepository) Create(ctx context.Context, tx usecase.Transaction, journal *domain.Journal) error {
	_, err := conn(r.db, tx).Exec(ctx, `
		INSERT INTO journals (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		journal.ID,
		journal.Reference,
		journal.Description,
		journal.JournalDate,
		journal.PeriodID,
		string(journal.Status),
		journal.TotalDebit,
		journal.TotalCredit,
		journal.FxRateID,
		journal.CreatedBy,
		journal.PostedBy,
		journal.PostedAt,
		journal.CreatedAt,
	)

	return mapUniqueViolation(err, map[string]error{
		"journals_period_reference_key": domain.ErrDuplicateReference,
	})
}

// GetByID retrieves a journal by ID without its lines.
func (r *JournalRepository) GetByID(ctx context.Context, id string) (*domain.Journal, error) {
	return r.get(ctx, r.db, `SELECT `+journalColumns+` FROM journals WHERE id = $1`, id)
}

// GetByIDForUpdate retrieves a journal with a FOR UPDATE lock.
func (r *JournalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Journal, error) {
	return r.get(ctx, conn(r.db, tx), `SELECT `+journalColumns+` FROM journals WHERE id = $1 FOR UPDATE`, id)
}

func (r *JournalRepository) get(ctx context.Context, q querier, sql, id string) (*domain.Journal, error) {
	journal, err := scanJournal(q.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFound(domain.ResourceJournal, id)
		}
		return nil, err
	}

	return journal, nil
}

// ReferenceExists reports whether reference is already used in the period.
func (r *JournalRepository) ReferenceExists(ctx context.Context, tx usecase.Transaction, periodID, reference string) (bool, error) {
	return exists(ctx, conn(r.db, tx),
		`SELECT EXISTS (SELECT 1 FROM journals WHERE period_id = $1 AND reference = $2)`,
		periodID, reference)
}

// CountDraftsInPeriod counts Draft journals in the period.
func (r *JournalRepository) CountDraftsInPeriod(ctx context.Context, tx usecase.Transaction, periodID string) (int64, error) {
	return count(ctx, conn(r.db, tx),
		`SELECT COUNT(*) FROM journals WHERE period_id = $1 AND status = $2`,
		periodID, string(domain.JournalStatusDraft))
}

// MarkPosted moves a Draft journal to Posted with its totals.
func (r *JournalRepository) MarkPosted(
	ctx context.Context,
	tx usecase.Transaction,
	id string,
	totalDebit, totalCredit decimal.Decimal,
	postedBy string,
	postedAt time.Time,
) error {
	tag, err := conn(r.db, tx).Exec(ctx, `
		UPDATE journals
		SET status = $2, total_debit = $3, total_credit = $4, posted_by = $5, posted_at = $6
		WHERE id = $1 AND status = $7`,
		id,
		string(domain.JournalStatusPosted),
		totalDebit,
		totalCredit,
		postedBy,
		postedAt,
		string(domain.JournalStatusDraft),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyPosted
	}

	return nil
}

// List lists journals matching filter, newest first.
func (r *JournalRepository) List(ctx context.Context, filter usecase.JournalFilter) ([]*domain.Journal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+journalColumns+` FROM journals
		WHERE ($1::text = '' OR period_id = $1) AND ($2::text = '' OR status = $2)
		ORDER BY journal_date DESC, reference
		LIMIT $3 OFFSET $4`,
		filter.PeriodID, string(filter.Status), filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	journals := make([]*domain.Journal, 0)
	for rows.Next() {
		journal, err := scanJournal(rows)
		if err != nil {
			return nil, err
		}
		journals = append(journals, journal)
	}

	return journals, rows.Err()
}

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var (
		j      domain.Journal
		status string
	)

	err := row.Scan(
		&j.ID,
		&j.Reference,
		&j.Description,
		&j.JournalDate,
		&j.PeriodID,
		&status,
		&j.TotalDebit,
		&j.TotalCredit,
		&j.FxRateID,
		&j.CreatedBy,
		&j.PostedBy,
		&j.PostedAt,
		&j.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	j.Status = domain.JournalStatus(status)

	return &j, nil
}
