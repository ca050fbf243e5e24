package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

const journalLineColumns = `id, journal_id, account_id, description,
	debit_amount, credit_amount, debit_amount_base, credit_amount_base, line_number, created_at`

// JournalLineRepository implements usecase.JournalLineRepository.
type JournalLineRepository struct {
	db DB
}

// NewJournalLineRepository creates a new JournalLineRepository.
func NewJournalLineRepository(db DB) *JournalLineRepository {
	return &JournalLineRepository{db: db}
}

// Create inserts a new line.
func (r *JournalLineRepository) Create(ctx context.Context, tx usecase.Transaction, line *domain.JournalLine) error {
	_, err := conn(r.db, tx).Exec(ctx, `
		INSERT INTO journal_lines (`+journalLineColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		line.ID,
		line.JournalID,
		line.AccountID,
		line.Description,
		line.DebitAmount,
		line.CreditAmount,
		line.DebitAmountBase,
		line.CreditAmountBase,
		line.LineNumber,
		line.CreatedAt,
	)
	if err != nil {
		mapped := mapUniqueViolation(err, map[string]error{
			"journal_lines_journal_line_key": domain.ErrDuplicateLineNumber,
		})
		if mapped != err {
			return &domain.LineError{LineNumber: line.LineNumber, Err: mapped}
		}
		return err
	}

	return nil
}

// LineNumberExists reports whether the journal already has lineNumber.
func (r *JournalLineRepository) LineNumberExists(ctx context.Context, tx usecase.Transaction, journalID string, lineNumber int) (bool, error) {
	return exists(ctx, conn(r.db, tx),
		`SELECT EXISTS (SELECT 1 FROM journal_lines WHERE journal_id = $1 AND line_number = $2)`,
		journalID, lineNumber)
}

// ListByJournal lists a journal's lines by line number.
func (r *JournalLineRepository) ListByJournal(ctx context.Context, journalID string) ([]*domain.JournalLine, error) {
	return r.list(ctx, r.db, journalID)
}

// ListByJournalTx lists a journal's lines by line number inside tx.
func (r *JournalLineRepository) ListByJournalTx(ctx context.Context, tx usecase.Transaction, journalID string) ([]*domain.JournalLine, error) {
	return r.list(ctx, conn(r.db, tx), journalID)
}

func (r *JournalLineRepository) list(ctx context.Context, q querier, journalID string) ([]*domain.JournalLine, error) {
	rows, err := q.Query(ctx,
		`SELECT `+journalLineColumns+` FROM journal_lines WHERE journal_id = $1 ORDER BY line_number`,
		journalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]*domain.JournalLine, 0)
	for rows.Next() {
		line, err := scanJournalLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func scanJournalLine(row pgx.Row) (*domain.JournalLine, error) {
	var l domain.JournalLine

	err := row.Scan(
		&l.ID,
		&l.JournalID,
		&l.AccountID,
		&l.Description,
		&l.DebitAmount,
		&l.CreditAmount,
		&l.DebitAmountBase,
		&l.CreditAmountBase,
		&l.LineNumber,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &l, nil
}
