package postgres

import (
	"context"

	"github.com/iho/fxledger/internal/domain"
)

// ReportRepository implements usecase.ReportRepository over posted lines.
type ReportRepository struct {
	db DB
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// TrialBalanceRows sums posted activity per active account for a period.
func (r *ReportRepository) TrialBalanceRows(ctx context.Context, periodID string) ([]domain.TrialBalanceRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.code, a.name, a.account_type, a.currency,
		       COALESCE(SUM(l.debit_amount), 0),
		       COALESCE(SUM(l.credit_amount), 0),
		       COALESCE(SUM(l.debit_amount_base), 0),
		       COALESCE(SUM(l.credit_amount_base), 0)
		FROM journal_lines l
		JOIN journals j ON j.id = l.journal_id
		JOIN accounts a ON a.id = l.account_id
		WHERE j.period_id = $1 AND j.status = $2 AND a.is_active
		GROUP BY a.id, a.code, a.name, a.account_type, a.currency
		ORDER BY a.code`,
		periodID, string(domain.JournalStatusPosted))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.TrialBalanceRow, 0)
	for rows.Next() {
		var (
			row         domain.TrialBalanceRow
			accountType string
		)
		err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.Currency,
			&row.TotalDebit,
			&row.TotalCredit,
			&row.TotalDebitBase,
			&row.TotalCreditBase,
		)
		if err != nil {
			return nil, err
		}
		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	return result, rows.Err()
}

// GeneralLedgerRows lists posted lines matching filter.
func (r *ReportRepository) GeneralLedgerRows(ctx context.Context, filter domain.GeneralLedgerFilter) ([]domain.GeneralLedgerRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT j.id, j.reference, j.journal_date, l.line_number,
		       a.id, a.code, a.name, l.description,
		       l.debit_amount, l.credit_amount, l.debit_amount_base, l.credit_amount_base
		FROM journal_lines l
		JOIN journals j ON j.id = l.journal_id
		JOIN accounts a ON a.id = l.account_id
		WHERE j.status = $1
		  AND ($2::text IS NULL OR l.account_id = $2)
		  AND ($3::date IS NULL OR j.journal_date >= $3)
		  AND ($4::date IS NULL OR j.journal_date <= $4)
		ORDER BY a.code, a.id, j.journal_date, l.line_number, j.id`,
		string(domain.JournalStatusPosted), filter.AccountID, filter.FromDate, filter.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.GeneralLedgerRow, 0)
	for rows.Next() {
		var row domain.GeneralLedgerRow
		err := rows.Scan(
			&row.JournalID,
			&row.Reference,
			&row.JournalDate,
			&row.LineNumber,
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.Description,
			&row.DebitAmount,
			&row.CreditAmount,
			&row.DebitAmountBase,
			&row.CreditAmountBase,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// PostedTotals sums every posted line in both currencies.
func (r *ReportRepository) PostedTotals(ctx context.Context) (domain.LedgerTotals, error) {
	var totals domain.LedgerTotals

	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(l.debit_amount), 0),
		       COALESCE(SUM(l.credit_amount), 0),
		       COALESCE(SUM(l.debit_amount_base), 0),
		       COALESCE(SUM(l.credit_amount_base), 0)
		FROM journal_lines l
		JOIN journals j ON j.id = l.journal_id
		WHERE j.status = $1`,
		string(domain.JournalStatusPosted)).Scan(
		&totals.Debit,
		&totals.Credit,
		&totals.DebitBase,
		&totals.CreditBase,
	)

	return totals, err
}
