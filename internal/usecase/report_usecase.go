package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
)

// ReportUseCase derives reports from posted journal lines.
type ReportUseCase struct {
	reportRepo ReportRepository
	periodRepo PeriodRepository
	metrics    LedgerMetrics
	logger     zerolog.Logger
}

// NewReportUseCase creates a new ReportUseCase. metrics may be nil.
func NewReportUseCase(
	reportRepo ReportRepository,
	periodRepo PeriodRepository,
	metrics LedgerMetrics,
	logger zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo: reportRepo,
		periodRepo: periodRepo,
		metrics:    metrics,
		logger:     logger,
	}
}

// TrialBalance nets posted activity per active account for a period. An
// empty periodID means the chronologically latest period; with no periods
// at all the report is empty.
func (uc *ReportUseCase) TrialBalance(ctx context.Context, periodID string) (*domain.TrialBalance, error) {
	report := &domain.TrialBalance{
		Rows:                   []domain.TrialBalanceRow{},
		TotalDebitBalance:      decimal.Zero,
		TotalCreditBalance:     decimal.Zero,
		TotalDebitBalanceBase:  decimal.Zero,
		TotalCreditBalanceBase: decimal.Zero,
		Balanced:               true,
	}

	var (
		period *domain.Period
		err    error
	)
	if periodID == "" {
		period, err = uc.periodRepo.GetLatest(ctx, nil)
	} else {
		period, err = uc.periodRepo.GetByID(ctx, periodID)
	}
	if err != nil {
		return nil, err
	}
	if period == nil {
		return report, nil
	}
	report.Period = period

	rows, err := uc.reportRepo.TrialBalanceRows(ctx, period.ID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AccountCode < rows[j].AccountCode
	})

	for i := range rows {
		rows[i].Net()
		report.TotalDebitBalance = report.TotalDebitBalance.Add(rows[i].DebitBalance)
		report.TotalCreditBalance = report.TotalCreditBalance.Add(rows[i].CreditBalance)
		report.TotalDebitBalanceBase = report.TotalDebitBalanceBase.Add(rows[i].DebitBalanceBase)
		report.TotalCreditBalanceBase = report.TotalCreditBalanceBase.Add(rows[i].CreditBalanceBase)
	}
	if rows != nil {
		report.Rows = rows
	}

	// Only base totals are comparable across accounts in different currencies.
	report.Balanced = report.TotalDebitBalanceBase.Equal(report.TotalCreditBalanceBase)
	if !report.Balanced {
		uc.logger.Error().
			Str("period_id", period.ID).
			Str("period", period.Label()).
			Str("debit_base", report.TotalDebitBalanceBase.String()).
			Str("credit_base", report.TotalCreditBalanceBase.String()).
			Msg("trial balance does not balance in base currency")
		if uc.metrics != nil {
			uc.metrics.RecordTrialBalanceImbalance()
		}
	}

	return report, nil
}

// GeneralLedger lists posted lines ordered by account, date and line number
// with a running balance per account. The running balance starts at zero at
// the first selected row; no opening balance is carried in when a date
// filter cuts off earlier history.
func (uc *ReportUseCase) GeneralLedger(ctx context.Context, filter domain.GeneralLedgerFilter) ([]domain.GeneralLedgerRow, error) {
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, fmt.Errorf("%w: from %s is after to %s", domain.ErrInvalidDateRange,
			filter.FromDate.Format("2006-01-02"), filter.ToDate.Format("2006-01-02"))
	}

	rows, err := uc.reportRepo.GeneralLedgerRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.GeneralLedgerRow{}, nil
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.AccountCode != b.AccountCode {
			return a.AccountCode < b.AccountCode
		}
		if a.AccountID != b.AccountID {
			return a.AccountID < b.AccountID
		}
		if !a.JournalDate.Equal(b.JournalDate) {
			return a.JournalDate.Before(b.JournalDate)
		}
		if a.LineNumber != b.LineNumber {
			return a.LineNumber < b.LineNumber
		}
		return a.JournalID < b.JournalID
	})

	var (
		account     string
		running     decimal.Decimal
		runningBase decimal.Decimal
	)
	for i := range rows {
		if rows[i].AccountID != account {
			account = rows[i].AccountID
			running = decimal.Zero
			runningBase = decimal.Zero
		}
		running = running.Add(rows[i].DebitAmount).Sub(rows[i].CreditAmount)
		runningBase = runningBase.Add(rows[i].DebitAmountBase).Sub(rows[i].CreditAmountBase)
		rows[i].RunningBalance = running
		rows[i].RunningBalanceBase = runningBase
	}

	return rows, nil
}

// CheckConsistency verifies that posted lines balance ledger-wide in both
// transaction and base currency.
func (uc *ReportUseCase) CheckConsistency(ctx context.Context) (domain.LedgerTotals, error) {
	totals, err := uc.reportRepo.PostedTotals(ctx)
	if err != nil {
		return totals, err
	}

	if !totals.Debit.Equal(totals.Credit) {
		return totals, &domain.UnbalancedError{TotalDebit: totals.Debit, TotalCredit: totals.Credit, Err: domain.ErrUnbalanced}
	}

	if !totals.DebitBase.Equal(totals.CreditBase) {
		return totals, &domain.UnbalancedError{TotalDebit: totals.DebitBase, TotalCredit: totals.CreditBase, Err: domain.ErrUnbalancedBase}
	}

	return totals, nil
}
