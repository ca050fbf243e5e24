package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is the net position of one account for a period.
type TrialBalanceRow struct {
	AccountID         string
	AccountCode       string
	AccountName       string
	AccountType       AccountType
	Currency          string
	TotalDebit        decimal.Decimal
	TotalCredit       decimal.Decimal
	TotalDebitBase    decimal.Decimal
	TotalCreditBase   decimal.Decimal
	DebitBalance      decimal.Decimal
	CreditBalance     decimal.Decimal
	DebitBalanceBase  decimal.Decimal
	CreditBalanceBase decimal.Decimal
}

// Net collapses gross totals into a single-sided balance in both currencies.
func (r *TrialBalanceRow) Net() {
	r.DebitBalance, r.CreditBalance = netSides(r.TotalDebit, r.TotalCredit)
	r.DebitBalanceBase, r.CreditBalanceBase = netSides(r.TotalDebitBase, r.TotalCreditBase)
}

func netSides(debit, credit decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if debit.GreaterThan(credit) {
		return debit.Sub(credit), decimal.Zero
	}
	return decimal.Zero, credit.Sub(debit)
}

// TrialBalance is the report for one period.
type TrialBalance struct {
	Period                 *Period
	Rows                   []TrialBalanceRow
	TotalDebitBalance      decimal.Decimal
	TotalCreditBalance     decimal.Decimal
	TotalDebitBalanceBase  decimal.Decimal
	TotalCreditBalanceBase decimal.Decimal
	Balanced               bool
}

// GeneralLedgerRow is one posted line with its account running balance.
type GeneralLedgerRow struct {
	JournalID          string
	Reference          string
	JournalDate        time.Time
	LineNumber         int
	AccountID          string
	AccountCode        string
	AccountName        string
	Description        string
	DebitAmount        decimal.Decimal
	CreditAmount       decimal.Decimal
	DebitAmountBase    decimal.Decimal
	CreditAmountBase   decimal.Decimal
	RunningBalance     decimal.Decimal
	RunningBalanceBase decimal.Decimal
}

// GeneralLedgerFilter narrows the general ledger. Nil fields are unbounded.
type GeneralLedgerFilter struct {
	AccountID *string
	FromDate  *time.Time
	ToDate    *time.Time
}

// LedgerTotals are ledger-wide sums over posted lines.
type LedgerTotals struct {
	Debit      decimal.Decimal
	Credit     decimal.Decimal
	DebitBase  decimal.Decimal
	CreditBase decimal.Decimal
}
