package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus is the lifecycle state of a journal.
type JournalStatus string

const (
	JournalStatusDraft  JournalStatus = "Draft"
	JournalStatusPosted JournalStatus = "Posted"
)

// Journal is a set of lines recorded as one accounting event.
// Totals are cached at posting time only.
type Journal struct {
	ID          string
	Reference   string
	Description string
	JournalDate time.Time
	PeriodID    string
	Status      JournalStatus
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	FxRateID    *string
	CreatedBy   string
	PostedBy    *string
	PostedAt    *time.Time
	CreatedAt   time.Time
	Lines       []*JournalLine
}

// IsPosted reports whether the journal has been posted.
func (j *Journal) IsPosted() bool {
	return j.Status == JournalStatusPosted
}

// JournalLine is one debit or credit against an account.
type JournalLine struct {
	ID               string
	JournalID        string
	AccountID        string
	Description      string
	DebitAmount      decimal.Decimal
	CreditAmount     decimal.Decimal
	DebitAmountBase  decimal.Decimal
	CreditAmountBase decimal.Decimal
	LineNumber       int
	CreatedAt        time.Time
}

// ValidateLineAmounts enforces that exactly one side is positive and the
// other is exactly zero.
func ValidateLineAmounts(debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return ErrInvalidLineAmounts
	}
	if debit.IsPositive() == credit.IsPositive() {
		return ErrInvalidLineAmounts
	}
	return nil
}

// IsDebit reports whether the line is on the debit side.
func (l *JournalLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}

// PostingTotals holds the sums computed while validating a journal for posting.
type PostingTotals struct {
	Debit      decimal.Decimal
	Credit     decimal.Decimal
	DebitBase  decimal.Decimal
	CreditBase decimal.Decimal
}

// ValidateForPosting re-checks every line and both balance equations.
// Lines are checked in line-number order so the reported line is stable.
func ValidateForPosting(lines []*JournalLine) (PostingTotals, error) {
	totals := PostingTotals{
		Debit:      decimal.Zero,
		Credit:     decimal.Zero,
		DebitBase:  decimal.Zero,
		CreditBase: decimal.Zero,
	}

	if len(lines) == 0 {
		return totals, ErrMissingLines
	}

	ordered := make([]*JournalLine, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].LineNumber < ordered[j].LineNumber
	})

	for _, l := range ordered {
		if err := ValidateLineAmounts(l.DebitAmount, l.CreditAmount); err != nil {
			return totals, &LineError{LineNumber: l.LineNumber, Err: ErrUnbalancedLine}
		}

		base := l.CreditAmountBase
		if l.IsDebit() {
			base = l.DebitAmountBase
		}
		if base.IsZero() {
			return totals, &LineError{LineNumber: l.LineNumber, Err: ErrMissingBaseAmount}
		}

		totals.Debit = totals.Debit.Add(l.DebitAmount)
		totals.Credit = totals.Credit.Add(l.CreditAmount)
		totals.DebitBase = totals.DebitBase.Add(l.DebitAmountBase)
		totals.CreditBase = totals.CreditBase.Add(l.CreditAmountBase)
	}

	if !totals.Debit.Equal(totals.Credit) {
		return totals, &UnbalancedError{TotalDebit: totals.Debit, TotalCredit: totals.Credit, Err: ErrUnbalanced}
	}

	if !totals.DebitBase.Equal(totals.CreditBase) {
		return totals, &UnbalancedError{TotalDebit: totals.DebitBase, TotalCredit: totals.CreditBase, Err: ErrUnbalancedBase}
	}

	return totals, nil
}
