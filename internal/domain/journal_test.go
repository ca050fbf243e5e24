package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func line(n int, debit, credit, debitBase, creditBase string) *JournalLine {
	return &JournalLine{
		LineNumber:       n,
		DebitAmount:      decimal.RequireFromString(debit),
		CreditAmount:     decimal.RequireFromString(credit),
		DebitAmountBase:  decimal.RequireFromString(debitBase),
		CreditAmountBase: decimal.RequireFromString(creditBase),
	}
}

func TestValidateLineAmounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		debit  string
		credit string
		ok     bool
	}{
		{"debit only", "10", "0", true},
		{"credit only", "0", "0.01", true},
		{"both zero", "0", "0", false},
		{"both positive", "1", "1", false},
		{"negative debit", "-1", "0", false},
		{"negative credit with debit", "5", "-5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLineAmounts(decimal.RequireFromString(tt.debit), decimal.RequireFromString(tt.credit))
			if tt.ok && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidLineAmounts) {
				t.Fatalf("expected ErrInvalidLineAmounts, got %v", err)
			}
		})
	}
}

func TestValidateForPosting(t *testing.T) {
	t.Parallel()

	t.Run("balanced in both currencies", func(t *testing.T) {
		totals, err := ValidateForPosting([]*JournalLine{
			line(1, "1000", "0", "280000", "0"),
			line(2, "0", "1000", "0", "280000"),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !totals.Debit.Equal(decimal.NewFromInt(1000)) || !totals.CreditBase.Equal(decimal.NewFromInt(280000)) {
			t.Fatalf("unexpected totals %+v", totals)
		}
	})

	t.Run("no lines", func(t *testing.T) {
		_, err := ValidateForPosting(nil)
		if !errors.Is(err, ErrMissingLines) {
			t.Fatalf("expected ErrMissingLines, got %v", err)
		}
	})

	t.Run("unbalanced base", func(t *testing.T) {
		_, err := ValidateForPosting([]*JournalLine{
			line(1, "1000", "0", "280000", "0"),
			line(2, "0", "1000", "0", "279000"),
		})
		var unbalanced *UnbalancedError
		if !errors.As(err, &unbalanced) || !errors.Is(err, ErrUnbalancedBase) {
			t.Fatalf("expected ErrUnbalancedBase, got %v", err)
		}
		if !unbalanced.TotalDebit.Equal(decimal.NewFromInt(280000)) || !unbalanced.TotalCredit.Equal(decimal.NewFromInt(279000)) {
			t.Fatalf("unexpected totals %s/%s", unbalanced.TotalDebit, unbalanced.TotalCredit)
		}
	})

	t.Run("unbalanced transaction currency wins over base", func(t *testing.T) {
		_, err := ValidateForPosting([]*JournalLine{
			line(1, "10", "0", "10", "0"),
			line(2, "0", "9", "0", "11"),
		})
		if !errors.Is(err, ErrUnbalanced) {
			t.Fatalf("expected ErrUnbalanced, got %v", err)
		}
	})

	t.Run("lowest bad line reported", func(t *testing.T) {
		_, err := ValidateForPosting([]*JournalLine{
			line(7, "1", "1", "1", "1"),
			line(3, "0", "0", "0", "0"),
			line(1, "5", "0", "5", "0"),
		})
		var lineErr *LineError
		if !errors.As(err, &lineErr) || lineErr.LineNumber != 3 || !errors.Is(err, ErrUnbalancedLine) {
			t.Fatalf("expected line 3 ErrUnbalancedLine, got %v", err)
		}
	})

	t.Run("missing base amount", func(t *testing.T) {
		_, err := ValidateForPosting([]*JournalLine{
			line(1, "5", "0", "5", "0"),
			line(2, "0", "5", "0", "0"),
		})
		var lineErr *LineError
		if !errors.As(err, &lineErr) || lineErr.LineNumber != 2 || !errors.Is(err, ErrMissingBaseAmount) {
			t.Fatalf("expected line 2 ErrMissingBaseAmount, got %v", err)
		}
	})

	t.Run("input order untouched", func(t *testing.T) {
		lines := []*JournalLine{
			line(2, "0", "1", "0", "1"),
			line(1, "1", "0", "1", "0"),
		}
		if _, err := ValidateForPosting(lines); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if lines[0].LineNumber != 2 {
			t.Fatalf("input slice was reordered")
		}
	})
}

func FuzzValidateForPosting(f *testing.F) {
	f.Add(int64(1000), int64(1000), int64(2800000))
	f.Add(int64(10001), int64(10001), int64(2784567))
	f.Add(int64(1), int64(2), int64(1))
	f.Add(int64(0), int64(5), int64(3))

	f.Fuzz(func(t *testing.T, debit, credit, rate int64) {
		if debit < 0 || credit < 0 || rate <= 0 {
			t.Skip()
		}
		// Amounts carry two decimals and the rate four, as a real journal would.
		r := decimal.New(rate, -4)
		d := decimal.New(debit, -2)
		lines := []*JournalLine{
			{LineNumber: 1, DebitAmount: d, CreditAmount: decimal.Zero, DebitAmountBase: d.Mul(r), CreditAmountBase: decimal.Zero},
		}
		// Split the credit side so base amounts are summed from several products.
		parts := []int64{credit}
		if credit >= 2 {
			parts = []int64{credit / 2, credit - credit/2}
		}
		for i, part := range parts {
			c := decimal.New(part, -2)
			lines = append(lines, &JournalLine{
				LineNumber: i + 2, DebitAmount: decimal.Zero, CreditAmount: c, DebitAmountBase: decimal.Zero, CreditAmountBase: c.Mul(r),
			})
		}

		totals, err := ValidateForPosting(lines)
		switch {
		case debit == 0 || credit == 0:
			if !errors.Is(err, ErrUnbalancedLine) {
				t.Fatalf("zero side: expected ErrUnbalancedLine, got %v", err)
			}
		case debit != credit:
			if !errors.Is(err, ErrUnbalanced) {
				t.Fatalf("expected ErrUnbalanced, got %v", err)
			}
		default:
			if err != nil {
				t.Fatalf("expected balanced journal, got %v", err)
			}
			if !totals.DebitBase.Equal(totals.CreditBase) {
				t.Fatalf("base totals differ: %s vs %s", totals.DebitBase, totals.CreditBase)
			}
		}
	})
}

func TestErrorClasses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err   error
		class error
	}{
		{ErrInvalidLineAmounts, ErrValidation},
		{ErrJournalDateOutsidePeriod, ErrValidation},
		{ErrAlreadyPosted, ErrStateConflict},
		{ErrLockedPeriod, ErrStateConflict},
		{ErrDuplicateReference, ErrIntegrityViolation},
		{ErrNonSequentialPeriod, ErrIntegrityViolation},
		{ErrUnbalancedBase, ErrConsistencyViolation},
		{ErrDraftJournalsRemain, ErrConsistencyViolation},
		{NewNotFound(ResourceJournal, "j-1"), ErrNotFound},
		{&LineError{LineNumber: 2, Err: ErrMissingBaseAmount}, ErrConsistencyViolation},
		{&RemainingError{Count: 3, Err: ErrUnlockedFxRatesRemain}, ErrConsistencyViolation},
	}

	classes := []error{ErrNotFound, ErrValidation, ErrStateConflict, ErrIntegrityViolation, ErrConsistencyViolation}

	for _, tt := range tests {
		for _, class := range classes {
			want := class == tt.class
			if got := errors.Is(tt.err, class); got != want {
				t.Fatalf("errors.Is(%v, %v) = %v, want %v", tt.err, class, got, want)
			}
		}
	}

	if errors.Is(ErrAlreadyPosted, ErrLockedPeriod) {
		t.Fatalf("sentinels of one class must stay distinct")
	}
	if !IsNotFound(NewNotFound(ResourcePeriod, "p"), ResourcePeriod) || IsNotFound(NewNotFound(ResourcePeriod, "p"), ResourceJournal) {
		t.Fatalf("IsNotFound must match on resource")
	}
}
