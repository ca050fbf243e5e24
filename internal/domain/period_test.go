package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPeriodRange(t *testing.T) {
	t.Parallel()

	p := &Period{Year: 2024, Month: 12}

	if got := p.Label(); got != "2024-12" {
		t.Fatalf("expected label 2024-12, got %s", got)
	}
	if !p.End().Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end %s", p.End())
	}
	if !p.Contains(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("last instant of december must be inside the period")
	}
	if p.Contains(p.End()) {
		t.Fatalf("end is exclusive")
	}
	if p.Contains(time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("same month of another year is outside the period")
	}
}

func TestNextPeriod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		year, month         int
		wantYear, wantMonth int
	}{
		{2024, 1, 2024, 2},
		{2024, 11, 2024, 12},
		{2024, 12, 2025, 1},
	}
	for _, tt := range tests {
		y, m := NextPeriod(tt.year, tt.month)
		if y != tt.wantYear || m != tt.wantMonth {
			t.Fatalf("NextPeriod(%d, %d) = %d-%d", tt.year, tt.month, y, m)
		}
	}
}

func TestIsNextPeriod(t *testing.T) {
	t.Parallel()

	if !IsNextPeriod(nil, 1999, 4) {
		t.Fatalf("any month is accepted without a latest period")
	}

	latest := &Period{Year: 2023, Month: 12}
	if !IsNextPeriod(latest, 2024, 1) {
		t.Fatalf("january must follow december")
	}
	for _, ym := range [][2]int{{2023, 12}, {2024, 2}, {2023, 11}, {2025, 1}} {
		if IsNextPeriod(latest, ym[0], ym[1]) {
			t.Fatalf("%d-%02d must not follow 2023-12", ym[0], ym[1])
		}
	}
}

func TestValidatePeriodBounds(t *testing.T) {
	t.Parallel()

	if err := ValidatePeriodBounds(2024, 6); err != nil {
		t.Fatalf("expected valid period, got %v", err)
	}
	for _, ym := range [][2]int{{2024, 0}, {2024, 13}, {MinPeriodYear - 1, 1}, {MaxPeriodYear + 1, 1}} {
		if err := ValidatePeriodBounds(ym[0], ym[1]); !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("expected ErrInvalidPeriod for %v, got %v", ym, err)
		}
	}
}

func TestFxRateConvert(t *testing.T) {
	t.Parallel()

	rate := &FxRate{Rate: decimal.RequireFromString("278.555")}

	got := rate.Convert(decimal.RequireFromString("10.01"))
	if !got.Equal(decimal.RequireFromString("2788.33555")) {
		t.Fatalf("expected exact product 2788.33555, got %s", got)
	}
	if !rate.Convert(decimal.Zero).IsZero() {
		t.Fatalf("zero must convert to zero")
	}

	small := &FxRate{Rate: decimal.RequireFromString("0.0036")}
	if got := small.Convert(decimal.RequireFromString("0.01")); !got.Equal(decimal.RequireFromString("0.000036")) {
		t.Fatalf("small amounts must keep a non-zero base, got %s", got)
	}
}

func TestValidateFxRate(t *testing.T) {
	t.Parallel()

	if err := ValidateFxRate("USD", "PKR", decimal.NewFromInt(280)); err != nil {
		t.Fatalf("expected valid rate, got %v", err)
	}

	bad := []struct {
		from, to string
		rate     decimal.Decimal
	}{
		{"USD", "usd", decimal.NewFromInt(1)},
		{"USD", "PKR", decimal.Zero},
		{"USD", "PKR", decimal.NewFromInt(-2)},
		{"ABC", "PKR", decimal.NewFromInt(2)},
	}
	for _, tt := range bad {
		if err := ValidateFxRate(tt.from, tt.to, tt.rate); !errors.Is(err, ErrInvalidRate) {
			t.Fatalf("expected ErrInvalidRate for %s/%s %s, got %v", tt.from, tt.to, tt.rate, err)
		}
	}
}

func TestTrialBalanceRowNet(t *testing.T) {
	t.Parallel()

	row := TrialBalanceRow{
		TotalDebit:      decimal.NewFromInt(40),
		TotalCredit:     decimal.NewFromInt(100),
		TotalDebitBase:  decimal.NewFromInt(50),
		TotalCreditBase: decimal.NewFromInt(50),
	}
	row.Net()

	if !row.DebitBalance.IsZero() || !row.CreditBalance.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("unexpected net %s/%s", row.DebitBalance, row.CreditBalance)
	}
	if !row.DebitBalanceBase.IsZero() || !row.CreditBalanceBase.IsZero() {
		t.Fatalf("equal base totals must net to zero")
	}
}
