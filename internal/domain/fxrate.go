package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FxRate converts one unit of FromCurrency into ToCurrency.
// Only IsLocked ever changes after creation, and only from false to true.
type FxRate struct {
	ID            string
	FromCurrency  string
	ToCurrency    string
	Rate          decimal.Decimal
	EffectiveDate time.Time
	IsLocked      bool
	CreatedBy     string
	CreatedAt     time.Time
}

// IdentityRate is the fallback used by non-authoritative lookups.
var IdentityRate = decimal.NewFromInt(1)

// Convert returns the exact product amount × rate. Base amounts are never
// rounded per line, so a journal balanced in one rate stays balanced in base.
func (r *FxRate) Convert(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.Rate)
}

// ValidateFxRate checks the currency pair and rate value.
func ValidateFxRate(from, to string, rate decimal.Decimal) error {
	if err := ValidateCurrency(from); err != nil {
		return fmt.Errorf("%w: from currency: %v", ErrInvalidRate, err)
	}
	if err := ValidateCurrency(to); err != nil {
		return fmt.Errorf("%w: to currency: %v", ErrInvalidRate, err)
	}
	if strings.EqualFold(from, to) {
		return fmt.Errorf("%w: from and to currency must differ", ErrInvalidRate)
	}
	if !rate.IsPositive() {
		return fmt.Errorf("%w: rate must be positive", ErrInvalidRate)
	}
	return nil
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
