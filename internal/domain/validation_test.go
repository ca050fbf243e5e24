package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAccountName(t *testing.T) {
	t.Parallel()

	if err := ValidateAccountName("Cash at bank"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := ValidateAccountName("   "); !errors.Is(err, ErrInvalidAccountName) {
		t.Fatalf("expected ErrInvalidAccountName, got %v", err)
	}
	if err := ValidateAccountName(strings.Repeat("a", MaxAccountNameLength+1)); !errors.Is(err, ErrInvalidAccountName) {
		t.Fatalf("expected ErrInvalidAccountName, got %v", err)
	}
}

func TestValidateCurrency(t *testing.T) {
	t.Parallel()

	if err := ValidateCurrency(" pkr "); err != nil {
		t.Fatalf("expected normalisation to succeed, got %v", err)
	}
	if err := ValidateCurrency("XYZ"); !errors.Is(err, ErrInvalidCurrency) {
		t.Fatalf("expected ErrInvalidCurrency, got %v", err)
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateAmount(decimal.NewFromFloat(100.25)); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}
	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	huge := decimal.RequireFromString(MaxAmount).Add(decimal.NewFromInt(1))
	if err := ValidateAmount(huge); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for huge amount, got %v", err)
	}
}

func TestValidateReference(t *testing.T) {
	t.Parallel()

	if err := ValidateReference("JE-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := ValidateReference(""); !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
	if err := ValidateReference(strings.Repeat("r", MaxReferenceLength+1)); !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 50, 0},
		{10, 5, 10, 5},
		{5000, -1, 1000, 0},
	}
	for _, tt := range tests {
		limit, offset := ValidatePagination(tt.limit, tt.offset)
		if limit != tt.wantLimit || offset != tt.wantOffset {
			t.Fatalf("ValidatePagination(%d, %d) = %d, %d", tt.limit, tt.offset, limit, offset)
		}
	}
}

func TestMarshalState(t *testing.T) {
	t.Parallel()

	if MarshalState(nil) != nil {
		t.Fatalf("nil state must stay nil")
	}

	state := MarshalState(&Period{ID: "p-1", Year: 2024, Month: 1, Status: PeriodStatusOpen})
	if state["ID"] != "p-1" || state["Status"] != "Open" {
		t.Fatalf("unexpected state %v", state)
	}
}
