package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

// CreatePeriodRequest represents a request to open a period.
type CreatePeriodRequest struct {
	Year         int    `json:"year"           validate:"required,min=1900,max=9999"`
	Month        int    `json:"month"          validate:"required,min=1,max=12"`
	Status       string `json:"status"         validate:"omitempty,oneof=Open Locked"`
	FxRateLocked bool   `json:"fx_rate_locked"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePeriodRequest) ToUseCaseInput(actor string) usecase.CreatePeriodInput {
	return usecase.CreatePeriodInput{
		Year:         r.Year,
		Month:        r.Month,
		Status:       domain.PeriodStatus(r.Status),
		FxRateLocked: r.FxRateLocked,
		Actor:        actor,
	}
}

// CreateFxRateRequest represents a request to record a rate.
type CreateFxRateRequest struct {
	FromCurrency  string          `json:"from_currency"  validate:"required,len=3,alpha"`
	ToCurrency    string          `json:"to_currency"    validate:"required,len=3,alpha"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate string          `json:"effective_date" validate:"required,datetime=2006-01-02"`
	IsLocked      bool            `json:"is_locked"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateFxRateRequest) ToUseCaseInput(actor string) (usecase.CreateFxRateInput, error) {
	effective, err := ParseDate(r.EffectiveDate)
	if err != nil {
		return usecase.CreateFxRateInput{}, fmt.Errorf("effective_date: %w", err)
	}

	return usecase.CreateFxRateInput{
		FromCurrency:  r.FromCurrency,
		ToCurrency:    r.ToCurrency,
		Rate:          r.Rate,
		EffectiveDate: effective,
		IsLocked:      r.IsLocked,
		Actor:         actor,
	}, nil
}

// CreateJournalRequest represents a request to create a draft journal.
type CreateJournalRequest struct {
	Reference   string  `json:"reference"    validate:"required,max=64"`
	Description string  `json:"description"`
	JournalDate string  `json:"journal_date" validate:"required,datetime=2006-01-02"`
	PeriodID    string  `json:"period_id"    validate:"required"`
	FxRateID    *string `json:"fx_rate_id,omitempty" validate:"omitempty,min=1"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateJournalRequest) ToUseCaseInput(actor string) (usecase.CreateJournalInput, error) {
	journalDate, err := ParseDate(r.JournalDate)
	if err != nil {
		return usecase.CreateJournalInput{}, fmt.Errorf("journal_date: %w", err)
	}

	return usecase.CreateJournalInput{
		Reference:   r.Reference,
		Description: r.Description,
		JournalDate: journalDate,
		PeriodID:    r.PeriodID,
		FxRateID:    r.FxRateID,
		Actor:       actor,
	}, nil
}

// AddJournalLineRequest represents a request to add a line to a draft journal.
type AddJournalLineRequest struct {
	AccountID    string          `json:"account_id"    validate:"required"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debit_amount"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
	LineNumber   int             `json:"line_number"   validate:"required,min=1"`
}

// ToUseCaseInput converts to use case input.
func (r *AddJournalLineRequest) ToUseCaseInput(journalID, actor string) usecase.AddJournalLineInput {
	return usecase.AddJournalLineInput{
		JournalID:    journalID,
		AccountID:    r.AccountID,
		Description:  r.Description,
		DebitAmount:  r.DebitAmount,
		CreditAmount: r.CreditAmount,
		LineNumber:   r.LineNumber,
		Actor:        actor,
	}
}

// RecordCapitalMovementRequest represents a partner contribution or draw.
type RecordCapitalMovementRequest struct {
	PartnerID    string          `json:"partner_id"    validate:"required"`
	MovementType string          `json:"movement_type" validate:"required,oneof=Contribution Draw"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"      validate:"required,len=3,alpha"`
	JournalID    string          `json:"journal_id"    validate:"required"`
	MovementDate string          `json:"movement_date" validate:"omitempty,datetime=2006-01-02"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordCapitalMovementRequest) ToUseCaseInput(actor string) (usecase.RecordCapitalMovementInput, error) {
	movementDate, err := parseOptionalDate(r.MovementDate)
	if err != nil {
		return usecase.RecordCapitalMovementInput{}, fmt.Errorf("movement_date: %w", err)
	}

	return usecase.RecordCapitalMovementInput{
		PartnerID:    r.PartnerID,
		MovementType: domain.MovementType(r.MovementType),
		Amount:       r.Amount,
		Currency:     r.Currency,
		JournalID:    r.JournalID,
		MovementDate: movementDate,
		Actor:        actor,
	}, nil
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Code            string  `json:"code"         validate:"required,max=32"`
	Name            string  `json:"name"         validate:"required,max=255"`
	AccountType     string  `json:"account_type" validate:"required,oneof=Asset Liability Equity Income Expense Other"`
	Currency        string  `json:"currency"     validate:"required,len=3,alpha"`
	ParentID        *string `json:"parent_id,omitempty"`
	IsBank          bool    `json:"is_bank"`
	IsCapital       bool    `json:"is_capital"`
	IsPayrollSource bool    `json:"is_payroll_source"`
	IsIntercompany  bool    `json:"is_intercompany"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(actor string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Code:        r.Code,
		Name:        r.Name,
		AccountType: domain.AccountType(r.AccountType),
		Currency:    r.Currency,
		Flags: domain.AccountFlags{
			IsBank:          r.IsBank,
			IsCapital:       r.IsCapital,
			IsPayrollSource: r.IsPayrollSource,
			IsIntercompany:  r.IsIntercompany,
		},
		ParentID: r.ParentID,
		Actor:    actor,
	}
}

// SetAccountParentRequest moves an account in the hierarchy. A null parent
// detaches it.
type SetAccountParentRequest struct {
	ParentID *string `json:"parent_id"`
}
