package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	Class      string `json:"class,omitempty"`
	LineNumber int    `json:"line_number,omitempty"`
}

// PeriodResponse represents a period in API responses.
type PeriodResponse struct {
	ID           string     `json:"id"`
	Year         int        `json:"year"`
	Month        int        `json:"month"`
	Label        string     `json:"label"`
	Status       string     `json:"status"`
	FxRateLocked bool       `json:"fx_rate_locked"`
	CreatedAt    time.Time  `json:"created_at"`
	LockedAt     *time.Time `json:"locked_at,omitempty"`
	LockedBy     *string    `json:"locked_by,omitempty"`
}

// PeriodFromDomain converts a domain period to a response.
func PeriodFromDomain(p *domain.Period) *PeriodResponse {
	return &PeriodResponse{
		ID:           p.ID,
		Year:         p.Year,
		Month:        p.Month,
		Label:        p.Label(),
		Status:       string(p.Status),
		FxRateLocked: p.FxRateLocked,
		CreatedAt:    p.CreatedAt,
		LockedAt:     p.LockedAt,
		LockedBy:     p.LockedBy,
	}
}

// PeriodsFromDomain converts domain periods to responses.
func PeriodsFromDomain(periods []*domain.Period) []*PeriodResponse {
	result := make([]*PeriodResponse, len(periods))
	for i, p := range periods {
		result[i] = PeriodFromDomain(p)
	}
	return result
}

// FxRateResponse represents a rate in API responses.
type FxRateResponse struct {
	ID            string          `json:"id,omitempty"`
	FromCurrency  string          `json:"from_currency"`
	ToCurrency    string          `json:"to_currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate string          `json:"effective_date"`
	IsLocked      bool            `json:"is_locked"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// FxRateFromDomain converts a domain rate to a response.
func FxRateFromDomain(r *domain.FxRate) *FxRateResponse {
	return &FxRateResponse{
		ID:            r.ID,
		FromCurrency:  r.FromCurrency,
		ToCurrency:    r.ToCurrency,
		Rate:          r.Rate,
		EffectiveDate: r.EffectiveDate.Format(DateLayout),
		IsLocked:      r.IsLocked,
		CreatedBy:     r.CreatedBy,
	}
}

// FxRatesFromDomain converts domain rates to responses.
func FxRatesFromDomain(rates []*domain.FxRate) []*FxRateResponse {
	result := make([]*FxRateResponse, len(rates))
	for i, r := range rates {
		result[i] = FxRateFromDomain(r)
	}
	return result
}

// LockRatesResponse reports how many rates a lock call touched.
type LockRatesResponse struct {
	PeriodID string `json:"period_id"`
	Locked   int64  `json:"locked"`
}

// JournalLineResponse represents a journal line in API responses.
type JournalLineResponse struct {
	ID               string          `json:"id"`
	JournalID        string          `json:"journal_id"`
	LineNumber       int             `json:"line_number"`
	AccountID        string          `json:"account_id"`
	Description      string          `json:"description,omitempty"`
	DebitAmount      decimal.Decimal `json:"debit_amount"`
	CreditAmount     decimal.Decimal `json:"credit_amount"`
	DebitAmountBase  decimal.Decimal `json:"debit_amount_base"`
	CreditAmountBase decimal.Decimal `json:"credit_amount_base"`
}

// JournalLineFromDomain converts a domain line to a response.
func JournalLineFromDomain(l *domain.JournalLine) *JournalLineResponse {
	return &JournalLineResponse{
		ID:               l.ID,
		JournalID:        l.JournalID,
		LineNumber:       l.LineNumber,
		AccountID:        l.AccountID,
		Description:      l.Description,
		DebitAmount:      l.DebitAmount,
		CreditAmount:     l.CreditAmount,
		DebitAmountBase:  l.DebitAmountBase,
		CreditAmountBase: l.CreditAmountBase,
	}
}

// JournalResponse represents a journal in API responses.
type JournalResponse struct {
	ID          string                 `json:"id"`
	Reference   string                 `json:"reference"`
	Description string                 `json:"description,omitempty"`
	JournalDate string                 `json:"journal_date"`
	PeriodID    string                 `json:"period_id"`
	Status      string                 `json:"status"`
	TotalDebit  decimal.Decimal        `json:"total_debit"`
	TotalCredit decimal.Decimal        `json:"total_credit"`
	FxRateID    *string                `json:"fx_rate_id,omitempty"`
	CreatedBy   string                 `json:"created_by"`
	PostedBy    *string                `json:"posted_by,omitempty"`
	PostedAt    *time.Time             `json:"posted_at,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	Lines       []*JournalLineResponse `json:"lines,omitempty"`
}

// JournalFromDomain converts a domain journal, with any loaded lines.
func JournalFromDomain(j *domain.Journal) *JournalResponse {
	resp := &JournalResponse{
		ID:          j.ID,
		Reference:   j.Reference,
		Description: j.Description,
		JournalDate: j.JournalDate.Format(DateLayout),
		PeriodID:    j.PeriodID,
		Status:      string(j.Status),
		TotalDebit:  j.TotalDebit,
		TotalCredit: j.TotalCredit,
		FxRateID:    j.FxRateID,
		CreatedBy:   j.CreatedBy,
		PostedBy:    j.PostedBy,
		PostedAt:    j.PostedAt,
		CreatedAt:   j.CreatedAt,
	}
	for _, l := range j.Lines {
		resp.Lines = append(resp.Lines, JournalLineFromDomain(l))
	}
	return resp
}

// JournalsFromDomain converts domain journals to responses.
func JournalsFromDomain(journals []*domain.Journal) []*JournalResponse {
	result := make([]*JournalResponse, len(journals))
	for i, j := range journals {
		result[i] = JournalFromDomain(j)
	}
	return result
}

// TrialBalanceRowResponse is one account in a trial balance.
type TrialBalanceRowResponse struct {
	AccountID         string          `json:"account_id"`
	AccountCode       string          `json:"account_code"`
	AccountName       string          `json:"account_name"`
	AccountType       string          `json:"account_type"`
	Currency          string          `json:"currency"`
	TotalDebit        decimal.Decimal `json:"total_debit"`
	TotalCredit       decimal.Decimal `json:"total_credit"`
	DebitBalance      decimal.Decimal `json:"debit_balance"`
	CreditBalance     decimal.Decimal `json:"credit_balance"`
	DebitBalanceBase  decimal.Decimal `json:"debit_balance_base"`
	CreditBalanceBase decimal.Decimal `json:"credit_balance_base"`
}

// TrialBalanceResponse represents a trial balance in API responses.
type TrialBalanceResponse struct {
	Period                 *PeriodResponse           `json:"period"`
	Rows                   []TrialBalanceRowResponse `json:"rows"`
	TotalDebitBalance      decimal.Decimal           `json:"total_debit_balance"`
	TotalCreditBalance     decimal.Decimal           `json:"total_credit_balance"`
	TotalDebitBalanceBase  decimal.Decimal           `json:"total_debit_balance_base"`
	TotalCreditBalanceBase decimal.Decimal           `json:"total_credit_balance_base"`
	Balanced               bool                      `json:"balanced"`
}

// TrialBalanceFromDomain converts a domain trial balance to a response.
func TrialBalanceFromDomain(tb *domain.TrialBalance) *TrialBalanceResponse {
	resp := &TrialBalanceResponse{
		Rows:                   make([]TrialBalanceRowResponse, len(tb.Rows)),
		TotalDebitBalance:      tb.TotalDebitBalance,
		TotalCreditBalance:     tb.TotalCreditBalance,
		TotalDebitBalanceBase:  tb.TotalDebitBalanceBase,
		TotalCreditBalanceBase: tb.TotalCreditBalanceBase,
		Balanced:               tb.Balanced,
	}
	if tb.Period != nil {
		resp.Period = PeriodFromDomain(tb.Period)
	}
	for i, row := range tb.Rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:         row.AccountID,
			AccountCode:       row.AccountCode,
			AccountName:       row.AccountName,
			AccountType:       string(row.AccountType),
			Currency:          row.Currency,
			TotalDebit:        row.TotalDebit,
			TotalCredit:       row.TotalCredit,
			DebitBalance:      row.DebitBalance,
			CreditBalance:     row.CreditBalance,
			DebitBalanceBase:  row.DebitBalanceBase,
			CreditBalanceBase: row.CreditBalanceBase,
		}
	}
	return resp
}

// GeneralLedgerRowResponse is one posted line in the general ledger.
type GeneralLedgerRowResponse struct {
	JournalID          string          `json:"journal_id"`
	Reference          string          `json:"reference"`
	JournalDate        string          `json:"journal_date"`
	LineNumber         int             `json:"line_number"`
	AccountID          string          `json:"account_id"`
	AccountCode        string          `json:"account_code"`
	AccountName        string          `json:"account_name"`
	Description        string          `json:"description,omitempty"`
	DebitAmount        decimal.Decimal `json:"debit_amount"`
	CreditAmount       decimal.Decimal `json:"credit_amount"`
	DebitAmountBase    decimal.Decimal `json:"debit_amount_base"`
	CreditAmountBase   decimal.Decimal `json:"credit_amount_base"`
	RunningBalance     decimal.Decimal `json:"running_balance"`
	RunningBalanceBase decimal.Decimal `json:"running_balance_base"`
}

// GeneralLedgerResponse wraps general ledger rows.
type GeneralLedgerResponse struct {
	Rows []GeneralLedgerRowResponse `json:"rows"`
}

// GeneralLedgerFromDomain converts domain rows to a response.
func GeneralLedgerFromDomain(rows []domain.GeneralLedgerRow) *GeneralLedgerResponse {
	resp := &GeneralLedgerResponse{Rows: make([]GeneralLedgerRowResponse, len(rows))}
	for i, row := range rows {
		resp.Rows[i] = GeneralLedgerRowResponse{
			JournalID:          row.JournalID,
			Reference:          row.Reference,
			JournalDate:        row.JournalDate.Format(DateLayout),
			LineNumber:         row.LineNumber,
			AccountID:          row.AccountID,
			AccountCode:        row.AccountCode,
			AccountName:        row.AccountName,
			Description:        row.Description,
			DebitAmount:        row.DebitAmount,
			CreditAmount:       row.CreditAmount,
			DebitAmountBase:    row.DebitAmountBase,
			CreditAmountBase:   row.CreditAmountBase,
			RunningBalance:     row.RunningBalance,
			RunningBalanceBase: row.RunningBalanceBase,
		}
	}
	return resp
}

// ConsistencyResponse reports ledger-wide posted totals.
type ConsistencyResponse struct {
	TotalDebit      decimal.Decimal `json:"total_debit"`
	TotalCredit     decimal.Decimal `json:"total_credit"`
	TotalDebitBase  decimal.Decimal `json:"total_debit_base"`
	TotalCreditBase decimal.Decimal `json:"total_credit_base"`
	Consistent      bool            `json:"consistent"`
}

// ConsistencyFromDomain converts ledger totals to a response.
func ConsistencyFromDomain(totals domain.LedgerTotals, consistent bool) *ConsistencyResponse {
	return &ConsistencyResponse{
		TotalDebit:      totals.Debit,
		TotalCredit:     totals.Credit,
		TotalDebitBase:  totals.DebitBase,
		TotalCreditBase: totals.CreditBase,
		Consistent:      consistent,
	}
}

// CapitalMovementResponse represents a capital movement in API responses.
type CapitalMovementResponse struct {
	ID           string          `json:"id"`
	PartnerID    string          `json:"partner_id"`
	MovementType string          `json:"movement_type"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	AmountBase   decimal.Decimal `json:"amount_base"`
	JournalID    string          `json:"journal_id"`
	MovementDate string          `json:"movement_date"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CapitalMovementFromDomain converts a domain movement to a response.
func CapitalMovementFromDomain(m *domain.CapitalMovement) *CapitalMovementResponse {
	return &CapitalMovementResponse{
		ID:           m.ID,
		PartnerID:    m.PartnerID,
		MovementType: string(m.MovementType),
		Amount:       m.Amount,
		Currency:     m.Currency,
		AmountBase:   m.AmountBase,
		JournalID:    m.JournalID,
		MovementDate: m.MovementDate.Format(DateLayout),
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

// CapitalMovementsFromDomain converts domain movements to responses.
func CapitalMovementsFromDomain(movements []*domain.CapitalMovement) []*CapitalMovementResponse {
	result := make([]*CapitalMovementResponse, len(movements))
	for i, m := range movements {
		result[i] = CapitalMovementFromDomain(m)
	}
	return result
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	AccountType     string    `json:"account_type"`
	Currency        string    `json:"currency"`
	ParentID        *string   `json:"parent_id,omitempty"`
	IsActive        bool      `json:"is_active"`
	IsBank          bool      `json:"is_bank"`
	IsCapital       bool      `json:"is_capital"`
	IsPayrollSource bool      `json:"is_payroll_source"`
	IsIntercompany  bool      `json:"is_intercompany"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:              a.ID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		Currency:        a.Currency,
		ParentID:        a.ParentID,
		IsActive:        a.IsActive,
		IsBank:          a.Flags.IsBank,
		IsCapital:       a.Flags.IsCapital,
		IsPayrollSource: a.Flags.IsPayrollSource,
		IsIntercompany:  a.Flags.IsIntercompany,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListResponse wraps a page of items.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
