package domain

import (
	"time"
)

// AccountType classifies an account in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "Asset"
	AccountTypeLiability AccountType = "Liability"
	AccountTypeEquity    AccountType = "Equity"
	AccountTypeIncome    AccountType = "Income"
	AccountTypeExpense   AccountType = "Expense"
	AccountTypeOther     AccountType = "Other"
)

var validAccountTypes = map[AccountType]bool{
	AccountTypeAsset:     true,
	AccountTypeLiability: true,
	AccountTypeEquity:    true,
	AccountTypeIncome:    true,
	AccountTypeExpense:   true,
	AccountTypeOther:     true,
}

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	return validAccountTypes[t]
}

// AccountFlags marks accounts with special roles.
type AccountFlags struct {
	IsBank          bool
	IsCapital       bool
	IsPayrollSource bool
	IsIntercompany  bool
}

// Account is a chart-of-accounts entry. Accounts are deactivated, never deleted.
type Account struct {
	ID          string
	Code        string
	Name        string
	AccountType AccountType
	Currency    string
	Flags       AccountFlags
	ParentID    *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanPost reports whether journal lines may reference the account.
func (a *Account) CanPost() bool {
	return a != nil && a.IsActive
}
