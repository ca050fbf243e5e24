package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
	"github.com/iho/fxledger/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	missingParent := "missing"

	tests := []struct {
		name    string
		input   usecase.CreateAccountInput
		wantErr error
	}{
		{
			name:  "valid account",
			input: usecase.CreateAccountInput{Code: "1100", Name: "Bank USD", AccountType: domain.AccountTypeAsset, Currency: "usd", Flags: domain.AccountFlags{IsBank: true}},
		},
		{
			name:    "empty code",
			input:   usecase.CreateAccountInput{Code: " ", Name: "Bank", AccountType: domain.AccountTypeAsset, Currency: "USD"},
			wantErr: domain.ErrInvalidAccountCode,
		},
		{
			name:    "empty name",
			input:   usecase.CreateAccountInput{Code: "1100", Name: "", AccountType: domain.AccountTypeAsset, Currency: "USD"},
			wantErr: domain.ErrInvalidAccountName,
		},
		{
			name:    "unknown type",
			input:   usecase.CreateAccountInput{Code: "1100", Name: "Bank", AccountType: "Revenue", Currency: "USD"},
			wantErr: domain.ErrInvalidAccountType,
		},
		{
			name:    "bad currency",
			input:   usecase.CreateAccountInput{Code: "1100", Name: "Bank", AccountType: domain.AccountTypeAsset, Currency: "DOLLAR"},
			wantErr: domain.ErrInvalidCurrency,
		},
		{
			name:    "duplicate code",
			input:   usecase.CreateAccountInput{Code: "1000", Name: "Cash again", AccountType: domain.AccountTypeAsset, Currency: "USD"},
			wantErr: domain.ErrDuplicateAccountCode,
		},
		{
			name:    "missing parent",
			input:   usecase.CreateAccountInput{Code: "1100", Name: "Bank", AccountType: domain.AccountTypeAsset, Currency: "USD", ParentID: &missingParent},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t)
			f.addAccount("acc-cash", "1000", domain.AccountTypeAsset, "USD")

			account, err := f.accountUC.CreateAccount(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "USD", account.Currency)
			assert.True(t, account.IsActive)
			assert.True(t, account.Flags.IsBank)

			entries := f.audit.Entries()
			require.Len(t, entries, 1)
			assert.Equal(t, domain.AuditActionCreate, entries[0].Action)
		})
	}
}

func TestAccountUseCase_SetAccountParent(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	f.addAccount("root", "1000", domain.AccountTypeAsset, "PKR")
	f.addAccount("mid", "1100", domain.AccountTypeAsset, "PKR")
	f.addAccount("leaf", "1110", domain.AccountTypeAsset, "PKR")

	root, mid, leaf := "root", "mid", "leaf"

	_, err := f.accountUC.SetAccountParent(ctx, mid, &root, "admin")
	require.NoError(t, err)
	updated, err := f.accountUC.SetAccountParent(ctx, leaf, &mid, "admin")
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, mid, *updated.ParentID)

	tests := []struct {
		name      string
		accountID string
		parentID  string
	}{
		{name: "self parent", accountID: root, parentID: root},
		{name: "direct child as parent", accountID: mid, parentID: leaf},
		{name: "grandchild as parent", accountID: root, parentID: leaf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := tt.parentID
			_, err := f.accountUC.SetAccountParent(ctx, tt.accountID, &parent, "admin")
			require.ErrorIs(t, err, domain.ErrAccountHierarchyCycle)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	detached, err := f.accountUC.SetAccountParent(ctx, leaf, nil, "admin")
	require.NoError(t, err)
	assert.Nil(t, detached.ParentID)

	stored, err := f.accountUC.GetAccount(ctx, leaf)
	require.NoError(t, err)
	assert.Nil(t, stored.ParentID)
}

func TestAccountUseCase_SetAccountParentDetectsExistingLoop(t *testing.T) {
	f := newLedgerFixture(t)
	a, b := "a", "b"
	f.accounts.Add(&domain.Account{ID: a, Code: "1", AccountType: domain.AccountTypeAsset, Currency: "PKR", IsActive: true, ParentID: &b})
	f.accounts.Add(&domain.Account{ID: b, Code: "2", AccountType: domain.AccountTypeAsset, Currency: "PKR", IsActive: true, ParentID: &a})
	f.addAccount("c", "3", domain.AccountTypeAsset, "PKR")

	_, err := f.accountUC.SetAccountParent(context.Background(), "c", &a, "admin")
	require.ErrorIs(t, err, domain.ErrAccountHierarchyCycle)
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	f := newLedgerFixture(t)
	f.addAccount("b", "2000", domain.AccountTypeLiability, "PKR")
	f.addAccount("a", "1000", domain.AccountTypeAsset, "PKR")
	f.addAccount("c", "3000", domain.AccountTypeEquity, "PKR")

	accounts, err := f.accountUC.ListAccounts(context.Background(), usecase.ListAccountsInput{Limit: 2})
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "1000", accounts[0].Code)
	assert.Equal(t, "2000", accounts[1].Code)
}

func TestAccountUseCase_CreateAccountRepositoryError(t *testing.T) {
	f := newLedgerFixture(t)
	dbErr := errors.New("connection reset")
	f.accounts.GetByCodeFunc = func(ctx context.Context, code string) (*domain.Account, error) {
		return nil, dbErr
	}

	_, err := f.accountUC.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Code: "1000", Name: "Cash", AccountType: domain.AccountTypeAsset, Currency: "PKR",
	})
	require.ErrorIs(t, err, dbErr)
}

func TestAccountUseCase_SetAccountParentBoundsTransaction(t *testing.T) {
	f := newLedgerFixture(t)
	f.addAccount("root", "1000", domain.AccountTypeAsset, "PKR")
	f.addAccount("child", "1100", domain.AccountTypeAsset, "PKR")

	var deadline time.Time
	f.txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		var ok bool
		deadline, ok = ctx.Deadline()
		require.True(t, ok, "transaction context must carry a deadline")
		return &mocks.MockTransaction{}, nil
	}

	root := "root"
	_, err := f.accountUC.SetAccountParent(context.Background(), "child", &root, "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(usecase.DefaultTransactionTimeout), deadline, time.Second)
}
