package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

const accountColumns = `id, code, name, account_type, currency,
	is_bank, is_capital, is_payroll_source, is_intercompany,
	parent_id, is_active, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	db DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	_, err := conn(r.db, tx).Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		account.ID,
		account.Code,
		account.Name,
		string(account.AccountType),
		account.Currency,
		account.Flags.IsBank,
		account.Flags.IsCapital,
		account.Flags.IsPayrollSource,
		account.Flags.IsIntercompany,
		account.ParentID,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return mapUniqueViolation(err, map[string]error{
		"accounts_code_key": domain.ErrDuplicateAccountCode,
	})
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.get(ctx, r.db, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// GetByIDTx retrieves an account by ID inside tx.
func (r *AccountRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return r.get(ctx, conn(r.db, tx), `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// GetByCode retrieves an account by its unique code.
func (r *AccountRepository) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	return r.get(ctx, r.db, `SELECT `+accountColumns+` FROM accounts WHERE code = $1`, code)
}

func (r *AccountRepository) get(ctx context.Context, q querier, sql, key string) (*domain.Account, error) {
	account, err := scanAccount(q.QueryRow(ctx, sql, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFound(domain.ResourceAccount, key)
		}
		return nil, err
	}

	return account, nil
}

// UpdateParent sets or clears the parent of an account.
func (r *AccountRepository) UpdateParent(ctx context.Context, tx usecase.Transaction, id string, parentID *string, updatedAt time.Time) error {
	tag, err := conn(r.db, tx).Exec(ctx,
		`UPDATE accounts SET parent_id = $2, updated_at = $3 WHERE id = $1`,
		id, parentID, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound(domain.ResourceAccount, id)
	}

	return nil
}

// List lists accounts ordered by code.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY code LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a           domain.Account
		accountType string
	)

	err := row.Scan(
		&a.ID,
		&a.Code,
		&a.Name,
		&accountType,
		&a.Currency,
		&a.Flags.IsBank,
		&a.Flags.IsCapital,
		&a.Flags.IsPayrollSource,
		&a.Flags.IsIntercompany,
		&a.ParentID,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.AccountType = domain.AccountType(accountType)

	return &a, nil
}
