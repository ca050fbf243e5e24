package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fxledger/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	audit       auditTrail
	idGen       IDGenerator
	logger      zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	auditLogger AuditLogger,
	idGen IDGenerator,
	logger zerolog.Logger,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		audit:       newAuditTrail(auditLogger, logger),
		idGen:       idGen,
		logger:      logger,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Code        string
	Name        string
	AccountType domain.AccountType
	Currency    string
	Flags       domain.AccountFlags
	ParentID    *string
	Actor       string
}

// CreateAccount creates a new active account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	code := strings.TrimSpace(input.Code)
	if err := domain.ValidateAccountCode(code); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if err := domain.ValidateAccountName(name); err != nil {
		return nil, err
	}
	if !input.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAccountType, input.AccountType)
	}
	currency := domain.NormalizeCurrency(input.Currency)
	if err := domain.ValidateCurrency(currency); err != nil {
		return nil, err
	}

	existing, err := uc.accountRepo.GetByCode(ctx, code)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateAccountCode, code)
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if input.ParentID != nil {
		if _, err := uc.accountRepo.GetByIDTx(ctx, tx, *input.ParentID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:          uc.idGen.Generate(),
		Code:        code,
		Name:        name,
		AccountType: input.AccountType,
		Currency:    currency,
		Flags:       input.Flags,
		ParentID:    input.ParentID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.audit.record(ctx, domain.TableAccounts, account.ID, domain.AuditActionCreate, nil, account, input.Actor)

	return account, nil
}

// SetAccountParent moves an account under parentID, or to the top level when
// parentID is nil. Assignments that would make an account its own ancestor
// are rejected.
func (uc *AccountUseCase) SetAccountParent(ctx context.Context, accountID string, parentID *string, actor string) (*domain.Account, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDTx(txCtx, tx, accountID)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		if err := uc.checkAncestry(txCtx, tx, account.ID, *parentID); err != nil {
			return nil, err
		}
	}

	before := *account
	now := time.Now().UTC()
	if err := uc.accountRepo.UpdateParent(txCtx, tx, account.ID, parentID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	account.ParentID = parentID
	account.UpdatedAt = now

	uc.logger.Info().
		Str("account_id", account.ID).
		Str("code", account.Code).
		Msg("account parent changed")

	uc.audit.record(ctx, domain.TableAccounts, account.ID, domain.AuditActionUpdate, &before, account, actor)

	return account, nil
}

// checkAncestry walks up from parentID and fails if accountID is met.
func (uc *AccountUseCase) checkAncestry(ctx context.Context, tx Transaction, accountID, parentID string) error {
	seen := make(map[string]bool)
	for current := parentID; current != ""; {
		if current == accountID {
			return fmt.Errorf("%w: %s would become its own ancestor", domain.ErrAccountHierarchyCycle, accountID)
		}
		if seen[current] {
			return fmt.Errorf("%w: existing cycle at %s", domain.ErrAccountHierarchyCycle, current)
		}
		seen[current] = true

		ancestor, err := uc.accountRepo.GetByIDTx(ctx, tx, current)
		if err != nil {
			return err
		}
		if ancestor.ParentID == nil {
			return nil
		}
		current = *ancestor.ParentID
	}
	return nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts ordered by code.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}
