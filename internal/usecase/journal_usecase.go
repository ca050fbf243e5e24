package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
)

// JournalUseCase builds Draft journals and their lines.
type JournalUseCase struct {
	txManager    TransactionManager
	journalRepo  JournalRepository
	lineRepo     JournalLineRepository
	periodRepo   PeriodRepository
	fxRateRepo   FxRateRepository
	accountRepo  AccountRepository
	outboxRepo   OutboxRepository
	audit        auditTrail
	idGen        IDGenerator
	baseCurrency string
	logger       zerolog.Logger
}

// NewJournalUseCase creates a new JournalUseCase.
func NewJournalUseCase(
	txManager TransactionManager,
	journalRepo JournalRepository,
	lineRepo JournalLineRepository,
	periodRepo PeriodRepository,
	fxRateRepo FxRateRepository,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	auditLogger AuditLogger,
	idGen IDGenerator,
	baseCurrency string,
	logger zerolog.Logger,
) *JournalUseCase {
	return &JournalUseCase{
		txManager:    txManager,
		journalRepo:  journalRepo,
		lineRepo:     lineRepo,
		periodRepo:   periodRepo,
		fxRateRepo:   fxRateRepo,
		accountRepo:  accountRepo,
		outboxRepo:   outboxRepo,
		audit:        newAuditTrail(auditLogger, logger),
		idGen:        idGen,
		baseCurrency: domain.NormalizeCurrency(baseCurrency),
		logger:       logger,
	}
}

// CreateJournalInput represents input for creating a journal.
type CreateJournalInput struct {
	Reference   string
	Description string
	JournalDate time.Time
	PeriodID    string
	FxRateID    *string
	Actor       string
}

// CreateJournal creates a Draft journal in an open period.
func (uc *JournalUseCase) CreateJournal(ctx context.Context, input CreateJournalInput) (*domain.Journal, error) {
	reference := strings.TrimSpace(input.Reference)
	if err := domain.ValidateReference(reference); err != nil {
		return nil, err
	}
	journalDate := domain.DateOnly(input.JournalDate)

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Share lock: a concurrent close waits until this journal is visible.
	period, err := uc.periodRepo.GetByIDForShare(txCtx, tx, input.PeriodID)
	if err != nil {
		return nil, err
	}
	if period.IsLocked() {
		return nil, fmt.Errorf("%w: %s", domain.ErrLockedPeriod, period.Label())
	}

	if input.FxRateID != nil {
		if _, err := uc.fxRateRepo.GetByIDTx(txCtx, tx, *input.FxRateID); err != nil {
			return nil, err
		}
	}

	exists, err := uc.journalRepo.ReferenceExists(txCtx, tx, period.ID, reference)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s in %s", domain.ErrDuplicateReference, reference, period.Label())
	}

	if !period.Contains(journalDate) {
		return nil, fmt.Errorf("%w: %s not in %s",
			domain.ErrJournalDateOutsidePeriod, journalDate.Format(time.DateOnly), period.Label())
	}

	now := time.Now().UTC()
	journal := &domain.Journal{
		ID:          uc.idGen.Generate(),
		Reference:   reference,
		Description: input.Description,
		JournalDate: journalDate,
		PeriodID:    period.ID,
		Status:      domain.JournalStatusDraft,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		FxRateID:    input.FxRateID,
		CreatedBy:   actorOrDefault(input.Actor),
		CreatedAt:   now,
	}

	if err := uc.journalRepo.Create(txCtx, tx, journal); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   journal.ID,
		AggregateType: domain.AggregateTypeJournal,
		EventType:     domain.EventTypeJournalCreated,
		Payload: map[string]any{
			"journal_id": journal.ID,
			"reference":  journal.Reference,
			"period_id":  journal.PeriodID,
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("journal_id", journal.ID).
		Str("reference", journal.Reference).
		Str("period", period.Label()).
		Msg("journal created")

	uc.audit.record(ctx, domain.TableJournals, journal.ID, domain.AuditActionCreate, nil, journal, journal.CreatedBy)

	return journal, nil
}

// AddJournalLineInput represents input for adding a line to a journal.
type AddJournalLineInput struct {
	JournalID    string
	AccountID    string
	Description  string
	DebitAmount  decimal.Decimal
	CreditAmount decimal.Decimal
	LineNumber   int
	Actor        string
}

// AddJournalLine appends a line to a Draft journal and fixes its base amounts.
// Journal totals are left alone until posting.
func (uc *JournalUseCase) AddJournalLine(ctx context.Context, input AddJournalLineInput) (*domain.JournalLine, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Row lock: lines cannot slip in while the journal is being posted.
	journal, err := uc.journalRepo.GetByIDForUpdate(txCtx, tx, input.JournalID)
	if err != nil {
		return nil, err
	}
	if journal.IsPosted() {
		return nil, fmt.Errorf("%w: %s", domain.ErrCannotModifyPosted, journal.Reference)
	}

	account, err := uc.accountRepo.GetByIDTx(txCtx, tx, input.AccountID)
	if err != nil {
		if domain.IsNotFound(err, domain.ResourceAccount) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInactiveOrMissingAccount, input.AccountID)
		}
		return nil, err
	}
	if !account.CanPost() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInactiveOrMissingAccount, account.Code)
	}

	if err := domain.ValidateLineAmounts(input.DebitAmount, input.CreditAmount); err != nil {
		return nil, err
	}

	if input.LineNumber <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidLineNumber, input.LineNumber)
	}
	taken, err := uc.lineRepo.LineNumberExists(txCtx, tx, journal.ID, input.LineNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &domain.LineError{LineNumber: input.LineNumber, Err: domain.ErrDuplicateLineNumber}
	}

	debitBase, creditBase, err := uc.baseAmounts(txCtx, tx, journal, account, input.DebitAmount, input.CreditAmount)
	if err != nil {
		return nil, err
	}

	line := &domain.JournalLine{
		ID:               uc.idGen.Generate(),
		JournalID:        journal.ID,
		AccountID:        account.ID,
		Description:      input.Description,
		DebitAmount:      input.DebitAmount,
		CreditAmount:     input.CreditAmount,
		DebitAmountBase:  debitBase,
		CreditAmountBase: creditBase,
		LineNumber:       input.LineNumber,
		CreatedAt:        time.Now().UTC(),
	}

	if err := uc.lineRepo.Create(txCtx, tx, line); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	uc.logger.Debug().
		Str("journal_id", journal.ID).
		Int("line_number", line.LineNumber).
		Str("account", account.Code).
		Msg("journal line added")

	uc.audit.record(ctx, domain.TableJournalLines, line.ID, domain.AuditActionCreate, nil, line, input.Actor)

	return line, nil
}

// baseAmounts converts the line into base currency using the journal's rate.
// Accounts already in base currency, and journals without a rate, keep the
// transaction amounts unchanged.
func (uc *JournalUseCase) baseAmounts(
	ctx context.Context,
	tx Transaction,
	journal *domain.Journal,
	account *domain.Account,
	debit, credit decimal.Decimal,
) (decimal.Decimal, decimal.Decimal, error) {
	if journal.FxRateID == nil || domain.NormalizeCurrency(account.Currency) == uc.baseCurrency {
		return debit, credit, nil
	}

	rate, err := uc.fxRateRepo.GetByIDTx(ctx, tx, *journal.FxRateID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return rate.Convert(debit), rate.Convert(credit), nil
}

// GetJournal retrieves a journal together with its lines.
func (uc *JournalUseCase) GetJournal(ctx context.Context, id string) (*domain.Journal, error) {
	journal, err := uc.journalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lines, err := uc.lineRepo.ListByJournal(ctx, journal.ID)
	if err != nil {
		return nil, err
	}
	journal.Lines = lines

	return journal, nil
}

// ListJournals lists journals matching filter.
func (uc *JournalUseCase) ListJournals(ctx context.Context, filter JournalFilter) ([]*domain.Journal, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.journalRepo.List(ctx, filter)
}
