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

// CapitalUseCase records partner capital movements against posted journals.
type CapitalUseCase struct {
	txManager    TransactionManager
	capitalRepo  CapitalMovementRepository
	journalRepo  JournalRepository
	fxRateRepo   FxRateRepository
	audit        auditTrail
	idGen        IDGenerator
	baseCurrency string
	logger       zerolog.Logger
}

// NewCapitalUseCase creates a new CapitalUseCase.
func NewCapitalUseCase(
	txManager TransactionManager,
	capitalRepo CapitalMovementRepository,
	journalRepo JournalRepository,
	fxRateRepo FxRateRepository,
	auditLogger AuditLogger,
	idGen IDGenerator,
	baseCurrency string,
	logger zerolog.Logger,
) *CapitalUseCase {
	return &CapitalUseCase{
		txManager:    txManager,
		capitalRepo:  capitalRepo,
		journalRepo:  journalRepo,
		fxRateRepo:   fxRateRepo,
		audit:        newAuditTrail(auditLogger, logger),
		idGen:        idGen,
		baseCurrency: domain.NormalizeCurrency(baseCurrency),
		logger:       logger,
	}
}

// RecordCapitalMovementInput represents input for recording a movement.
type RecordCapitalMovementInput struct {
	PartnerID    string
	MovementType domain.MovementType
	Amount       decimal.Decimal
	Currency     string
	JournalID    string
	MovementDate time.Time
	Actor        string
}

// RecordCapitalMovement annotates an already posted journal with a partner
// contribution or draw.
func (uc *CapitalUseCase) RecordCapitalMovement(ctx context.Context, input RecordCapitalMovementInput) (*domain.CapitalMovement, error) {
	partnerID := strings.TrimSpace(input.PartnerID)
	if partnerID == "" {
		return nil, fmt.Errorf("%w: partner id is required", domain.ErrValidation)
	}
	if !input.MovementType.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMovementType, input.MovementType)
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	currency := domain.NormalizeCurrency(input.Currency)
	if err := domain.ValidateCurrency(currency); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	journal, err := uc.journalRepo.GetByIDForUpdate(txCtx, tx, input.JournalID)
	if err != nil {
		return nil, err
	}
	if !journal.IsPosted() {
		return nil, fmt.Errorf("%w: %s", domain.ErrJournalNotPosted, journal.Reference)
	}

	amountBase := input.Amount
	if currency != uc.baseCurrency && journal.FxRateID != nil {
		rate, err := uc.fxRateRepo.GetByIDTx(txCtx, tx, *journal.FxRateID)
		if err != nil {
			return nil, err
		}
		amountBase = rate.Convert(input.Amount)
	}

	movementDate := journal.JournalDate
	if !input.MovementDate.IsZero() {
		movementDate = domain.DateOnly(input.MovementDate)
	}

	movement := &domain.CapitalMovement{
		ID:           uc.idGen.Generate(),
		PartnerID:    partnerID,
		MovementType: input.MovementType,
		Amount:       input.Amount,
		Currency:     currency,
		AmountBase:   amountBase,
		JournalID:    journal.ID,
		MovementDate: movementDate,
		CreatedBy:    actorOrDefault(input.Actor),
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.capitalRepo.Create(txCtx, tx, movement); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("movement_id", movement.ID).
		Str("partner_id", movement.PartnerID).
		Str("type", string(movement.MovementType)).
		Str("amount", movement.Amount.String()).
		Str("journal_id", movement.JournalID).
		Msg("capital movement recorded")

	uc.audit.record(ctx, domain.TableCapitalMovements, movement.ID, domain.AuditActionCreate, nil, movement, movement.CreatedBy)

	return movement, nil
}

// ListCapitalMovements lists a partner's movements, newest first.
func (uc *CapitalUseCase) ListCapitalMovements(ctx context.Context, partnerID string, limit, offset int) ([]*domain.CapitalMovement, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.capitalRepo.ListByPartner(ctx, partnerID, limit, offset)
}
