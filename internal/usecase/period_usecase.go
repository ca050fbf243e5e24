package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fxledger/internal/domain"
)

// PeriodUseCase owns the Open → Locked lifecycle of accounting periods.
type PeriodUseCase struct {
	txManager   TransactionManager
	periodRepo  PeriodRepository
	journalRepo JournalRepository
	fxRateRepo  FxRateRepository
	outboxRepo  OutboxRepository
	audit       auditTrail
	idGen       IDGenerator
	logger      zerolog.Logger
}

// NewPeriodUseCase creates a new PeriodUseCase.
func NewPeriodUseCase(
	txManager TransactionManager,
	periodRepo PeriodRepository,
	journalRepo JournalRepository,
	fxRateRepo FxRateRepository,
	outboxRepo OutboxRepository,
	auditLogger AuditLogger,
	idGen IDGenerator,
	logger zerolog.Logger,
) *PeriodUseCase {
	return &PeriodUseCase{
		txManager:   txManager,
		periodRepo:  periodRepo,
		journalRepo: journalRepo,
		fxRateRepo:  fxRateRepo,
		outboxRepo:  outboxRepo,
		audit:       newAuditTrail(auditLogger, logger),
		idGen:       idGen,
		logger:      logger,
	}
}

// CreatePeriodInput represents input for creating a period.
type CreatePeriodInput struct {
	Year         int
	Month        int
	Status       domain.PeriodStatus
	FxRateLocked bool
	Actor        string
}

// CreatePeriod creates the period directly after the latest one. The first
// period ever created may be any month.
func (uc *PeriodUseCase) CreatePeriod(ctx context.Context, input CreatePeriodInput) (*domain.Period, error) {
	if err := domain.ValidatePeriodBounds(input.Year, input.Month); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.PeriodStatusOpen
	}
	if status != domain.PeriodStatusOpen && status != domain.PeriodStatusLocked {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidPeriod, status)
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	exists, err := uc.periodRepo.ExistsForMonth(txCtx, tx, input.Year, input.Month)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %04d-%02d", domain.ErrDuplicatePeriod, input.Year, input.Month)
	}

	latest, err := uc.periodRepo.GetLatest(txCtx, tx)
	if err != nil {
		return nil, err
	}
	if !domain.IsNextPeriod(latest, input.Year, input.Month) {
		nextYear, nextMonth := domain.NextPeriod(latest.Year, latest.Month)
		return nil, fmt.Errorf("%w: expected %04d-%02d after %s, got %04d-%02d",
			domain.ErrNonSequentialPeriod, nextYear, nextMonth, latest.Label(), input.Year, input.Month)
	}

	actor := actorOrDefault(input.Actor)
	now := time.Now().UTC()
	period := &domain.Period{
		ID:           uc.idGen.Generate(),
		Year:         input.Year,
		Month:        input.Month,
		Status:       status,
		FxRateLocked: input.FxRateLocked,
		CreatedAt:    now,
	}
	if period.IsLocked() {
		period.LockedAt = &now
		period.LockedBy = &actor
	}

	if err := uc.periodRepo.Create(txCtx, tx, period); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   period.ID,
		AggregateType: domain.AggregateTypePeriod,
		EventType:     domain.EventTypePeriodCreated,
		Payload: map[string]any{
			"period_id": period.ID,
			"period":    period.Label(),
			"status":    string(period.Status),
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
		Str("period_id", period.ID).
		Str("period", period.Label()).
		Str("status", string(period.Status)).
		Msg("period created")

	uc.audit.record(ctx, domain.TablePeriods, period.ID, domain.AuditActionCreate, nil, period, actor)

	return period, nil
}

// ClosePeriod locks a period once every journal in it is posted and every
// rate in its month is locked. Locking is terminal.
func (uc *PeriodUseCase) ClosePeriod(ctx context.Context, periodID, actor string) (*domain.Period, error) {
	actor = actorOrDefault(actor)

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	period, err := uc.periodRepo.GetByIDForUpdate(txCtx, tx, periodID)
	if err != nil {
		return nil, err
	}

	if period.IsLocked() {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyLocked, period.Label())
	}

	drafts, err := uc.journalRepo.CountDraftsInPeriod(txCtx, tx, period.ID)
	if err != nil {
		return nil, err
	}
	if drafts > 0 {
		return nil, &domain.RemainingError{Count: drafts, Err: domain.ErrDraftJournalsRemain}
	}

	if !period.FxRateLocked {
		unlocked, err := uc.fxRateRepo.CountUnlockedInRange(txCtx, tx, period.Start(), period.End())
		if err != nil {
			return nil, err
		}
		if unlocked > 0 {
			return nil, &domain.RemainingError{Count: unlocked, Err: domain.ErrUnlockedFxRatesRemain}
		}
	}

	// Rates inserted unlocked after an earlier rate lock still follow the period.
	ratesLocked, err := uc.fxRateRepo.LockInRange(txCtx, tx, period.Start(), period.End())
	if err != nil {
		return nil, err
	}

	before := *period
	now := time.Now().UTC()
	if err := uc.periodRepo.Lock(txCtx, tx, period.ID, actor, now); err != nil {
		return nil, err
	}

	period.Status = domain.PeriodStatusLocked
	period.FxRateLocked = true
	period.LockedAt = &now
	period.LockedBy = &actor

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   period.ID,
		AggregateType: domain.AggregateTypePeriod,
		EventType:     domain.EventTypePeriodClosed,
		Payload: map[string]any{
			"period_id":    period.ID,
			"period":       period.Label(),
			"locked_by":    actor,
			"rates_locked": ratesLocked,
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
		Str("period_id", period.ID).
		Str("period", period.Label()).
		Str("actor", actor).
		Int64("rates_locked", ratesLocked).
		Msg("period closed")

	uc.audit.record(ctx, domain.TablePeriods, period.ID, domain.AuditActionClose, &before, period, actor)

	return period, nil
}

// GetPeriod retrieves a period by ID.
func (uc *PeriodUseCase) GetPeriod(ctx context.Context, id string) (*domain.Period, error) {
	return uc.periodRepo.GetByID(ctx, id)
}

// LatestPeriod returns the chronologically latest period, or nil when none exist.
func (uc *PeriodUseCase) LatestPeriod(ctx context.Context) (*domain.Period, error) {
	return uc.periodRepo.GetLatest(ctx, nil)
}

// ListPeriods lists periods, latest first.
func (uc *PeriodUseCase) ListPeriods(ctx context.Context, limit, offset int) ([]*domain.Period, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.periodRepo.List(ctx, limit, offset)
}
