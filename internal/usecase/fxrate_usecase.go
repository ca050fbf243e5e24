package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
)

// FxRateUseCase creates and looks up currency conversion rates.
type FxRateUseCase struct {
	txManager  TransactionManager
	fxRateRepo FxRateRepository
	periodRepo PeriodRepository
	outboxRepo OutboxRepository
	cache      Cache
	cacheTTL   time.Duration
	audit      auditTrail
	idGen      IDGenerator
	logger     zerolog.Logger
}

// NewFxRateUseCase creates a new FxRateUseCase. cache may be nil.
func NewFxRateUseCase(
	txManager TransactionManager,
	fxRateRepo FxRateRepository,
	periodRepo PeriodRepository,
	outboxRepo OutboxRepository,
	cache Cache,
	cacheTTL time.Duration,
	auditLogger AuditLogger,
	idGen IDGenerator,
	logger zerolog.Logger,
) *FxRateUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultRateCacheTTL
	}
	return &FxRateUseCase{
		txManager:  txManager,
		fxRateRepo: fxRateRepo,
		periodRepo: periodRepo,
		outboxRepo: outboxRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		audit:      newAuditTrail(auditLogger, logger),
		idGen:      idGen,
		logger:     logger,
	}
}

// CreateFxRateInput represents input for creating a rate.
type CreateFxRateInput struct {
	FromCurrency  string
	ToCurrency    string
	Rate          decimal.Decimal
	EffectiveDate time.Time
	IsLocked      bool
	Actor         string
}

// CreateFxRate records a rate effective on a day inside an existing period.
// A locked period still accepts unlocked rates but never locked ones.
func (uc *FxRateUseCase) CreateFxRate(ctx context.Context, input CreateFxRateInput) (*domain.FxRate, error) {
	from := domain.NormalizeCurrency(input.FromCurrency)
	to := domain.NormalizeCurrency(input.ToCurrency)
	if err := domain.ValidateFxRate(from, to, input.Rate); err != nil {
		return nil, err
	}
	effectiveDate := domain.DateOnly(input.EffectiveDate)

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	exists, err := uc.fxRateRepo.Exists(txCtx, tx, from, to, effectiveDate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s/%s on %s", domain.ErrDuplicateFxRate, from, to, effectiveDate.Format(time.DateOnly))
	}

	period, err := uc.periodRepo.FindForDateForShare(txCtx, tx, effectiveDate)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoAccountingPeriodFound, effectiveDate.Format(time.DateOnly))
	}

	if period.IsLocked() && input.IsLocked {
		return nil, fmt.Errorf("%w: period %s", domain.ErrCannotCreateLockedRate, period.Label())
	}

	now := time.Now().UTC()
	rate := &domain.FxRate{
		ID:            uc.idGen.Generate(),
		FromCurrency:  from,
		ToCurrency:    to,
		Rate:          input.Rate,
		EffectiveDate: effectiveDate,
		IsLocked:      input.IsLocked,
		CreatedBy:     actorOrDefault(input.Actor),
		CreatedAt:     now,
	}

	if err := uc.fxRateRepo.Create(txCtx, tx, rate); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   rate.ID,
		AggregateType: domain.AggregateTypeFxRate,
		EventType:     domain.EventTypeFxRateCreated,
		Payload: map[string]any{
			"fx_rate_id":     rate.ID,
			"from_currency":  rate.FromCurrency,
			"to_currency":    rate.ToCurrency,
			"rate":           rate.Rate.String(),
			"effective_date": rate.EffectiveDate.Format(time.DateOnly),
			"is_locked":      rate.IsLocked,
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
		Str("fx_rate_id", rate.ID).
		Str("pair", rate.FromCurrency+"/"+rate.ToCurrency).
		Str("rate", rate.Rate.String()).
		Time("effective_date", rate.EffectiveDate).
		Msg("fx rate created")

	uc.audit.record(ctx, domain.TableFxRates, rate.ID, domain.AuditActionCreate, nil, rate, rate.CreatedBy)
	uc.bumpPairGeneration(ctx, rate)

	return rate, nil
}

// LockPeriodRates locks every rate effective inside an open period and marks
// the period's rates as locked. It returns the number of rates that changed.
func (uc *FxRateUseCase) LockPeriodRates(ctx context.Context, periodID, actor string) (int64, error) {
	actor = actorOrDefault(actor)

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	period, err := uc.periodRepo.GetByIDForUpdate(txCtx, tx, periodID)
	if err != nil {
		return 0, err
	}
	if period.IsLocked() {
		return 0, fmt.Errorf("%w: %s", domain.ErrAlreadyLocked, period.Label())
	}

	locked, err := uc.fxRateRepo.LockInRange(txCtx, tx, period.Start(), period.End())
	if err != nil {
		return 0, err
	}

	if err := uc.periodRepo.SetFxRateLocked(txCtx, tx, period.ID); err != nil {
		return 0, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   period.ID,
		AggregateType: domain.AggregateTypeFxRate,
		EventType:     domain.EventTypeRatesLocked,
		Payload: map[string]any{
			"period_id":    period.ID,
			"period":       period.Label(),
			"rates_locked": locked,
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return 0, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return 0, err
	}

	uc.logger.Info().
		Str("period_id", period.ID).
		Str("period", period.Label()).
		Int64("rates_locked", locked).
		Msg("period rates locked")

	before := *period
	period.FxRateLocked = true
	uc.audit.record(ctx, domain.TablePeriods, period.ID, domain.AuditActionLock, &before, period, actor)

	return locked, nil
}

// cachedRate is the cache representation of a LatestRate answer.
type cachedRate struct {
	ID            string    `json:"id"`
	Rate          string    `json:"rate"`
	EffectiveDate time.Time `json:"effective_date"`
	IsLocked      bool      `json:"is_locked"`
}

// LatestRate returns the most recent rate effective on or before asOf, or an
// identity rate when none exists. Dashboard use only: journals and posting
// always work from an explicit rate.
func (uc *FxRateUseCase) LatestRate(ctx context.Context, from, to string, asOf time.Time) (*domain.FxRate, error) {
	from = domain.NormalizeCurrency(from)
	to = domain.NormalizeCurrency(to)
	asOf = domain.DateOnly(asOf)

	if from == to {
		return identityRate(from, to, asOf), nil
	}

	key := fmt.Sprintf("fxrate:latest:%s:%s:%s:%s", from, to, uc.pairGeneration(ctx, from, to), asOf.Format(time.DateOnly))
	if rate, ok := uc.cachedLatest(ctx, key, from, to); ok {
		return rate, nil
	}

	rate, err := uc.fxRateRepo.GetLatest(ctx, from, to, asOf)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		rate = identityRate(from, to, asOf)
	}

	uc.storeLatest(ctx, key, rate)

	return rate, nil
}

func pairGenerationKey(from, to string) string {
	return fmt.Sprintf("fxrate:gen:%s:%s", from, to)
}

// pairGeneration returns the ID of the pair's newest rate as recorded in the
// cache, or "0" before any rate was created through this service. It is part
// of every LatestRate key, so a new rate retires all cached answers at once.
func (uc *FxRateUseCase) pairGeneration(ctx context.Context, from, to string) string {
	if uc.cache == nil {
		return "0"
	}
	gen, err := uc.cache.Get(ctx, pairGenerationKey(from, to))
	if err != nil || gen == "" {
		return "0"
	}
	return gen
}

// bumpPairGeneration outlives every answer cached under the previous
// generation because both share cacheTTL.
func (uc *FxRateUseCase) bumpPairGeneration(ctx context.Context, rate *domain.FxRate) {
	if uc.cache == nil {
		return
	}
	key := pairGenerationKey(rate.FromCurrency, rate.ToCurrency)
	if err := uc.cache.Set(ctx, key, rate.ID, uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("rate cache invalidation failed")
	}
}

func identityRate(from, to string, asOf time.Time) *domain.FxRate {
	return &domain.FxRate{
		FromCurrency:  from,
		ToCurrency:    to,
		Rate:          domain.IdentityRate,
		EffectiveDate: asOf,
	}
}

func (uc *FxRateUseCase) cachedLatest(ctx context.Context, key, from, to string) (*domain.FxRate, bool) {
	if uc.cache == nil {
		return nil, false
	}

	raw, err := uc.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}

	var cached cachedRate
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, false
	}
	value, err := decimal.NewFromString(cached.Rate)
	if err != nil {
		return nil, false
	}

	return &domain.FxRate{
		ID:            cached.ID,
		FromCurrency:  from,
		ToCurrency:    to,
		Rate:          value,
		EffectiveDate: cached.EffectiveDate,
		IsLocked:      cached.IsLocked,
	}, true
}

func (uc *FxRateUseCase) storeLatest(ctx context.Context, key string, rate *domain.FxRate) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(cachedRate{
		ID:            rate.ID,
		Rate:          rate.Rate.String(),
		EffectiveDate: rate.EffectiveDate,
		IsLocked:      rate.IsLocked,
	})
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, key, string(data), uc.cacheTTL); err != nil {
		uc.logger.Debug().Err(err).Str("key", key).Msg("rate cache write failed")
	}
}

// GetFxRate retrieves a rate by ID.
func (uc *FxRateUseCase) GetFxRate(ctx context.Context, id string) (*domain.FxRate, error) {
	return uc.fxRateRepo.GetByID(ctx, id)
}

// ListFxRates lists rates, optionally for one currency pair.
func (uc *FxRateUseCase) ListFxRates(ctx context.Context, from, to string, limit, offset int) ([]*domain.FxRate, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.fxRateRepo.List(ctx, domain.NormalizeCurrency(from), domain.NormalizeCurrency(to), limit, offset)
}
