package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

const fxRateColumns = `id, from_currency, to_currency, rate, effective_date, is_locked, created_by, created_at`

// FxRateRepository implements usecase.FxRateRepository.
type FxRateRepository struct {
	db DB
}

// NewFxRateRepository creates a new FxRateRepository.
func NewFxRateRepository(db DB) *FxRateRepository {
	return &FxRateRepository{db: db}
}

// Create inserts a new rate.
func (r *FxRateRepository) Create(ctx context.Context, tx usecase.Transaction, rate *domain.FxRate) error {
	_, err := conn(r.db, tx).Exec(ctx, `
		INSERT INTO fx_rates (`+fxRateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rate.ID,
		rate.FromCurrency,
		rate.ToCurrency,
		rate.Rate,
		rate.EffectiveDate,
		rate.IsLocked,
		rate.CreatedBy,
		rate.CreatedAt,
	)

	return mapUniqueViolation(err, map[string]error{
		"fx_rates_pair_date_key": domain.ErrDuplicateFxRate,
	})
}

// GetByID retrieves a rate by ID.
func (r *FxRateRepository) GetByID(ctx context.Context, id string) (*domain.FxRate, error) {
	return r.get(ctx, r.db, id)
}

// GetByIDTx retrieves a rate by ID inside tx.
func (r *FxRateRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.FxRate, error) {
	return r.get(ctx, conn(r.db, tx), id)
}

func (r *FxRateRepository) get(ctx context.Context, q querier, id string) (*domain.FxRate, error) {
	rate, err := scanFxRate(q.QueryRow(ctx, `SELECT `+fxRateColumns+` FROM fx_rates WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFound(domain.ResourceFxRate, id)
		}
		return nil, err
	}

	return rate, nil
}

// Exists reports whether a rate exists for the pair on effectiveDate.
func (r *FxRateRepository) Exists(ctx context.Context, tx usecase.Transaction, from, to string, effectiveDate time.Time) (bool, error) {
	return exists(ctx, conn(r.db, tx), `
		SELECT EXISTS (
			SELECT 1 FROM fx_rates
			WHERE from_currency = $1 AND to_currency = $2 AND effective_date = $3
		)`, from, to, effectiveDate)
}

// GetLatest returns the most recent rate effective on or before asOf, or nil.
func (r *FxRateRepository) GetLatest(ctx context.Context, from, to string, asOf time.Time) (*domain.FxRate, error) {
	rate, err := scanFxRate(r.db.QueryRow(ctx, `
		SELECT `+fxRateColumns+` FROM fx_rates
		WHERE from_currency = $1 AND to_currency = $2 AND effective_date <= $3
		ORDER BY effective_date DESC
		LIMIT 1`, from, to, asOf))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	return rate, err
}

// CountUnlockedInRange counts unlocked rates with from <= effective_date < to.
func (r *FxRateRepository) CountUnlockedInRange(ctx context.Context, tx usecase.Transaction, from, to time.Time) (int64, error) {
	return count(ctx, conn(r.db, tx), `
		SELECT COUNT(*) FROM fx_rates
		WHERE effective_date >= $1 AND effective_date < $2 AND NOT is_locked`, from, to)
}

// LockInRange locks every unlocked rate with from <= effective_date < to.
func (r *FxRateRepository) LockInRange(ctx context.Context, tx usecase.Transaction, from, to time.Time) (int64, error) {
	tag, err := conn(r.db, tx).Exec(ctx, `
		UPDATE fx_rates SET is_locked = TRUE
		WHERE effective_date >= $1 AND effective_date < $2 AND NOT is_locked`, from, to)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// List lists rates, optionally for one currency side, newest first.
func (r *FxRateRepository) List(ctx context.Context, from, to string, limit, offset int) ([]*domain.FxRate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+fxRateColumns+` FROM fx_rates
		WHERE ($1::text = '' OR from_currency = $1) AND ($2::text = '' OR to_currency = $2)
		ORDER BY effective_date DESC, from_currency, to_currency
		LIMIT $3 OFFSET $4`, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := make([]*domain.FxRate, 0)
	for rows.Next() {
		rate, err := scanFxRate(rows)
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}

	return rates, rows.Err()
}

func scanFxRate(row pgx.Row) (*domain.FxRate, error) {
	var rate domain.FxRate

	err := row.Scan(
		&rate.ID,
		&rate.FromCurrency,
		&rate.ToCurrency,
		&rate.Rate,
		&rate.EffectiveDate,
		&rate.IsLocked,
		&rate.CreatedBy,
		&rate.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &rate, nil
}
