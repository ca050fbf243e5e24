package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

const periodColumns = `id, year, month, status, fx_rate_locked, created_at, locked_at, locked_by`

// PeriodRepository implements usecase.PeriodRepository.
type PeriodRepository struct {
	db DB
}

// NewPeriodRepository creates a new PeriodRepository.
func NewPeriodRepository(db DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// Create inserts a new period.
func (r *PeriodRepository) Create(ctx context.Context, tx usecase.Transaction, period *domain.Period) error {
	_, err := conn(r.db, tx).Exec(ctx, `
		INSERT INTO periods (`+periodColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		period.ID,
		period.Year,
		period.Month,
		string(period.Status),
		period.FxRateLocked,
		period.CreatedAt,
		period.LockedAt,
		period.LockedBy,
	)

	return mapUniqueViolation(err, map[string]error{
		"periods_year_month_key": domain.ErrDuplicatePeriod,
	})
}

// GetByID retrieves a period by ID.
func (r *PeriodRepository) GetByID(ctx context.Context, id string) (*domain.Period, error) {
	return r.get(ctx, r.db, `SELECT `+periodColumns+` FROM periods WHERE id = $1`, id)
}

// GetByIDForUpdate retrieves a period with a FOR UPDATE lock.
func (r *PeriodRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Period, error) {
	return r.get(ctx, conn(r.db, tx), `SELECT `+periodColumns+` FROM periods WHERE id = $1 FOR UPDATE`, id)
}

// GetByIDForShare retrieves a period with a FOR SHARE lock.
func (r *PeriodRepository) GetByIDForShare(ctx context.Context, tx usecase.Transaction, id string) (*domain.Period, error) {
	return r.get(ctx, conn(r.db, tx), `SELECT `+periodColumns+` FROM periods WHERE id = $1 FOR SHARE`, id)
}

func (r *PeriodRepository) get(ctx context.Context, q querier, sql, id string) (*domain.Period, error) {
	period, err := scanPeriod(q.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFound(domain.ResourcePeriod, id)
		}
		return nil, err
	}

	return period, nil
}

// ExistsForMonth reports whether a period exists for year/month.
func (r *PeriodRepository) ExistsForMonth(ctx context.Context, tx usecase.Transaction, year, month int) (bool, error) {
	return exists(ctx, conn(r.db, tx),
		`SELECT EXISTS (SELECT 1 FROM periods WHERE year = $1 AND month = $2)`, year, month)
}

// GetLatest returns the chronologically latest period, or nil when there is none.
func (r *PeriodRepository) GetLatest(ctx context.Context, tx usecase.Transaction) (*domain.Period, error) {
	period, err := scanPeriod(conn(r.db, tx).QueryRow(ctx,
		`SELECT `+periodColumns+` FROM periods ORDER BY year DESC, month DESC LIMIT 1`))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	return period, err
}

// FindForDateForShare returns the period whose month contains date, locked
// for share, or nil when no such period exists.
func (r *PeriodRepository) FindForDateForShare(ctx context.Context, tx usecase.Transaction, date time.Time) (*domain.Period, error) {
	period, err := scanPeriod(conn(r.db, tx).QueryRow(ctx,
		`SELECT `+periodColumns+` FROM periods WHERE year = $1 AND month = $2 FOR SHARE`,
		date.Year(), int(date.Month())))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	return period, err
}

// Lock moves a period to Locked and freezes its rates flag.
func (r *PeriodRepository) Lock(ctx context.Context, tx usecase.Transaction, id, actor string, lockedAt time.Time) error {
	tag, err := conn(r.db, tx).Exec(ctx, `
		UPDATE periods
		SET status = $2, fx_rate_locked = TRUE, locked_at = $3, locked_by = $4
		WHERE id = $1 AND status = $5`,
		id, string(domain.PeriodStatusLocked), lockedAt, actor, string(domain.PeriodStatusOpen))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyLocked
	}

	return nil
}

// SetFxRateLocked marks the period's rates as locked.
func (r *PeriodRepository) SetFxRateLocked(ctx context.Context, tx usecase.Transaction, id string) error {
	tag, err := conn(r.db, tx).Exec(ctx, `UPDATE periods SET fx_rate_locked = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound(domain.ResourcePeriod, id)
	}

	return nil
}

// List lists periods, newest first.
func (r *PeriodRepository) List(ctx context.Context, limit, offset int) ([]*domain.Period, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+periodColumns+` FROM periods ORDER BY year DESC, month DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := make([]*domain.Period, 0)
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}

	return periods, rows.Err()
}

func scanPeriod(row pgx.Row) (*domain.Period, error) {
	var (
		p      domain.Period
		status string
	)

	err := row.Scan(
		&p.ID,
		&p.Year,
		&p.Month,
		&status,
		&p.FxRateLocked,
		&p.CreatedAt,
		&p.LockedAt,
		&p.LockedBy,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.PeriodStatus(status)

	return &p, nil
}
