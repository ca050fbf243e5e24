package postgres

import (
	"context"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

const capitalMovementColumns = `id, partner_id, movement_type, amount, currency, amount_base,
	journal_id, movement_date, created_by, created_at`

// CapitalMovementRepository implements usecase.CapitalMovementRepository.
type CapitalMovementRepository struct {
	db DB
}

// NewCapitalMovementRepository creates a new CapitalMovementRepository.
func NewCapitalMovementRepository(db DB) *CapitalMovementRepository {
	return &CapitalMovementRepository{db: db}
}

// Create inserts a new movement.
func (r *CapitalMovementRepository) Create(ctx context.Context, tx usecase.Transaction, m *domain.CapitalMovement) error {
	_, err := conn(r.db, tx).Exec(ctx, `
		INSERT INTO capital_movements (`+capitalMovementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID,
		m.PartnerID,
		string(m.MovementType),
		m.Amount,
		m.Currency,
		m.AmountBase,
		m.JournalID,
		m.MovementDate,
		m.CreatedBy,
		m.CreatedAt,
	)

	return err
}

// ListByPartner lists a partner's movements, newest first.
func (r *CapitalMovementRepository) ListByPartner(ctx context.Context, partnerID string, limit, offset int) ([]*domain.CapitalMovement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+capitalMovementColumns+` FROM capital_movements
		WHERE partner_id = $1
		ORDER BY movement_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := make([]*domain.CapitalMovement, 0)
	for rows.Next() {
		var (
			m            domain.CapitalMovement
			movementType string
		)
		err := rows.Scan(
			&m.ID,
			&m.PartnerID,
			&movementType,
			&m.Amount,
			&m.Currency,
			&m.AmountBase,
			&m.JournalID,
			&m.MovementDate,
			&m.CreatedBy,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		m.MovementType = domain.MovementType(movementType)
		movements = append(movements, &m)
	}

	return movements, rows.Err()
}
