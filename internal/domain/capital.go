package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType is the direction of a partner equity movement.
type MovementType string

const (
	MovementContribution MovementType = "Contribution"
	MovementDraw         MovementType = "Draw"
)

// IsValid reports whether t is a known movement type.
func (t MovementType) IsValid() bool {
	return t == MovementContribution || t == MovementDraw
}

// CapitalMovement annotates an already posted journal with a partner
// contribution or draw.
type CapitalMovement struct {
	ID           string
	PartnerID    string
	MovementType MovementType
	Amount       decimal.Decimal
	Currency     string
	AmountBase   decimal.Decimal
	JournalID    string
	MovementDate time.Time
	CreatedBy    string
	CreatedAt    time.Time
}
