package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

func TestCapitalUseCase_RecordCapitalMovement(t *testing.T) {
	f := newLedgerFixture(t)
	s := f.setupScenarioA(t)
	ctx := context.Background()

	_, err := f.postingUC.PostJournal(ctx, s.journal.ID, "poster")
	require.NoError(t, err)

	movement, err := f.capitalUC.RecordCapitalMovement(ctx, usecase.RecordCapitalMovementInput{
		PartnerID:    " partner-1 ",
		MovementType: domain.MovementContribution,
		Amount:       dec("1000"),
		Currency:     "usd",
		JournalID:    s.journal.ID,
		Actor:        "treasurer",
	})
	require.NoError(t, err)

	assert.Equal(t, "partner-1", movement.PartnerID)
	assert.Equal(t, "USD", movement.Currency)
	assert.True(t, movement.AmountBase.Equal(dec("280000")))
	assert.Equal(t, s.journal.JournalDate, movement.MovementDate)
	assert.Equal(t, "treasurer", movement.CreatedBy)

	base, err := f.capitalUC.RecordCapitalMovement(ctx, usecase.RecordCapitalMovementInput{
		PartnerID:    "partner-1",
		MovementType: domain.MovementDraw,
		Amount:       dec("5000"),
		Currency:     baseCurrency,
		JournalID:    s.journal.ID,
		MovementDate: date(2024, 1, 20),
	})
	require.NoError(t, err)
	assert.True(t, base.AmountBase.Equal(dec("5000")))
	assert.Equal(t, usecase.DefaultActor, base.CreatedBy)

	movements, err := f.capitalUC.ListCapitalMovements(ctx, "partner-1", 0, 0)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, base.ID, movements[0].ID)
}

func TestCapitalUseCase_RecordCapitalMovementRejections(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(in *usecase.RecordCapitalMovementInput)
		wantErr error
	}{
		{
			name:    "draft journal",
			modify:  func(in *usecase.RecordCapitalMovementInput) {},
			wantErr: domain.ErrJournalNotPosted,
		},
		{
			name:    "blank partner",
			modify:  func(in *usecase.RecordCapitalMovementInput) { in.PartnerID = " " },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown movement type",
			modify:  func(in *usecase.RecordCapitalMovementInput) { in.MovementType = "Loan" },
			wantErr: domain.ErrInvalidMovementType,
		},
		{
			name:    "zero amount",
			modify:  func(in *usecase.RecordCapitalMovementInput) { in.Amount = decimal.Zero },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "bad currency",
			modify:  func(in *usecase.RecordCapitalMovementInput) { in.Currency = "US" },
			wantErr: domain.ErrInvalidCurrency,
		},
		{
			name:    "missing journal",
			modify:  func(in *usecase.RecordCapitalMovementInput) { in.JournalID = "missing" },
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t)
			s := f.setupScenarioA(t)

			input := usecase.RecordCapitalMovementInput{
				PartnerID:    "partner-1",
				MovementType: domain.MovementContribution,
				Amount:       dec("100"),
				Currency:     "USD",
				JournalID:    s.journal.ID,
			}
			tt.modify(&input)

			_, err := f.capitalUC.RecordCapitalMovement(context.Background(), input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
