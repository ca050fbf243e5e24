package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

func TestPeriodUseCase_CreatePeriod(t *testing.T) {
	tests := []struct {
		name     string
		existing [][2]int
		input    usecase.CreatePeriodInput
		wantErr  error
	}{
		{
			name:  "first period may be any month",
			input: usecase.CreatePeriodInput{Year: 2019, Month: 7},
		},
		{
			name:     "next month in the same year",
			existing: [][2]int{{2024, 1}},
			input:    usecase.CreatePeriodInput{Year: 2024, Month: 2},
		},
		{
			name:     "january after december",
			existing: [][2]int{{2023, 12}},
			input:    usecase.CreatePeriodInput{Year: 2024, Month: 1},
		},
		{
			name:     "gap of one month",
			existing: [][2]int{{2024, 1}},
			input:    usecase.CreatePeriodInput{Year: 2024, Month: 3},
			wantErr:  domain.ErrNonSequentialPeriod,
		},
		{
			name:     "earlier month",
			existing: [][2]int{{2024, 1}, {2024, 2}},
			input:    usecase.CreatePeriodInput{Year: 2023, Month: 12},
			wantErr:  domain.ErrNonSequentialPeriod,
		},
		{
			name:     "duplicate month",
			existing: [][2]int{{2024, 1}},
			input:    usecase.CreatePeriodInput{Year: 2024, Month: 1},
			wantErr:  domain.ErrDuplicatePeriod,
		},
		{
			name:    "month out of range",
			input:   usecase.CreatePeriodInput{Year: 2024, Month: 13},
			wantErr: domain.ErrInvalidPeriod,
		},
		{
			name:    "year out of range",
			input:   usecase.CreatePeriodInput{Year: 1800, Month: 1},
			wantErr: domain.ErrInvalidPeriod,
		},
		{
			name:    "unknown status",
			input:   usecase.CreatePeriodInput{Year: 2024, Month: 1, Status: "Closed"},
			wantErr: domain.ErrInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t)
			for _, ym := range tt.existing {
				f.createPeriod(t, ym[0], ym[1])
			}

			period, err := f.periodUC.CreatePeriod(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, period)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Year, period.Year)
			assert.Equal(t, tt.input.Month, period.Month)
			assert.Equal(t, domain.PeriodStatusOpen, period.Status)
			assert.False(t, period.FxRateLocked)
		})
	}
}

func TestPeriodUseCase_SequencingIgnoresRequestedState(t *testing.T) {
	statuses := []domain.PeriodStatus{domain.PeriodStatusOpen, domain.PeriodStatusLocked}

	for _, status := range statuses {
		for _, fxLocked := range []bool{false, true} {
			f := newLedgerFixture(t)
			year, month := 2022, 11
			for i := 0; i < 5; i++ {
				f.createPeriod(t, year, month)
				year, month = domain.NextPeriod(year, month)
			}

			skipYear, skipMonth := domain.NextPeriod(year, month)
			_, err := f.periodUC.CreatePeriod(context.Background(), usecase.CreatePeriodInput{
				Year:         skipYear,
				Month:        skipMonth,
				Status:       status,
				FxRateLocked: fxLocked,
			})
			require.ErrorIs(t, err, domain.ErrNonSequentialPeriod, "status=%s fxLocked=%v", status, fxLocked)
			assert.ErrorIs(t, err, domain.ErrIntegrityViolation)
		}
	}
}

func TestPeriodUseCase_CreateLockedPeriod(t *testing.T) {
	f := newLedgerFixture(t)

	period, err := f.periodUC.CreatePeriod(context.Background(), usecase.CreatePeriodInput{
		Year:         2020,
		Month:        6,
		Status:       domain.PeriodStatusLocked,
		FxRateLocked: true,
		Actor:        "migrator",
	})
	require.NoError(t, err)

	assert.True(t, period.IsLocked())
	require.NotNil(t, period.LockedBy)
	assert.Equal(t, "migrator", *period.LockedBy)

	events := f.outbox.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypePeriodCreated, events[0].EventType)
	assert.Equal(t, "2020-06", events[0].Payload["period"])
}

func TestPeriodUseCase_ClosePeriodGating(t *testing.T) {
	f := newLedgerFixture(t)
	s := f.setupScenarioA(t)
	ctx := context.Background()

	_, err := f.periodUC.ClosePeriod(ctx, s.period.ID, "closer")
	require.ErrorIs(t, err, domain.ErrDraftJournalsRemain)
	assert.ErrorIs(t, err, domain.ErrConsistencyViolation)

	var remaining *domain.RemainingError
	require.ErrorAs(t, err, &remaining)
	assert.EqualValues(t, 1, remaining.Count)

	_, err = f.postingUC.PostJournal(ctx, s.journal.ID, "poster")
	require.NoError(t, err)

	_, err = f.periodUC.ClosePeriod(ctx, s.period.ID, "closer")
	require.ErrorIs(t, err, domain.ErrUnlockedFxRatesRemain)

	_, err = f.fxRateUC.LockPeriodRates(ctx, s.period.ID, "closer")
	require.NoError(t, err)

	closed, err := f.periodUC.ClosePeriod(ctx, s.period.ID, "closer")
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodStatusLocked, closed.Status)
	assert.True(t, closed.FxRateLocked)

	stored, err := f.periods.GetByID(ctx, s.period.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodStatusLocked, stored.Status)
	assert.True(t, stored.FxRateLocked)
	require.NotNil(t, stored.LockedBy)
	assert.Equal(t, "closer", *stored.LockedBy)

	_, err = f.periodUC.ClosePeriod(ctx, s.period.ID, "closer")
	require.ErrorIs(t, err, domain.ErrAlreadyLocked)
}

func TestPeriodUseCase_ClosePeriodCountsUnlockedRates(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	period := f.createPeriod(t, 2024, 1)

	for _, day := range []int{1, 10, 31} {
		_, err := f.fxRateUC.CreateFxRate(ctx, usecase.CreateFxRateInput{
			FromCurrency:  "USD",
			ToCurrency:    baseCurrency,
			Rate:          decimal.NewFromInt(280),
			EffectiveDate: date(2024, 1, day),
		})
		require.NoError(t, err)
	}

	_, err := f.periodUC.ClosePeriod(ctx, period.ID, "closer")

	var remaining *domain.RemainingError
	require.ErrorAs(t, err, &remaining)
	assert.ErrorIs(t, err, domain.ErrUnlockedFxRatesRemain)
	assert.EqualValues(t, 3, remaining.Count)
}

func TestPeriodUseCase_ClosePeriodLocksLateRates(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	f.periods.Add(&domain.Period{ID: "p-1", Year: 2024, Month: 1, Status: domain.PeriodStatusOpen, FxRateLocked: true})
	f.rates.Add(&domain.FxRate{ID: "r-late", FromCurrency: "USD", ToCurrency: baseCurrency, Rate: dec("281"), EffectiveDate: date(2024, 1, 20)})

	closed, err := f.periodUC.ClosePeriod(ctx, "p-1", "closer")
	require.NoError(t, err)
	assert.True(t, closed.IsLocked())

	rate, err := f.rates.GetByID(ctx, "r-late")
	require.NoError(t, err)
	assert.True(t, rate.IsLocked)

	events := f.outbox.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypePeriodClosed, events[0].EventType)
	assert.EqualValues(t, 1, events[0].Payload["rates_locked"])
}

func TestPeriodUseCase_ClosePeriodNotFound(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.periodUC.ClosePeriod(context.Background(), "missing", "closer")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, domain.IsNotFound(err, domain.ResourcePeriod))
}

func TestPeriodUseCase_AuditFailureKeepsClose(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.periods.Add(&domain.Period{ID: "p-1", Year: 2024, Month: 1, Status: domain.PeriodStatusOpen})
	f.audit.RecordFunc = func(ctx context.Context, log *domain.AuditLog) error {
		return errors.New("audit store down")
	}

	_, err := f.periodUC.ClosePeriod(ctx, "p-1", "closer")
	require.NoError(t, err)

	stored, err := f.periods.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, stored.IsLocked())
}

func TestPeriodUseCase_LatestPeriod(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	latest, err := f.periodUC.LatestPeriod(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	f.createPeriod(t, 2023, 11)
	f.createPeriod(t, 2023, 12)
	f.createPeriod(t, 2024, 1)

	latest, err = f.periodUC.LatestPeriod(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-01", latest.Label())

	periods, err := f.periodUC.ListPeriods(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, periods, 3)
	assert.Equal(t, "2024-01", periods[0].Label())
}
