package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
	"github.com/iho/fxledger/internal/usecase/mocks"
)

const baseCurrency = "PKR"

// ledgerFixture wires every use case to shared in-memory repositories.
type ledgerFixture struct {
	accounts *mocks.MockAccountRepository
	periods  *mocks.MockPeriodRepository
	rates    *mocks.MockFxRateRepository
	journals *mocks.MockJournalRepository
	lines    *mocks.MockJournalLineRepository
	capital  *mocks.MockCapitalMovementRepository
	reports  *mocks.MockReportRepository
	outbox   *mocks.MockOutboxRepository
	audit    *mocks.MockAuditLogger
	cache    *mocks.MockCache
	txMgr    *mocks.MockTransactionManager
	idGen    *mocks.MockIDGenerator

	periodUC  *usecase.PeriodUseCase
	fxRateUC  *usecase.FxRateUseCase
	journalUC *usecase.JournalUseCase
	postingUC *usecase.PostingUseCase
	reportUC  *usecase.ReportUseCase
	capitalUC *usecase.CapitalUseCase
	accountUC *usecase.AccountUseCase
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	f := &ledgerFixture{
		accounts: mocks.NewMockAccountRepository(),
		periods:  mocks.NewMockPeriodRepository(),
		rates:    mocks.NewMockFxRateRepository(),
		journals: mocks.NewMockJournalRepository(),
		lines:    mocks.NewMockJournalLineRepository(),
		capital:  mocks.NewMockCapitalMovementRepository(),
		outbox:   mocks.NewMockOutboxRepository(),
		audit:    mocks.NewMockAuditLogger(),
		cache:    mocks.NewMockCache(),
		txMgr:    mocks.NewMockTransactionManager(),
		idGen:    mocks.NewMockIDGenerator(),
	}
	f.reports = mocks.NewMockReportRepository(f.accounts, f.journals, f.lines)

	log := zerolog.Nop()
	f.periodUC = usecase.NewPeriodUseCase(f.txMgr, f.periods, f.journals, f.rates, f.outbox, f.audit, f.idGen, log)
	f.fxRateUC = usecase.NewFxRateUseCase(f.txMgr, f.rates, f.periods, f.outbox, f.cache, time.Minute, f.audit, f.idGen, log)
	f.journalUC = usecase.NewJournalUseCase(f.txMgr, f.journals, f.lines, f.periods, f.rates, f.accounts, f.outbox, f.audit, f.idGen, baseCurrency, log)
	f.postingUC = usecase.NewPostingUseCase(f.txMgr, f.journals, f.lines, f.periods, f.outbox, f.audit, f.idGen, nil, log)
	f.reportUC = usecase.NewReportUseCase(f.reports, f.periods, nil, log)
	f.capitalUC = usecase.NewCapitalUseCase(f.txMgr, f.capital, f.journals, f.rates, f.audit, f.idGen, baseCurrency, log)
	f.accountUC = usecase.NewAccountUseCase(f.txMgr, f.accounts, f.audit, f.idGen, log)

	return f
}

func (f *ledgerFixture) addAccount(id, code string, accountType domain.AccountType, currency string) *domain.Account {
	account := &domain.Account{
		ID:          id,
		Code:        code,
		Name:        code + " account",
		AccountType: accountType,
		Currency:    currency,
		IsActive:    true,
	}
	f.accounts.Add(account)
	return account
}

func (f *ledgerFixture) createPeriod(t *testing.T, year, month int) *domain.Period {
	t.Helper()
	period, err := f.periodUC.CreatePeriod(context.Background(), usecase.CreatePeriodInput{Year: year, Month: month, Actor: "tester"})
	require.NoError(t, err)
	return period
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// scenario holds the records built by setupScenarioA.
type scenario struct {
	period    *domain.Period
	rate      *domain.FxRate
	journal   *domain.Journal
	asset     *domain.Account
	liability *domain.Account
}

// setupScenarioA builds period 2024-01 with a Draft journal JE-001 holding a
// 1000 USD debit and credit at 280 PKR per USD.
func (f *ledgerFixture) setupScenarioA(t *testing.T) scenario {
	t.Helper()
	ctx := context.Background()

	s := scenario{
		asset:     f.addAccount("acc-asset", "1000", domain.AccountTypeAsset, "USD"),
		liability: f.addAccount("acc-liability", "2000", domain.AccountTypeLiability, "USD"),
	}
	s.period = f.createPeriod(t, 2024, 1)

	rate, err := f.fxRateUC.CreateFxRate(ctx, usecase.CreateFxRateInput{
		FromCurrency:  "USD",
		ToCurrency:    baseCurrency,
		Rate:          dec("280"),
		EffectiveDate: date(2024, 1, 1),
		Actor:         "tester",
	})
	require.NoError(t, err)
	s.rate = rate

	journal, err := f.journalUC.CreateJournal(ctx, usecase.CreateJournalInput{
		Reference:   "JE-001",
		Description: "loan received",
		JournalDate: date(2024, 1, 15),
		PeriodID:    s.period.ID,
		FxRateID:    &rate.ID,
		Actor:       "tester",
	})
	require.NoError(t, err)
	s.journal = journal

	_, err = f.journalUC.AddJournalLine(ctx, usecase.AddJournalLineInput{
		JournalID:    journal.ID,
		AccountID:    s.asset.ID,
		DebitAmount:  dec("1000"),
		CreditAmount: decimal.Zero,
		LineNumber:   1,
	})
	require.NoError(t, err)

	_, err = f.journalUC.AddJournalLine(ctx, usecase.AddJournalLineInput{
		JournalID:    journal.ID,
		AccountID:    s.liability.ID,
		DebitAmount:  decimal.Zero,
		CreditAmount: dec("1000"),
		LineNumber:   2,
	})
	require.NoError(t, err)

	return s
}
