package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDTxFunc    func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByCodeFunc    func(ctx context.Context, code string) (*domain.Account, error)
	UpdateParentFunc func(ctx context.Context, tx usecase.Transaction, id string, parentID *string, updatedAt time.Time) error
	ListFunc         func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Add stores account as is.
func (m *MockAccountRepository) Add(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *account
	m.accounts[account.ID] = &cp
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.Add(account)
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		cp := *acc
		return &cp, nil
	}
	return nil, domain.NewNotFound(domain.ResourceAccount, id)
}

func (m *MockAccountRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDTxFunc != nil {
		return m.GetByIDTxFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Code == code {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, domain.NewNotFound(domain.ResourceAccount, code)
}

func (m *MockAccountRepository) UpdateParent(ctx context.Context, tx usecase.Transaction, id string, parentID *string, updatedAt time.Time) error {
	if m.UpdateParentFunc != nil {
		return m.UpdateParentFunc(ctx, tx, id, parentID, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.NewNotFound(domain.ResourceAccount, id)
	}
	acc.ParentID = parentID
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		cp := *acc
		accounts = append(accounts, &cp)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return page(accounts, limit, offset), nil
}

// MockPeriodRepository is a mock implementation of PeriodRepository.
type MockPeriodRepository struct {
	mu      sync.RWMutex
	periods map[string]*domain.Period

	CreateFunc              func(ctx context.Context, tx usecase.Transaction, period *domain.Period) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Period, error)
	GetByIDForUpdateFunc    func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Period, error)
	GetByIDForShareFunc     func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Period, error)
	ExistsForMonthFunc      func(ctx context.Context, tx usecase.Transaction, year, month int) (bool, error)
	GetLatestFunc           func(ctx context.Context, tx usecase.Transaction) (*domain.Period, error)
	FindForDateForShareFunc func(ctx context.Context, tx usecase.Transaction, date time.Time) (*domain.Period, error)
	LockFunc                func(ctx context.Context, tx usecase.Transaction, id, actor string, lockedAt time.Time) error
	SetFxRateLockedFunc     func(ctx context.Context, tx usecase.Transaction, id string) error
	ListFunc                func(ctx context.Context, limit, offset int) ([]*domain.Period, error)
}

func NewMockPeriodRepository() *MockPeriodRepository {
	return &MockPeriodRepository{
		periods: make(map[string]*domain.Period),
	}
}

// Add stores period as is.
func (m *MockPeriodRepository) Add(period *domain.Period) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *period
	m.periods[period.ID] = &cp
}

func (m *MockPeriodRepository) Create(ctx context.Context, tx usecase.Transaction, period *domain.Period) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, period)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.periods {
		if p.Year == period.Year && p.Month == period.Month {
			return domain.ErrDuplicatePeriod
		}
	}
	cp := *period
	m.periods[period.ID] = &cp
	return nil
}

func (m *MockPeriodRepository) GetByID(ctx context.Context, id string) (*domain.Period, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.periods[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.NewNotFound(domain.ResourcePeriod, id)
}

func (m *MockPeriodRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Period, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockPeriodRepository) GetByIDForShare(ctx context.Context, tx usecase.Transaction, id string) (*domain.Period, error) {
	if m.GetByIDForShareFunc != nil {
		return m.GetByIDForShareFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockPeriodRepository) ExistsForMonth(ctx context.Context, tx usecase.Transaction, year, month int) (bool, error) {
	if m.ExistsForMonthFunc != nil {
		return m.ExistsForMonthFunc(ctx, tx, year, month)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.periods {
		if p.Year == year && p.Month == month {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockPeriodRepository) GetLatest(ctx context.Context, tx usecase.Transaction) (*domain.Period, error) {
	if m.GetLatestFunc != nil {
		return m.GetLatestFunc(ctx, tx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *domain.Period
	for _, p := range m.periods {
		if latest == nil || p.Index() > latest.Index() {
			latest = p
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (m *MockPeriodRepository) FindForDateForShare(ctx context.Context, tx usecase.Transaction, date time.Time) (*domain.Period, error) {
	if m.FindForDateForShareFunc != nil {
		return m.FindForDateForShareFunc(ctx, tx, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.periods {
		if p.Contains(date) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockPeriodRepository) Lock(ctx context.Context, tx usecase.Transaction, id, actor string, lockedAt time.Time) error {
	if m.LockFunc != nil {
		return m.LockFunc(ctx, tx, id, actor, lockedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.periods[id]
	if !ok {
		return domain.NewNotFound(domain.ResourcePeriod, id)
	}
	p.Status = domain.PeriodStatusLocked
	p.FxRateLocked = true
	p.LockedAt = &lockedAt
	p.LockedBy = &actor
	return nil
}

func (m *MockPeriodRepository) SetFxRateLocked(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.SetFxRateLockedFunc != nil {
		return m.SetFxRateLockedFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.periods[id]
	if !ok {
		return domain.NewNotFound(domain.ResourcePeriod, id)
	}
	p.FxRateLocked = true
	return nil
}

func (m *MockPeriodRepository) List(ctx context.Context, limit, offset int) ([]*domain.Period, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var periods []*domain.Period
	for _, p := range m.periods {
		cp := *p
		periods = append(periods, &cp)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Index() > periods[j].Index() })
	return page(periods, limit, offset), nil
}

// MockFxRateRepository is a mock implementation of FxRateRepository.
type MockFxRateRepository struct {
	mu    sync.RWMutex
	rates map[string]*domain.FxRate

	CreateFunc               func(ctx context.Context, tx usecase.Transaction, rate *domain.FxRate) error
	GetByIDFunc              func(ctx context.Context, id string) (*domain.FxRate, error)
	GetByIDTxFunc            func(ctx context.Context, tx usecase.Transaction, id string) (*domain.FxRate, error)
	ExistsFunc               func(ctx context.Context, tx usecase.Transaction, from, to string, effectiveDate time.Time) (bool, error)
	GetLatestFunc            func(ctx context.Context, from, to string, asOf time.Time) (*domain.FxRate, error)
	CountUnlockedInRangeFunc func(ctx context.Context, tx usecase.Transaction, from, to time.Time) (int64, error)
	LockInRangeFunc          func(ctx context.Context, tx usecase.Transaction, from, to time.Time) (int64, error)
	ListFunc                 func(ctx context.Context, from, to string, limit, offset int) ([]*domain.FxRate, error)
}

func NewMockFxRateRepository() *MockFxRateRepository {
	return &MockFxRateRepository{
		rates: make(map[string]*domain.FxRate),
	}
}

// Add stores rate as is.
func (m *MockFxRateRepository) Add(rate *domain.FxRate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rate
	m.rates[rate.ID] = &cp
}

func (m *MockFxRateRepository) Create(ctx context.Context, tx usecase.Transaction, rate *domain.FxRate) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, rate)
	}
	m.Add(rate)
	return nil
}

func (m *MockFxRateRepository) GetByID(ctx context.Context, id string) (*domain.FxRate, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rates[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.NewNotFound(domain.ResourceFxRate, id)
}

func (m *MockFxRateRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.FxRate, error) {
	if m.GetByIDTxFunc != nil {
		return m.GetByIDTxFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockFxRateRepository) Exists(ctx context.Context, tx usecase.Transaction, from, to string, effectiveDate time.Time) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, tx, from, to, effectiveDate)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rates {
		if r.FromCurrency == from && r.ToCurrency == to && r.EffectiveDate.Equal(effectiveDate) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockFxRateRepository) GetLatest(ctx context.Context, from, to string, asOf time.Time) (*domain.FxRate, error) {
	if m.GetLatestFunc != nil {
		return m.GetLatestFunc(ctx, from, to, asOf)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *domain.FxRate
	for _, r := range m.rates {
		if r.FromCurrency != from || r.ToCurrency != to || r.EffectiveDate.After(asOf) {
			continue
		}
		if latest == nil || r.EffectiveDate.After(latest.EffectiveDate) {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (m *MockFxRateRepository) CountUnlockedInRange(ctx context.Context, tx usecase.Transaction, from, to time.Time) (int64, error) {
	if m.CountUnlockedInRangeFunc != nil {
		return m.CountUnlockedInRangeFunc(ctx, tx, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, r := range m.rates {
		if !r.IsLocked && inRange(r.EffectiveDate, from, to) {
			n++
		}
	}
	return n, nil
}

func (m *MockFxRateRepository) LockInRange(ctx context.Context, tx usecase.Transaction, from, to time.Time) (int64, error) {
	if m.LockInRangeFunc != nil {
		return m.LockInRangeFunc(ctx, tx, from, to)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.rates {
		if !r.IsLocked && inRange(r.EffectiveDate, from, to) {
			r.IsLocked = true
			n++
		}
	}
	return n, nil
}

func (m *MockFxRateRepository) List(ctx context.Context, from, to string, limit, offset int) ([]*domain.FxRate, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, from, to, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rates []*domain.FxRate
	for _, r := range m.rates {
		if (from == "" || r.FromCurrency == from) && (to == "" || r.ToCurrency == to) {
			cp := *r
			rates = append(rates, &cp)
		}
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].EffectiveDate.After(rates[j].EffectiveDate) })
	return page(rates, limit, offset), nil
}

// MockJournalRepository is a mock implementation of JournalRepository.
type MockJournalRepository struct {
	mu       sync.RWMutex
	journals map[string]*domain.Journal

	CreateFunc              func(ctx context.Context, tx usecase.Transaction, journal *domain.Journal) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Journal, error)
	GetByIDForUpdateFunc    func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Journal, error)
	ReferenceExistsFunc     func(ctx context.Context, tx usecase.Transaction, periodID, reference string) (bool, error)
	CountDraftsInPeriodFunc func(ctx context.Context, tx usecase.Transaction, periodID string) (int64, error)
	MarkPostedFunc          func(ctx context.Context, tx usecase.Transaction, id string, totalDebit, totalCredit decimal.Decimal, postedBy string, postedAt time.Time) error
	ListFunc                func(ctx context.Context, filter usecase.JournalFilter) ([]*domain.Journal, error)
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{
		journals: make(map[string]*domain.Journal),
	}
}

// Add stores journal as is.
func (m *MockJournalRepository) Add(journal *domain.Journal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *journal
	cp.Lines = nil
	m.journals[journal.ID] = &cp
}

func (m *MockJournalRepository) Create(ctx context.Context, tx usecase.Transaction, journal *domain.Journal) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, journal)
	}
	m.Add(journal)
	return nil
}

func (m *MockJournalRepository) GetByID(ctx context.Context, id string) (*domain.Journal, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if j, ok := m.journals[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, domain.NewNotFound(domain.ResourceJournal, id)
}

func (m *MockJournalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Journal, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockJournalRepository) ReferenceExists(ctx context.Context, tx usecase.Transaction, periodID, reference string) (bool, error) {
	if m.ReferenceExistsFunc != nil {
		return m.ReferenceExistsFunc(ctx, tx, periodID, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, j := range m.journals {
		if j.PeriodID == periodID && j.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockJournalRepository) CountDraftsInPeriod(ctx context.Context, tx usecase.Transaction, periodID string) (int64, error) {
	if m.CountDraftsInPeriodFunc != nil {
		return m.CountDraftsInPeriodFunc(ctx, tx, periodID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, j := range m.journals {
		if j.PeriodID == periodID && j.Status == domain.JournalStatusDraft {
			n++
		}
	}
	return n, nil
}

func (m *MockJournalRepository) MarkPosted(ctx context.Context, tx usecase.Transaction, id string, totalDebit, totalCredit decimal.Decimal, postedBy string, postedAt time.Time) error {
	if m.MarkPostedFunc != nil {
		return m.MarkPostedFunc(ctx, tx, id, totalDebit, totalCredit, postedBy, postedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.journals[id]
	if !ok {
		return domain.NewNotFound(domain.ResourceJournal, id)
	}
	if j.IsPosted() {
		return domain.ErrAlreadyPosted
	}
	j.Status = domain.JournalStatusPosted
	j.TotalDebit = totalDebit
	j.TotalCredit = totalCredit
	j.PostedBy = &postedBy
	j.PostedAt = &postedAt
	return nil
}

func (m *MockJournalRepository) List(ctx context.Context, filter usecase.JournalFilter) ([]*domain.Journal, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var journals []*domain.Journal
	for _, j := range m.journals {
		if filter.PeriodID != "" && j.PeriodID != filter.PeriodID {
			continue
		}
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		cp := *j
		journals = append(journals, &cp)
	}
	sort.Slice(journals, func(i, j int) bool { return journals[i].Reference < journals[j].Reference })
	return page(journals, filter.Limit, filter.Offset), nil
}

// MockJournalLineRepository is a mock implementation of JournalLineRepository.
type MockJournalLineRepository struct {
	mu    sync.RWMutex
	lines map[string]*domain.JournalLine

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, line *domain.JournalLine) error
	LineNumberExistsFunc func(ctx context.Context, tx usecase.Transaction, journalID string, lineNumber int) (bool, error)
	ListByJournalFunc    func(ctx context.Context, journalID string) ([]*domain.JournalLine, error)
	ListByJournalTxFunc  func(ctx context.Context, tx usecase.Transaction, journalID string) ([]*domain.JournalLine, error)
}

func NewMockJournalLineRepository() *MockJournalLineRepository {
	return &MockJournalLineRepository{
		lines: make(map[string]*domain.JournalLine),
	}
}

// Add stores line as is.
func (m *MockJournalLineRepository) Add(line *domain.JournalLine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *line
	m.lines[line.ID] = &cp
}

func (m *MockJournalLineRepository) Create(ctx context.Context, tx usecase.Transaction, line *domain.JournalLine) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, line)
	}
	m.Add(line)
	return nil
}

func (m *MockJournalLineRepository) LineNumberExists(ctx context.Context, tx usecase.Transaction, journalID string, lineNumber int) (bool, error) {
	if m.LineNumberExistsFunc != nil {
		return m.LineNumberExistsFunc(ctx, tx, journalID, lineNumber)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.lines {
		if l.JournalID == journalID && l.LineNumber == lineNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockJournalLineRepository) ListByJournal(ctx context.Context, journalID string) ([]*domain.JournalLine, error) {
	if m.ListByJournalFunc != nil {
		return m.ListByJournalFunc(ctx, journalID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var lines []*domain.JournalLine
	for _, l := range m.lines {
		if l.JournalID == journalID {
			cp := *l
			lines = append(lines, &cp)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].LineNumber < lines[j].LineNumber })
	return lines, nil
}

func (m *MockJournalLineRepository) ListByJournalTx(ctx context.Context, tx usecase.Transaction, journalID string) ([]*domain.JournalLine, error) {
	if m.ListByJournalTxFunc != nil {
		return m.ListByJournalTxFunc(ctx, tx, journalID)
	}
	return m.ListByJournal(ctx, journalID)
}

// MockCapitalMovementRepository is a mock implementation of CapitalMovementRepository.
type MockCapitalMovementRepository struct {
	mu        sync.RWMutex
	movements map[string]*domain.CapitalMovement

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, movement *domain.CapitalMovement) error
	ListByPartnerFunc func(ctx context.Context, partnerID string, limit, offset int) ([]*domain.CapitalMovement, error)
}

func NewMockCapitalMovementRepository() *MockCapitalMovementRepository {
	return &MockCapitalMovementRepository{
		movements: make(map[string]*domain.CapitalMovement),
	}
}

func (m *MockCapitalMovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.CapitalMovement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *movement
	m.movements[movement.ID] = &cp
	return nil
}

func (m *MockCapitalMovementRepository) ListByPartner(ctx context.Context, partnerID string, limit, offset int) ([]*domain.CapitalMovement, error) {
	if m.ListByPartnerFunc != nil {
		return m.ListByPartnerFunc(ctx, partnerID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var movements []*domain.CapitalMovement
	for _, mv := range m.movements {
		if mv.PartnerID == partnerID {
			cp := *mv
			movements = append(movements, &cp)
		}
	}
	sort.Slice(movements, func(i, j int) bool { return movements[i].MovementDate.After(movements[j].MovementDate) })
	return page(movements, limit, offset), nil
}

// MockReportRepository is a mock implementation of ReportRepository that
// aggregates over the in-memory account, journal and line mocks.
type MockReportRepository struct {
	accounts *MockAccountRepository
	journals *MockJournalRepository
	lines    *MockJournalLineRepository

	TrialBalanceRowsFunc  func(ctx context.Context, periodID string) ([]domain.TrialBalanceRow, error)
	GeneralLedgerRowsFunc func(ctx context.Context, filter domain.GeneralLedgerFilter) ([]domain.GeneralLedgerRow, error)
	PostedTotalsFunc      func(ctx context.Context) (domain.LedgerTotals, error)
}

func NewMockReportRepository(
	accounts *MockAccountRepository,
	journals *MockJournalRepository,
	lines *MockJournalLineRepository,
) *MockReportRepository {
	return &MockReportRepository{
		accounts: accounts,
		journals: journals,
		lines:    lines,
	}
}

// postedLines returns lines of posted journals with their journal.
func (m *MockReportRepository) postedLines(keep func(j *domain.Journal, l *domain.JournalLine) bool) ([]*domain.JournalLine, map[string]*domain.Journal) {
	m.journals.mu.RLock()
	defer m.journals.mu.RUnlock()
	m.lines.mu.RLock()
	defer m.lines.mu.RUnlock()

	journals := make(map[string]*domain.Journal)
	var lines []*domain.JournalLine
	for _, l := range m.lines.lines {
		j, ok := m.journals.journals[l.JournalID]
		if !ok || !j.IsPosted() || !keep(j, l) {
			continue
		}
		journals[j.ID] = j
		lines = append(lines, l)
	}
	return lines, journals
}

func (m *MockReportRepository) TrialBalanceRows(ctx context.Context, periodID string) ([]domain.TrialBalanceRow, error) {
	if m.TrialBalanceRowsFunc != nil {
		return m.TrialBalanceRowsFunc(ctx, periodID)
	}
	lines, _ := m.postedLines(func(j *domain.Journal, _ *domain.JournalLine) bool {
		return j.PeriodID == periodID
	})

	m.accounts.mu.RLock()
	defer m.accounts.mu.RUnlock()

	byAccount := make(map[string]*domain.TrialBalanceRow)
	for _, l := range lines {
		acc, ok := m.accounts.accounts[l.AccountID]
		if !ok || !acc.IsActive {
			continue
		}
		row, ok := byAccount[acc.ID]
		if !ok {
			row = &domain.TrialBalanceRow{
				AccountID:       acc.ID,
				AccountCode:     acc.Code,
				AccountName:     acc.Name,
				AccountType:     acc.AccountType,
				Currency:        acc.Currency,
				TotalDebit:      decimal.Zero,
				TotalCredit:     decimal.Zero,
				TotalDebitBase:  decimal.Zero,
				TotalCreditBase: decimal.Zero,
			}
			byAccount[acc.ID] = row
		}
		row.TotalDebit = row.TotalDebit.Add(l.DebitAmount)
		row.TotalCredit = row.TotalCredit.Add(l.CreditAmount)
		row.TotalDebitBase = row.TotalDebitBase.Add(l.DebitAmountBase)
		row.TotalCreditBase = row.TotalCreditBase.Add(l.CreditAmountBase)
	}

	rows := make([]domain.TrialBalanceRow, 0, len(byAccount))
	for _, row := range byAccount {
		rows = append(rows, *row)
	}
	return rows, nil
}

func (m *MockReportRepository) GeneralLedgerRows(ctx context.Context, filter domain.GeneralLedgerFilter) ([]domain.GeneralLedgerRow, error) {
	if m.GeneralLedgerRowsFunc != nil {
		return m.GeneralLedgerRowsFunc(ctx, filter)
	}
	lines, journals := m.postedLines(func(j *domain.Journal, l *domain.JournalLine) bool {
		if filter.AccountID != nil && l.AccountID != *filter.AccountID {
			return false
		}
		if filter.FromDate != nil && j.JournalDate.Before(*filter.FromDate) {
			return false
		}
		if filter.ToDate != nil && j.JournalDate.After(*filter.ToDate) {
			return false
		}
		return true
	})

	m.accounts.mu.RLock()
	defer m.accounts.mu.RUnlock()

	rows := make([]domain.GeneralLedgerRow, 0, len(lines))
	for _, l := range lines {
		j := journals[l.JournalID]
		row := domain.GeneralLedgerRow{
			JournalID:        j.ID,
			Reference:        j.Reference,
			JournalDate:      j.JournalDate,
			LineNumber:       l.LineNumber,
			AccountID:        l.AccountID,
			Description:      l.Description,
			DebitAmount:      l.DebitAmount,
			CreditAmount:     l.CreditAmount,
			DebitAmountBase:  l.DebitAmountBase,
			CreditAmountBase: l.CreditAmountBase,
		}
		if acc, ok := m.accounts.accounts[l.AccountID]; ok {
			row.AccountCode = acc.Code
			row.AccountName = acc.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *MockReportRepository) PostedTotals(ctx context.Context) (domain.LedgerTotals, error) {
	if m.PostedTotalsFunc != nil {
		return m.PostedTotalsFunc(ctx)
	}
	lines, _ := m.postedLines(func(*domain.Journal, *domain.JournalLine) bool { return true })
	totals := domain.LedgerTotals{
		Debit:      decimal.Zero,
		Credit:     decimal.Zero,
		DebitBase:  decimal.Zero,
		CreditBase: decimal.Zero,
	}
	for _, l := range lines {
		totals.Debit = totals.Debit.Add(l.DebitAmount)
		totals.Credit = totals.Credit.Add(l.CreditAmount)
		totals.DebitBase = totals.DebitBase.Add(l.DebitAmountBase)
		totals.CreditBase = totals.CreditBase.Add(l.CreditAmountBase)
	}
	return totals, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

// Events returns a snapshot of every stored event.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.OutboxEvent, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return nil
}

// MockAuditLogger is a mock implementation of AuditLogger.
type MockAuditLogger struct {
	mu      sync.RWMutex
	entries []*domain.AuditLog

	RecordFunc func(ctx context.Context, log *domain.AuditLog) error
}

func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// Entries returns a snapshot of the recorded entries.
func (m *MockAuditLogger) Entries() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.AuditLog, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MockAuditLogger) Record(ctx context.Context, log *domain.AuditLog) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, log)
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is an in-memory implementation of Cache without expiry.
type MockCache struct {
	mu   sync.RWMutex
	data map[string]string

	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key, value string, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string]string),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", fmt.Errorf("cache miss: %s", key)
	}
	return v, nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
