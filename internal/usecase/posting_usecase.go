package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fxledger/internal/domain"
)

// PostingUseCase moves journals from Draft to Posted.
type PostingUseCase struct {
	txManager   TransactionManager
	journalRepo JournalRepository
	lineRepo    JournalLineRepository
	periodRepo  PeriodRepository
	outboxRepo  OutboxRepository
	audit       auditTrail
	idGen       IDGenerator
	metrics     LedgerMetrics
	logger      zerolog.Logger
}

// NewPostingUseCase creates a new PostingUseCase. metrics may be nil.
func NewPostingUseCase(
	txManager TransactionManager,
	journalRepo JournalRepository,
	lineRepo JournalLineRepository,
	periodRepo PeriodRepository,
	outboxRepo OutboxRepository,
	auditLogger AuditLogger,
	idGen IDGenerator,
	metrics LedgerMetrics,
	logger zerolog.Logger,
) *PostingUseCase {
	return &PostingUseCase{
		txManager:   txManager,
		journalRepo: journalRepo,
		lineRepo:    lineRepo,
		periodRepo:  periodRepo,
		outboxRepo:  outboxRepo,
		audit:       newAuditTrail(auditLogger, logger),
		idGen:       idGen,
		metrics:     metrics,
		logger:      logger,
	}
}

// PostJournal validates a Draft journal and posts it. The journal row lock
// makes concurrent posts of the same journal serialize: the first commits,
// the rest see ErrAlreadyPosted.
func (uc *PostingUseCase) PostJournal(ctx context.Context, journalID, actor string) (*domain.Journal, error) {
	journal, err := uc.postJournal(ctx, journalID, actorOrDefault(actor))
	if err != nil {
		uc.rejected(journalID, err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RecordJournalPosted()
	}

	return journal, nil
}

func (uc *PostingUseCase) postJournal(ctx context.Context, journalID, actor string) (*domain.Journal, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// 1. Lock the journal row
	journal, err := uc.journalRepo.GetByIDForUpdate(txCtx, tx, journalID)
	if err != nil {
		return nil, err
	}

	// 2. Posted is terminal
	if journal.IsPosted() {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyPosted, journal.Reference)
	}

	// 3. Period must still be open
	period, err := uc.periodRepo.GetByIDForShare(txCtx, tx, journal.PeriodID)
	if err != nil {
		return nil, err
	}
	if period.IsLocked() {
		return nil, fmt.Errorf("%w: %s", domain.ErrLockedPeriod, period.Label())
	}

	// 4-7. Lines, per-line sides and base amounts, both balance equations
	lines, err := uc.lineRepo.ListByJournalTx(txCtx, tx, journal.ID)
	if err != nil {
		return nil, err
	}

	totals, err := domain.ValidateForPosting(lines)
	if err != nil {
		return nil, err
	}

	// 8. Status, totals and the event commit together
	before := *journal
	now := time.Now().UTC()
	if err := uc.journalRepo.MarkPosted(txCtx, tx, journal.ID, totals.Debit, totals.Credit, actor, now); err != nil {
		return nil, err
	}

	journal.Status = domain.JournalStatusPosted
	journal.TotalDebit = totals.Debit
	journal.TotalCredit = totals.Credit
	journal.PostedBy = &actor
	journal.PostedAt = &now
	journal.Lines = lines

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   journal.ID,
		AggregateType: domain.AggregateTypeJournal,
		EventType:     domain.EventTypeJournalPosted,
		Payload: map[string]any{
			"journal_id":   journal.ID,
			"reference":    journal.Reference,
			"period_id":    journal.PeriodID,
			"total_debit":  totals.Debit.String(),
			"total_credit": totals.Credit.String(),
			"posted_by":    actor,
			"posted_at":    now.Format(time.RFC3339Nano),
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
		Str("journal_id", journal.ID).
		Str("reference", journal.Reference).
		Str("total_debit", totals.Debit.String()).
		Str("total_debit_base", totals.DebitBase.String()).
		Str("actor", actor).
		Msg("journal posted")

	uc.audit.record(ctx, domain.TableJournals, journal.ID, domain.AuditActionPost, &before, journalState(journal), actor)

	return journal, nil
}

// journalState is the journal without lines, as stored in the audit log.
func journalState(j *domain.Journal) *domain.Journal {
	state := *j
	state.Lines = nil
	return &state
}

func (uc *PostingUseCase) rejected(journalID string, err error) {
	reason := postingRejectionReason(err)

	if uc.metrics != nil {
		uc.metrics.RecordPostingRejected(reason)
	}

	uc.logger.Info().
		Err(err).
		Str("journal_id", journalID).
		Str("reason", reason).
		Msg("journal posting rejected")
}

func postingRejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAlreadyPosted):
		return "already_posted"
	case errors.Is(err, domain.ErrLockedPeriod):
		return "locked_period"
	case errors.Is(err, domain.ErrMissingLines):
		return "missing_lines"
	case errors.Is(err, domain.ErrUnbalancedLine):
		return "unbalanced_line"
	case errors.Is(err, domain.ErrMissingBaseAmount):
		return "missing_base_amount"
	case errors.Is(err, domain.ErrUnbalancedBase):
		return "unbalanced_base"
	case errors.Is(err, domain.ErrUnbalanced):
		return "unbalanced"
	default:
		return "error"
	}
}
