package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fxledger/internal/domain"
)

// auditTrail writes audit entries after a mutation has committed.
// A failed write is logged and otherwise ignored.
type auditTrail struct {
	logger AuditLogger
	log    zerolog.Logger
}

func newAuditTrail(logger AuditLogger, log zerolog.Logger) auditTrail {
	return auditTrail{logger: logger, log: log}
}

func (a auditTrail) record(
	ctx context.Context,
	table, recordID string,
	action domain.AuditAction,
	oldValues, newValues any,
	actor string,
) {
	if a.logger == nil {
		return
	}

	meta := domain.RequestMetaFromContext(ctx)
	entry := &domain.AuditLog{
		TableName: table,
		RecordID:  recordID,
		Action:    action,
		OldValues: domain.MarshalState(oldValues),
		NewValues: domain.MarshalState(newValues),
		Actor:     actorOrDefault(actor),
		IPAddress: meta.IPAddress,
		RequestID: meta.RequestID,
		CreatedAt: time.Now().UTC(),
	}

	if err := a.logger.Record(ctx, entry); err != nil {
		a.log.Warn().
			Err(err).
			Str("table", table).
			Str("record_id", recordID).
			Str("action", string(action)).
			Msg("audit log write failed")
	}
}
