package domain

import (
	"context"
	"encoding/json"
	"time"
)

// AuditLog records one mutation for compliance and debugging.
type AuditLog struct {
	ID        string
	TableName string // table the mutated record lives in
	RecordID  string
	Action    AuditAction
	OldValues JSON
	NewValues JSON
	Actor     string
	IPAddress string
	RequestID string
	CreatedAt time.Time
}

// JSON is a free-form JSON object.
type JSON map[string]any

// AuditAction names an audited mutation.
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionPost   AuditAction = "post"
	AuditActionClose  AuditAction = "close"
	AuditActionLock   AuditAction = "lock"
)

// Audited table names.
const (
	TablePeriods          = "periods"
	TableFxRates          = "fx_rates"
	TableJournals         = "journals"
	TableJournalLines     = "journal_lines"
	TableAccounts         = "accounts"
	TableCapitalMovements = "capital_movements"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter narrows audit log queries.
type AuditFilter struct {
	TableName string
	RecordID  string
	Actor     string
	Limit     int
	Offset    int
}

// RequestMeta carries caller details that audit entries need.
type RequestMeta struct {
	RequestID string
	IPAddress string
}

type requestMetaKey struct{}

// WithRequestMeta stores meta on ctx.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext returns the meta stored on ctx, if any.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta
}
