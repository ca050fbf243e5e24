package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iho/fxledger/internal/domain"
)

// AuditRepository implements usecase.AuditLogger on the audit_logs table.
type AuditRepository struct {
	db DB
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(db DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record inserts a new audit log entry outside any business transaction.
func (r *AuditRepository) Record(ctx context.Context, log *domain.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	oldValues, err := marshalJSON(log.OldValues)
	if err != nil {
		return err
	}
	newValues, err := marshalJSON(log.NewValues)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO audit_logs (
			id, table_name, record_id, action, old_values, new_values,
			actor, ip_address, request_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		log.ID,
		log.TableName,
		log.RecordID,
		string(log.Action),
		oldValues,
		newValues,
		log.Actor,
		log.IPAddress,
		log.RequestID,
		log.CreatedAt,
	)

	return err
}

// List retrieves audit logs matching filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	var (
		where []string
		args  []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("table_name", filter.TableName)
	add("record_id", filter.RecordID)
	add("actor", filter.Actor)

	query := `
		SELECT id, table_name, record_id, action, old_values, new_values,
		       actor, ip_address, request_id, created_at
		FROM audit_logs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}

	limit, offset := domain.ValidatePagination(filter.Limit, filter.Offset)
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*domain.AuditLog, 0)
	for rows.Next() {
		var (
			log                  domain.AuditLog
			action               string
			oldValues, newValues []byte
		)
		err := rows.Scan(
			&log.ID,
			&log.TableName,
			&log.RecordID,
			&action,
			&oldValues,
			&newValues,
			&log.Actor,
			&log.IPAddress,
			&log.RequestID,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		log.Action = domain.AuditAction(action)
		if oldValues != nil {
			_ = json.Unmarshal(oldValues, &log.OldValues)
		}
		if newValues != nil {
			_ = json.Unmarshal(newValues, &log.NewValues)
		}
		logs = append(logs, &log)
	}

	return logs, rows.Err()
}

func marshalJSON(v domain.JSON) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
