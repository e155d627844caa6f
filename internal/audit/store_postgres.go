package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore appends audit events to the audit_events table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_events (id, ts, actor, action, subject, detail, request_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.Timestamp, event.Actor, event.Action, event.Subject, event.Detail, event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}
