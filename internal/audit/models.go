package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Actions recorded for civic record mutations.
const (
	ActionWargaCreated    = "warga.created"
	ActionWargaUpdated    = "warga.updated"
	ActionWargaDeleted    = "warga.deleted"
	ActionKeluargaCreated = "keluarga.created"
	ActionKeluargaUpdated = "keluarga.updated"
	ActionKeluargaDeleted = "keluarga.deleted"
)

// Event records who changed which record. Subject is the NIK for warga
// events and the decimal id for keluarga events.
type Event struct {
	ID        uuid.UUID
	Timestamp time.Time
	Actor     string
	Action    string
	Subject   string
	Detail    string
	RequestID string
}

// Store is an append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
