package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"simwarga/pkg/requestcontext"
)

// Publisher captures structured audit events for record mutations. It is
// fail-open: an audit write that cannot be persisted is logged and dropped,
// never failing the business operation.
type Publisher struct {
	store  Store
	logger *slog.Logger
}

func NewPublisher(store Store, logger *slog.Logger) *Publisher {
	return &Publisher{store: store, logger: logger}
}

// Record appends an event, filling id, timestamp, actor and request id from
// the request context.
func (p *Publisher) Record(ctx context.Context, action, subject, detail string) {
	event := Event{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Actor:     requestcontext.Username(ctx),
		Action:    action,
		Subject:   subject,
		Detail:    detail,
		RequestID: requestcontext.RequestID(ctx),
	}

	if err := p.store.Append(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "failed to persist audit event",
			"action", action,
			"subject", subject,
			"error", err,
		)
	}
}
