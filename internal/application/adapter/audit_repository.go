package adapter

import (
	"context"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// AuditRepository defines the interface for the append-only audit log.
// There is no update or delete: records are immutable once written.
type AuditRepository interface {
	// Create appends an audit event.
	Create(ctx context.Context, event *entity.AuditEvent) error

	// ListRecent retrieves the most recent events, newest first.
	ListRecent(ctx context.Context, limit int) ([]*entity.AuditEvent, error)

	// ListByUser retrieves the most recent events for one public user ID, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.AuditEvent, error)
}
