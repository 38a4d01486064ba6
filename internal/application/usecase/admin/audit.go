// Package admin contains administrator-only use cases.
package admin

import (
	"context"
	"log/slog"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
)

// recordAudit appends an audit event. Failures are logged and swallowed so
// auditing never fails the operation being audited.
func recordAudit(ctx context.Context, repo adapter.AuditRepository, event *entity.AuditEvent) {
	if repo == nil {
		return
	}
	if err := repo.Create(ctx, event); err != nil {
		slog.Error("Failed to record audit event",
			"error", err,
			"eventType", event.EventType,
			"userID", event.UserID,
		)
	}
}
