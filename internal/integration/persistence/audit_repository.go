package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	"github.com/minn-platform/backend/internal/integration/persistence/model"
)

// auditRepository implements the adapter.AuditRepository interface.
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository instance.
func NewAuditRepository(db *gorm.DB) adapter.AuditRepository {
	return &auditRepository{
		db: db,
	}
}

// Create appends an audit event.
func (r *auditRepository) Create(ctx context.Context, event *entity.AuditEvent) error {
	eventModel := model.AuditEventFromEntity(event)
	result := r.db.WithContext(ctx).Create(eventModel)
	return result.Error
}

// ListRecent retrieves the most recent events, newest first.
func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]*entity.AuditEvent, error) {
	return r.list(ctx, limit, "")
}

// ListByUser retrieves the most recent events for one public user ID, newest first.
func (r *auditRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.AuditEvent, error) {
	return r.list(ctx, limit, userID)
}

func (r *auditRepository) list(ctx context.Context, limit int, userID string) ([]*entity.AuditEvent, error) {
	query := r.db.WithContext(ctx).Order("timestamp DESC").Limit(limit)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var eventModels []model.AuditEventModel
	if result := query.Find(&eventModels); result.Error != nil {
		return nil, result.Error
	}

	events := make([]*entity.AuditEvent, len(eventModels))
	for i := range eventModels {
		events[i] = eventModels[i].ToEntity()
	}
	return events, nil
}
