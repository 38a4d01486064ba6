// Package admin contains administrator-only use cases.
package admin

import (
	"context"
	"fmt"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// ListAuditEventsInput represents the input for listing audit events.
type ListAuditEventsInput struct {
	UserID string // optional: restrict to one public account identifier
	Limit  int    // 0 means the default
}

// ListAuditEventsOutput represents the output of listing audit events.
type ListAuditEventsOutput struct {
	Events []*entity.AuditEvent
}

// ListAuditEventsUseCase retrieves recent security log records.
type ListAuditEventsUseCase struct {
	auditRepo adapter.AuditRepository
}

// NewListAuditEventsUseCase creates a new ListAuditEventsUseCase instance.
func NewListAuditEventsUseCase(auditRepo adapter.AuditRepository) *ListAuditEventsUseCase {
	return &ListAuditEventsUseCase{
		auditRepo: auditRepo,
	}
}

// Execute lists the most recent audit events, newest first.
func (uc *ListAuditEventsUseCase) Execute(ctx context.Context, input ListAuditEventsInput) (*ListAuditEventsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	var events []*entity.AuditEvent
	var err error
	if input.UserID != "" {
		events, err = uc.auditRepo.ListByUser(ctx, input.UserID, limit)
	} else {
		events, err = uc.auditRepo.ListRecent(ctx, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}

	return &ListAuditEventsOutput{Events: events}, nil
}
