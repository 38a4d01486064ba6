// Package admin contains administrator-only use cases.
package admin

import (
	"context"
	"fmt"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
)

// GetOverviewOutput represents the output of the admin overview.
type GetOverviewOutput struct {
	Users      []*entity.User
	RoleCounts map[entity.Role]int64
}

// GetOverviewUseCase assembles the user overview for the admin dashboard.
type GetOverviewUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(userRepo adapter.UserRepository) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		userRepo: userRepo,
	}
}

// Execute returns all accounts with per-role counts.
func (uc *GetOverviewUseCase) Execute(ctx context.Context) (*GetOverviewOutput, error) {
	users, err := uc.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	counts, err := uc.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}

	return &GetOverviewOutput{
		Users:      users,
		RoleCounts: counts,
	}, nil
}
