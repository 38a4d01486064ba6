// Package admin contains administrator-only use cases.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

// UnlockAccountInput represents the input for unlocking an account.
type UnlockAccountInput struct {
	UserID     string // public account identifier
	UnlockedBy string // acting administrator, as identified by the access token
	ClientIP   string
}

// UnlockAccountOutput represents the output of unlocking an account.
type UnlockAccountOutput struct {
	User *entity.User
}

// UnlockAccountUseCase clears a lockout before its window expires.
type UnlockAccountUseCase struct {
	userRepo   adapter.UserRepository
	loginGuard adapter.LoginGuard
	auditRepo  adapter.AuditRepository
}

// NewUnlockAccountUseCase creates a new UnlockAccountUseCase instance.
func NewUnlockAccountUseCase(
	userRepo adapter.UserRepository,
	loginGuard adapter.LoginGuard,
	auditRepo adapter.AuditRepository,
) *UnlockAccountUseCase {
	return &UnlockAccountUseCase{
		userRepo:   userRepo,
		loginGuard: loginGuard,
		auditRepo:  auditRepo,
	}
}

// Execute unlocks the account identified by its public ID. Unlocking an
// account that is not locked is a no-op that still clears stale counters.
func (uc *UnlockAccountUseCase) Execute(ctx context.Context, input UnlockAccountInput) (*UnlockAccountOutput, error) {
	user, err := uc.userRepo.FindByPublicID(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to load account: %w", err)
		}
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}

	wasLocked := user.IsLocked(time.Now().UTC())
	failures, err := uc.loginGuard.Failures(ctx, user.PublicID)
	if err != nil {
		slog.Warn("Failed to read login guard counter", "error", err, "userID", user.PublicID)
		failures = user.FailedLogins
	}
	user.ClearLock()
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to unlock account: %w", err)
	}

	if err := uc.loginGuard.Reset(ctx, user.PublicID); err != nil {
		slog.Warn("Failed to reset login guard counter", "error", err, "userID", user.PublicID)
	}

	recordAudit(ctx, uc.auditRepo, entity.NewAuditEvent(entity.AuditAccountUnlocked, user.PublicID, user.Username, input.ClientIP).
		WithMetadata("unlocked_by", input.UnlockedBy).
		WithMetadata("was_locked", wasLocked).
		WithMetadata("failures_cleared", failures))

	return &UnlockAccountOutput{User: user}, nil
}
