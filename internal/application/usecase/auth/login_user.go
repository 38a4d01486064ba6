// Package auth implements the account lifecycle: registration, login with
// failure lockout, token refresh, logout and the password reset flow.
package auth

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

// LoginUserInput carries the submitted credentials.
type LoginUserInput struct {
	Username string
	Password string
	ClientIP string
}

// LoginUserOutput carries the minted pair and the account.
type LoginUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// LockoutPolicy configures the failed-login lockout behavior.
type LockoutPolicy struct {
	MaxFailures  int
	LockDuration time.Duration
}

// LoginUserUseCase handles user login logic with account lockout.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	loginGuard      adapter.LoginGuard
	auditRepo       adapter.AuditRepository
	policy          LockoutPolicy
}

// NewLoginUserUseCase builds the use case.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	loginGuard adapter.LoginGuard,
	auditRepo adapter.AuditRepository,
	policy LockoutPolicy,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		loginGuard:      loginGuard,
		auditRepo:       auditRepo,
		policy:          policy,
	}
}

// Execute performs the user login. It authenticates by username, enforces
// the account lock, and counts failures toward the lockout threshold.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	user, err := uc.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		// Only a missing account maps to the credentials error; a store
		// failure must not look like a wrong password.
		if !errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to load account: %w", err)
		}

		// Generic error to prevent username enumeration
		recordAudit(ctx, uc.auditRepo, entity.NewAuditEvent(entity.AuditLoginFailed, "", input.Username, input.ClientIP).
			WithMetadata("reason", "no_user"))
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid username or password",
			domainerror.ErrInvalidCredentials,
		)
	}

	now := time.Now().UTC()
	if user.IsLocked(now) {
		recordAudit(ctx, uc.auditRepo, entity.NewAuditEvent(entity.AuditLoginBlocked, user.PublicID, user.Username, input.ClientIP).
			WithMetadata("reason", "locked").
			WithMetadata("locked_until", user.LockedUntil.Format(time.RFC3339)))
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeAccountLocked,
			fmt.Sprintf("account locked until %s UTC", user.LockedUntil.Format(time.RFC3339)),
			domainerror.ErrAccountLocked,
		)
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, uc.handleFailedAttempt(ctx, user, input.ClientIP)
	}

	// Successful login clears any failure state
	user.ClearLock()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to reset login failures: %w", err)
	}
	if err := uc.loginGuard.Reset(ctx, user.PublicID); err != nil {
		slog.Warn("Failed to reset login guard counter", "error", err, "userID", user.PublicID)
	}

	recordAudit(ctx, uc.auditRepo, entity.NewAuditEvent(entity.AuditLoginSuccess, user.PublicID, user.Username, input.ClientIP))

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &LoginUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// handleFailedAttempt counts the failure and locks the account once the
// threshold is reached. The guard counter expires on its own; the lock on
// the user row is what login checks.
func (uc *LoginUserUseCase) handleFailedAttempt(ctx context.Context, user *entity.User, clientIP string) error {
	attempts, err := uc.loginGuard.RecordFailure(ctx, user.PublicID)
	if err != nil {
		// Degraded guard: fall back to the persisted counter so lockout
		// still works without Redis.
		slog.Warn("Login guard unavailable, using persisted counter", "error", err, "userID", user.PublicID)
		attempts = user.FailedLogins + 1
	}

	user.FailedLogins = attempts
	locked := false
	if attempts >= uc.policy.MaxFailures {
		until := time.Now().UTC().Add(uc.policy.LockDuration)
		user.LockedUntil = &until
		locked = true
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		slog.Error("Failed to persist login failure state", "error", err, "userID", user.PublicID)
	}

	if locked {
		recordAudit(ctx, uc.auditRepo, entity.NewAuditEvent(entity.AuditAccountLocked, user.PublicID, user.Username, clientIP).
			WithMetadata("attempts", attempts))
		return domainerror.NewAuthError(
			domainerror.ErrCodeAccountLocked,
			fmt.Sprintf("too many failed attempts, account locked until %s UTC", user.LockedUntil.Format(time.RFC3339)),
			domainerror.ErrAccountLocked,
		)
	}

	recordAudit(ctx, uc.auditRepo, entity.NewAuditEvent(entity.AuditLoginFailed, user.PublicID, user.Username, clientIP).
		WithMetadata("attempts", attempts))
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid username or password",
		domainerror.ErrInvalidCredentials,
	)
}
