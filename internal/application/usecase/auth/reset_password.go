package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

// ResetPasswordInput carries the reset token and the replacement password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
	ClientIP    string
}

// ResetPasswordOutput confirms the reset.
type ResetPasswordOutput struct {
	Message string
}

// ResetPasswordUseCase redeems a reset token against a new password. A
// successful reset also clears any account lock and revokes all refresh
// tokens: the user proved mailbox ownership, and sessions stolen along
// with the old password die with it.
type ResetPasswordUseCase struct {
	userRepo    adapter.UserRepository
	passwords   adapter.PasswordService
	resetTokens adapter.PasswordResetTokenService
	sessions    adapter.TokenService
	loginGuard  adapter.LoginGuard
	auditRepo   adapter.AuditRepository
}

// NewResetPasswordUseCase builds the use case.
func NewResetPasswordUseCase(
	userRepo adapter.UserRepository,
	passwords adapter.PasswordService,
	resetTokens adapter.PasswordResetTokenService,
	sessions adapter.TokenService,
	loginGuard adapter.LoginGuard,
	auditRepo adapter.AuditRepository,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		userRepo:    userRepo,
		passwords:   passwords,
		resetTokens: resetTokens,
		sessions:    sessions,
		loginGuard:  loginGuard,
		auditRepo:   auditRepo,
	}
}

// Execute performs the password reset. The new password is accepted as
// given; the strength meter is advisory only.
func (uc *ResetPasswordUseCase) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordOutput, error) {
	if input.NewPassword == "" {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeMissingFields, "new password is required", nil)
	}

	token, err := uc.redeemableToken(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	hash, err := uc.passwords.HashPassword(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hash
	user.ClearLock()
	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user password: %w", err)
	}

	// The password is changed at this point; everything below is cleanup
	// that must not fail the request.
	if err := uc.loginGuard.Reset(ctx, user.PublicID); err != nil {
		slog.Warn("Failed to reset login guard counter", "error", err, "userID", user.PublicID)
	}
	if err := uc.resetTokens.InvalidateResetToken(ctx, input.Token); err != nil {
		slog.Warn("Failed to invalidate reset token", "error", err, "userID", user.PublicID)
	}
	if err := uc.sessions.InvalidateAllUserTokens(ctx, user.ID); err != nil {
		slog.Warn("Failed to revoke refresh tokens after reset", "error", err, "userID", user.PublicID)
	}

	recordAudit(ctx, uc.auditRepo, entity.NewAuditEvent(entity.AuditPasswordReset, user.PublicID, user.Username, input.ClientIP))

	return &ResetPasswordOutput{Message: "Password has been successfully reset"}, nil
}

// redeemableToken loads the reset token, distinguishing unknown-or-used
// from expired so the two answer with different codes.
func (uc *ResetPasswordUseCase) redeemableToken(ctx context.Context, raw string) (*entity.PasswordResetToken, error) {
	token, err := uc.resetTokens.ValidateResetToken(ctx, raw)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidResetToken,
			"invalid or expired password reset token",
			domainerror.ErrInvalidResetToken,
		)
	}
	if token.Expired(time.Now().UTC()) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeExpiredResetToken,
			"password reset token has expired",
			domainerror.ErrInvalidResetToken,
		)
	}
	return token, nil
}
