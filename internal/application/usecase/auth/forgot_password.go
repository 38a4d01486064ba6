package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

// resetRequestReply answers every well-formed forgot-password request.
// Known and unknown addresses must be indistinguishable, so the reply
// never varies and failures past the format check are only logged.
const resetRequestReply = "If an account with that email exists, we have sent a password reset link"

// ForgotPasswordInput carries the address the reset link should go to.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordOutput carries the uniform reply.
type ForgotPasswordOutput struct {
	Message string
}

// ForgotPasswordUseCase issues a password reset token and queues the email
// that delivers it.
type ForgotPasswordUseCase struct {
	userRepo    adapter.UserRepository
	resetTokens adapter.PasswordResetTokenService
	emails      adapter.EmailService
	appBaseURL  string
}

// NewForgotPasswordUseCase builds the use case. appBaseURL is where
// the reset link points, normally the public origin of the web pages.
func NewForgotPasswordUseCase(
	userRepo adapter.UserRepository,
	resetTokens adapter.PasswordResetTokenService,
	emails adapter.EmailService,
	appBaseURL string,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		userRepo:    userRepo,
		resetTokens: resetTokens,
		emails:      emails,
		appBaseURL:  appBaseURL,
	}
}

// Execute handles a forgot-password request.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	if !isValidEmail(input.Email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	reply := &ForgotPasswordOutput{Message: resetRequestReply}

	user, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		slog.Debug("Reset requested for unknown address", "email", input.Email)
		return reply, nil
	}

	token, err := uc.resetTokens.GenerateResetToken(ctx, user.ID, user.Email)
	if err != nil {
		slog.Error("Failed to issue reset token", "error", err, "userID", user.PublicID)
		return reply, nil
	}

	uc.sendResetLink(ctx, user, token.Token)
	return reply, nil
}

// sendResetLink queues the reset email. Without an email service the link
// is logged instead, which keeps the flow usable in development.
func (uc *ForgotPasswordUseCase) sendResetLink(ctx context.Context, user *entity.User, token string) {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", uc.appBaseURL, token)

	if uc.emails == nil {
		slog.Info("Password reset link (no email service configured)",
			"userID", user.PublicID,
			"email", user.Email,
			"resetURL", resetURL,
		)
		return
	}

	err := uc.emails.QueuePasswordResetEmail(ctx, adapter.QueuePasswordResetInput{
		UserID:    user.ID.String(),
		UserEmail: user.Email,
		UserName:  user.FullName(),
		ResetURL:  resetURL,
		ExpiresIn: "1 hour",
	})
	if err != nil {
		slog.Error("Failed to queue password reset email", "error", err, "userID", user.PublicID)
		return
	}
	slog.Info("Password reset email queued", "userID", user.PublicID, "email", user.Email)
}
