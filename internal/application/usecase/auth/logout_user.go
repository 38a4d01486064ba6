package auth

import (
	"context"

	"github.com/minn-platform/backend/internal/application/adapter"
)

// LogoutUserInput carries the refresh token to revoke.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserOutput confirms the logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase ends a session by revoking its refresh token.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase builds the use case.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{tokenService: tokenService}
}

// Execute revokes the refresh token. Logout is idempotent: a token that is
// unknown or already revoked still reports success, since either way it can
// no longer be redeemed.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	_ = uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken)

	return &LogoutUserOutput{Message: "Successfully logged out"}, nil
}
