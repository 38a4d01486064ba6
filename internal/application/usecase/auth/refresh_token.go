package auth

import (
	"context"
	"fmt"

	"github.com/minn-platform/backend/internal/application/adapter"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

// RefreshTokenInput carries the refresh token being redeemed.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenOutput carries the replacement pair.
type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
}

// RefreshTokenUseCase rotates a refresh token into a fresh token pair.
type RefreshTokenUseCase struct {
	tokenService adapter.TokenService
}

// NewRefreshTokenUseCase builds the use case.
func NewRefreshTokenUseCase(tokenService adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{tokenService: tokenService}
}

// Execute redeems a refresh token. The presented token is revoked before
// the new pair is issued, so each refresh token works exactly once.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*RefreshTokenOutput, error) {
	claims, err := uc.tokenService.ValidateRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, rejectRefresh("invalid or expired refresh token")
	}

	// The signature check cannot see revocation, only the store can.
	valid, err := uc.tokenService.IsRefreshTokenValid(ctx, input.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check token validity: %w", err)
	}
	if !valid {
		return nil, rejectRefresh("refresh token has been revoked")
	}

	if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke redeemed token: %w", err)
	}

	pair, err := uc.tokenService.GenerateTokenPair(ctx, claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new tokens: %w", err)
	}

	return &RefreshTokenOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func rejectRefresh(reason string) error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidToken,
		reason,
		domainerror.ErrInvalidToken,
	)
}
