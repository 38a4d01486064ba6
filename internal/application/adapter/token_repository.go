package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// TokenRepository persists refresh tokens and password reset tokens.
// Refresh tokens are stored so rotation and logout can revoke them;
// reset tokens are single use and keep their redemption timestamp.
type TokenRepository interface {
	// SaveRefreshToken stores a newly issued refresh token.
	SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error

	// IsRefreshTokenValid reports whether the token exists, has not been
	// revoked and has not expired.
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)

	// InvalidateRefreshToken revokes one refresh token.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// InvalidateAllUserRefreshTokens revokes every refresh token of a user.
	InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error

	// SavePasswordResetToken stores a reset token.
	SavePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error

	// GetPasswordResetToken retrieves an unredeemed reset token, or nil
	// when no such token exists.
	GetPasswordResetToken(ctx context.Context, token string) (*entity.PasswordResetToken, error)

	// MarkPasswordResetTokenUsed records the token's redemption.
	MarkPasswordResetTokenUsed(ctx context.Context, token string) error
}
