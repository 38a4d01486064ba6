package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// TokenPair holds the two tokens handed out on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims is the verified identity carried inside a JWT. Role rides in
// the token so authorization does not need a user lookup per request.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	Role      entity.Role
	ExpiresAt time.Time
}

// TokenService issues and verifies the JWT pair used by the API.
type TokenService interface {
	// GenerateTokenPair mints an access and refresh token pair and stores
	// the refresh token for later revocation.
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, role entity.Role) (*TokenPair, error)

	// ValidateAccessToken verifies an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// ValidateRefreshToken verifies a refresh token and returns its claims.
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// InvalidateRefreshToken revokes one refresh token.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// InvalidateAllUserTokens revokes every refresh token of a user.
	InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error

	// IsRefreshTokenValid reports whether a refresh token is still usable.
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)
}

// PasswordResetTokenService issues and redeems single-use reset tokens.
type PasswordResetTokenService interface {
	// GenerateResetToken mints and stores a reset token for the user.
	GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*entity.PasswordResetToken, error)

	// ValidateResetToken retrieves an unredeemed token. Expiry is the
	// caller's check, so it can distinguish expired from unknown tokens.
	ValidateResetToken(ctx context.Context, token string) (*entity.PasswordResetToken, error)

	// InvalidateResetToken marks a token redeemed after a successful reset.
	InvalidateResetToken(ctx context.Context, token string) error
}
