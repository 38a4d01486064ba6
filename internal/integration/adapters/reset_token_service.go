package adapters

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
)

// resetTokenTTL is how long a password reset link stays redeemable.
const resetTokenTTL = time.Hour

// resetTokenService implements adapter.PasswordResetTokenService with
// opaque random tokens. Unlike the JWTs, reset tokens carry no claims;
// everything about them lives in the database.
type resetTokenService struct {
	tokens adapter.TokenRepository
}

// NewPasswordResetTokenService creates the reset token service.
func NewPasswordResetTokenService(tokens adapter.TokenRepository) adapter.PasswordResetTokenService {
	return &resetTokenService{tokens: tokens}
}

// GenerateResetToken mints and stores a reset token for the user.
func (s *resetTokenService) GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*entity.PasswordResetToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generating reset token: %w", err)
	}

	token := entity.NewPasswordResetToken(userID, email, hex.EncodeToString(raw), resetTokenTTL)
	if err := s.tokens.SavePasswordResetToken(ctx, token); err != nil {
		return nil, fmt.Errorf("storing reset token: %w", err)
	}

	return token, nil
}

// ValidateResetToken retrieves an unredeemed token.
func (s *resetTokenService) ValidateResetToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	stored, err := s.tokens.GetPasswordResetToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("looking up reset token: %w", err)
	}
	if stored == nil {
		return nil, fmt.Errorf("unknown or redeemed reset token")
	}
	return stored, nil
}

// InvalidateResetToken marks a token redeemed after a successful reset.
func (s *resetTokenService) InvalidateResetToken(ctx context.Context, token string) error {
	return s.tokens.MarkPasswordResetTokenUsed(ctx, token)
}
