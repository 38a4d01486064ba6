package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	"github.com/minn-platform/backend/internal/integration/persistence/model"
)

// tokenRepository implements adapter.TokenRepository on the refresh_tokens
// and password_reset_tokens tables.
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates the token repository.
func NewTokenRepository(db *gorm.DB) adapter.TokenRepository {
	return &tokenRepository{db: db}
}

// SaveRefreshToken stores a newly issued refresh token.
func (r *tokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	row := model.RefreshTokenModel{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// IsRefreshTokenValid reports whether the token exists, has not been revoked
// and has not expired.
func (r *tokenRepository) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token = ? AND invalidated = ? AND expires_at > ?", token, false, time.Now().UTC()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InvalidateRefreshToken revokes one refresh token. Revoking a token that
// does not exist is not an error; the token is just as unusable.
func (r *tokenRepository) InvalidateRefreshToken(ctx context.Context, token string) error {
	return r.revokeRefreshTokens(ctx, "token = ?", token)
}

// InvalidateAllUserRefreshTokens revokes every refresh token of a user.
func (r *tokenRepository) InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	return r.revokeRefreshTokens(ctx, "user_id = ?", userID)
}

func (r *tokenRepository) revokeRefreshTokens(ctx context.Context, query string, arg interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where(query, arg).
		Update("invalidated", true).Error
}

// SavePasswordResetToken stores a reset token.
func (r *tokenRepository) SavePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error {
	row := model.PasswordResetTokenFromEntity(token)
	return r.db.WithContext(ctx).Create(row).Error
}

// GetPasswordResetToken retrieves an unredeemed reset token, or nil when no
// such token exists. Redeemed tokens are invisible here so a token cannot
// reset a password twice.
func (r *tokenRepository) GetPasswordResetToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	var row model.PasswordResetTokenModel
	err := r.db.WithContext(ctx).
		Where("token = ? AND used = ?", token, false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.ToEntity(), nil
}

// MarkPasswordResetTokenUsed records the token's redemption.
func (r *tokenRepository) MarkPasswordResetTokenUsed(ctx context.Context, token string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&model.PasswordResetTokenModel{}).
		Where("token = ?", token).
		Updates(map[string]any{"used": true, "used_at": &now}).Error
}
