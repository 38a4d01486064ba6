package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// RefreshTokenModel represents the refresh_tokens table. Rows outlive the
// JWTs they mirror so revocation can be checked on refresh.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token       string    `gorm:"type:varchar(500);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"default:false"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// PasswordResetTokenModel is the password_reset_tokens row. Used
// flips once on redemption; the token is never deleted, so reuse is
// detectable.
type PasswordResetTokenModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Token     string     `gorm:"type:varchar(500);uniqueIndex;not null"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	Email     string     `gorm:"type:varchar(255);not null"`
	Used      bool       `gorm:"default:false"`
	UsedAt    *time.Time `gorm:"type:timestamp"`
	ExpiresAt time.Time  `gorm:"not null"`
	CreatedAt time.Time  `gorm:"not null"`
}

func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}

// ToEntity converts a PasswordResetTokenModel to a domain entity.
func (m *PasswordResetTokenModel) ToEntity() *entity.PasswordResetToken {
	return &entity.PasswordResetToken{
		ID:        m.ID,
		Token:     m.Token,
		UserID:    m.UserID,
		Email:     m.Email,
		Used:      m.Used,
		UsedAt:    m.UsedAt,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

// PasswordResetTokenFromEntity creates a PasswordResetTokenModel from a
// domain entity.
func PasswordResetTokenFromEntity(token *entity.PasswordResetToken) *PasswordResetTokenModel {
	return &PasswordResetTokenModel{
		ID:        token.ID,
		Token:     token.Token,
		UserID:    token.UserID,
		Email:     token.Email,
		Used:      token.Used,
		UsedAt:    token.UsedAt,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
}
