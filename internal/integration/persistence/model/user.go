// Package model holds the GORM row types and their mappings to and
// from the domain entities.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// UserModel is the users row. PublicID and Username are generated at
// registration and unique; Email is unique case-insensitively, which the
// repository enforces by querying on LOWER(email).
type UserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PublicID     string     `gorm:"type:varchar(32);uniqueIndex;not null"`
	Username     string     `gorm:"type:varchar(120);uniqueIndex;not null"`
	FirstName    string     `gorm:"type:varchar(100);not null"`
	LastName     string     `gorm:"type:varchar(100);not null"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Country      string     `gorm:"type:varchar(100);not null"`
	Organization string     `gorm:"type:varchar(100)"`
	Role         string     `gorm:"type:varchar(20);index;not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	FailedLogins int        `gorm:"not null;default:0"`
	LockedUntil  *time.Time `gorm:"type:timestamp"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// ToEntity maps the row onto the domain account.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		PublicID:     m.PublicID,
		Username:     m.Username,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Country:      m.Country,
		Organization: m.Organization,
		Role:         entity.Role(m.Role),
		PasswordHash: m.PasswordHash,
		FailedLogins: m.FailedLogins,
		LockedUntil:  m.LockedUntil,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromEntity maps a domain account onto its row.
func FromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		PublicID:     user.PublicID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Country:      user.Country,
		Organization: user.Organization,
		Role:         string(user.Role),
		PasswordHash: user.PasswordHash,
		FailedLogins: user.FailedLogins,
		LockedUntil:  user.LockedUntil,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
