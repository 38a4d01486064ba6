package entity

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use credential mailed to a user. Redeeming
// it proves mailbox ownership, so a reset also clears any account lockout.
type PasswordResetToken struct {
	ID        uuid.UUID
	Token     string
	UserID    uuid.UUID
	Email     string
	Used      bool
	UsedAt    *time.Time
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewPasswordResetToken creates an unused reset token valid for ttl.
func NewPasswordResetToken(userID uuid.UUID, email, token string, ttl time.Duration) *PasswordResetToken {
	now := time.Now().UTC()
	return &PasswordResetToken{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		Email:     email,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// Expired reports whether the token's lifetime has passed.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
