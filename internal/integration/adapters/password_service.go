package adapters

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/minn-platform/backend/internal/application/adapter"
)

// bcryptCost applies to new hashes only; stored hashes keep the cost they
// were minted with and still verify after the constant changes.
const bcryptCost = 12

// passwordService hashes and verifies passwords with bcrypt.
type passwordService struct {
	cost int
}

// NewPasswordService creates a password service using the default cost.
func NewPasswordService() adapter.PasswordService {
	return &passwordService{cost: bcryptCost}
}

// HashPassword derives a bcrypt hash from the plaintext. bcrypt rejects
// passwords longer than 72 bytes rather than silently truncating them.
func (s *passwordService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
