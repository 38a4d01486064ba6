// Package adapters implements the driven-side ports: bcrypt hashing,
// JWT minting and verification, identifier generation, reset tokens
// and the login failure guards.
package adapters

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"

	"github.com/minn-platform/backend/internal/application/adapter"
)

const (
	publicIDMaxAttempts = 50
	usernameMaxAttempts = 1000
)

// identityService implements the adapter.IdentityService interface. Public
// account IDs look like MINN250825JD482307: prefix, date, initials, four
// random digits and a two-digit checksum (byte sum of the rest mod 97).
type identityService struct {
	prefix   string
	userRepo adapter.UserRepository
}

// NewIdentityService creates a new identity service instance.
func NewIdentityService(prefix string, userRepo adapter.UserRepository) adapter.IdentityService {
	return &identityService{
		prefix:   prefix,
		userRepo: userRepo,
	}
}

// GeneratePublicID generates a unique public account identifier.
func (s *identityService) GeneratePublicID(ctx context.Context, firstName, lastName string) (string, error) {
	datePart := time.Now().UTC().Format("060102")
	initials := nameInitials(firstName, lastName)

	var core string
	for attempt := 0; attempt < publicIDMaxAttempts; attempt++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10000))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digits: %w", err)
		}
		core = fmt.Sprintf("%s%s%s%04d", s.prefix, datePart, initials, n.Int64())
		candidate := core + checksum(core)

		exists, err := s.userRepo.ExistsByPublicID(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check account id uniqueness: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}

	// Extremely unlikely fallback: salt with the clock instead of a checksum
	return fmt.Sprintf("%s%d", core, time.Now().Unix()%10000), nil
}

// GenerateUsername builds a readable unique username of the form
// first.last.cou[.org], adding an integer suffix on collision.
func (s *identityService) GenerateUsername(ctx context.Context, firstName, lastName, country, organization string) (string, error) {
	parts := []string{
		sanitizeNamePart(firstName),
		sanitizeNamePart(lastName),
		truncate(sanitizeNamePart(country), 3),
	}
	if org := truncate(sanitizeNamePart(organization), 3); org != "" {
		parts = append(parts, org)
	}
	base := strings.Join(parts, ".")

	candidate := base
	for attempt := 1; attempt <= usernameMaxAttempts; attempt++ {
		exists, err := s.userRepo.ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check username uniqueness: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, attempt)
	}
	return "", fmt.Errorf("could not find a free username for %q", base)
}

// checksum returns the two-digit byte sum of s modulo 97.
func checksum(s string) string {
	sum := 0
	for _, b := range []byte(s) {
		sum += int(b)
	}
	return fmt.Sprintf("%02d", sum%97)
}

// nameInitials returns the uppercased first letter of each name.
func nameInitials(firstName, lastName string) string {
	var b strings.Builder
	for _, name := range []string{firstName, lastName} {
		for _, r := range name {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}

// sanitizeNamePart lowercases and strips everything but ASCII letters and digits.
func sanitizeNamePart(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
