// Package entity holds the domain objects the platform manages:
// accounts, the mineral catalogue with its production and deposit
// figures, audit events and queued mail.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's role on the platform.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleInvestor      Role = "Investor"
	RoleResearcher    Role = "Researcher"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdministrator, RoleInvestor, RoleResearcher:
		return true
	}
	return false
}

// SelfServiceRole reports whether the role may be chosen at registration.
// Administrator accounts are only created by the bootstrap process.
func SelfServiceRole(r Role) bool {
	return r == RoleInvestor || r == RoleResearcher
}

// User represents an account on the MINN platform. PublicID is the
// generated account identifier shown to users and used in audit records;
// ID is the internal primary key.
type User struct {
	ID           uuid.UUID
	PublicID     string
	Username     string
	FirstName    string
	LastName     string
	Email        string
	Country      string
	Organization string
	Role         Role
	PasswordHash string
	FailedLogins int
	LockedUntil  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with a fresh internal ID and zeroed lock state.
func NewUser(publicID, username, firstName, lastName, email, country, organization string, role Role, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		PublicID:     publicID,
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Country:      country,
		Organization: organization,
		Role:         role,
		PasswordHash: passwordHash,
		FailedLogins: 0,
		LockedUntil:  nil,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsLocked reports whether the account is locked at the given time.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// ClearLock resets the failure count and removes any lock.
func (u *User) ClearLock() {
	u.FailedLogins = 0
	u.LockedUntil = nil
}
