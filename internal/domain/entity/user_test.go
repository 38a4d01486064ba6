package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValidRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{"Administrator", true},
		{"Investor", true},
		{"Researcher", true},
		{"administrator", false},
		{"Overlord", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidRole(tt.role); got != tt.want {
			t.Errorf("ValidRole(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestSelfServiceRole(t *testing.T) {
	if SelfServiceRole(RoleAdministrator) {
		t.Error("administrator must not be self-service")
	}
	if !SelfServiceRole(RoleInvestor) || !SelfServiceRole(RoleResearcher) {
		t.Error("investor and researcher are self-service roles")
	}
}

func TestUser_IsLocked(t *testing.T) {
	now := time.Now().UTC()

	t.Run("no lock set", func(t *testing.T) {
		u := &User{}
		if u.IsLocked(now) {
			t.Error("expected unlocked when LockedUntil is nil")
		}
	})

	t.Run("lock in the future", func(t *testing.T) {
		until := now.Add(10 * time.Minute)
		u := &User{LockedUntil: &until}
		if !u.IsLocked(now) {
			t.Error("expected locked while the lock has not expired")
		}
	})

	t.Run("lock in the past", func(t *testing.T) {
		until := now.Add(-time.Second)
		u := &User{LockedUntil: &until}
		if u.IsLocked(now) {
			t.Error("expected unlocked once the lock has expired")
		}
	})
}

func TestUser_ClearLock(t *testing.T) {
	until := time.Now().UTC().Add(10 * time.Minute)
	u := &User{FailedLogins: 5, LockedUntil: &until}

	u.ClearLock()

	if u.FailedLogins != 0 {
		t.Errorf("expected 0 failed logins, got %d", u.FailedLogins)
	}
	if u.LockedUntil != nil {
		t.Errorf("expected no lock, got %v", u.LockedUntil)
	}
}

func TestNewUser(t *testing.T) {
	u := NewUser("MINN250825JD000112", "jane.doe.sou", "Jane", "Doe", "jane@example.org", "South Africa", "MINN", RoleResearcher, "hash")

	if u.ID == uuid.Nil {
		t.Error("expected a generated internal id")
	}
	if u.FailedLogins != 0 || u.LockedUntil != nil {
		t.Error("expected zeroed lock state on a new user")
	}
	if u.FullName() != "Jane Doe" {
		t.Errorf("expected full name Jane Doe, got %q", u.FullName())
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Error("expected creation timestamps to be set")
	}
}
