package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

// unlockUserRepo answers FindByPublicID from a single account. A set
// findErr makes the lookup fail like an unreachable store.
type unlockUserRepo struct {
	user    *entity.User
	findErr error
	updated bool
}

func (r *unlockUserRepo) FindByPublicID(ctx context.Context, publicID string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.user != nil && r.user.PublicID == publicID {
		return r.user, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *unlockUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.updated = true
	return nil
}

func (r *unlockUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (r *unlockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (r *unlockUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (r *unlockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (r *unlockUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) { return nil, nil }

func (r *unlockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (r *unlockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return false, nil
}

func (r *unlockUserRepo) ExistsByPublicID(ctx context.Context, publicID string) (bool, error) {
	return false, nil
}

func (r *unlockUserRepo) CountByRole(ctx context.Context) (map[entity.Role]int64, error) {
	return nil, nil
}

// countingGuard reports a fixed failure count and records resets.
type countingGuard struct {
	failures int
	resets   []string
}

func (g *countingGuard) RecordFailure(ctx context.Context, key string) (int, error) {
	g.failures++
	return g.failures, nil
}

func (g *countingGuard) Reset(ctx context.Context, key string) error {
	g.resets = append(g.resets, key)
	g.failures = 0
	return nil
}

func (g *countingGuard) Failures(ctx context.Context, key string) (int, error) {
	return g.failures, nil
}

type captureAuditRepo struct {
	events []*entity.AuditEvent
}

func (r *captureAuditRepo) Create(ctx context.Context, event *entity.AuditEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *captureAuditRepo) ListRecent(ctx context.Context, limit int) ([]*entity.AuditEvent, error) {
	return r.events, nil
}

func (r *captureAuditRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.AuditEvent, error) {
	return r.events, nil
}

func lockedUser() *entity.User {
	user := entity.NewUser(
		"MINN250825JD000113",
		"jane.doe.sou",
		"Jane",
		"Doe",
		"jane@example.org",
		"South Africa",
		"",
		entity.RoleResearcher,
		"bcrypt-hash",
	)
	until := time.Now().UTC().Add(10 * time.Minute)
	user.LockedUntil = &until
	user.FailedLogins = 5
	return user
}

func TestUnlockAccountUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("clears the lock and records the audit event", func(t *testing.T) {
		repo := &unlockUserRepo{user: lockedUser()}
		guard := &countingGuard{failures: 5}
		audit := &captureAuditRepo{}
		uc := NewUnlockAccountUseCase(repo, guard, audit)

		out, err := uc.Execute(ctx, UnlockAccountInput{
			UserID:     "MINN250825JD000113",
			UnlockedBy: "admin@example.org",
			ClientIP:   "10.0.0.1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.User.LockedUntil != nil || out.User.FailedLogins != 0 {
			t.Errorf("lock not cleared: failures=%d until=%v", out.User.FailedLogins, out.User.LockedUntil)
		}
		if !repo.updated {
			t.Error("cleared lock was not persisted")
		}
		if len(guard.resets) != 1 || guard.resets[0] != "MINN250825JD000113" {
			t.Errorf("expected the guard reset for the account, got %v", guard.resets)
		}

		if len(audit.events) != 1 {
			t.Fatalf("expected 1 audit event, got %d", len(audit.events))
		}
		event := audit.events[0]
		if event.EventType != entity.AuditAccountUnlocked {
			t.Errorf("event type = %s, want %s", event.EventType, entity.AuditAccountUnlocked)
		}
		if event.Metadata["unlocked_by"] != "admin@example.org" {
			t.Errorf("unlocked_by = %v, want admin@example.org", event.Metadata["unlocked_by"])
		}
		if event.Metadata["was_locked"] != true {
			t.Errorf("was_locked = %v, want true", event.Metadata["was_locked"])
		}
		if event.Metadata["failures_cleared"] != 5 {
			t.Errorf("failures_cleared = %v, want 5", event.Metadata["failures_cleared"])
		}
	})

	t.Run("unknown account reports not found", func(t *testing.T) {
		uc := NewUnlockAccountUseCase(&unlockUserRepo{}, &countingGuard{}, &captureAuditRepo{})

		_, err := uc.Execute(ctx, UnlockAccountInput{UserID: "MINN000000XX000000"})

		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeUserNotFound {
			t.Errorf("error = %v, want code %s", err, domainerror.ErrCodeUserNotFound)
		}
	})

	t.Run("a failing account store is not reported as not found", func(t *testing.T) {
		storeErr := errors.New("sql: connection refused")
		repo := &unlockUserRepo{findErr: storeErr}
		uc := NewUnlockAccountUseCase(repo, &countingGuard{}, &captureAuditRepo{})

		_, err := uc.Execute(ctx, UnlockAccountInput{UserID: "MINN250825JD000113"})
		if err == nil {
			t.Fatal("expected an error from the failing store")
		}
		if !errors.Is(err, storeErr) {
			t.Errorf("expected the store error to be wrapped, got %v", err)
		}

		var authErr *domainerror.AuthError
		if errors.As(err, &authErr) {
			t.Errorf("store failure mapped to auth code %s, want a plain internal error", authErr.Code)
		}
	})
}
