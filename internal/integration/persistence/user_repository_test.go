package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
	"github.com/minn-platform/backend/internal/integration/persistence/model"
)

func newUserRepo(t *testing.T) *userRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.UserModel{}); err != nil {
		t.Fatalf("migrating users: %v", err)
	}
	return NewUserRepository(db).(*userRepository)
}

func storedUser(username string) *entity.User {
	return entity.NewUser(
		"MINN250825JD000113",
		username,
		"Jane",
		"Doe",
		username+"@example.org",
		"South Africa",
		"",
		entity.RoleResearcher,
		"bcrypt-hash",
	)
}

// A lock written by the login path must scan back on every supported
// database, SQLite included; the column type has to stay portable.
func TestUserRepository_LockSurvivesRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	user := storedUser("jane.doe.sou")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	until := time.Now().UTC().Add(15 * time.Minute).Truncate(time.Second)
	user.FailedLogins = 5
	user.LockedUntil = &until
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	loaded, err := repo.FindByUsername(ctx, "jane.doe.sou")
	if err != nil {
		t.Fatalf("FindByUsername() error = %v", err)
	}
	if loaded.FailedLogins != 5 {
		t.Errorf("FailedLogins = %d, want 5", loaded.FailedLogins)
	}
	if loaded.LockedUntil == nil {
		t.Fatal("LockedUntil did not survive the round trip")
	}
	if !loaded.LockedUntil.Equal(until) {
		t.Errorf("LockedUntil = %v, want %v", loaded.LockedUntil, until)
	}
	if !loaded.IsLocked(time.Now().UTC()) {
		t.Error("reloaded account is not locked")
	}

	// Clearing the lock persists through a full-row save too.
	loaded.ClearLock()
	if err := repo.Update(ctx, loaded); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	cleared, err := repo.FindByUsername(ctx, "jane.doe.sou")
	if err != nil {
		t.Fatalf("FindByUsername() error = %v", err)
	}
	if cleared.LockedUntil != nil || cleared.FailedLogins != 0 {
		t.Errorf("lock not cleared: failures=%d until=%v", cleared.FailedLogins, cleared.LockedUntil)
	}
}

func TestUserRepository_FindByUsername_Missing(t *testing.T) {
	repo := newUserRepo(t)

	_, err := repo.FindByUsername(context.Background(), "nobody")
	if !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}
