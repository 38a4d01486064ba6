package adapters

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// stubUserRepo answers the existence checks the identity service makes and
// errors on everything else.
type stubUserRepo struct {
	takenUsernames map[string]bool
	takenPublicIDs map[string]bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		takenUsernames: make(map[string]bool),
		takenPublicIDs: make(map[string]bool),
	}
}

func (r *stubUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.takenUsernames[username], nil
}

func (r *stubUserRepo) ExistsByPublicID(ctx context.Context, publicID string) (bool, error) {
	return r.takenPublicIDs[publicID], nil
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (r *stubUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (r *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) FindByPublicID(ctx context.Context, publicID string) (*entity.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (r *stubUserRepo) CountByRole(ctx context.Context) (map[entity.Role]int64, error) {
	return nil, errors.New("not implemented")
}

func TestIdentityService_GeneratePublicID(t *testing.T) {
	ctx := context.Background()
	service := NewIdentityService("MINN", newStubUserRepo())

	t.Run("matches the documented shape", func(t *testing.T) {
		id, err := service.GeneratePublicID(ctx, "Jane", "Doe")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		pattern := regexp.MustCompile(`^MINN\d{6}JD\d{6}$`)
		if !pattern.MatchString(id) {
			t.Errorf("id %q does not match expected shape", id)
		}

		datePart := time.Now().UTC().Format("060102")
		if id[4:10] != datePart {
			t.Errorf("expected date part %q, got %q", datePart, id[4:10])
		}
	})

	t.Run("last two digits are the checksum of the rest", func(t *testing.T) {
		id, err := service.GeneratePublicID(ctx, "Jane", "Doe")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		core := id[:len(id)-2]
		if got := checksum(core); id[len(id)-2:] != got {
			t.Errorf("checksum mismatch: id %q carries %q, computed %q", id, id[len(id)-2:], got)
		}
	})

	t.Run("initials come from the first rune of each name", func(t *testing.T) {
		id, err := service.GeneratePublicID(ctx, "pieter", "van der Merwe")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id[10:12] != "PV" {
			t.Errorf("expected initials PV, got %q in %q", id[10:12], id)
		}
	})

	t.Run("successive calls produce distinct ids", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 20; i++ {
			id, err := service.GeneratePublicID(ctx, "Jane", "Doe")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			seen[id] = true
		}
		// 20 draws from 10000 random cores collide with negligible odds
		if len(seen) < 19 {
			t.Errorf("expected near-unique ids, got %d distinct out of 20", len(seen))
		}
	})
}

func TestChecksum(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "00"},
		{"A", "65"},
		{"MINN", "15"},
	}

	for _, tt := range tests {
		got := checksum(tt.input)
		if got != tt.want {
			t.Errorf("checksum(%q) = %q, want %q", tt.input, got, tt.want)
		}

		sum := 0
		for _, b := range []byte(tt.input) {
			sum += int(b)
		}
		if want := sum % 97; got != padTwo(want) {
			t.Errorf("checksum(%q) = %q, want %02d", tt.input, got, want)
		}
	}
}

func padTwo(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

func TestIdentityService_GenerateUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("joins name, surname and country code", func(t *testing.T) {
		service := NewIdentityService("MINN", newStubUserRepo())
		username, err := service.GenerateUsername(ctx, "Jane", "Doe", "South Africa", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if username != "jane.doe.sou" {
			t.Errorf("expected jane.doe.sou, got %q", username)
		}
	})

	t.Run("appends a truncated organization", func(t *testing.T) {
		service := NewIdentityService("MINN", newStubUserRepo())
		username, err := service.GenerateUsername(ctx, "Jane", "Doe", "South Africa", "Geological Survey")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if username != "jane.doe.sou.geo" {
			t.Errorf("expected jane.doe.sou.geo, got %q", username)
		}
	})

	t.Run("strips punctuation and case", func(t *testing.T) {
		service := NewIdentityService("MINN", newStubUserRepo())
		username, err := service.GenerateUsername(ctx, "Mary-Jane", "O'Connor", "United Kingdom", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if username != "maryjane.oconnor.uni" {
			t.Errorf("expected maryjane.oconnor.uni, got %q", username)
		}
	})

	t.Run("keeps a short country whole", func(t *testing.T) {
		service := NewIdentityService("MINN", newStubUserRepo())
		username, err := service.GenerateUsername(ctx, "Li", "Wei", "UK", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if username != "li.wei.uk" {
			t.Errorf("expected li.wei.uk, got %q", username)
		}
	})

	t.Run("suffixes an integer on collision", func(t *testing.T) {
		repo := newStubUserRepo()
		repo.takenUsernames["jane.doe.sou"] = true
		repo.takenUsernames["jane.doe.sou1"] = true
		service := NewIdentityService("MINN", repo)

		username, err := service.GenerateUsername(ctx, "Jane", "Doe", "South Africa", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if username != "jane.doe.sou2" {
			t.Errorf("expected jane.doe.sou2, got %q", username)
		}
	})
}
