// Package adapter declares the driven-side interfaces the use cases
// depend on. Implementations live under internal/integration.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// UserRepository is the persistence boundary for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error

	// FindByID looks up by the internal row ID, FindByPublicID by the
	// account identifier shown to users.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByPublicID(ctx context.Context, publicID string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindAll returns every account ordered by creation time.
	FindAll(ctx context.Context) ([]*entity.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByPublicID(ctx context.Context, publicID string) (bool, error)

	// CountByRole tallies accounts per role for the admin overview.
	CountByRole(ctx context.Context) (map[entity.Role]int64, error)
}
