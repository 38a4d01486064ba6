// Package persistence stores the domain entities in PostgreSQL through
// GORM. Each repository converts between the rows in model/ and the domain
// entities, so nothing above this layer sees a database type.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
	"github.com/minn-platform/backend/internal/integration/persistence/model"
)

// userRepository implements adapter.UserRepository on the users table.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds the account store.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new account row.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(model.FromEntity(user)).Error
}

// Update writes the whole row so cleared fields, such as a removed lock,
// persist too.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(model.FromEntity(user)).Error
}

// FindByID looks an account up by its internal row ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByPublicID looks an account up by its public identifier.
func (r *userRepository) FindByPublicID(ctx context.Context, publicID string) (*entity.User, error) {
	return r.findOne(ctx, "public_id = ?", publicID)
}

// FindByUsername looks an account up by username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// FindByEmail looks an account up by email, case-insensitively.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "LOWER(email) = LOWER(?)", email)
}

// FindAll returns every account ordered by creation time.
func (r *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var rows []model.UserModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]*entity.User, len(rows))
	for i := range rows {
		users[i] = rows[i].ToEntity()
	}
	return users, nil
}

// ExistsByEmail reports whether an account uses the email address.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "LOWER(email) = LOWER(?)", email)
}

// ExistsByUsername reports whether the username is taken.
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

// ExistsByPublicID reports whether the public identifier is taken.
func (r *userRepository) ExistsByPublicID(ctx context.Context, publicID string) (bool, error) {
	return r.exists(ctx, "public_id = ?", publicID)
}

// CountByRole tallies accounts per role.
func (r *userRepository) CountByRole(ctx context.Context) (map[entity.Role]int64, error) {
	var rows []struct {
		Role  string
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.Role]int64, len(rows))
	for _, row := range rows {
		counts[entity.Role(row.Role)] = row.Count
	}
	return counts, nil
}

func (r *userRepository) findOne(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var row model.UserModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.ToEntity(), nil
}

func (r *userRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserModel{}).Where(query, arg).Count(&count).Error
	return count > 0, err
}
