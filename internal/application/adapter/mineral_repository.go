package adapter

import (
	"context"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// MineralRepository defines the interface for mineral reference data.
type MineralRepository interface {
	// CreateBatch inserts a batch of minerals with their production history
	// and deposits.
	CreateBatch(ctx context.Context, minerals []*entity.Mineral) error

	// FindAll retrieves all minerals ordered by name.
	FindAll(ctx context.Context) ([]*entity.Mineral, error)

	// FindByName retrieves one mineral by its name (case-insensitive).
	FindByName(ctx context.Context, name string) (*entity.Mineral, error)

	// Count returns the number of minerals stored.
	Count(ctx context.Context) (int64, error)
}
