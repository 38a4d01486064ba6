package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
	"github.com/minn-platform/backend/internal/integration/persistence/model"
)

// mineralRepository implements the adapter.MineralRepository interface.
type mineralRepository struct {
	db *gorm.DB
}

// NewMineralRepository creates a new mineral repository instance.
func NewMineralRepository(db *gorm.DB) adapter.MineralRepository {
	return &mineralRepository{
		db: db,
	}
}

// CreateBatch inserts a batch of minerals with their production history and
// deposits in one transaction.
func (r *mineralRepository) CreateBatch(ctx context.Context, minerals []*entity.Mineral) error {
	if len(minerals) == 0 {
		return nil
	}

	mineralModels := make([]*model.MineralModel, len(minerals))
	for i, m := range minerals {
		mineralModels[i] = model.MineralFromEntity(m)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, mineralModel := range mineralModels {
			if result := tx.Create(mineralModel); result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
}

// FindAll retrieves all minerals with their associations, ordered by name.
func (r *mineralRepository) FindAll(ctx context.Context) ([]*entity.Mineral, error) {
	var mineralModels []model.MineralModel
	result := r.db.WithContext(ctx).
		Preload("Production").
		Preload("Deposits").
		Order("name ASC").
		Find(&mineralModels)
	if result.Error != nil {
		return nil, result.Error
	}

	minerals := make([]*entity.Mineral, len(mineralModels))
	for i := range mineralModels {
		minerals[i] = mineralModels[i].ToEntity()
	}
	return minerals, nil
}

// FindByName retrieves one mineral by its name, case-insensitively.
func (r *mineralRepository) FindByName(ctx context.Context, name string) (*entity.Mineral, error) {
	var mineralModel model.MineralModel
	result := r.db.WithContext(ctx).
		Preload("Production").
		Preload("Deposits").
		Where("LOWER(name) = LOWER(?)", name).
		First(&mineralModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrMineralNotFound
		}
		return nil, result.Error
	}
	return mineralModel.ToEntity(), nil
}

// Count returns the number of minerals stored.
func (r *mineralRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.MineralModel{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
