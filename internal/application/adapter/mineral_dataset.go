package adapter

import (
	"github.com/minn-platform/backend/internal/domain/entity"
)

// MineralDataset provides the reference dataset used to seed the mineral
// store on first startup.
type MineralDataset interface {
	// Load parses the dataset and returns the minerals it contains.
	Load() ([]*entity.Mineral, error)
}
