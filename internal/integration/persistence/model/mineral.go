package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// MineralModel represents the minerals table in the database.
type MineralModel struct {
	ID          uuid.UUID               `gorm:"type:uuid;primaryKey"`
	Name        string                  `gorm:"type:varchar(100);uniqueIndex;not null"`
	Symbol      string                  `gorm:"type:varchar(20)"`
	Description string                  `gorm:"type:text"`
	Uses        pq.StringArray          `gorm:"type:text[]"`
	Production  []ProductionRecordModel `gorm:"foreignKey:MineralID;constraint:OnDelete:CASCADE"`
	Deposits    []DepositModel          `gorm:"foreignKey:MineralID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time               `gorm:"not null"`
	UpdatedAt   time.Time               `gorm:"not null"`
}

// TableName returns the table name for the MineralModel.
func (MineralModel) TableName() string {
	return "minerals"
}

// ProductionRecordModel represents one year of reported production for a
// mineral in one country.
type ProductionRecordModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MineralID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Year      int             `gorm:"not null"`
	Tonnes    decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Country   string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for the ProductionRecordModel.
func (ProductionRecordModel) TableName() string {
	return "mineral_production_records"
}

// DepositModel represents a known extraction or exploration site.
type DepositModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	MineralID uuid.UUID `gorm:"type:uuid;index;not null"`
	Site      string    `gorm:"type:varchar(150);not null"`
	Country   string    `gorm:"type:varchar(100);not null"`
	Lat       float64   `gorm:"not null"`
	Lon       float64   `gorm:"not null"`
}

// TableName returns the table name for the DepositModel.
func (DepositModel) TableName() string {
	return "mineral_deposits"
}

// ToEntity converts a MineralModel with its associations to a domain Mineral entity.
func (m *MineralModel) ToEntity() *entity.Mineral {
	mineral := &entity.Mineral{
		ID:          m.ID,
		Name:        m.Name,
		Symbol:      m.Symbol,
		Description: m.Description,
		Uses:        []string(m.Uses),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, p := range m.Production {
		mineral.ProductionHistory = append(mineral.ProductionHistory, entity.ProductionRecord{
			Year:    p.Year,
			Tonnes:  p.Tonnes,
			Country: p.Country,
		})
	}
	for _, d := range m.Deposits {
		mineral.Deposits = append(mineral.Deposits, entity.Deposit{
			Site:    d.Site,
			Country: d.Country,
			Lat:     d.Lat,
			Lon:     d.Lon,
		})
	}
	return mineral
}

// MineralFromEntity creates a MineralModel with its associations from a
// domain Mineral entity.
func MineralFromEntity(mineral *entity.Mineral) *MineralModel {
	m := &MineralModel{
		ID:          mineral.ID,
		Name:        mineral.Name,
		Symbol:      mineral.Symbol,
		Description: mineral.Description,
		Uses:        pq.StringArray(mineral.Uses),
		CreatedAt:   mineral.CreatedAt,
		UpdatedAt:   mineral.UpdatedAt,
	}
	for _, p := range mineral.ProductionHistory {
		m.Production = append(m.Production, ProductionRecordModel{
			ID:        uuid.New(),
			MineralID: mineral.ID,
			Year:      p.Year,
			Tonnes:    p.Tonnes,
			Country:   p.Country,
		})
	}
	for _, d := range mineral.Deposits {
		m.Deposits = append(m.Deposits, DepositModel{
			ID:        uuid.New(),
			MineralID: mineral.ID,
			Site:      d.Site,
			Country:   d.Country,
			Lat:       d.Lat,
			Lon:       d.Lon,
		})
	}
	return m
}
