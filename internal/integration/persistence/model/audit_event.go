package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// JSONBMap stores a free-form JSON object in a jsonb column.
type JSONBMap map[string]interface{}

// Value implements the driver.Valuer interface.
func (m JSONBMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface.
func (m *JSONBMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type for JSONBMap: %T", value)
	}
}

// AuditEventModel represents the audit_events table. Rows are append-only;
// nothing in the repository updates or deletes them.
type AuditEventModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Timestamp time.Time `gorm:"index;not null"`
	EventType string    `gorm:"type:varchar(40);index;not null"`
	UserID    string    `gorm:"type:varchar(32);index"`
	Username  string    `gorm:"type:varchar(120)"`
	IP        string    `gorm:"type:varchar(45)"`
	Metadata  JSONBMap  `gorm:"type:jsonb"`
}

// TableName returns the table name for the AuditEventModel.
func (AuditEventModel) TableName() string {
	return "audit_events"
}

// ToEntity converts an AuditEventModel to a domain AuditEvent entity.
func (m *AuditEventModel) ToEntity() *entity.AuditEvent {
	return &entity.AuditEvent{
		ID:        m.ID,
		Timestamp: m.Timestamp,
		EventType: entity.AuditEventType(m.EventType),
		UserID:    m.UserID,
		Username:  m.Username,
		IP:        m.IP,
		Metadata:  m.Metadata,
	}
}

// AuditEventFromEntity creates an AuditEventModel from a domain AuditEvent entity.
func AuditEventFromEntity(event *entity.AuditEvent) *AuditEventModel {
	return &AuditEventModel{
		ID:        event.ID,
		Timestamp: event.Timestamp,
		EventType: string(event.EventType),
		UserID:    event.UserID,
		Username:  event.Username,
		IP:        event.IP,
		Metadata:  JSONBMap(event.Metadata),
	}
}
