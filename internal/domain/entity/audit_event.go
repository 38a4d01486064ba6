package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditEventType identifies what happened. The set is closed; consumers
// filter and aggregate on these values.
type AuditEventType string

const (
	AuditUserCreated     AuditEventType = "user_created"
	AuditLoginSuccess    AuditEventType = "login_success"
	AuditLoginFailed     AuditEventType = "login_failed"
	AuditLoginBlocked    AuditEventType = "login_blocked"
	AuditAccountLocked   AuditEventType = "account_locked"
	AuditAccountUnlocked AuditEventType = "account_unlocked"
	AuditPasswordReset   AuditEventType = "password_reset"
)

// AuditEvent is one append-only security log record. UserID holds the
// public account identifier, not the internal primary key, so records
// stay meaningful after account deletion.
type AuditEvent struct {
	ID        uuid.UUID
	Timestamp time.Time
	EventType AuditEventType
	UserID    string
	Username  string
	IP        string
	Metadata  map[string]interface{}
}

// NewAuditEvent creates an audit event stamped with the current UTC time.
func NewAuditEvent(eventType AuditEventType, userID, username, ip string) *AuditEvent {
	return &AuditEvent{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Username:  username,
		IP:        ip,
	}
}

// WithMetadata attaches free-form context to the event and returns it.
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}
