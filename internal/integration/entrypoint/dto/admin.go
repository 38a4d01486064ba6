package dto

import (
	"time"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// AdminUserResponse represents an account as the admin dashboard sees it,
// including lock state that ordinary responses hide.
type AdminUserResponse struct {
	UserID       string     `json:"user_id"`
	Username     string     `json:"username"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Country      string     `json:"country"`
	Organization string     `json:"organization,omitempty"`
	Role         string     `json:"role"`
	Locked       bool       `json:"locked"`
	LockedUntil  *time.Time `json:"locked_until,omitempty"`
	FailedLogins int        `json:"failed_logins"`
	CreatedAt    time.Time  `json:"created_at"`
}

// OverviewResponse represents the admin dashboard summary.
type OverviewResponse struct {
	TotalUsers int                 `json:"total_users"`
	RoleCounts map[string]int64    `json:"role_counts"`
	Users      []AdminUserResponse `json:"users"`
}

// AuditEventResponse represents one security log record.
type AuditEventResponse struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	EventType string                 `json:"event_type"`
	UserID    string                 `json:"user_id,omitempty"`
	Username  string                 `json:"username,omitempty"`
	IP        string                 `json:"ip,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// AuditListResponse represents a page of security log records.
type AuditListResponse struct {
	Events []AuditEventResponse `json:"events"`
	Count  int                  `json:"count"`
}

// UnlockResponse represents the result of unlocking an account.
type UnlockResponse struct {
	Message string            `json:"message"`
	User    AdminUserResponse `json:"user"`
}

// ToAdminUserResponse converts a domain User entity to its admin DTO.
// Lock state is evaluated against the current clock so an expired lock
// reads as unlocked even before the row is cleaned up.
func ToAdminUserResponse(user *entity.User) AdminUserResponse {
	now := time.Now().UTC()
	resp := AdminUserResponse{
		UserID:       user.PublicID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Country:      user.Country,
		Organization: user.Organization,
		Role:         string(user.Role),
		Locked:       user.IsLocked(now),
		FailedLogins: user.FailedLogins,
		CreatedAt:    user.CreatedAt,
	}
	if resp.Locked {
		resp.LockedUntil = user.LockedUntil
	}
	return resp
}

// ToAuditEventResponse converts a domain AuditEvent to its DTO.
func ToAuditEventResponse(event *entity.AuditEvent) AuditEventResponse {
	return AuditEventResponse{
		ID:        event.ID.String(),
		Timestamp: event.Timestamp,
		EventType: string(event.EventType),
		UserID:    event.UserID,
		Username:  event.Username,
		IP:        event.IP,
		Metadata:  event.Metadata,
	}
}
