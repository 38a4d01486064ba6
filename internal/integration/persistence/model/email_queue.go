package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// EmailQueueModel represents the email_queue table. The composite index on
// status and scheduled_at serves the worker's poll query.
type EmailQueueModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TemplateType   string     `gorm:"type:varchar(50);not null"`
	RecipientEmail string     `gorm:"type:varchar(255);index;not null"`
	RecipientName  string     `gorm:"type:varchar(255)"`
	Subject        string     `gorm:"type:varchar(500);not null"`
	TemplateData   JSONBMap   `gorm:"type:jsonb;not null"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_email_queue_due,priority:1"`
	Attempts       int        `gorm:"not null;default:0"`
	MaxAttempts    int        `gorm:"not null;default:3"`
	LastError      string     `gorm:"type:text"`
	ProviderID     string     `gorm:"type:varchar(100)"`
	CreatedAt      time.Time  `gorm:"not null"`
	ScheduledAt    time.Time  `gorm:"not null;index:idx_email_queue_due,priority:2"`
	ProcessedAt    *time.Time `gorm:"type:timestamp"`
}

func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity maps the row onto the domain mail job.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	data := map[string]interface{}(m.TemplateData)
	if data == nil {
		data = map[string]interface{}{}
	}

	return &entity.EmailJob{
		Template:       entity.EmailTemplateType(m.TemplateType),
		RecipientEmail: m.RecipientEmail,
		RecipientName:  m.RecipientName,
		Subject:        m.Subject,
		TemplateData:   data,
		ID:             m.ID,
		Status:         entity.EmailStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		ProviderID:     m.ProviderID,
		CreatedAt:      m.CreatedAt,
		ScheduledAt:    m.ScheduledAt,
		ProcessedAt:    m.ProcessedAt,
	}
}

// EmailQueueModelFromEntity maps a queued mail job onto its row.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	data := JSONBMap(job.TemplateData)
	if data == nil {
		data = JSONBMap{}
	}

	return &EmailQueueModel{
		ID:             job.ID,
		TemplateType:   string(job.Template),
		RecipientEmail: job.RecipientEmail,
		RecipientName:  job.RecipientName,
		Subject:        job.Subject,
		TemplateData:   data,
		Status:         string(job.Status),
		Attempts:       job.Attempts,
		MaxAttempts:    job.MaxAttempts,
		LastError:      job.LastError,
		ProviderID:     job.ProviderID,
		CreatedAt:      job.CreatedAt,
		ScheduledAt:    job.ScheduledAt,
		ProcessedAt:    job.ProcessedAt,
	}
}
