package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus tracks an email job through the outbound queue.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the message being sent. The value doubles as the
// template file base name.
type EmailTemplateType string

const (
	TemplatePasswordReset EmailTemplateType = "password_reset"
)

// emailMaxAttempts bounds delivery attempts before a job is abandoned.
const emailMaxAttempts = 3

// retryDelays spaces out redelivery. Index is the number of attempts
// already made.
var retryDelays = []time.Duration{30 * time.Second, 2 * time.Minute, 10 * time.Minute}

// EmailJob is one outbound email. Jobs are written to the queue inside the
// request that triggers them and delivered asynchronously, so a slow or
// down email provider never blocks an API response.
type EmailJob struct {
	// Message content.
	Template       EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]interface{}

	// Queue bookkeeping.
	ID          uuid.UUID
	Status      EmailStatus
	Attempts    int
	MaxAttempts int
	LastError   string
	ProviderID  string
	CreatedAt   time.Time
	ScheduledAt time.Time
	ProcessedAt *time.Time
}

// NewEmailJob queues a message for immediate delivery.
func NewEmailJob(template EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]interface{}) *EmailJob {
	now := time.Now().UTC()
	return &EmailJob{
		Template:       template,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		ID:             uuid.New(),
		Status:         EmailStatusPending,
		MaxAttempts:    emailMaxAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing claims the job for the current delivery attempt.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent records a successful delivery and the provider's message id.
func (e *EmailJob) MarkSent(providerID string) {
	now := time.Now().UTC()
	e.Status = EmailStatusSent
	e.ProviderID = providerID
	e.ProcessedAt = &now
}

// RecordFailure counts a failed attempt. Permanent failures and exhausted
// attempts abandon the job; anything else goes back to pending with a
// growing delay.
func (e *EmailJob) RecordFailure(cause error, permanent bool) {
	e.Attempts++
	e.LastError = cause.Error()

	if permanent || e.Attempts >= e.MaxAttempts {
		now := time.Now().UTC()
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	delay := retryDelays[len(retryDelays)-1]
	if e.Attempts-1 < len(retryDelays) {
		delay = retryDelays[e.Attempts-1]
	}
	e.Status = EmailStatusPending
	e.ScheduledAt = time.Now().UTC().Add(delay)
}

// Due reports whether the job is waiting and its schedule has come up.
func (e *EmailJob) Due(now time.Time) bool {
	return e.Status == EmailStatusPending && !now.Before(e.ScheduledAt)
}
