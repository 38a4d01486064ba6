package adapter

import (
	"context"
	"time"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// OutboundEmail is a fully rendered message ready for the provider.
type OutboundEmail struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// EmailSender delivers rendered messages through an external provider.
type EmailSender interface {
	// Send delivers the message and returns the provider's message id.
	Send(ctx context.Context, msg OutboundEmail) (string, error)
}

// QueuePasswordResetInput carries everything the reset email template needs.
type QueuePasswordResetInput struct {
	UserID    string
	UserEmail string
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// EmailService queues domain emails for asynchronous delivery.
type EmailService interface {
	// QueuePasswordResetEmail enqueues a password reset email.
	QueuePasswordResetEmail(ctx context.Context, input QueuePasswordResetInput) error
}

// EmailQueueRepository defines the interface for the outbound email queue.
type EmailQueueRepository interface {
	// Enqueue adds a job to the queue.
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// DuePending retrieves pending jobs whose scheduled time has passed,
	// oldest schedule first.
	DuePending(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	// Update persists state changes to a job.
	Update(ctx context.Context, job *entity.EmailJob) error

	// PurgeSentBefore removes sent jobs processed before the cutoff and
	// returns how many were deleted.
	PurgeSentBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
