package email

import (
	"context"
	"fmt"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

const passwordResetSubject = "Reset your password - MINN Platform"

// Service queues domain emails. Validation happens here, at enqueue time,
// so a job that reaches the worker always has the data its template needs.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates the email queueing service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{queue: queue}
}

// QueuePasswordResetEmail enqueues a password reset email.
func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	if input.UserEmail == "" || input.ResetURL == "" {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"password reset email needs a recipient and a reset link",
			fmt.Errorf("email=%q url set=%t", input.UserEmail, input.ResetURL != ""),
		)
	}

	job := entity.NewEmailJob(
		entity.TemplatePasswordReset,
		input.UserEmail,
		input.UserName,
		passwordResetSubject,
		map[string]interface{}{
			"user_name":  input.UserName,
			"reset_url":  input.ResetURL,
			"expires_in": input.ExpiresIn,
		},
	)

	if err := s.queue.Enqueue(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"queueing password reset email",
			err,
		)
	}

	return nil
}

var _ adapter.EmailService = (*Service)(nil)
