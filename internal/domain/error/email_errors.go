package error

import (
	"errors"
	"fmt"
)

// EmailErrorCode identifies a failure class in the outbound email pipeline.
// EMAIL-01 codes cover the queue, EMAIL-02 the delivery provider and
// EMAIL-03 the templates.
type EmailErrorCode string

const (
	ErrCodeEmailQueueFailed      EmailErrorCode = "EMAIL-010001"
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"
	ErrCodeInvalidTemplate       EmailErrorCode = "EMAIL-030001"
	ErrCodeTemplateRenderFailed  EmailErrorCode = "EMAIL-030002"
)

// ErrEmailJobNotFound is returned on queue lookups for an unknown job id.
var ErrEmailJobNotFound = errors.New("email job not found")

// ErrInvalidTemplate is returned for template types the renderer does not know.
var ErrInvalidTemplate = errors.New("unknown email template")

// EmailError carries a pipeline error code so the delivery worker can decide
// between retrying a job and abandoning it.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// Permanent reports whether retrying the same message can ever succeed.
// Provider rejections of the message itself and template problems are
// permanent; everything else is assumed transient.
func (e *EmailError) Permanent() bool {
	switch e.Code {
	case ErrCodePermanentEmailFailure, ErrCodeInvalidTemplate, ErrCodeTemplateRenderFailed:
		return true
	default:
		return false
	}
}

// NewEmailError creates an EmailError wrapping err.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsPermanentEmailError reports whether err is an EmailError that must not
// be retried.
func IsPermanentEmailError(err error) bool {
	var emailErr *EmailError
	return errors.As(err, &emailErr) && emailErr.Permanent()
}
