package email

import (
	"errors"
	"testing"

	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

func TestRejectedPermanently(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		permanent bool
	}{
		{"nil error", nil, false},
		{"unauthorized api key", errors.New("401 unauthorized"), true},
		{"forbidden sender", errors.New("403 Forbidden"), true},
		{"validation failure", errors.New("validation_error: missing to field"), true},
		{"rate limited", errors.New("429 too many requests"), false},
		{"provider outage", errors.New("internal server error"), false},
		{"network failure", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rejectedPermanently(tt.err); got != tt.permanent {
				t.Errorf("rejectedPermanently(%v) = %v, want %v", tt.err, got, tt.permanent)
			}
		})
	}
}

func TestSendFailure_Classification(t *testing.T) {
	permanent := sendFailure(errors.New("422 unprocessable entity"))
	if !domainerror.IsPermanentEmailError(permanent) {
		t.Errorf("sendFailure(422) = %v, want a permanent email error", permanent)
	}

	temporary := sendFailure(errors.New("connection reset by peer"))
	if domainerror.IsPermanentEmailError(temporary) {
		t.Errorf("sendFailure(connection reset) = %v, want a retryable email error", temporary)
	}

	var emailErr *domainerror.EmailError
	if !errors.As(temporary, &emailErr) {
		t.Fatalf("sendFailure did not wrap an EmailError: %v", temporary)
	}
	if emailErr.Code != domainerror.ErrCodeTemporaryEmailFailure {
		t.Errorf("code = %s, want %s", emailErr.Code, domainerror.ErrCodeTemporaryEmailFailure)
	}
}
