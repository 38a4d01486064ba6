package templates

import (
	"errors"
	"strings"
	"testing"

	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

func loadLibrary(t *testing.T) *Library {
	t.Helper()
	library, err := NewLibrary()
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	return library
}

func TestLibrary_PasswordReset(t *testing.T) {
	library := loadLibrary(t)

	resetURL := "https://minn.example.com/reset-password?token=abc123"
	body, err := library.Render("password_reset", map[string]interface{}{
		"user_name":  "Jane Doe",
		"reset_url":  resetURL,
		"expires_in": "30 minutes",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{"Jane Doe", resetURL, "30 minutes"} {
		if !strings.Contains(body.HTML, want) {
			t.Errorf("HTML output missing %q", want)
		}
		if !strings.Contains(body.Text, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestLibrary_EscapesHTML(t *testing.T) {
	library := loadLibrary(t)

	body, err := library.Render("password_reset", map[string]interface{}{
		"user_name":  "Mining & Co",
		"reset_url":  "https://minn.example.com/reset-password?token=abc123",
		"expires_in": "30 minutes",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(body.HTML, "Mining &amp; Co") {
		t.Error("HTML output does not escape the recipient name")
	}
	if !strings.Contains(body.Text, "Mining & Co") {
		t.Error("text output should not escape the recipient name")
	}
}

func TestLibrary_UnknownTemplate(t *testing.T) {
	library := loadLibrary(t)

	_, err := library.Render("does_not_exist", nil)
	if err == nil {
		t.Fatal("Render() with an unknown template should fail")
	}

	var emailErr *domainerror.EmailError
	if !errors.As(err, &emailErr) || emailErr.Code != domainerror.ErrCodeInvalidTemplate {
		t.Errorf("error = %v, want code %s", err, domainerror.ErrCodeInvalidTemplate)
	}
}
