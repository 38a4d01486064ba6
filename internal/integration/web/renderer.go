// Package web serves the embedded account pages and the password strength
// meter fragment they splice in.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/minn-platform/backend/internal/domain/valueobject"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders the embedded page templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer creates a new page renderer.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	return &Renderer{templates: tmpl}, nil
}

// RenderMeter produces the strength meter fragment: a container holding a
// bar whose inline width is the percent value and whose text is the label.
// Output for a given strength is byte-identical across calls.
func (r *Renderer) RenderMeter(strength valueobject.PasswordStrength) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "meter.html", strength); err != nil {
		return "", fmt.Errorf("failed to render strength meter: %w", err)
	}
	return buf.String(), nil
}

// SignupPage renders the account creation page.
func (r *Renderer) SignupPage() (string, error) {
	return r.renderPage("signup.html")
}

// ResetPasswordPage renders the password reset page.
func (r *Renderer) ResetPasswordPage() (string, error) {
	return r.renderPage("reset_password.html")
}

func (r *Renderer) renderPage(name string) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, nil); err != nil {
		return "", fmt.Errorf("failed to render page %s: %w", name, err)
	}
	return buf.String(), nil
}
