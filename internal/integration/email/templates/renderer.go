// Package templates renders the platform's outbound email bodies.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Body holds both renderings of one message. Every template ships an HTML
// and a plain text variant so clients without HTML support still get a
// readable mail.
type Body struct {
	HTML string
	Text string
}

// Library loads and renders the embedded email templates. A template named
// "password_reset" is the pair password_reset.html / password_reset.txt.
type Library struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewLibrary parses the embedded templates and verifies that every HTML
// variant has a matching text variant.
func NewLibrary() (*Library, error) {
	html, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing html email templates: %w", err)
	}

	text, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("parsing text email templates: %w", err)
	}

	for _, t := range html.Templates() {
		name := strings.TrimSuffix(t.Name(), ".html")
		if text.Lookup(name+".txt") == nil {
			return nil, fmt.Errorf("email template %s has no text variant", name)
		}
	}

	return &Library{html: html, text: text}, nil
}

// Render produces both variants of the named template. Data is the job's
// template data; templates reference its keys directly.
func (l *Library) Render(name string, data map[string]interface{}) (Body, error) {
	if l.html.Lookup(name+".html") == nil || l.text.Lookup(name+".txt") == nil {
		return Body{}, domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			fmt.Sprintf("no email template named %q", name),
			domainerror.ErrInvalidTemplate,
		)
	}

	var html bytes.Buffer
	if err := l.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return Body{}, domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			fmt.Sprintf("rendering %s.html", name),
			err,
		)
	}

	var text bytes.Buffer
	if err := l.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return Body{}, domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			fmt.Sprintf("rendering %s.txt", name),
			err,
		)
	}

	return Body{HTML: html.String(), Text: text.String()}, nil
}
