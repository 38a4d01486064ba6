package strength

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/minn-platform/backend/internal/domain/valueobject"
)

type stubRenderer struct {
	err error
}

func (s *stubRenderer) RenderMeter(strength valueobject.PasswordStrength) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("<div>%d|%s|%d</div>", strength.Score, strength.Label, strength.Percent), nil
}

func TestEvaluatePasswordUseCase_Execute(t *testing.T) {
	useCase := NewEvaluatePasswordUseCase(&stubRenderer{})

	tests := []struct {
		name        string
		password    string
		wantScore   int
		wantLabel   string
		wantPercent int
	}{
		{name: "empty", password: "", wantScore: 0, wantLabel: "Very weak", wantPercent: 0},
		{name: "single check", password: "abc", wantScore: 1, wantLabel: "Weak", wantPercent: 20},
		{name: "two checks", password: "abcdefgh", wantScore: 2, wantLabel: "Okay", wantPercent: 40},
		{name: "three checks", password: "Abcdefgh", wantScore: 3, wantLabel: "Good", wantPercent: 60},
		{name: "four checks", password: "Abcdefg1", wantScore: 4, wantLabel: "Strong", wantPercent: 80},
		{name: "five checks", password: "Abcdefg1!", wantScore: 5, wantLabel: "Very strong", wantPercent: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := useCase.Execute(context.Background(), EvaluatePasswordInput{Password: tt.password})
			if err != nil {
				t.Fatalf("Execute returned error: %v", err)
			}

			if output.Score != tt.wantScore {
				t.Errorf("expected score %d, got %d", tt.wantScore, output.Score)
			}
			if output.Label != tt.wantLabel {
				t.Errorf("expected label %q, got %q", tt.wantLabel, output.Label)
			}
			if output.Percent != tt.wantPercent {
				t.Errorf("expected percent %d, got %d", tt.wantPercent, output.Percent)
			}

			wantMarkup := fmt.Sprintf("<div>%d|%s|%d</div>", tt.wantScore, tt.wantLabel, tt.wantPercent)
			if output.Markup != wantMarkup {
				t.Errorf("expected markup %q, got %q", wantMarkup, output.Markup)
			}
		})
	}
}

func TestEvaluatePasswordUseCase_RendererError(t *testing.T) {
	rendererErr := errors.New("template broken")
	useCase := NewEvaluatePasswordUseCase(&stubRenderer{err: rendererErr})

	_, err := useCase.Execute(context.Background(), EvaluatePasswordInput{Password: "Abcdefg1!"})
	if err == nil {
		t.Fatal("expected error when renderer fails")
	}
	if !errors.Is(err, rendererErr) {
		t.Errorf("expected wrapped renderer error, got %v", err)
	}
}
