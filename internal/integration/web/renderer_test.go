package web

import (
	"strings"
	"testing"

	"github.com/minn-platform/backend/internal/domain/valueobject"
)

func TestRenderMeter(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     string
	}{
		{
			name:     "empty password",
			password: "",
			want:     `<div class="strength-meter"><div class="strength-meter-bar strength-0" style="width: 0%">Very weak</div></div>`,
		},
		{
			name:     "long lowercase only",
			password: "abcdefgh",
			want:     `<div class="strength-meter"><div class="strength-meter-bar strength-2" style="width: 40%">Okay</div></div>`,
		},
		{
			name:     "long mixed case",
			password: "Abcdefgh",
			want:     `<div class="strength-meter"><div class="strength-meter-bar strength-3" style="width: 60%">Good</div></div>`,
		},
		{
			name:     "long mixed case with digit",
			password: "Abcdefg1",
			want:     `<div class="strength-meter"><div class="strength-meter-bar strength-4" style="width: 80%">Strong</div></div>`,
		},
		{
			name:     "all checks satisfied",
			password: "Abcdefg1!",
			want:     `<div class="strength-meter"><div class="strength-meter-bar strength-5" style="width: 100%">Very strong</div></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderer.RenderMeter(valueobject.EvaluatePassword(tt.password))
			if err != nil {
				t.Fatalf("RenderMeter returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderMeter(%q) = %s, want %s", tt.password, got, tt.want)
			}
		})
	}
}

func TestRenderMeterIsIdempotent(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	for score := 0; score <= 5; score++ {
		strength := valueobject.PasswordStrength{
			Score:   score,
			Label:   valueobject.StrengthLabel(score),
			Percent: score * 20,
		}

		first, err := renderer.RenderMeter(strength)
		if err != nil {
			t.Fatalf("RenderMeter returned error for score %d: %v", score, err)
		}

		second, err := renderer.RenderMeter(strength)
		if err != nil {
			t.Fatalf("RenderMeter returned error for score %d: %v", score, err)
		}

		if first != second {
			t.Errorf("score %d rendered differently across calls: %s vs %s", score, first, second)
		}
	}
}

func TestPagesCarryStrengthBinding(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	pages := map[string]func() (string, error){
		"signup":         renderer.SignupPage,
		"reset password": renderer.ResetPasswordPage,
	}

	for name, render := range pages {
		t.Run(name, func(t *testing.T) {
			page, err := render()
			if err != nil {
				t.Fatalf("failed to render page: %v", err)
			}

			// The binding script must find both elements by their stable
			// ids and stay inactive when either is missing.
			for _, want := range []string{
				`id="password-input"`,
				`id="password-strength"`,
				"if (!input || !meter)",
				"/api/v1/password/strength",
			} {
				if !strings.Contains(page, want) {
					t.Errorf("%s page missing %q", name, want)
				}
			}
		})
	}
}
