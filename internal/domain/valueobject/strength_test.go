package valueobject

import "testing"

func TestScorePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		score    int
		label    string
		percent  int
	}{
		{"empty string", "", 0, "Very weak", 0},
		{"short lowercase only", "abc", 1, "Weak", 20},
		{"long lowercase only", "abcdefgh", 2, "Okay", 40},
		{"adds uppercase", "Abcdefgh", 3, "Good", 60},
		{"adds digit", "Abcdefg1", 4, "Strong", 80},
		{"all five checks", "Abcdefg1!", 5, "Very strong", 100},
		{"digits only", "12345678", 2, "Okay", 40},
		{"short but all classes", "Ab1!", 4, "Strong", 80},
		{"space counts as non-alphanumeric", "Abcdefg 1", 5, "Very strong", 100},
		{"accented letter counts as non-alphanumeric", "Abcdefg1é", 5, "Very strong", 100},
		{"uppercase only", "ABCDEFGH", 2, "Okay", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScorePassword(tt.password); got != tt.score {
				t.Errorf("ScorePassword(%q) = %d, want %d", tt.password, got, tt.score)
			}

			result := EvaluatePassword(tt.password)
			if result.Score != tt.score {
				t.Errorf("EvaluatePassword(%q).Score = %d, want %d", tt.password, result.Score, tt.score)
			}
			if result.Label != tt.label {
				t.Errorf("EvaluatePassword(%q).Label = %q, want %q", tt.password, result.Label, tt.label)
			}
			if result.Percent != tt.percent {
				t.Errorf("EvaluatePassword(%q).Percent = %d, want %d", tt.password, result.Percent, tt.percent)
			}
		})
	}
}

func TestScorePasswordStaysInRange(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"A1!aA1!aA1!aA1!aA1!a",
		"                ",
		"\x00\x01\x02",
		"日本語のパスワード",
		"Pässwörd123!",
		"abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()",
	}

	for _, input := range inputs {
		score := ScorePassword(input)
		if score < 0 || score > 5 {
			t.Errorf("ScorePassword(%q) = %d, want value in [0,5]", input, score)
		}
	}
}

func TestEvaluatePasswordIsDeterministic(t *testing.T) {
	// Re-evaluating the same input must produce identical results so the
	// rendered markup never changes between events for an unchanged value.
	for _, input := range []string{"", "abcdefgh", "Abcdefg1!"} {
		first := EvaluatePassword(input)
		second := EvaluatePassword(input)
		if first != second {
			t.Errorf("EvaluatePassword(%q) not deterministic: %+v vs %+v", input, first, second)
		}
	}
}

func TestStrengthLabelClampsOutOfRange(t *testing.T) {
	if got := StrengthLabel(-1); got != "Very weak" {
		t.Errorf("StrengthLabel(-1) = %q, want %q", got, "Very weak")
	}
	if got := StrengthLabel(99); got != "Very strong" {
		t.Errorf("StrengthLabel(99) = %q, want %q", got, "Very strong")
	}
	for score, want := range strengthLabels {
		if got := StrengthLabel(score); got != want {
			t.Errorf("StrengthLabel(%d) = %q, want %q", score, got, want)
		}
	}
}
