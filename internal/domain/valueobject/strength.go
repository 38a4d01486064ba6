// Package valueobject contains domain value objects for the MINN platform.
package valueobject

// strengthMinLength is the length threshold counted as one strength check.
const strengthMinLength = 8

// strengthLabels is indexed directly by score. Exactly five independent
// checks are summed, so the score never leaves [0,5].
var strengthLabels = [6]string{
	"Very weak",
	"Weak",
	"Okay",
	"Good",
	"Strong",
	"Very strong",
}

// PasswordStrength is the result of evaluating a candidate password.
// It is advisory only; nothing in the platform rejects a weak password.
type PasswordStrength struct {
	Score   int
	Label   string
	Percent int
}

// ScorePassword returns the number of satisfied strength checks: minimum
// length, an uppercase letter, a lowercase letter, a digit, and a character
// outside the alphanumeric set. Character classes are ASCII, so anything
// else (spaces, punctuation, accented letters) counts toward the last check.
func ScorePassword(password string) int {
	var hasUpper, hasLower, hasDigit, hasOther bool

	length := 0
	for _, r := range password {
		length++
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasOther = true
		}
	}

	score := 0
	for _, ok := range []bool{length >= strengthMinLength, hasUpper, hasLower, hasDigit, hasOther} {
		if ok {
			score++
		}
	}
	return score
}

// EvaluatePassword scores a password and maps the score to its label and
// bar width (score * 20 percent).
func EvaluatePassword(password string) PasswordStrength {
	score := ScorePassword(password)
	return PasswordStrength{
		Score:   score,
		Label:   strengthLabels[score],
		Percent: score * 20,
	}
}

// StrengthLabel returns the label for a score, clamping out-of-range input.
func StrengthLabel(score int) string {
	if score < 0 {
		score = 0
	}
	if score >= len(strengthLabels) {
		score = len(strengthLabels) - 1
	}
	return strengthLabels[score]
}
