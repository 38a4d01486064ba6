package adapter

import (
	"github.com/minn-platform/backend/internal/domain/valueobject"
)

// StrengthRenderer renders the password strength meter fragment that the
// signup and reset pages splice into their display region.
type StrengthRenderer interface {
	// RenderMeter produces the full display-region markup for a strength
	// result. The same input always yields byte-identical markup.
	RenderMeter(strength valueobject.PasswordStrength) (string, error)
}
