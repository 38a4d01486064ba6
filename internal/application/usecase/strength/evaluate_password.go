// Package strength contains the password strength evaluation use case.
package strength

import (
	"context"
	"fmt"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/valueobject"
)

// EvaluatePasswordInput represents the input for a strength evaluation.
type EvaluatePasswordInput struct {
	Password string
}

// EvaluatePasswordOutput carries the score, its presentation values, and the
// pre-rendered meter fragment.
type EvaluatePasswordOutput struct {
	Score   int
	Label   string
	Percent int
	Markup  string
}

// EvaluatePasswordUseCase scores a candidate password and renders the meter
// fragment for it. Evaluation is advisory: no account operation consults the
// score, and no password is ever rejected for being weak.
type EvaluatePasswordUseCase struct {
	renderer adapter.StrengthRenderer
}

// NewEvaluatePasswordUseCase creates a new EvaluatePasswordUseCase instance.
func NewEvaluatePasswordUseCase(renderer adapter.StrengthRenderer) *EvaluatePasswordUseCase {
	return &EvaluatePasswordUseCase{
		renderer: renderer,
	}
}

// Execute evaluates the password and returns the result with its markup.
func (uc *EvaluatePasswordUseCase) Execute(ctx context.Context, input EvaluatePasswordInput) (*EvaluatePasswordOutput, error) {
	result := valueobject.EvaluatePassword(input.Password)

	markup, err := uc.renderer.RenderMeter(result)
	if err != nil {
		return nil, fmt.Errorf("failed to render strength meter: %w", err)
	}

	return &EvaluatePasswordOutput{
		Score:   result.Score,
		Label:   result.Label,
		Percent: result.Percent,
		Markup:  markup,
	}, nil
}
