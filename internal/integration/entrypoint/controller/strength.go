package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minn-platform/backend/internal/application/usecase/strength"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
	"github.com/minn-platform/backend/internal/integration/entrypoint/dto"
)

// StrengthController handles the password strength evaluation endpoint.
// The endpoint is public because the signup page calls it before any
// account exists, and it never rejects a password for being weak.
type StrengthController struct {
	evaluateUseCase *strength.EvaluatePasswordUseCase
}

// NewStrengthController creates a new strength controller instance.
func NewStrengthController(evaluateUseCase *strength.EvaluatePasswordUseCase) *StrengthController {
	return &StrengthController{
		evaluateUseCase: evaluateUseCase,
	}
}

// Evaluate handles POST /password/strength requests.
func (c *StrengthController) Evaluate(ctx *gin.Context) {
	var req dto.StrengthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.evaluateUseCase.Execute(ctx.Request.Context(), strength.EvaluatePasswordInput{
		Password: req.Password,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.StrengthResponse{
		Score:   output.Score,
		Label:   output.Label,
		Percent: output.Percent,
		Markup:  output.Markup,
	})
}
