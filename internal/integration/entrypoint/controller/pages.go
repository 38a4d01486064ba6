package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minn-platform/backend/internal/integration/web"
)

// PageController serves the embedded HTML pages. Both pages carry the
// live password strength meter.
type PageController struct {
	renderer *web.Renderer
}

// NewPageController creates a new page controller instance.
func NewPageController(renderer *web.Renderer) *PageController {
	return &PageController{
		renderer: renderer,
	}
}

// Signup handles GET /signup requests.
func (c *PageController) Signup(ctx *gin.Context) {
	c.servePage(ctx, c.renderer.SignupPage)
}

// ResetPassword handles GET /reset-password requests. The reset token
// rides in the query string and is read by the page script, so the
// handler itself does not validate it.
func (c *PageController) ResetPassword(ctx *gin.Context) {
	c.servePage(ctx, c.renderer.ResetPasswordPage)
}

func (c *PageController) servePage(ctx *gin.Context, render func() (string, error)) {
	page, err := render()
	if err != nil {
		ctx.String(http.StatusInternalServerError, "page unavailable")
		return
	}
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
