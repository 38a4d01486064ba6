// Package router maps the URL space onto controllers and decides
// which routes sit behind authentication.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minn-platform/backend/internal/domain/entity"
	"github.com/minn-platform/backend/internal/integration/entrypoint/controller"
	"github.com/minn-platform/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies. Controllers
// may be nil when their backing store is unavailable; their routes are
// simply not registered, which keeps the health endpoint, the pages and
// the strength meter alive while the database is down.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	pageController      *controller.PageController
	strengthController  *controller.StrengthController
	authController      *controller.AuthController
	mineralController   *controller.MineralController
	adminController     *controller.AdminController
	loginRateLimiter    *middleware.RateLimiter
	strengthRateLimiter *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
	metricsMiddleware   gin.HandlerFunc
	metricsHandler      http.Handler
}

// NewRouter collects the handler set; Setup turns it into an engine.
func NewRouter(
	healthController *controller.HealthController,
	pageController *controller.PageController,
	strengthController *controller.StrengthController,
	authController *controller.AuthController,
	mineralController *controller.MineralController,
	adminController *controller.AdminController,
	loginRateLimiter *middleware.RateLimiter,
	strengthRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	metricsMiddleware gin.HandlerFunc,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		healthController:    healthController,
		pageController:      pageController,
		strengthController:  strengthController,
		authController:      authController,
		mineralController:   mineralController,
		adminController:     adminController,
		loginRateLimiter:    loginRateLimiter,
		strengthRateLimiter: strengthRateLimiter,
		authMiddleware:      authMiddleware,
		metricsMiddleware:   metricsMiddleware,
		metricsHandler:      metricsHandler,
	}
}

// Setup builds the Gin engine and registers every route whose
// controller is present.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// gin.Default carries request logging and panic recovery.
	r.engine = gin.Default()

	if r.metricsMiddleware != nil {
		r.engine.Use(r.metricsMiddleware)
	}

	r.setupHealthRoutes()
	r.setupMetricsRoutes()
	r.setupPageRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes registers the liveness probe.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupMetricsRoutes configures the Prometheus scrape endpoint.
func (r *Router) setupMetricsRoutes() {
	if r.metricsHandler != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metricsHandler))
	}
}

// setupPageRoutes configures the embedded HTML pages.
func (r *Router) setupPageRoutes() {
	if r.pageController != nil {
		r.engine.GET("/signup", r.pageController.Signup)
		r.engine.GET("/reset-password", r.pageController.ResetPassword)
	}
}

// setupAPIRoutes registers the versioned JSON API.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Password strength evaluation is public: the signup page calls it
		// before any account exists.
		if r.strengthController != nil && r.strengthRateLimiter != nil {
			password := v1.Group("/password")
			{
				password.POST("/strength", r.strengthRateLimiter.Middleware(), r.strengthController.Evaluate)
			}
		}

		// Account lifecycle
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
				auth.POST("/forgot-password", r.authController.ForgotPassword)
				auth.POST("/reset-password", r.authController.ResetPassword)
			}
		}

		// Mineral reference data routes (require authentication)
		if r.mineralController != nil && r.authMiddleware != nil {
			minerals := v1.Group("/minerals")
			minerals.Use(r.authMiddleware.Authenticate())
			{
				minerals.GET("", r.mineralController.List)
				minerals.GET("/:name/production", r.mineralController.Production)
			}

			// Deposits live at the top level; the Gin route tree cannot
			// hold a static /minerals/deposits next to /minerals/:name.
			deposits := v1.Group("/deposits")
			deposits.Use(r.authMiddleware.Authenticate())
			{
				deposits.GET("", r.mineralController.Deposits)
			}
		}

		// Administrator routes (require authentication and the admin role)
		if r.adminController != nil && r.authMiddleware != nil {
			adminGroup := v1.Group("/admin")
			adminGroup.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(entity.RoleAdministrator))
			{
				adminGroup.GET("/overview", r.adminController.Overview)
				adminGroup.GET("/audit", r.adminController.Audit)
				adminGroup.POST("/users/:userId/unlock", r.adminController.Unlock)
			}
		}
	}
}
