// Package dependency wires the application graph, from repositories
// up to the router, in one place.
package dependency

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/minn-platform/backend/config"
	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/application/usecase/admin"
	"github.com/minn-platform/backend/internal/application/usecase/auth"
	"github.com/minn-platform/backend/internal/application/usecase/mineral"
	"github.com/minn-platform/backend/internal/application/usecase/strength"
	"github.com/minn-platform/backend/internal/infra/server/router"
	"github.com/minn-platform/backend/internal/integration/adapters"
	"github.com/minn-platform/backend/internal/integration/email"
	"github.com/minn-platform/backend/internal/integration/email/templates"
	"github.com/minn-platform/backend/internal/integration/entrypoint/controller"
	"github.com/minn-platform/backend/internal/integration/entrypoint/middleware"
	"github.com/minn-platform/backend/internal/integration/metrics"
	"github.com/minn-platform/backend/internal/integration/persistence"
	"github.com/minn-platform/backend/internal/integration/persistence/seed"
	"github.com/minn-platform/backend/internal/integration/web"
)

// serviceName labels health responses and Prometheus metrics.
const serviceName = "minn-backend"

// Injector holds all application dependencies. EmailWorker, EnsureAdmin
// and SeedMinerals are nil when the database is unavailable; the router
// then serves only the health endpoint, the pages and the strength meter.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	EmailWorker  *email.Worker
	EnsureAdmin  *auth.EnsureAdminUseCase
	SeedMinerals *mineral.SeedMineralsUseCase
}

// NewInjector creates a new dependency injector with all dependencies
// wired. db and redisClient may be nil: without db the API surface
// degrades as described on Injector, and without redis the login guard
// counts failures in process memory. dbHealthChecker feeds the health
// endpoint; a nil checker reports the database as disconnected.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dbHealthChecker func() bool) (*Injector, error) {
	pageRenderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	// Controllers that work without the database.
	healthController := controller.NewHealthController(serviceName, dbHealthChecker)
	pageController := controller.NewPageController(pageRenderer)

	evaluatePasswordUseCase := strength.NewEvaluatePasswordUseCase(pageRenderer)
	strengthController := controller.NewStrengthController(evaluatePasswordUseCase)

	// Feature and E2E suites hammer the endpoints, so test
	// environments run with limits that stay out of the way.
	var loginRateLimiter, strengthRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
		strengthRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
		// The meter fires on every keystroke, so its limit sits far above
		// the login limiter's.
		strengthRateLimiter = middleware.NewRateLimiterWithConfig(120, 1*time.Minute)
	}

	var metricsMiddleware gin.HandlerFunc
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsMiddleware = metrics.Middleware(serviceName)
		metricsHandler = metrics.Handler()
	}

	injector := &Injector{
		Config: cfg,
		DB:     db,
	}

	// Everything below needs the database.
	var (
		authController    *controller.AuthController
		mineralController *controller.MineralController
		adminController   *controller.AdminController
		authMiddleware    *middleware.AuthMiddleware
	)
	if db != nil {
		userRepo := persistence.NewUserRepository(db)
		tokenRepo := persistence.NewTokenRepository(db)
		auditRepo := persistence.NewAuditRepository(db)
		mineralRepo := persistence.NewMineralRepository(db)
		emailQueueRepo := persistence.NewEmailQueueRepository(db)

		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, tokenRepo)
		resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
		identityService := adapters.NewIdentityService(cfg.Security.UserIDPrefix, userRepo)

		var loginGuard adapter.LoginGuard
		if redisClient != nil {
			loginGuard = adapters.NewRedisLoginGuard(redisClient, cfg.Security.LockoutDuration)
		} else {
			loginGuard = adapters.NewMemoryLoginGuard(cfg.Security.LockoutDuration)
		}

		// Queueing mail only makes sense when a worker will drain the
		// queue. Without a sender the reset flow logs the link instead,
		// so development setups work with no provider account.
		emailConfigured := cfg.Email.WorkerEnabled && cfg.Email.ResendAPIKey != ""
		var emailService adapter.EmailService
		if emailConfigured {
			emailService = email.NewService(emailQueueRepo)
		}

		// Account flows share one lockout policy.
		lockoutPolicy := auth.LockoutPolicy{
			MaxFailures:  cfg.Security.MaxFailedLogins,
			LockDuration: cfg.Security.LockoutDuration,
		}
		registerUseCase := auth.NewRegisterUserUseCase(userRepo, identityService, passwordService, auditRepo)
		loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService, loginGuard, auditRepo, lockoutPolicy)
		refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
		logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
		forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
		resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService, loginGuard, auditRepo)

		// Catalogue reads
		listMineralsUseCase := mineral.NewListMineralsUseCase(mineralRepo)
		getProductionUseCase := mineral.NewGetProductionUseCase(mineralRepo)
		getDepositsUseCase := mineral.NewGetDepositsUseCase(mineralRepo)

		// Admin operations
		getOverviewUseCase := admin.NewGetOverviewUseCase(userRepo)
		listAuditEventsUseCase := admin.NewListAuditEventsUseCase(auditRepo)
		unlockAccountUseCase := admin.NewUnlockAccountUseCase(userRepo, loginGuard, auditRepo)

		authController = controller.NewAuthController(
			registerUseCase,
			loginUseCase,
			refreshTokenUseCase,
			logoutUseCase,
			forgotPasswordUseCase,
			resetPasswordUseCase,
		)
		mineralController = controller.NewMineralController(
			listMineralsUseCase,
			getProductionUseCase,
			getDepositsUseCase,
		)
		adminController = controller.NewAdminController(
			getOverviewUseCase,
			listAuditEventsUseCase,
			unlockAccountUseCase,
		)
		authMiddleware = middleware.NewAuthMiddleware(tokenService)

		// Startup tasks
		injector.EnsureAdmin = auth.NewEnsureAdminUseCase(userRepo, identityService, passwordService, auditRepo, auth.DefaultAdmin{
			FirstName:    cfg.Bootstrap.AdminFirstName,
			LastName:     cfg.Bootstrap.AdminLastName,
			Email:        cfg.Bootstrap.AdminEmail,
			Password:     cfg.Bootstrap.AdminPassword,
			Country:      cfg.Bootstrap.AdminCountry,
			Organization: cfg.Bootstrap.AdminOrganization,
		})
		injector.SeedMinerals = mineral.NewSeedMineralsUseCase(mineralRepo, seed.NewDataset())

		// Outbound email worker
		if emailConfigured {
			library, err := templates.NewLibrary()
			if err != nil {
				return nil, err
			}
			sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
			injector.EmailWorker = email.NewWorker(emailQueueRepo, sender, library, email.WorkerConfig{
				PollInterval: cfg.Email.PollInterval,
				BatchSize:    cfg.Email.BatchSize,
			})
		}
	}

	injector.Router = router.NewRouter(
		healthController,
		pageController,
		strengthController,
		authController,
		mineralController,
		adminController,
		loginRateLimiter,
		strengthRateLimiter,
		authMiddleware,
		metricsMiddleware,
		metricsHandler,
	)

	return injector, nil
}
