// Package steps provides step definitions for BDD integration tests. The
// scenarios run against a real HTTP server wired to an in-memory SQLite
// database and a miniredis-backed login guard.
package steps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/minn-platform/backend/internal/application/usecase/admin"
	"github.com/minn-platform/backend/internal/application/usecase/auth"
	"github.com/minn-platform/backend/internal/application/usecase/mineral"
	"github.com/minn-platform/backend/internal/application/usecase/strength"
	"github.com/minn-platform/backend/internal/infra/server/router"
	"github.com/minn-platform/backend/internal/integration/adapters"
	"github.com/minn-platform/backend/internal/integration/email"
	"github.com/minn-platform/backend/internal/integration/entrypoint/controller"
	"github.com/minn-platform/backend/internal/integration/entrypoint/middleware"
	"github.com/minn-platform/backend/internal/integration/metrics"
	"github.com/minn-platform/backend/internal/integration/persistence"
	"github.com/minn-platform/backend/internal/integration/persistence/seed"
	"github.com/minn-platform/backend/internal/integration/web"
	"github.com/minn-platform/backend/test/integration/mock"
)

const testJWTSecret = "minn-integration-signing-secret"

// Lockout policy under test. Matches the production defaults so the
// scenarios read like the documented behavior.
const (
	testMaxFailedLogins = 5
	testLockoutDuration = 15 * time.Minute
)

var (
	serverInit     sync.Once
	portInit       sync.Once
	testDB         *mock.Db
	testRedis      *redis.Client
	testSeeder     *mineral.SeedMineralsUseCase
	testServerPort int
)

// testContext holds per-scenario state: the request being built, the last
// response, and identifiers captured along the way for placeholders.
type testContext struct {
	uri        string
	headers    map[string]string
	client     *http.Client
	response   *response
	db         *mock.Db
	serverPort int

	accessToken  string
	refreshToken string
	resetToken   string
	expiredToken string

	currentUserID   uuid.UUID
	currentPublicID string
	lastUsername    string
	userSeq         int
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up global resources before any scenario runs.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

func reservePort() {
	portInit.Do(func() {
		testServerPort = pickFreePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

// pickFreePort asks the kernel for an ephemeral port and releases it
// again. Nothing else grabs it in the window before the suite binds.
func pickFreePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

// startServer wires the whole application against the test database and
// starts it once for the entire suite. Scenarios share the server; the
// Before hook wipes the database and redis between them.
func (t *testContext) startServer() {
	serverInit.Do(func() {
		userRepo := persistence.NewUserRepository(testDB.DbConn)
		tokenRepo := persistence.NewTokenRepository(testDB.DbConn)
		auditRepo := persistence.NewAuditRepository(testDB.DbConn)
		mineralRepo := persistence.NewMineralRepository(testDB.DbConn)
		emailQueueRepo := persistence.NewEmailQueueRepository(testDB.DbConn)

		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService(testJWTSecret, 15*time.Minute, 7*24*time.Hour, tokenRepo)
		resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
		identityService := adapters.NewIdentityService("MINN", userRepo)
		loginGuard := adapters.NewRedisLoginGuard(testRedis, testLockoutDuration)
		emailService := email.NewService(emailQueueRepo)

		lockout := auth.LockoutPolicy{
			MaxFailures:  testMaxFailedLogins,
			LockDuration: testLockoutDuration,
		}
		baseURL := fmt.Sprintf("http://localhost:%d", testServerPort)

		registerUseCase := auth.NewRegisterUserUseCase(userRepo, identityService, passwordService, auditRepo)
		loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService, loginGuard, auditRepo, lockout)
		refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
		logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
		forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, baseURL)
		resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService, loginGuard, auditRepo)

		listMineralsUseCase := mineral.NewListMineralsUseCase(mineralRepo)
		productionUseCase := mineral.NewGetProductionUseCase(mineralRepo)
		depositsUseCase := mineral.NewGetDepositsUseCase(mineralRepo)
		testSeeder = mineral.NewSeedMineralsUseCase(mineralRepo, seed.NewDataset())

		overviewUseCase := admin.NewGetOverviewUseCase(userRepo)
		auditUseCase := admin.NewListAuditEventsUseCase(auditRepo)
		unlockUseCase := admin.NewUnlockAccountUseCase(userRepo, loginGuard, auditRepo)

		renderer, err := web.NewRenderer()
		if err != nil {
			panic(fmt.Sprintf("failed to build page renderer: %v", err))
		}
		evaluateUseCase := strength.NewEvaluatePasswordUseCase(renderer)

		healthController := controller.NewHealthController("minn-backend", func() bool {
			return testDB != nil && testDB.DbConn != nil
		})
		pageController := controller.NewPageController(renderer)
		strengthController := controller.NewStrengthController(evaluateUseCase)
		authController := controller.NewAuthController(
			registerUseCase,
			loginUseCase,
			refreshTokenUseCase,
			logoutUseCase,
			forgotPasswordUseCase,
			resetPasswordUseCase,
		)
		mineralController := controller.NewMineralController(listMineralsUseCase, productionUseCase, depositsUseCase)
		adminController := controller.NewAdminController(overviewUseCase, auditUseCase, unlockUseCase)

		loginRateLimiter := middleware.NewRateLimiter()
		strengthRateLimiter := middleware.NewRateLimiterWithConfig(120, time.Minute)
		authMiddleware := middleware.NewAuthMiddleware(tokenService)

		r := router.NewRouter(
			healthController,
			pageController,
			strengthController,
			authController,
			mineralController,
			adminController,
			loginRateLimiter,
			strengthRateLimiter,
			authMiddleware,
			metrics.Middleware("minn-backend"),
			metrics.Handler(),
		)
		engine := r.Setup("test")

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", testServerPort),
			Handler: engine,
		}

		go func() {
			_ = server.ListenAndServe()
		}()
	})

	// Poll /health until the listener answers.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(t.uri + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// before resets the per-scenario state and wipes storage.
func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.resetToken = ""
	t.expiredToken = ""
	t.currentUserID = uuid.Nil
	t.currentPublicID = ""
	t.lastUsername = ""
	t.userSeq = 0
	t.response = nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	if testRedis != nil {
		_ = mock.ClearRedis(testRedis)
	}
}

// replacePlaceholders substitutes captured identifiers into request paths
// and bodies, so feature files can reference values the server generated.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{reset_token}}", t.resetToken)
	content = strings.ReplaceAll(content, "{{expired_reset_token}}", t.expiredToken)
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentPublicID)
	content = strings.ReplaceAll(content, "{{username}}", t.lastUsername)
	return content
}

// executeRequest fires the request, decodes the response, and captures
// any tokens or usernames the body carries for later placeholders.
func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Pages and other non-JSON bodies are kept as text.
		t.response.body = string(raw)
		return nil
	}
	t.response.body = decoded

	if token, ok := decoded["access_token"].(string); ok && token != "" {
		t.accessToken = token
	}
	if token, ok := decoded["refresh_token"].(string); ok && token != "" {
		t.refreshToken = token
	}
	if username, ok := decoded["username"].(string); ok && username != "" {
		t.lastUsername = username
	}

	return nil
}

// fieldAt resolves a dot-separated path inside a decoded JSON value.
// Numeric segments index into arrays.
func fieldAt(object any, path string) any {
	node := object
	if _, ok := node.(map[string]any); !ok {
		raw, err := json.Marshal(object)
		if err != nil {
			return nil
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil
		}
		node = m
	}

	for _, part := range strings.Split(path, ".") {
		switch v := node.(type) {
		case map[string]any:
			node = v[part]
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(v) {
				return nil
			}
			node = v[i]
		default:
			return nil
		}
	}
	return node
}
