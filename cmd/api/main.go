// Package main is the entry point for the MINN platform API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/minn-platform/backend/config"
	"github.com/minn-platform/backend/internal/infra/db"
	"github.com/minn-platform/backend/internal/infra/dependency"
	"github.com/minn-platform/backend/internal/integration/persistence/model"
)

func main() {
	// A .env file only exists in development; its absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Server.LogLevel),
	})))

	slog.Info("Starting MINN platform API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Without a database the account and catalogue routes stay
	// unregistered; the pages, the strength meter and the health
	// endpoint keep working.
	database := openDatabase(&cfg.Database)
	var dbHealthChecker func() bool
	if database != nil {
		dbHealthChecker = database.HealthCheck
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	redisClient := connectRedis(cfg.Redis.URL)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("Failed to close Redis connection", "error", err)
			}
		}()
	}

	injector, err := wire(cfg, database, redisClient, dbHealthChecker)
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	provision(injector)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if injector.EmailWorker != nil {
		go injector.EmailWorker.Start(workerCtx)
	}

	serve(cfg, injector.Router.Setup(cfg.Server.Environment))
	stopWorker()
}

// openDatabase connects to PostgreSQL and migrates the schema. A nil
// return means the server runs without persistence.
func openDatabase(cfg *config.DatabaseConfig) *db.Database {
	database, err := db.NewPostgresConnection(cfg)
	if err != nil {
		slog.Warn("Database connection failed, running without database", "error", err)
		return nil
	}

	if err := database.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.PasswordResetTokenModel{},
		&model.AuditEventModel{},
		&model.MineralModel{},
		&model.ProductionRecordModel{},
		&model.DepositModel{},
		&model.EmailQueueModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	return database
}

// connectRedis dials Redis when REDIS_URL is set. A nil client is fine,
// the login guard then falls back to its in-process counter.
func connectRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		slog.Warn("Invalid REDIS_URL, login guard falls back to process memory", "error", err)
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, login guard falls back to process memory", "error", err)
		_ = client.Close()
		return nil
	}

	slog.Info("Redis connection established")
	return client
}

func wire(cfg *config.Config, database *db.Database, redisClient *redis.Client, healthy func() bool) (*dependency.Injector, error) {
	if database == nil {
		return dependency.NewInjector(cfg, nil, redisClient, nil)
	}
	return dependency.NewInjector(cfg, database.DB(), redisClient, healthy)
}

// provision runs the startup tasks: the bootstrap administrator and the
// mineral catalogue. Failures are logged, not fatal, so a half-seeded
// database does not keep the server down.
func provision(injector *dependency.Injector) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if injector.EnsureAdmin != nil {
		if err := injector.EnsureAdmin.Execute(ctx); err != nil {
			slog.Error("Failed to ensure bootstrap administrator", "error", err)
		}
	}
	if injector.SeedMinerals != nil {
		if err := injector.SeedMinerals.Execute(ctx); err != nil {
			slog.Error("Failed to seed mineral catalogue", "error", err)
		}
	}
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains
// in-flight requests for up to ten seconds.
func serve(cfg *config.Config, handler http.Handler) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// logLevel maps the configured level name to its slog level, defaulting
// to info for anything unrecognized.
func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
