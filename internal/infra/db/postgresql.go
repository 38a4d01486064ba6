// Package db manages the PostgreSQL connection for the API.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/minn-platform/backend/config"
)

// slowQueryThreshold is when gorm starts warning about query latency.
const slowQueryThreshold = 200 * time.Millisecond

// gormLogBridge routes gorm's own logging into slog.
type gormLogBridge struct{}

func (gormLogBridge) Printf(format string, args ...interface{}) {
	slog.Warn(fmt.Sprintf(format, args...))
}

// Database wraps the GORM handle.
type Database struct {
	db *gorm.DB
}

// NewPostgresConnection opens a pooled PostgreSQL connection and verifies it
// with a ping. Gorm only logs slow queries and errors, routed into slog.
func NewPostgresConnection(cfg *config.DatabaseConfig) (*Database, error) {
	gormLogger := logger.New(gormLogBridge{}, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing connection pool: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	slog.Info("database connected",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)

	return &Database{db: db}, nil
}

// DB returns the underlying GORM handle.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// HealthCheck reports whether the database answers a ping.
func (d *Database) HealthCheck() bool {
	pool, err := d.db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := pool.PingContext(ctx); err != nil {
		slog.Warn("database ping failed", "error", err)
		return false
	}
	return true
}

// Close shuts down the connection pool.
func (d *Database) Close() error {
	pool, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("accessing connection pool: %w", err)
	}
	if err := pool.Close(); err != nil {
		return fmt.Errorf("closing postgres connection: %w", err)
	}

	slog.Info("database connection closed")
	return nil
}

// AutoMigrate creates or updates the schema for the given models.
func (d *Database) AutoMigrate(models ...interface{}) error {
	if err := d.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("running schema migration: %w", err)
	}
	return nil
}
