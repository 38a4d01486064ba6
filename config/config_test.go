package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Security.MaxFailedLogins != 5 {
		t.Errorf("Security.MaxFailedLogins = %d, want 5", cfg.Security.MaxFailedLogins)
	}
	if cfg.Security.UserIDPrefix != "MINN" {
		t.Errorf("Security.UserIDPrefix = %q, want MINN", cfg.Security.UserIDPrefix)
	}
	if cfg.JWT.AccessTokenExpiry != 15*time.Minute {
		t.Errorf("JWT.AccessTokenExpiry = %v, want 15m", cfg.JWT.AccessTokenExpiry)
	}
	if !cfg.Email.WorkerEnabled {
		t.Error("Email.WorkerEnabled = false, want true")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOCKOUT_DURATION", "30m")
	t.Setenv("EMAIL_WORKER_ENABLED", "false")
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "root@minn.example")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Security.LockoutDuration != 30*time.Minute {
		t.Errorf("Security.LockoutDuration = %v, want 30m", cfg.Security.LockoutDuration)
	}
	if cfg.Email.WorkerEnabled {
		t.Error("Email.WorkerEnabled = true, want false")
	}
	if cfg.Bootstrap.AdminEmail != "root@minn.example" {
		t.Errorf("Bootstrap.AdminEmail = %q, want root@minn.example", cfg.Bootstrap.AdminEmail)
	}
}

func TestLoad_UnparsableValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty-eighty")
	t.Setenv("JWT_EXPIRY", "soon")
	t.Setenv("METRICS_ENABLED", "yes please")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.JWT.AccessTokenExpiry != 15*time.Minute {
		t.Errorf("JWT.AccessTokenExpiry = %v, want default 15m", cfg.JWT.AccessTokenExpiry)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = false, want default true")
	}
}
