package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return LoadWith(context.Background(), envconfig.MapLookuper(env))
}

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := load(t, map[string]string{"JWT_SECRET": "s3cret"})
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	if cfg.Port != "8080" || cfg.StoreDriver != DriverMongo {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWT.Algorithm != "HS256" || cfg.JWT.TokenTTL() != 60*time.Minute || cfg.JWT.Issuer != "aegisflow" {
		t.Fatalf("unexpected jwt defaults: %+v", cfg.JWT)
	}
	if cfg.Login.MaxAttempts != 5 || cfg.Login.LockoutWindow != 15*time.Minute {
		t.Fatalf("unexpected login defaults: %+v", cfg.Login)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("expected no CORS origins by default, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"JWT_SECRET":           "s3cret",
		"JWT_ALGORITHM":        "HS512",
		"JWT_EXPIRY_MINUTES":   "15",
		"STORE_DRIVER":         "postgres",
		"CORS_ALLOWED_ORIGINS": "http://localhost:3000,https://app.example.com",
		"LOGIN_LOCKOUT_WINDOW": "1h",
		"ADMIN_USERNAME":       "root",
		"ADMIN_PASSWORD":       "pw",
	})
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	if cfg.JWT.Algorithm != "HS512" || cfg.JWT.TokenTTL() != 15*time.Minute {
		t.Fatalf("unexpected jwt config: %+v", cfg.JWT)
	}
	if cfg.StoreDriver != DriverPostgres {
		t.Fatalf("unexpected driver: %s", cfg.StoreDriver)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://app.example.com" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.Login.LockoutWindow != time.Hour {
		t.Fatalf("unexpected lockout window: %v", cfg.Login.LockoutWindow)
	}
}

func TestLoadWith_MissingSecret(t *testing.T) {
	if _, err := load(t, map[string]string{}); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}

func TestLoadWith_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"driver":    {"JWT_SECRET": "s", "STORE_DRIVER": "sqlite"},
		"algorithm": {"JWT_SECRET": "s", "JWT_ALGORITHM": "RS256"},
		"expiry":    {"JWT_SECRET": "s", "JWT_EXPIRY_MINUTES": "0"},
		"attempts":  {"JWT_SECRET": "s", "LOGIN_MAX_ATTEMPTS": "-1"},
		"admin":     {"JWT_SECRET": "s", "ADMIN_USERNAME": "root"},
	}
	for name, env := range cases {
		_, err := load(t, env)
		if err == nil || !strings.HasPrefix(err.Error(), "config:") {
			t.Fatalf("%s: expected config error, got %v", name, err)
		}
	}
}
