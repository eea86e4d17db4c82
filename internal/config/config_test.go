package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("default env = %q, want development", cfg.Server.Env)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("default session TTL = %s, want 24h", cfg.Session.TTL)
	}
	if cfg.Session.Issuer != "trustnet" {
		t.Errorf("default issuer = %q, want trustnet", cfg.Session.Issuer)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("default CORS origins = %v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Monitoring.PrometheusEnabled {
		t.Error("Prometheus should be enabled by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("session TTL = %s, want 2h", cfg.Session.TTL)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Errorf("CORS origins = %v, want two trimmed entries", cfg.CORS.AllowedOrigins)
	}
	if cfg.CORS.AllowedOrigins[1] != "https://staging.example.com" {
		t.Errorf("second origin = %q, want trimmed value", cfg.CORS.AllowedOrigins[1])
	}
}

func TestLoad_ProductionRequiresJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("Load should fail in production without SESSION_JWT_SECRET")
	}
}

func TestLoad_ProductionWithJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_JWT_SECRET", "a-real-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Session.JWTSecret != "a-real-secret" {
		t.Errorf("jwt secret = %q", cfg.Session.JWTSecret)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("API_PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port with invalid env = %d, want default 8080", cfg.Server.Port)
	}
}
