package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_EXPIRY_HOURS", "")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("BASE_LOOKBACK_DAYS", "")
	t.Setenv("WARM_INTERVAL_SECS", "")
	t.Setenv("WARM_LOOKBACK_DAYS", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.JWTExpiryHours != 24 {
		t.Fatalf("expected default expiry 24h, got %d", cfg.JWTExpiryHours)
	}
	if cfg.AdminUsername != "admin" {
		t.Fatalf("expected default admin username, got %s", cfg.AdminUsername)
	}
	if cfg.BaseLookbackDays != 365 {
		t.Fatalf("expected default lookback 365, got %d", cfg.BaseLookbackDays)
	}
	if len(cfg.WarmLookbacks) != 4 {
		t.Fatalf("expected default warm lookbacks, got %v", cfg.WarmLookbacks)
	}
	if cfg.JWTSecret == "" {
		t.Fatal("expected fallback demo secret")
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis:6379")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRY_HOURS", "48")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("BASE_LOOKBACK_DAYS", "90")
	t.Setenv("WARM_LOOKBACK_DAYS", "1, 30")

	cfg := Load()
	if cfg.DatabaseURL != "postgres://example" || cfg.RedisURL != "redis:6379" || cfg.JWTSecret != "s3cret" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Port != "9090" || cfg.JWTExpiryHours != 48 || cfg.AdminUsername != "root" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.BaseLookbackDays != 90 {
		t.Fatalf("expected lookback 90, got %d", cfg.BaseLookbackDays)
	}
	if len(cfg.WarmLookbacks) != 2 || cfg.WarmLookbacks[0] != 1 || cfg.WarmLookbacks[1] != 30 {
		t.Fatalf("unexpected warm lookbacks: %v", cfg.WarmLookbacks)
	}

	t.Setenv("JWT_EXPIRY_HOURS", "bad")
	cfg = Load()
	if cfg.JWTExpiryHours != 24 {
		t.Fatalf("invalid expiry should fall back to default, got %d", cfg.JWTExpiryHours)
	}
}
