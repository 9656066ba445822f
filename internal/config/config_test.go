package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("uses defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.GuestMaxAge != 12*time.Hour {
			t.Errorf("expected guest max age 12h, got %s", cfg.GuestMaxAge)
		}
		if cfg.JWTExpirationDur != 15*time.Minute {
			t.Errorf("expected 15m access tokens, got %s", cfg.JWTExpirationDur)
		}
	})

	t.Run("reads the environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("GUEST_MAX_AGE", "6h")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "9090" || cfg.DB.Host != "db.internal" || cfg.GuestMaxAge != 6*time.Hour {
			t.Errorf("environment not applied: %+v", cfg)
		}
		if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
			t.Errorf("unexpected origins %q", cfg.CORSAllowedOrigins)
		}
		if Get() != cfg {
			t.Error("Get should return the loaded configuration")
		}
	})

	t.Run("rejects malformed durations", func(t *testing.T) {
		t.Setenv("JWT_EXPIRES_IN", "soon")

		if _, err := Load(); err == nil {
			t.Error("expected error for malformed duration")
		}
	})
}

func TestDatabaseURLs(t *testing.T) {
	db := Database{Host: "h", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}

	if got := db.URL(); got != "postgres://u:p@h:5432/n?sslmode=disable" {
		t.Errorf("unexpected URL %s", got)
	}
	if got := db.DSN(); got != "host=h port=5432 user=u password=p dbname=n sslmode=disable" {
		t.Errorf("unexpected DSN %s", got)
	}
}
