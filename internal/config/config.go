package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port               string   `env:"PORT" envDefault:"8080"`
	Env                string   `env:"ENV" envDefault:"development"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Database
	DB Database

	// JWT
	JWTSecret        string        `env:"JWT_SECRET" envDefault:"fallback-secret-key-for-dev-only"`
	JWTExpirationDur time.Duration `env:"JWT_EXPIRES_IN" envDefault:"15m"`
	RefreshTokenDur  time.Duration `env:"REFRESH_TOKEN_EXPIRES_IN" envDefault:"168h"`

	// Admin endpoints
	AdminAPIKey string `env:"ADMIN_API_KEY"`

	// Guests
	GuestMaxAge time.Duration `env:"GUEST_MAX_AGE" envDefault:"12h"`
}

// Database holds the PostgreSQL connection settings.
type Database struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"fundit"`
	Password string `env:"DB_PASSWORD" envDefault:"fundit"`
	Name     string `env:"DB_NAME" envDefault:"fundit"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// URL returns the postgres:// connection URL used by golang-migrate.
func (d Database) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// DSN returns the key/value connection string used by the GORM driver.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	for i, origin := range cfg.CORSAllowedOrigins {
		cfg.CORSAllowedOrigins[i] = strings.TrimSpace(origin)
	}

	appConfig = cfg
	return cfg, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Set replaces the process-wide configuration. Tests use it to pin secrets.
func Set(cfg *Config) {
	appConfig = cfg
}
