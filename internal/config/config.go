// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"your-secret-key-change-in-production",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Database
	DBHost          string        `env:"AMP_DB_HOST" envDefault:"localhost"`
	DBPort          int           `env:"AMP_DB_PORT" envDefault:"3306"`
	DBUser          string        `env:"AMP_DB_USER" envDefault:"amoodyplace"`
	DBPassword      string        `env:"AMP_DB_PASSWORD"`
	DBName          string        `env:"AMP_DB_NAME" envDefault:"amoodyplace"`
	DBMaxOpenConns  int           `env:"AMP_DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns  int           `env:"AMP_DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnLifetime  time.Duration `env:"AMP_DB_CONN_LIFETIME" envDefault:"30m"`

	// Secrets
	JWTSecret     string `env:"AMP_JWT_SECRET,required"`
	SessionSecret string `env:"AMP_SESSION_SECRET,required"`

	// Tokens
	AccessTokenTTL  time.Duration `env:"AMP_ACCESS_TOKEN_TTL" envDefault:"24h"`
	RefreshTokenTTL time.Duration `env:"AMP_REFRESH_TOKEN_TTL" envDefault:"168h"`

	// Server
	ServerHost string `env:"AMP_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"AMP_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"AMP_ENV" envDefault:"development"`
	LogLevel   string `env:"AMP_LOG_LEVEL" envDefault:"info"`

	// Assets
	PublicDir  string `env:"AMP_PUBLIC_DIR" envDefault:"./public"`
	UploadsDir string `env:"AMP_UPLOADS_DIR" envDefault:"./uploads"`

	// SiteURL is the canonical public URL used in the sitemap and robots.txt.
	SiteURL string `env:"AMP_SITE_URL" envDefault:"https://a-moody-place.com"`

	// CORS: comma-separated list of allowed origins.
	CORSOrigins []string `env:"AMP_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Login protection
	MaxLoginAttempts int           `env:"AMP_MAX_LOGIN_ATTEMPTS" envDefault:"5"`
	LockoutDuration  time.Duration `env:"AMP_LOCKOUT_DURATION" envDefault:"15m"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// DSN returns the MySQL data source name for database/sql.
// parseTime is required so DATETIME columns scan into time.Time.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// MinSecretLength is the minimum required length for the JWT and session secrets.
const MinSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := validateSecret("AMP_JWT_SECRET", cfg.JWTSecret); err != nil {
		return nil, err
	}
	if err := validateSecret("AMP_SESSION_SECRET", cfg.SessionSecret); err != nil {
		return nil, err
	}

	if !cfg.IsDevelopment() && cfg.DBPassword == "" {
		return nil, fmt.Errorf("AMP_DB_PASSWORD is required outside development")
	}

	if cfg.DBMaxOpenConns < 1 {
		return nil, fmt.Errorf("AMP_DB_MAX_OPEN_CONNS must be at least 1, got %d", cfg.DBMaxOpenConns)
	}

	return cfg, nil
}

// validateSecret enforces minimum length, rejects known defaults, and warns
// about low-entropy values.
func validateSecret(name, secret string) error {
	if len(secret) < MinSecretLength {
		return fmt.Errorf("%s must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			name, MinSecretLength, len(secret))
	}

	for _, weak := range knownWeakSecrets {
		if secret == weak {
			return fmt.Errorf("%s is a known default value and must not be used; "+
				"generate a secure secret with: openssl rand -base64 32", name)
		}
	}

	if !hasMinimumEntropy(secret) {
		slog.Warn(name + " has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
