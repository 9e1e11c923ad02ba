package config

import (
	"strings"
	"testing"
)

const testSecret = "Xk9#mP2$vN8qR5tY7wZ3bC6dF1gH4jL0"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AMP_JWT_SECRET", testSecret)
	t.Setenv("AMP_SESSION_SECRET", testSecret)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DBMaxOpenConns != 10 {
		t.Errorf("DBMaxOpenConns = %d, want 10", cfg.DBMaxOpenConns)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q, want localhost:8080", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.AccessTokenTTL.Hours() != 24 {
		t.Errorf("AccessTokenTTL = %v, want 24h", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL.Hours() != 168 {
		t.Errorf("RefreshTokenTTL = %v, want 168h", cfg.RefreshTokenTTL)
	}
	if cfg.MaxLoginAttempts != 5 {
		t.Errorf("MaxLoginAttempts = %d, want 5", cfg.MaxLoginAttempts)
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("AMP_SESSION_SECRET", testSecret)
	t.Setenv("AMP_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail without AMP_JWT_SECRET")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("AMP_JWT_SECRET", "too-short")
	t.Setenv("AMP_SESSION_SECRET", testSecret)

	_, err := Load()
	if err == nil {
		t.Fatal("Load should reject a short JWT secret")
	}
	if !strings.Contains(err.Error(), "AMP_JWT_SECRET") {
		t.Errorf("error should name the offending variable, got: %v", err)
	}
}

func TestLoad_KnownWeakSecret(t *testing.T) {
	t.Setenv("AMP_JWT_SECRET", "change-me-to-32-byte-secret-key!")
	t.Setenv("AMP_SESSION_SECRET", testSecret)

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject a known default secret")
	}
}

func TestLoad_ProductionRequiresDBPassword(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AMP_ENV", "production")
	t.Setenv("AMP_DB_PASSWORD", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load should require a DB password in production")
	}
}

func TestDSN(t *testing.T) {
	cfg := Config{
		DBHost:     "db.internal",
		DBPort:     3307,
		DBUser:     "amp",
		DBPassword: "s3cret",
		DBName:     "amoodyplace",
	}
	dsn := cfg.DSN()
	want := "amp:s3cret@tcp(db.internal:3307)/amoodyplace?parseTime=true&charset=utf8mb4&loc=UTC"
	if dsn != want {
		t.Errorf("DSN = %q, want %q", dsn, want)
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	if hasMinimumEntropy("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa") {
		t.Error("single character class should fail entropy check")
	}
	if !hasMinimumEntropy(testSecret) {
		t.Error("mixed-class secret should pass entropy check")
	}
}
