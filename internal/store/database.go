// Package store provides database access: connection lifecycle, schema
// migrations, and per-entity repositories over a shared connection pool.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	_ "github.com/go-sql-driver/mysql" // MySQL driver for database/sql
)

//go:embed migrations/*.sql
var migrations embed.FS

// DBConfig holds connection pool configuration options.
type DBConfig struct {
	// MaxOpenConns is the maximum number of open connections to the database.
	MaxOpenConns int
	// MaxIdleConns is the maximum number of connections in the idle connection pool.
	MaxIdleConns int
	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime is the maximum amount of time a connection may be idle.
	ConnMaxIdleTime time.Duration
}

// DefaultDBConfig returns sensible pool defaults for MySQL/MariaDB.
func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// DB wraps a sql.DB pool. All repositories receive it by injection so the
// connection lifecycle stays owned by the caller.
type DB struct {
	*sql.DB
}

// Open opens a MySQL connection pool with default pool settings.
func Open(dsn string) (*DB, error) {
	return OpenWithConfig(dsn, DefaultDBConfig())
}

// OpenWithConfig opens a MySQL connection pool with custom pool settings
// and verifies connectivity before returning.
func OpenWithConfig(dsn string, cfg DBConfig) (*DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{DB: db}, nil
}

// NewFromSQL wraps an existing sql.DB. Used by tests that supply their own
// driver and schema.
func NewFromSQL(db *sql.DB) *DB {
	return &DB{DB: db}
}

// Migrate runs all pending database migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

// Transact runs fn inside a transaction. The transaction is committed when
// fn returns nil and rolled back otherwise; a rollback failure is attached
// to the original error.
func (d *DB) Transact(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// HealthInfo describes database connectivity and pool occupancy.
type HealthInfo struct {
	Latency         time.Duration
	OpenConnections int
	InUse           int
	Idle            int
	MaxOpen         int
}

// Health pings the database and reports round-trip latency plus pool stats.
func (d *DB) Health(ctx context.Context) (HealthInfo, error) {
	start := time.Now()
	err := d.PingContext(ctx)
	latency := time.Since(start)

	stats := d.Stats()
	info := HealthInfo{
		Latency:         latency,
		OpenConnections: stats.OpenConnections,
		InUse:           stats.InUse,
		Idle:            stats.Idle,
		MaxOpen:         stats.MaxOpenConnections,
	}
	if err != nil {
		return info, fmt.Errorf("pinging database: %w", err)
	}
	return info, nil
}
