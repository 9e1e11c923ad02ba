// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers: an in-memory SQLite
// database with a schema mirroring the MySQL migrations, and quiet
// loggers. Repository SQL sticks to the portable subset both engines
// accept, so tests run without a MySQL server.
package testutil

import (
	"database/sql"
	"log/slog"
	"os"
	"testing"

	"github.com/amoodyplace/moodyplace-go/internal/store"

	_ "modernc.org/sqlite"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// schema mirrors migrations/00001_init.sql in SQLite dialect. ENUM
// columns become TEXT; value sets are enforced by validation before
// the store layer.
const schema = `
CREATE TABLE admin_users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    full_name TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'editor',
    is_active INTEGER NOT NULL DEFAULT 1,
    failed_login_attempts INTEGER NOT NULL DEFAULT 0,
    locked_until DATETIME NULL,
    last_login_at DATETIME NULL,
    password_changed_at DATETIME NOT NULL,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE songs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    description TEXT NULL,
    release_date DATETIME NULL,
    duration_seconds INTEGER NULL,
    spotify_url TEXT NULL,
    apple_music_url TEXT NULL,
    youtube_url TEXT NULL,
    soundcloud_url TEXT NULL,
    cover_image_url TEXT NULL,
    is_featured INTEGER NOT NULL DEFAULT 0,
    is_published INTEGER NOT NULL DEFAULT 0,
    sort_order INTEGER NOT NULL DEFAULT 0,
    play_count INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE blog_posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    content TEXT NOT NULL,
    excerpt TEXT NULL,
    featured_image TEXT NULL,
    meta_title TEXT NULL,
    meta_description TEXT NULL,
    is_published INTEGER NOT NULL DEFAULT 0,
    published_at DATETIME NULL,
    read_time_minutes INTEGER NULL,
    view_count INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE shows (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NULL,
    venue TEXT NOT NULL,
    city TEXT NOT NULL,
    state_province TEXT NULL,
    country TEXT NOT NULL,
    event_date DATETIME NOT NULL,
    doors_time TEXT NULL,
    show_time TEXT NULL,
    ticket_url TEXT NULL,
    ticket_price TEXT NULL,
    description TEXT NULL,
    age_restriction TEXT NULL,
    status TEXT NOT NULL DEFAULT 'upcoming',
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE photos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NULL,
    caption TEXT NULL,
    alt_text TEXT NOT NULL,
    category TEXT NOT NULL,
    photographer TEXT NULL,
    location TEXT NULL,
    file_path TEXT NOT NULL,
    is_featured INTEGER NOT NULL DEFAULT 0,
    is_press_approved INTEGER NOT NULL DEFAULT 0,
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE contact_inquiries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NULL,
    company_organization TEXT NULL,
    inquiry_type TEXT NOT NULL,
    subject TEXT NULL,
    message TEXT NOT NULL,
    preferred_contact_method TEXT NULL,
    urgency TEXT NOT NULL DEFAULT 'medium',
    is_responded INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE newsletter_subscribers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    first_name TEXT NULL,
    last_name TEXT NULL,
    subscriber_type TEXT NOT NULL DEFAULT 'fan',
    interests TEXT NOT NULL,
    confirm_token TEXT NULL,
    is_confirmed INTEGER NOT NULL DEFAULT 0,
    is_active INTEGER NOT NULL DEFAULT 1,
    subscribed_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE analytics_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    event_type TEXT NOT NULL,
    event_data TEXT NOT NULL,
    user_id INTEGER NULL,
    user_ip TEXT NOT NULL DEFAULT '',
    user_agent TEXT NOT NULL DEFAULT '',
    device_type TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);

CREATE TABLE sessions (
    token TEXT PRIMARY KEY,
    data BLOB NOT NULL,
    expiry TIMESTAMP NOT NULL
);
`

// TestDB creates an in-memory SQLite database with the full schema.
// The database is closed automatically when the test finishes.
func TestDB(t *testing.T) *store.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	// A single connection keeps every query on the same in-memory DB.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		t.Fatalf("applying test schema: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return store.NewFromSQL(db)
}
