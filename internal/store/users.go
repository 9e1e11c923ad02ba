// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amoodyplace/moodyplace-go/internal/model"
)

const userColumns = `id, username, email, password_hash, full_name, role, is_active,
	failed_login_attempts, locked_until, last_login_at, password_changed_at, created_at, updated_at`

// UserRepo provides access to admin user accounts.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.AdminUser, error) {
	var u model.AdminUser
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Role, &u.IsActive, &u.FailedLoginAttempts, &u.LockedUntil,
		&u.LastLoginAt, &u.PasswordChangedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.AdminUser, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM admin_users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	return u, nil
}

// GetActiveByLogin fetches an active user matching the given username or
// email. Returns sql.ErrNoRows (wrapped) when no active account matches.
func (r *UserRepo) GetActiveByLogin(ctx context.Context, identifier string) (*model.AdminUser, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM admin_users
		 WHERE (username = ? OR email = ?) AND is_active = 1`,
		identifier, identifier)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("getting user by login: %w", err)
	}
	return u, nil
}

// ExistsByUsernameOrEmail reports whether an account already uses either value.
func (r *UserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM admin_users WHERE username = ? OR email = ?`,
		username, email).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking user existence: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new admin account and returns its ID.
func (r *UserRepo) Create(ctx context.Context, u *model.AdminUser) (int64, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO admin_users (username, email, password_hash, full_name, role, is_active,
		   failed_login_attempts, password_changed_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.FullName, u.Role, u.IsActive, now, now, now)
	if err != nil {
		return 0, fmt.Errorf("creating user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new user id: %w", err)
	}
	return id, nil
}

// RecordLoginFailure stores the updated failure counter and, when the
// threshold was reached, the lockout expiry.
func (r *UserRepo) RecordLoginFailure(ctx context.Context, id int64, attempts int, lockedUntil sql.NullTime) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE admin_users SET failed_login_attempts = ?, locked_until = ?, updated_at = ?
		 WHERE id = ?`,
		attempts, lockedUntil, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("recording login failure for user %d: %w", id, err)
	}
	return nil
}

// RecordLoginSuccess resets the failure counter, clears any lockout, and
// stamps the last login time.
func (r *UserRepo) RecordLoginSuccess(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE admin_users SET failed_login_attempts = 0, locked_until = NULL,
		   last_login_at = ?, updated_at = ?
		 WHERE id = ?`,
		at, at, id)
	if err != nil {
		return fmt.Errorf("recording login success for user %d: %w", id, err)
	}
	return nil
}

// UpdatePassword replaces the stored hash and stamps the change time.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, hash string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE admin_users SET password_hash = ?, password_changed_at = ?, updated_at = ?
		 WHERE id = ?`,
		hash, at, at, id)
	if err != nil {
		return fmt.Errorf("updating password for user %d: %w", id, err)
	}
	return nil
}

// Count returns the total number of admin accounts.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}
