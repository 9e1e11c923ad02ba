package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amoodyplace/moodyplace-go/internal/auth"
	"github.com/amoodyplace/moodyplace-go/internal/model"
)

// Default super admin credentials, intended for first boot only.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@a-moody-place.com"
	DefaultAdminPassword = "ChangeMe!2026"
	DefaultAdminName     = "Site Administrator"
)

// Seed creates the initial super admin account when no accounts exist.
func Seed(ctx context.Context, db *DB) error {
	users := NewUserRepo(db)

	count, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("checking for existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	id, err := users.Create(ctx, &model.AdminUser{
		Username:     DefaultAdminUsername,
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		FullName:     DefaultAdminName,
		Role:         model.RoleSuperAdmin,
		IsActive:     true,
	})
	if err != nil {
		return fmt.Errorf("creating super admin user: %w", err)
	}

	slog.Info("created default super admin user",
		"id", id,
		"username", DefaultAdminUsername,
		"note", "change the default password immediately",
	)

	return nil
}
