// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including AdminUser, content entities, and analytics events.
package model

import (
	"database/sql"
	"time"
)

// Role identifies an admin account's permission tier.
type Role string

// Admin roles, from most to least privileged.
const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
)

// ValidRole reports whether s is a recognized role value.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleEditor:
		return true
	}
	return false
}

// RoleSet is a set of roles used for route-level access checks.
// A caller passes the check when their role is a member of the set.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether r is a member of the set.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// AdminUser represents a CMS admin account.
type AdminUser struct {
	ID                  int64        `json:"id"`
	Username            string       `json:"username"`
	Email               string       `json:"email"`
	PasswordHash        string       `json:"-"` // Never expose in JSON
	FullName            string       `json:"full_name"`
	Role                Role         `json:"role"`
	IsActive            bool         `json:"is_active"`
	FailedLoginAttempts int          `json:"-"`
	LockedUntil         sql.NullTime `json:"-"`
	LastLoginAt         sql.NullTime `json:"last_login_at,omitempty"`
	PasswordChangedAt   time.Time    `json:"-"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// LockState describes an account's lockout status at a point in time.
// Locked is true only while Until is strictly in the future.
type LockState struct {
	Locked bool
	Until  time.Time
}

// LockState evaluates the account's lockout status as of now.
// An expired locked_until timestamp counts as unlocked; the stale
// value is cleared lazily on the next successful login.
func (u *AdminUser) LockState(now time.Time) LockState {
	if u.LockedUntil.Valid && u.LockedUntil.Time.After(now) {
		return LockState{Locked: true, Until: u.LockedUntil.Time}
	}
	return LockState{}
}

// IsSuperAdmin returns true if the user has the super_admin role.
func (u *AdminUser) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}
