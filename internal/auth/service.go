// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amoodyplace/moodyplace-go/internal/model"
)

// Login and account management errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already in use")
)

// LockedError reports a login attempt against a locked account.
type LockedError struct {
	Until time.Time
}

func (e *LockedError) Error() string {
	return "account temporarily locked"
}

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.AdminUser, error)
	GetActiveByLogin(ctx context.Context, identifier string) (*model.AdminUser, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, u *model.AdminUser) (int64, error)
	RecordLoginFailure(ctx context.Context, id int64, attempts int, lockedUntil sql.NullTime) error
	RecordLoginSuccess(ctx context.Context, id int64, at time.Time) error
	UpdatePassword(ctx context.Context, id int64, hash string, at time.Time) error
}

// EventRecorder receives auth events for the analytics log. Implementations
// must be best-effort: recording failures never fail the caller.
type EventRecorder interface {
	RecordAuth(ctx context.Context, eventType string, userID *int64, ip, userAgent string, detail map[string]any)
}

// Service implements the admin authentication flows: login with lockout,
// token refresh, password change, and account registration.
type Service struct {
	users       UserStore
	events      EventRecorder
	tokens      *TokenManager
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time
}

// NewService creates an auth Service.
func NewService(users UserStore, events EventRecorder, tokens *TokenManager, maxAttempts int, lockout time.Duration) *Service {
	return &Service{
		users:       users,
		events:      events,
		tokens:      tokens,
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
	}
}

// LoginResult carries the authenticated user and their fresh token pair.
type LoginResult struct {
	User   *model.AdminUser
	Tokens TokenPair
}

// Login runs the credential check and lockout state machine.
//
// Unknown accounts and wrong passwords both return ErrInvalidCredentials so
// the response does not reveal which accounts exist. A locked account
// returns *LockedError without consuming an attempt.
func (s *Service) Login(ctx context.Context, identifier, password, ip, userAgent string) (*LoginResult, error) {
	now := s.now().UTC()

	user, err := s.users.GetActiveByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.events.RecordAuth(ctx, model.EventLoginFailed, nil, ip, userAgent,
				map[string]any{"identifier": identifier, "reason": "user_not_found"})
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up account: %w", err)
	}

	if state := user.LockState(now); state.Locked {
		s.events.RecordAuth(ctx, model.EventLoginBlocked, &user.ID, ip, userAgent,
			map[string]any{"locked_until": state.Until.Format(time.RFC3339)})
		return nil, &LockedError{Until: state.Until}
	}

	ok, err := CheckPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("checking password: %w", err)
	}
	if !ok {
		attempts := user.FailedLoginAttempts + 1
		var lockedUntil sql.NullTime
		if attempts >= s.maxAttempts {
			lockedUntil = sql.NullTime{Time: now.Add(s.lockout), Valid: true}
		}
		if err := s.users.RecordLoginFailure(ctx, user.ID, attempts, lockedUntil); err != nil {
			return nil, fmt.Errorf("recording failed attempt: %w", err)
		}

		if lockedUntil.Valid {
			s.events.RecordAuth(ctx, model.EventAccountLocked, &user.ID, ip, userAgent,
				map[string]any{
					"attempts":     attempts,
					"locked_until": lockedUntil.Time.Format(time.RFC3339),
				})
		} else {
			s.events.RecordAuth(ctx, model.EventLoginFailed, &user.ID, ip, userAgent,
				map[string]any{"attempts": attempts, "reason": "wrong_password"})
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.users.RecordLoginSuccess(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("recording login: %w", err)
	}
	user.FailedLoginAttempts = 0
	user.LockedUntil = sql.NullTime{}
	user.LastLoginAt = sql.NullTime{Time: now, Valid: true}

	tokens, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	s.events.RecordAuth(ctx, model.EventLoginSuccess, &user.ID, ip, userAgent, nil)

	return &LoginResult{User: user, Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The account
// must still be active. The presented refresh token stays valid until its
// natural expiry; there is no server-side revocation list.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.tokens.Verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up account: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserNotFound
	}

	tokens, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: tokens}, nil
}

// VerifyAccess validates a bearer token for request authentication.
func (s *Service) VerifyAccess(tokenString string) (*Claims, error) {
	return s.tokens.Verify(tokenString, "")
}

// GetUser loads a user by ID for authenticated request contexts.
func (s *Service) GetUser(ctx context.Context, id int64) (*model.AdminUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword re-verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID int64, current, updated, ip, userAgent string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("looking up account: %w", err)
	}

	ok, err := CheckPassword(current, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("checking password: %w", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	hash, err := HashPassword(updated)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash, s.now().UTC()); err != nil {
		return err
	}

	s.events.RecordAuth(ctx, model.EventPasswordChange, &userID, ip, userAgent, nil)
	return nil
}

// Register creates a new admin account. Only admin and editor roles may be
// granted through registration; super_admin accounts are seeded.
func (s *Service) Register(ctx context.Context, actorID int64, u *model.AdminUser, password, ip, userAgent string) (int64, error) {
	if u.Role != model.RoleAdmin && u.Role != model.RoleEditor {
		return 0, fmt.Errorf("role %q cannot be granted through registration", u.Role)
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, u.Username, u.Email)
	if err != nil {
		return 0, fmt.Errorf("checking account uniqueness: %w", err)
	}
	if exists {
		return 0, ErrUserExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return 0, err
	}
	u.PasswordHash = hash
	u.IsActive = true

	id, err := s.users.Create(ctx, u)
	if err != nil {
		return 0, err
	}

	s.events.RecordAuth(ctx, model.EventUserRegistered, &actorID, ip, userAgent,
		map[string]any{"new_user_id": id, "username": u.Username, "role": string(u.Role)})
	return id, nil
}

// Logout records the logout event. Issued tokens remain valid until expiry.
func (s *Service) Logout(ctx context.Context, userID int64, ip, userAgent string) {
	s.events.RecordAuth(ctx, model.EventLogout, &userID, ip, userAgent, nil)
}

// SetClock overrides the service clock. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
	s.tokens.now = now
}
