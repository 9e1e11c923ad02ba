// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/amoodyplace/moodyplace-go/internal/auth"
	"github.com/amoodyplace/moodyplace-go/internal/middleware"
	"github.com/amoodyplace/moodyplace-go/internal/model"
	"github.com/amoodyplace/moodyplace-go/internal/render"
	"github.com/amoodyplace/moodyplace-go/internal/validation"
)

// loginResponse is the payload for successful login and refresh calls.
type loginResponse struct {
	User   *model.AdminUser `json:"user"`
	Tokens auth.TokenPair   `json:"tokens"`
}

// Login handles POST /api/admin/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in validation.LoginInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if h.validationFailed(w, in.Validate()) {
		return
	}

	result, err := h.auth.Login(r.Context(), in.Identifier, in.Password, clientIP(r), r.UserAgent())
	if err != nil {
		var locked *auth.LockedError
		switch {
		case errors.As(err, &locked):
			retryAfter := int(time.Until(locked.Until).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			h.renderer.ErrorDetails(w, http.StatusLocked, render.CodeAccountLocked,
				"Account temporarily locked due to repeated failed login attempts",
				map[string]any{"retry_after_seconds": retryAfter})
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.renderer.Error(w, http.StatusUnauthorized, render.CodeBadCredentials, "Invalid username or password")
		default:
			h.renderer.Internal(w, err, "login failed")
		}
		return
	}

	h.renderer.Success(w, loginResponse{User: result.User, Tokens: result.Tokens}, "Login successful")
}

// refreshInput is the refresh request payload.
type refreshInput struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /api/admin/auth/refresh.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var in refreshInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if in.RefreshToken == "" {
		h.renderer.ErrorDetails(w, http.StatusBadRequest, render.CodeValidationError,
			"Validation failed", validation.Errors{"refresh_token": "is required"})
		return
	}

	result, err := h.auth.Refresh(r.Context(), in.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			h.renderer.Error(w, http.StatusUnauthorized, render.CodeAuthTokenExpired, "Refresh token has expired")
		case errors.Is(err, auth.ErrTokenInvalid), errors.Is(err, auth.ErrWrongTokenType):
			h.renderer.Error(w, http.StatusUnauthorized, render.CodeAuthInvalidToken, "Invalid refresh token")
		case errors.Is(err, auth.ErrUserNotFound):
			h.renderer.Error(w, http.StatusUnauthorized, render.CodeAuthUserNotFound, "Account no longer exists")
		default:
			h.renderer.Internal(w, err, "token refresh failed")
		}
		return
	}

	h.renderer.Success(w, loginResponse{User: result.User, Tokens: result.Tokens}, "Token refreshed")
}

// Logout handles POST /api/admin/auth/logout. Tokens are stateless, so
// this only records the event for the audit trail.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context(), middleware.GetUserID(r), clientIP(r), r.UserAgent())
	h.renderer.Success(w, nil, "Logged out")
}

// Me handles GET /api/admin/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	h.renderer.Success(w, middleware.GetUser(r), "")
}

// ChangePassword handles POST /api/admin/auth/change-password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var in validation.ChangePasswordInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if h.validationFailed(w, in.Validate()) {
		return
	}

	err := h.auth.ChangePassword(r.Context(), middleware.GetUserID(r),
		in.CurrentPassword, in.NewPassword, clientIP(r), r.UserAgent())
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.renderer.Error(w, http.StatusUnauthorized, render.CodeBadCredentials, "Current password is incorrect")
			return
		}
		h.renderer.Internal(w, err, "password change failed")
		return
	}

	h.renderer.Success(w, nil, "Password changed")
}

// Register handles POST /api/admin/auth/register. Route access is
// limited to super_admin and admin by middleware; the granted role is
// further limited to admin and editor by validation.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in validation.RegisterInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if h.validationFailed(w, in.Validate()) {
		return
	}

	user := &model.AdminUser{
		Username: in.Username,
		Email:    in.Email,
		FullName: in.FullName,
		Role:     model.Role(in.Role),
	}
	id, err := h.auth.Register(r.Context(), middleware.GetUserID(r), user, in.Password, clientIP(r), r.UserAgent())
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			h.renderer.ErrorDetails(w, http.StatusConflict, render.CodeValidationError,
				"Username or email already in use", nil)
			return
		}
		h.renderer.Internal(w, err, "registration failed")
		return
	}

	created, err := h.auth.GetUser(r.Context(), id)
	if err != nil {
		h.renderer.Internal(w, err, "loading created account")
		return
	}
	h.renderer.SuccessStatus(w, http.StatusCreated, created, "Account created")
}
