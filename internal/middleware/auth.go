// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, rate limiting, and response headers.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/amoodyplace/moodyplace-go/internal/auth"
	"github.com/amoodyplace/moodyplace-go/internal/model"
	"github.com/amoodyplace/moodyplace-go/internal/render"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for authenticated request data.
const (
	ContextKeyClaims ContextKey = "claims"
	ContextKeyUser   ContextKey = "user"
)

// Authenticator provides bearer token middleware for the admin API.
type Authenticator struct {
	svc      *auth.Service
	renderer *render.Renderer
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(svc *auth.Service, renderer *render.Renderer) *Authenticator {
	return &Authenticator{svc: svc, renderer: renderer}
}

// bearerToken extracts the token from the Authorization header. The
// second return distinguishes a missing header from a malformed one.
func bearerToken(r *http.Request) (token string, present bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", true
	}
	return parts[1], true
}

// RequireAuth rejects requests without a valid access token. On success
// the verified claims and the loaded account are placed in the context.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, present := bearerToken(r)
		if !present {
			a.renderer.Error(w, http.StatusUnauthorized, render.CodeAuthTokenMissing, "Access token required")
			return
		}
		if token == "" {
			a.renderer.Error(w, http.StatusUnauthorized, render.CodeAuthInvalidFormat,
				"Invalid Authorization header format. Use: Bearer <token>")
			return
		}

		claims, err := a.svc.VerifyAccess(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				a.renderer.Error(w, http.StatusUnauthorized, render.CodeAuthTokenExpired, "Access token has expired")
				return
			}
			a.renderer.Error(w, http.StatusUnauthorized, render.CodeAuthInvalidToken, "Invalid access token")
			return
		}

		user, err := a.svc.GetUser(r.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			a.renderer.Error(w, http.StatusUnauthorized, render.CodeAuthUserNotFound, "Account no longer exists")
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
		ctx = context.WithValue(ctx, ContextKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads claims and user into the context when a valid token
// is presented but never rejects the request. Invalid tokens are treated
// as anonymous.
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, present := bearerToken(r)
		if !present || token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.svc.VerifyAccess(token)
		if err != nil {
			slog.Debug("ignoring invalid optional token", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		user, err := a.svc.GetUser(r.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
		ctx = context.WithValue(ctx, ContextKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles allows only users whose role is in the given set. Must be
// used after RequireAuth.
func (a *Authenticator) RequireRoles(roles ...model.Role) func(http.Handler) http.Handler {
	allowed := model.NewRoleSet(roles...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				a.renderer.Error(w, http.StatusUnauthorized, render.CodeAuthRequired, "Authentication required")
				return
			}
			if !allowed.Contains(user.Role) {
				slog.Warn("access denied",
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
					"user_role", user.Role,
				)
				a.renderer.Error(w, http.StatusForbidden, render.CodeForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelfOrRoles allows the request when the {param} URL parameter
// matches the authenticated user's ID, or when their role is in the set.
// Must be used after RequireAuth.
func (a *Authenticator) RequireSelfOrRoles(param string, roles ...model.Role) func(http.Handler) http.Handler {
	allowed := model.NewRoleSet(roles...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				a.renderer.Error(w, http.StatusUnauthorized, render.CodeAuthRequired, "Authentication required")
				return
			}

			id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
			if err == nil && id == user.ID {
				next.ServeHTTP(w, r)
				return
			}
			if !allowed.Contains(user.Role) {
				a.renderer.Error(w, http.StatusForbidden, render.CodeForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClaims retrieves verified token claims from the request context.
// Returns nil for unauthenticated requests.
func GetClaims(r *http.Request) *auth.Claims {
	claims, ok := r.Context().Value(ContextKeyClaims).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetUser retrieves the authenticated account from the request context.
// Returns nil for unauthenticated requests.
func GetUser(r *http.Request) *model.AdminUser {
	user, ok := r.Context().Value(ContextKeyUser).(*model.AdminUser)
	if !ok {
		return nil
	}
	return user
}

// GetUserID returns the authenticated user's ID, or 0 if anonymous.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}
