// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP endpoints for the public site API
// and the admin CMS API. Every response uses the render envelope.
package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amoodyplace/moodyplace-go/internal/auth"
	"github.com/amoodyplace/moodyplace-go/internal/cache"
	"github.com/amoodyplace/moodyplace-go/internal/middleware"
	"github.com/amoodyplace/moodyplace-go/internal/render"
	"github.com/amoodyplace/moodyplace-go/internal/service"
	"github.com/amoodyplace/moodyplace-go/internal/store"
	"github.com/amoodyplace/moodyplace-go/internal/validation"
)

// Pagination bounds for list endpoints.
const (
	defaultPage  = 1
	defaultLimit = 20
	maxPage      = 1000
	maxLimit     = 100
)

// Deps bundles everything the handlers need.
type Deps struct {
	Renderer   *render.Renderer
	DB         *store.DB
	Songs      *store.SongRepo
	Posts      *store.PostRepo
	Shows      *store.ShowRepo
	Photos     *store.PhotoRepo
	Contact    *store.ContactRepo
	Newsletter *store.NewsletterRepo
	Users      *store.UserRepo
	Auth       *auth.Service
	Events     *service.EventService
	SiteURL    string
}

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	renderer   *render.Renderer
	db         *store.DB
	songs      *store.SongRepo
	posts      *store.PostRepo
	shows      *store.ShowRepo
	photos     *store.PhotoRepo
	contact    *store.ContactRepo
	newsletter *store.NewsletterRepo
	users      *store.UserRepo
	auth       *auth.Service
	events     *service.EventService
	siteURL    string
	startTime  time.Time
	seoCache   *cache.Memory
}

// New creates a Handler.
func New(deps Deps) *Handler {
	return &Handler{
		renderer:   deps.Renderer,
		db:         deps.DB,
		songs:      deps.Songs,
		posts:      deps.Posts,
		shows:      deps.Shows,
		photos:     deps.Photos,
		contact:    deps.Contact,
		newsletter: deps.Newsletter,
		users:      deps.Users,
		auth:       deps.Auth,
		events:     deps.Events,
		siteURL:    strings.TrimSuffix(deps.SiteURL, "/"),
		startTime:  time.Now(),
		seoCache:   cache.New(time.Hour),
	}
}

// decodeJSON decodes the request body into dst. On failure it writes an
// INVALID_JSON envelope and returns false.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		h.renderer.Error(w, http.StatusBadRequest, render.CodeInvalidJSON, "Request body must be valid JSON")
		return false
	}
	return true
}

// validationFailed writes the collected field errors when validation did
// not pass. Returns true when the request should stop.
func (h *Handler) validationFailed(w http.ResponseWriter, errs validation.Errors) bool {
	if len(errs) == 0 {
		return false
	}
	h.renderer.ErrorDetails(w, http.StatusBadRequest, render.CodeValidationError, "Validation failed", errs)
	return true
}

// idParam parses the {id} URL parameter. On failure it writes a 404
// envelope and returns false.
func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		h.renderer.NotFound(w, "")
		return 0, false
	}
	return id, true
}

// parsePagination reads page and limit query parameters, clamped to
// sane bounds. Invalid values fall back to the defaults.
func parsePagination(r *http.Request) (page, limit int) {
	page = defaultPage
	limit = defaultLimit

	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= maxPage {
			page = n
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= maxLimit {
			limit = n
		}
	}
	return page, limit
}

// offsetFor converts a page number to a row offset.
func offsetFor(page, limit int) int {
	return (page - 1) * limit
}

// clientIP returns the request's client IP for event recording.
func clientIP(r *http.Request) string {
	return middleware.ClientIP(r)
}

// isNoRows reports whether err bubbled up from an empty query result.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
