// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render writes the uniform JSON response envelope used by every
// endpoint. Success responses carry data plus a timestamp meta block;
// error responses carry a machine-readable code, a message, and the HTTP
// status. Validation details are included only in development mode.
package render

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Error codes returned in the error envelope.
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeAuthTokenMissing  = "AUTH_TOKEN_MISSING"
	CodeAuthInvalidFormat = "AUTH_INVALID_FORMAT"
	CodeAuthTokenExpired  = "AUTH_TOKEN_EXPIRED"
	CodeAuthInvalidToken  = "AUTH_INVALID_TOKEN"
	CodeAuthUserNotFound  = "AUTH_USER_NOT_FOUND"
	CodeAuthRequired      = "AUTH_REQUIRED"
	CodeBadCredentials    = "INVALID_CREDENTIALS"
	CodeAccountLocked     = "ACCOUNT_LOCKED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeInvalidJSON       = "INVALID_JSON"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Meta is the envelope metadata block.
type Meta struct {
	Timestamp string `json:"timestamp"`
}

// ErrorBody is the error payload inside the envelope.
type ErrorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
	Details    any    `json:"details,omitempty"`
}

// Envelope is the uniform response shape.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
	Meta    Meta       `json:"meta"`
}

// Pagination is the meta block for list endpoints.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
	NextPage    *int  `json:"next_page"`
	PrevPage    *int  `json:"prev_page"`
}

// NewPagination derives the pagination block from page, limit and total.
func NewPagination(page, limit int, totalItems int64) Pagination {
	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	p := Pagination{
		CurrentPage: page,
		PerPage:     limit,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
	if p.HasNext {
		next := page + 1
		p.NextPage = &next
	}
	if p.HasPrev {
		prev := page - 1
		p.PrevPage = &prev
	}
	return p
}

// PaginatedData wraps list items with their pagination block.
type PaginatedData struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Renderer writes envelope responses. In development mode error details
// (validation failures, internal error text) are included in responses.
type Renderer struct {
	isDev bool
}

// New creates a Renderer.
func New(isDev bool) *Renderer {
	return &Renderer{isDev: isDev}
}

// IsDev reports whether the renderer exposes error details.
func (rn *Renderer) IsDev() bool {
	return rn.isDev
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	env.Meta = Meta{Timestamp: time.Now().UTC().Format(time.RFC3339)}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Success writes a 200 envelope with data and an optional message.
func (rn *Renderer) Success(w http.ResponseWriter, data any, message string) {
	rn.SuccessStatus(w, http.StatusOK, data, message)
}

// SuccessStatus writes a success envelope with an explicit status code.
func (rn *Renderer) SuccessStatus(w http.ResponseWriter, status int, data any, message string) {
	writeEnvelope(w, status, Envelope{Success: true, Data: data, Message: message})
}

// Paginated writes a 200 envelope wrapping items with pagination meta.
func (rn *Renderer) Paginated(w http.ResponseWriter, items any, p Pagination) {
	writeEnvelope(w, http.StatusOK, Envelope{
		Success: true,
		Data:    PaginatedData{Items: items, Pagination: p},
	})
}

// Error writes an error envelope.
func (rn *Renderer) Error(w http.ResponseWriter, status int, code, message string) {
	rn.ErrorDetails(w, status, code, message, nil)
}

// ErrorDetails writes an error envelope with details. Details are
// stripped outside development except for validation errors, which the
// client needs to highlight fields.
func (rn *Renderer) ErrorDetails(w http.ResponseWriter, status int, code, message string, details any) {
	if details != nil && !rn.isDev && code != CodeValidationError {
		details = nil
	}
	writeEnvelope(w, status, Envelope{
		Success: false,
		Error: &ErrorBody{
			Code:       code,
			Message:    message,
			StatusCode: status,
			Details:    details,
		},
	})
}

// Internal logs the error and writes a 500 envelope. The underlying
// error text is only exposed in development.
func (rn *Renderer) Internal(w http.ResponseWriter, err error, logMsg string, args ...any) {
	slog.Error(logMsg, append(args, "error", err)...)
	message := "An unexpected error occurred"
	if rn.isDev && err != nil {
		message = err.Error()
	}
	rn.Error(w, http.StatusInternalServerError, CodeInternalError, message)
}

// NotFound writes a 404 envelope.
func (rn *Renderer) NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	rn.Error(w, http.StatusNotFound, CodeNotFound, message)
}
