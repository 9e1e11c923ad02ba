// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/amoodyplace/moodyplace-go/internal/render"
)

// Summary window bounds, in days.
const (
	defaultSummaryDays = 7
	maxSummaryDays     = 365
)

// AdminAnalyticsSummary handles GET /api/admin/analytics/summary with an
// optional days query parameter.
func (h *Handler) AdminAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	days := defaultSummaryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= maxSummaryDays {
			days = n
		}
	}

	summary, err := h.events.Summarize(r.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		h.renderer.Internal(w, err, "summarizing events")
		return
	}
	h.renderer.Success(w, summary, "")
}

// AdminRecentEvents handles GET /api/admin/analytics/events.
func (h *Handler) AdminRecentEvents(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	events, total, err := h.events.Recent(r.Context(), limit, offsetFor(page, limit))
	if err != nil {
		h.renderer.Internal(w, err, "listing events")
		return
	}
	h.renderer.Paginated(w, events, render.NewPagination(page, limit, total))
}
