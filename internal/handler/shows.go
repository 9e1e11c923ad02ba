// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/amoodyplace/moodyplace-go/internal/model"
	"github.com/amoodyplace/moodyplace-go/internal/render"
	"github.com/amoodyplace/moodyplace-go/internal/util"
	"github.com/amoodyplace/moodyplace-go/internal/validation"
)

// UpcomingShows handles GET /api/shows/upcoming.
func (h *Handler) UpcomingShows(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	now := time.Now().UTC()

	shows, err := h.shows.ListUpcoming(r.Context(), now, limit, offsetFor(page, limit))
	if err != nil {
		h.renderer.Internal(w, err, "listing upcoming shows")
		return
	}
	total, err := h.shows.CountUpcoming(r.Context(), now)
	if err != nil {
		h.renderer.Internal(w, err, "counting upcoming shows")
		return
	}
	h.renderer.Paginated(w, shows, render.NewPagination(page, limit, total))
}

// PastShows handles GET /api/shows/past.
func (h *Handler) PastShows(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	now := time.Now().UTC()

	shows, err := h.shows.ListPast(r.Context(), now, limit, offsetFor(page, limit))
	if err != nil {
		h.renderer.Internal(w, err, "listing past shows")
		return
	}
	total, err := h.shows.CountPast(r.Context(), now)
	if err != nil {
		h.renderer.Internal(w, err, "counting past shows")
		return
	}
	h.renderer.Paginated(w, shows, render.NewPagination(page, limit, total))
}

// AdminListShows handles GET /api/admin/shows.
func (h *Handler) AdminListShows(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	shows, err := h.shows.ListAll(r.Context(), limit, offsetFor(page, limit))
	if err != nil {
		h.renderer.Internal(w, err, "listing shows")
		return
	}
	total, err := h.shows.CountAll(r.Context())
	if err != nil {
		h.renderer.Internal(w, err, "counting shows")
		return
	}
	h.renderer.Paginated(w, shows, render.NewPagination(page, limit, total))
}

// AdminGetShow handles GET /api/admin/shows/{id}.
func (h *Handler) AdminGetShow(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	show, err := h.shows.GetByID(r.Context(), id)
	if err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Show not found")
			return
		}
		h.renderer.Internal(w, err, "getting show", "id", id)
		return
	}
	h.renderer.Success(w, show, "")
}

// timeOfDay normalizes an HH:MM value to the HH:MM:SS column format.
func timeOfDay(v string) string {
	if v == "" {
		return ""
	}
	return v + ":00"
}

// showFromInput maps a validated payload onto the model. The event
// date has already passed Date validation.
func showFromInput(in *validation.ShowInput) *model.Show {
	eventDate, _ := time.Parse("2006-01-02", in.EventDate)
	return &model.Show{
		Title:          util.NullStringFromValue(in.Title),
		Venue:          in.Venue,
		City:           in.City,
		StateProvince:  util.NullStringFromValue(in.StateProvince),
		Country:        in.Country,
		EventDate:      eventDate,
		DoorsTime:      util.NullStringFromValue(timeOfDay(in.DoorsTime)),
		ShowTime:       util.NullStringFromValue(timeOfDay(in.ShowTime)),
		TicketURL:      util.NullStringFromValue(in.TicketURL),
		TicketPrice:    util.NullStringFromValue(in.TicketPrice),
		Description:    util.NullStringFromValue(in.Description),
		AgeRestriction: util.NullStringFromValue(in.AgeRestriction),
		Status:         in.Status,
	}
}

// AdminCreateShow handles POST /api/admin/shows.
func (h *Handler) AdminCreateShow(w http.ResponseWriter, r *http.Request) {
	var in validation.ShowInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if h.validationFailed(w, in.Validate()) {
		return
	}

	show := showFromInput(&in)
	id, err := h.shows.Create(r.Context(), show)
	if err != nil {
		h.renderer.Internal(w, err, "creating show")
		return
	}

	created, err := h.shows.GetByID(r.Context(), id)
	if err != nil {
		h.renderer.Internal(w, err, "loading created show", "id", id)
		return
	}
	h.renderer.SuccessStatus(w, http.StatusCreated, created, "Show created")
}

// AdminUpdateShow handles PUT /api/admin/shows/{id}.
func (h *Handler) AdminUpdateShow(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if _, err := h.shows.GetByID(r.Context(), id); err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Show not found")
			return
		}
		h.renderer.Internal(w, err, "getting show", "id", id)
		return
	}

	var in validation.ShowInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if h.validationFailed(w, in.Validate()) {
		return
	}

	show := showFromInput(&in)
	show.ID = id
	if err := h.shows.Update(r.Context(), show); err != nil {
		h.renderer.Internal(w, err, "updating show", "id", id)
		return
	}

	updated, err := h.shows.GetByID(r.Context(), id)
	if err != nil {
		h.renderer.Internal(w, err, "loading updated show", "id", id)
		return
	}
	h.renderer.Success(w, updated, "Show updated")
}

// AdminDeleteShow handles DELETE /api/admin/shows/{id}.
func (h *Handler) AdminDeleteShow(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if _, err := h.shows.GetByID(r.Context(), id); err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Show not found")
			return
		}
		h.renderer.Internal(w, err, "getting show", "id", id)
		return
	}
	if err := h.shows.Delete(r.Context(), id); err != nil {
		h.renderer.Internal(w, err, "deleting show", "id", id)
		return
	}
	h.renderer.Success(w, nil, "Show deleted")
}
