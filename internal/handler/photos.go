// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/amoodyplace/moodyplace-go/internal/model"
	"github.com/amoodyplace/moodyplace-go/internal/render"
	"github.com/amoodyplace/moodyplace-go/internal/util"
	"github.com/amoodyplace/moodyplace-go/internal/validation"
)

// ListPhotos handles GET /api/photos with an optional category filter.
func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	category := r.URL.Query().Get("category")
	if category != "" && !model.ValidPhotoCategory(category) {
		h.renderer.ErrorDetails(w, http.StatusBadRequest, render.CodeValidationError,
			"Validation failed", validation.Errors{
				"category": "must be one of: professional, performance, studio, personal, press",
			})
		return
	}

	photos, err := h.photos.List(r.Context(), category, limit, offsetFor(page, limit))
	if err != nil {
		h.renderer.Internal(w, err, "listing photos")
		return
	}
	total, err := h.photos.Count(r.Context(), category)
	if err != nil {
		h.renderer.Internal(w, err, "counting photos")
		return
	}
	h.renderer.Paginated(w, photos, render.NewPagination(page, limit, total))
}

// FeaturedPhotos handles GET /api/photos/featured.
func (h *Handler) FeaturedPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photos.ListFeatured(r.Context(), 8)
	if err != nil {
		h.renderer.Internal(w, err, "listing featured photos")
		return
	}
	h.renderer.Success(w, photos, "")
}

// PressPhotos handles GET /api/photos/press: press-approved photos for
// the downloadable press kit.
func (h *Handler) PressPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photos.ListPressApproved(r.Context())
	if err != nil {
		h.renderer.Internal(w, err, "listing press photos")
		return
	}
	h.renderer.Success(w, photos, "")
}

// AdminListPhotos handles GET /api/admin/photos with an optional
// category filter.
func (h *Handler) AdminListPhotos(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	category := r.URL.Query().Get("category")
	if category != "" && !model.ValidPhotoCategory(category) {
		h.renderer.ErrorDetails(w, http.StatusBadRequest, render.CodeValidationError,
			"Validation failed", validation.Errors{
				"category": "must be one of: professional, performance, studio, personal, press",
			})
		return
	}

	photos, err := h.photos.List(r.Context(), category, limit, offsetFor(page, limit))
	if err != nil {
		h.renderer.Internal(w, err, "listing photos")
		return
	}
	total, err := h.photos.Count(r.Context(), category)
	if err != nil {
		h.renderer.Internal(w, err, "counting photos")
		return
	}
	h.renderer.Paginated(w, photos, render.NewPagination(page, limit, total))
}

// AdminGetPhoto handles GET /api/admin/photos/{id}.
func (h *Handler) AdminGetPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	photo, err := h.photos.GetByID(r.Context(), id)
	if err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Photo not found")
			return
		}
		h.renderer.Internal(w, err, "getting photo", "id", id)
		return
	}
	h.renderer.Success(w, photo, "")
}

func photoFromInput(in *validation.PhotoInput) *model.Photo {
	return &model.Photo{
		Title:           util.NullStringFromValue(in.Title),
		Caption:         util.NullStringFromValue(in.Caption),
		AltText:         in.AltText,
		Category:        in.Category,
		Photographer:    util.NullStringFromValue(in.Photographer),
		Location:        util.NullStringFromValue(in.Location),
		FilePath:        in.FilePath,
		IsFeatured:      in.IsFeatured,
		IsPressApproved: in.IsPressApproved,
		SortOrder:       in.SortOrder,
	}
}

// AdminCreatePhoto handles POST /api/admin/photos.
func (h *Handler) AdminCreatePhoto(w http.ResponseWriter, r *http.Request) {
	var in validation.PhotoInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if h.validationFailed(w, in.Validate()) {
		return
	}

	id, err := h.photos.Create(r.Context(), photoFromInput(&in))
	if err != nil {
		h.renderer.Internal(w, err, "creating photo")
		return
	}

	created, err := h.photos.GetByID(r.Context(), id)
	if err != nil {
		h.renderer.Internal(w, err, "loading created photo", "id", id)
		return
	}
	h.renderer.SuccessStatus(w, http.StatusCreated, created, "Photo created")
}

// AdminUpdatePhoto handles PUT /api/admin/photos/{id}.
func (h *Handler) AdminUpdatePhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if _, err := h.photos.GetByID(r.Context(), id); err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Photo not found")
			return
		}
		h.renderer.Internal(w, err, "getting photo", "id", id)
		return
	}

	var in validation.PhotoInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if h.validationFailed(w, in.Validate()) {
		return
	}

	photo := photoFromInput(&in)
	photo.ID = id
	if err := h.photos.Update(r.Context(), photo); err != nil {
		h.renderer.Internal(w, err, "updating photo", "id", id)
		return
	}

	updated, err := h.photos.GetByID(r.Context(), id)
	if err != nil {
		h.renderer.Internal(w, err, "loading updated photo", "id", id)
		return
	}
	h.renderer.Success(w, updated, "Photo updated")
}

// AdminDeletePhoto handles DELETE /api/admin/photos/{id}.
func (h *Handler) AdminDeletePhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if _, err := h.photos.GetByID(r.Context(), id); err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Photo not found")
			return
		}
		h.renderer.Internal(w, err, "getting photo", "id", id)
		return
	}
	if err := h.photos.Delete(r.Context(), id); err != nil {
		h.renderer.Internal(w, err, "deleting photo", "id", id)
		return
	}
	h.renderer.Success(w, nil, "Photo deleted")
}
