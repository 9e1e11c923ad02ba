// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amoodyplace/moodyplace-go/internal/model"
	"github.com/amoodyplace/moodyplace-go/internal/render"
	"github.com/amoodyplace/moodyplace-go/internal/util"
	"github.com/amoodyplace/moodyplace-go/internal/validation"
)

// ListSongs handles GET /api/songs: published songs, paginated.
func (h *Handler) ListSongs(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	songs, err := h.songs.ListPublished(r.Context(), limit, offsetFor(page, limit))
	if err != nil {
		h.renderer.Internal(w, err, "listing songs")
		return
	}
	total, err := h.songs.CountPublished(r.Context())
	if err != nil {
		h.renderer.Internal(w, err, "counting songs")
		return
	}
	h.renderer.Paginated(w, songs, render.NewPagination(page, limit, total))
}

// FeaturedSongs handles GET /api/songs/featured.
func (h *Handler) FeaturedSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.songs.ListFeatured(r.Context(), 6)
	if err != nil {
		h.renderer.Internal(w, err, "listing featured songs")
		return
	}
	h.renderer.Success(w, songs, "")
}

// GetSongBySlug handles GET /api/songs/{slug}. A fetch through the
// public API counts as a play.
func (h *Handler) GetSongBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	song, err := h.songs.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Song not found")
			return
		}
		h.renderer.Internal(w, err, "getting song", "slug", slug)
		return
	}

	if err := h.songs.IncrementPlayCount(r.Context(), song.ID); err == nil {
		song.PlayCount++
		h.events.RecordSongPlay(r.Context(), song.ID, clientIP(r), r.UserAgent())
	}

	h.renderer.Success(w, song, "")
}

// PlaySong handles POST /api/songs/{slug}/play, the beacon the embedded
// players fire when playback starts without a detail fetch.
func (h *Handler) PlaySong(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	song, err := h.songs.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Song not found")
			return
		}
		h.renderer.Internal(w, err, "getting song", "slug", slug)
		return
	}

	if err := h.songs.IncrementPlayCount(r.Context(), song.ID); err != nil {
		h.renderer.Internal(w, err, "counting song play", "id", song.ID)
		return
	}
	h.events.RecordSongPlay(r.Context(), song.ID, clientIP(r), r.UserAgent())

	h.renderer.Success(w, map[string]any{"id": song.ID, "play_count": song.PlayCount + 1}, "")
}

// AdminListSongs handles GET /api/admin/songs: all songs including
// unpublished drafts.
func (h *Handler) AdminListSongs(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	songs, err := h.songs.ListAll(r.Context(), limit, offsetFor(page, limit))
	if err != nil {
		h.renderer.Internal(w, err, "listing songs")
		return
	}
	total, err := h.songs.CountAll(r.Context())
	if err != nil {
		h.renderer.Internal(w, err, "counting songs")
		return
	}
	h.renderer.Paginated(w, songs, render.NewPagination(page, limit, total))
}

// AdminGetSong handles GET /api/admin/songs/{id}.
func (h *Handler) AdminGetSong(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	song, err := h.songs.GetByID(r.Context(), id)
	if err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Song not found")
			return
		}
		h.renderer.Internal(w, err, "getting song", "id", id)
		return
	}
	h.renderer.Success(w, song, "")
}

// songFromInput maps a validated payload onto the model.
func songFromInput(in *validation.SongInput) *model.Song {
	song := &model.Song{
		Title:         in.Title,
		Slug:          in.Slug,
		Description:   util.NullStringFromValue(in.Description),
		SpotifyURL:    util.NullStringFromValue(in.SpotifyURL),
		AppleMusicURL: util.NullStringFromValue(in.AppleMusicURL),
		YouTubeURL:    util.NullStringFromValue(in.YouTubeURL),
		SoundCloudURL: util.NullStringFromValue(in.SoundCloudURL),
		CoverImageURL: util.NullStringFromValue(in.CoverImageURL),
		IsFeatured:    in.IsFeatured,
		IsPublished:   in.IsPublished,
		SortOrder:     in.SortOrder,
	}
	if in.Duration > 0 {
		song.Duration = util.NullInt64FromValue(int64(in.Duration))
	}
	if in.ReleaseDate != "" {
		if date, err := time.Parse("2006-01-02", in.ReleaseDate); err == nil {
			song.ReleaseDate.Time, song.ReleaseDate.Valid = date, true
		}
	}
	return song
}

// uniqueSongSlug derives a slug from the payload, generating one from
// the title when absent, and verifies uniqueness.
func (h *Handler) uniqueSongSlug(w http.ResponseWriter, r *http.Request, in *validation.SongInput, excludeID int64) bool {
	if in.Slug == "" {
		in.Slug = util.Slugify(in.Title)
	}
	exists, err := h.songs.SlugExists(r.Context(), in.Slug, excludeID)
	if err != nil {
		h.renderer.Internal(w, err, "checking song slug")
		return false
	}
	if exists {
		h.renderer.ErrorDetails(w, http.StatusConflict, render.CodeValidationError,
			"Validation failed", validation.Errors{"slug": "is already in use"})
		return false
	}
	return true
}

// AdminCreateSong handles POST /api/admin/songs.
func (h *Handler) AdminCreateSong(w http.ResponseWriter, r *http.Request) {
	var in validation.SongInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if h.validationFailed(w, in.Validate()) {
		return
	}
	if !h.uniqueSongSlug(w, r, &in, 0) {
		return
	}

	song := songFromInput(&in)
	id, err := h.songs.Create(r.Context(), song)
	if err != nil {
		h.renderer.Internal(w, err, "creating song")
		return
	}

	created, err := h.songs.GetByID(r.Context(), id)
	if err != nil {
		h.renderer.Internal(w, err, "loading created song", "id", id)
		return
	}
	h.renderer.SuccessStatus(w, http.StatusCreated, created, "Song created")
}

// AdminUpdateSong handles PUT /api/admin/songs/{id}.
func (h *Handler) AdminUpdateSong(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if _, err := h.songs.GetByID(r.Context(), id); err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Song not found")
			return
		}
		h.renderer.Internal(w, err, "getting song", "id", id)
		return
	}

	var in validation.SongInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if h.validationFailed(w, in.Validate()) {
		return
	}
	if !h.uniqueSongSlug(w, r, &in, id) {
		return
	}

	song := songFromInput(&in)
	song.ID = id
	if err := h.songs.Update(r.Context(), song); err != nil {
		h.renderer.Internal(w, err, "updating song", "id", id)
		return
	}

	updated, err := h.songs.GetByID(r.Context(), id)
	if err != nil {
		h.renderer.Internal(w, err, "loading updated song", "id", id)
		return
	}
	h.renderer.Success(w, updated, "Song updated")
}

// AdminDeleteSong handles DELETE /api/admin/songs/{id}.
func (h *Handler) AdminDeleteSong(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if _, err := h.songs.GetByID(r.Context(), id); err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Song not found")
			return
		}
		h.renderer.Internal(w, err, "getting song", "id", id)
		return
	}
	if err := h.songs.Delete(r.Context(), id); err != nil {
		h.renderer.Internal(w, err, "deleting song", "id", id)
		return
	}
	h.renderer.Success(w, nil, "Song deleted")
}

// AdminToggleSongFeatured handles PATCH /api/admin/songs/{id}/featured.
func (h *Handler) AdminToggleSongFeatured(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	featured, err := h.songs.ToggleFeatured(r.Context(), id)
	if err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Song not found")
			return
		}
		h.renderer.Internal(w, err, "toggling featured", "id", id)
		return
	}
	h.renderer.Success(w, map[string]any{"id": id, "is_featured": featured}, "Featured flag updated")
}
