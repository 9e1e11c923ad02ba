package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoodyplace/moodyplace-go/internal/model"
	"github.com/amoodyplace/moodyplace-go/internal/render"
)

func (e *testEnv) createSong(t *testing.T, title string, published, featured bool) model.Song {
	t.Helper()

	song := &model.Song{
		Title:       title,
		Slug:        fmt.Sprintf("%s-%d", title, len(title)),
		IsPublished: published,
		IsFeatured:  featured,
	}
	id, err := e.handler.songs.Create(context.Background(), song)
	require.NoError(t, err)

	created, err := e.handler.songs.GetByID(context.Background(), id)
	require.NoError(t, err)
	return created
}

func TestListSongs_OnlyPublished(t *testing.T) {
	env := newTestEnv(t)
	env.createSong(t, "published-one", true, false)
	env.createSong(t, "draft", false, false)

	rec, env2 := doJSON(t, env.router(), http.MethodGet, "/api/songs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Items      []model.Song      `json:"items"`
		Pagination render.Pagination `json:"pagination"`
	}
	decodeData(t, env2, &data)
	assert.Len(t, data.Items, 1)
	assert.Equal(t, int64(1), data.Pagination.TotalItems)
}

func TestListSongs_Pagination(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 25; i++ {
		env.createSong(t, fmt.Sprintf("song-%02d", i), true, false)
	}

	rec, got := doJSON(t, env.router(), http.MethodGet, "/api/songs?page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Items      []model.Song      `json:"items"`
		Pagination render.Pagination `json:"pagination"`
	}
	decodeData(t, got, &data)
	assert.Len(t, data.Items, 10)
	assert.Equal(t, 2, data.Pagination.CurrentPage)
	assert.Equal(t, 3, data.Pagination.TotalPages)
	assert.True(t, data.Pagination.HasNext)
	assert.True(t, data.Pagination.HasPrev)
}

func TestGetSongBySlug_CountsPlay(t *testing.T) {
	env := newTestEnv(t)
	song := env.createSong(t, "midnight-rain", true, false)

	rec, got := doJSON(t, env.router(), http.MethodGet, "/api/songs/"+song.Slug, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched model.Song
	decodeData(t, got, &fetched)
	assert.Equal(t, int64(1), fetched.PlayCount)

	// The play is also visible on the next read.
	again, err := env.handler.songs.GetByID(context.Background(), song.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.PlayCount)
}

func TestPlaySong_Beacon(t *testing.T) {
	env := newTestEnv(t)
	song := env.createSong(t, "midnight-rain", true, false)
	draft := env.createSong(t, "unreleased", false, false)

	rec, got := doJSON(t, env.router(), http.MethodPost, "/api/songs/"+song.Slug+"/play", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		PlayCount int64 `json:"play_count"`
	}
	decodeData(t, got, &data)
	assert.Equal(t, int64(1), data.PlayCount)

	// Drafts never accumulate plays.
	rec, _ = doJSON(t, env.router(), http.MethodPost, "/api/songs/"+draft.Slug+"/play", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSongBySlug_DraftHidden(t *testing.T) {
	env := newTestEnv(t)
	song := env.createSong(t, "unreleased", false, false)

	rec, got := doJSON(t, env.router(), http.MethodGet, "/api/songs/"+song.Slug, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, got.Error)
	assert.Equal(t, render.CodeNotFound, got.Error.Code)
}

func TestAdminCreateSong(t *testing.T) {
	env := newTestEnv(t)

	rec, got := doJSON(t, env.router(), http.MethodPost, "/api/admin/songs", map[string]any{
		"title":        "Midnight Rain",
		"spotify_url":  "https://open.spotify.com/track/abc123",
		"is_published": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var song model.Song
	decodeData(t, got, &song)
	assert.Equal(t, "midnight-rain", song.Slug, "slug is generated from the title")
	assert.True(t, song.IsPublished)
}

func TestAdminCreateSong_ValidationCollectsAllErrors(t *testing.T) {
	env := newTestEnv(t)

	rec, got := doJSON(t, env.router(), http.MethodPost, "/api/admin/songs", map[string]any{
		"spotify_url": "https://evil.example.com/track/x",
		"youtube_url": "ftp://youtube.com/watch",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, got.Error)
	assert.Equal(t, render.CodeValidationError, got.Error.Code)

	details, ok := got.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "spotify_url")
	assert.Contains(t, details, "youtube_url")
}

func TestAdminCreateSong_DuplicateSlug(t *testing.T) {
	env := newTestEnv(t)
	song := env.createSong(t, "taken", true, false)

	rec, got := doJSON(t, env.router(), http.MethodPost, "/api/admin/songs", map[string]any{
		"title": "Another Title",
		"slug":  song.Slug,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, got.Error)
	assert.Equal(t, render.CodeValidationError, got.Error.Code)
}

func TestAdminUpdateSong(t *testing.T) {
	env := newTestEnv(t)
	song := env.createSong(t, "old-title", false, false)

	rec, got := doJSON(t, env.router(), http.MethodPut, fmt.Sprintf("/api/admin/songs/%d", song.ID), map[string]any{
		"title":        "New Title",
		"slug":         song.Slug,
		"is_published": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var updated model.Song
	decodeData(t, got, &updated)
	assert.Equal(t, "New Title", updated.Title)
	assert.True(t, updated.IsPublished)
}

func TestAdminDeleteSong(t *testing.T) {
	env := newTestEnv(t)
	song := env.createSong(t, "doomed", true, false)

	rec, _ := doJSON(t, env.router(), http.MethodDelete, fmt.Sprintf("/api/admin/songs/%d", song.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, env.router(), http.MethodDelete, fmt.Sprintf("/api/admin/songs/%d", song.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminToggleSongFeatured(t *testing.T) {
	env := newTestEnv(t)
	song := env.createSong(t, "toggle-me", true, false)

	rec, got := doJSON(t, env.router(), http.MethodPatch, fmt.Sprintf("/api/admin/songs/%d/featured", song.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		IsFeatured bool `json:"is_featured"`
	}
	decodeData(t, got, &data)
	assert.True(t, data.IsFeatured)
}

func TestFeaturedSongs(t *testing.T) {
	env := newTestEnv(t)
	env.createSong(t, "plain", true, false)
	env.createSong(t, "starred", true, true)

	rec, got := doJSON(t, env.router(), http.MethodGet, "/api/songs/featured", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var songs []model.Song
	decodeData(t, got, &songs)
	require.Len(t, songs, 1)
	assert.True(t, songs[0].IsFeatured)
}
