package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoodyplace/moodyplace-go/internal/model"
	"github.com/amoodyplace/moodyplace-go/internal/render"
)

func (e *testEnv) createPhoto(t *testing.T, category string, pressApproved bool) model.Photo {
	t.Helper()

	photo := &model.Photo{
		AltText:         "On stage",
		Category:        category,
		FilePath:        "gallery/" + category + ".jpg",
		IsPressApproved: pressApproved,
	}
	id, err := e.handler.photos.Create(context.Background(), photo)
	require.NoError(t, err)

	created, err := e.handler.photos.GetByID(context.Background(), id)
	require.NoError(t, err)
	return created
}

func TestListPhotos_CategoryFilter(t *testing.T) {
	env := newTestEnv(t)
	env.createPhoto(t, model.PhotoCategoryPerformance, false)
	env.createPhoto(t, model.PhotoCategoryStudio, false)

	_, got := doJSON(t, env.router(), http.MethodGet, "/api/photos?category=studio", nil)
	var data struct {
		Items []model.Photo `json:"items"`
	}
	decodeData(t, got, &data)
	require.Len(t, data.Items, 1)
	assert.Equal(t, model.PhotoCategoryStudio, data.Items[0].Category)
}

func TestListPhotos_InvalidCategory(t *testing.T) {
	env := newTestEnv(t)

	rec, got := doJSON(t, env.router(), http.MethodGet, "/api/photos?category=selfies", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, got.Error)
	assert.Equal(t, render.CodeValidationError, got.Error.Code)
}

func TestPressPhotos_OnlyApproved(t *testing.T) {
	env := newTestEnv(t)
	env.createPhoto(t, model.PhotoCategoryPress, true)
	env.createPhoto(t, model.PhotoCategoryPress, false)

	_, got := doJSON(t, env.router(), http.MethodGet, "/api/photos/press", nil)
	var photos []model.Photo
	decodeData(t, got, &photos)
	require.Len(t, photos, 1)
	assert.True(t, photos[0].IsPressApproved)
}

func TestAdminListPhotos_AllCategories(t *testing.T) {
	env := newTestEnv(t)
	env.createPhoto(t, model.PhotoCategoryPerformance, false)
	env.createPhoto(t, model.PhotoCategoryStudio, false)
	env.createPhoto(t, model.PhotoCategoryPress, true)

	_, got := doJSON(t, env.router(), http.MethodGet, "/api/admin/photos", nil)
	var data struct {
		Items      []model.Photo     `json:"items"`
		Pagination render.Pagination `json:"pagination"`
	}
	decodeData(t, got, &data)
	assert.Len(t, data.Items, 3)
	assert.Equal(t, int64(3), data.Pagination.TotalItems)

	_, got = doJSON(t, env.router(), http.MethodGet, "/api/admin/photos?category=studio", nil)
	decodeData(t, got, &data)
	require.Len(t, data.Items, 1)
	assert.Equal(t, model.PhotoCategoryStudio, data.Items[0].Category)
}

func TestAdminCreatePhoto_RejectsTraversal(t *testing.T) {
	env := newTestEnv(t)

	rec, got := doJSON(t, env.router(), http.MethodPost, "/api/admin/photos", map[string]any{
		"alt_text":  "x",
		"category":  "press",
		"file_path": "../../etc/passwd",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, got.Error)

	details, ok := got.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "file_path")
}
