// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amoodyplace/moodyplace-go/internal/model"
	"github.com/amoodyplace/moodyplace-go/internal/render"
	"github.com/amoodyplace/moodyplace-go/internal/util"
	"github.com/amoodyplace/moodyplace-go/internal/validation"
)

// readTimeWPM is the reading speed used to estimate read time.
const readTimeWPM = 200

// estimateReadTime returns the estimated minutes to read content,
// with a floor of one minute.
func estimateReadTime(content string) int64 {
	words := len(strings.Fields(content))
	minutes := int64(words / readTimeWPM)
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ListPosts handles GET /api/posts: published posts, paginated.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	posts, err := h.posts.ListPublished(r.Context(), limit, offsetFor(page, limit))
	if err != nil {
		h.renderer.Internal(w, err, "listing posts")
		return
	}
	total, err := h.posts.CountPublished(r.Context())
	if err != nil {
		h.renderer.Internal(w, err, "counting posts")
		return
	}
	h.renderer.Paginated(w, posts, render.NewPagination(page, limit, total))
}

// RecentPosts handles GET /api/posts/recent.
func (h *Handler) RecentPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListRecentPublished(r.Context(), 3)
	if err != nil {
		h.renderer.Internal(w, err, "listing recent posts")
		return
	}
	h.renderer.Success(w, posts, "")
}

// GetPostBySlug handles GET /api/posts/{slug}. A fetch through the
// public API counts as a view.
func (h *Handler) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.posts.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Post not found")
			return
		}
		h.renderer.Internal(w, err, "getting post", "slug", slug)
		return
	}

	if err := h.posts.IncrementViewCount(r.Context(), post.ID); err == nil {
		post.ViewCount++
		h.events.RecordPostView(r.Context(), post.ID, clientIP(r), r.UserAgent())
	}

	h.renderer.Success(w, post, "")
}

// ViewPost handles POST /api/posts/{slug}/view, fired by readers arriving
// on prerendered pages that never hit the slug endpoint.
func (h *Handler) ViewPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.posts.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Post not found")
			return
		}
		h.renderer.Internal(w, err, "getting post", "slug", slug)
		return
	}

	if err := h.posts.IncrementViewCount(r.Context(), post.ID); err != nil {
		h.renderer.Internal(w, err, "counting post view", "id", post.ID)
		return
	}
	h.events.RecordPostView(r.Context(), post.ID, clientIP(r), r.UserAgent())

	h.renderer.Success(w, map[string]any{"id": post.ID, "view_count": post.ViewCount + 1}, "")
}

// AdminListPosts handles GET /api/admin/posts: all posts including drafts.
func (h *Handler) AdminListPosts(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	posts, err := h.posts.ListAll(r.Context(), limit, offsetFor(page, limit))
	if err != nil {
		h.renderer.Internal(w, err, "listing posts")
		return
	}
	total, err := h.posts.CountAll(r.Context())
	if err != nil {
		h.renderer.Internal(w, err, "counting posts")
		return
	}
	h.renderer.Paginated(w, posts, render.NewPagination(page, limit, total))
}

// AdminGetPost handles GET /api/admin/posts/{id}.
func (h *Handler) AdminGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Post not found")
			return
		}
		h.renderer.Internal(w, err, "getting post", "id", id)
		return
	}
	h.renderer.Success(w, post, "")
}

// postFromInput maps a validated payload onto the model. published_at
// is stamped when the post goes out published on creation.
func postFromInput(in *validation.BlogPostInput) *model.BlogPost {
	post := &model.BlogPost{
		Title:           in.Title,
		Slug:            in.Slug,
		Content:         in.Content,
		Excerpt:         util.NullStringFromValue(in.Excerpt),
		FeaturedImage:   util.NullStringFromValue(in.FeaturedImage),
		MetaTitle:       util.NullStringFromValue(in.MetaTitle),
		MetaDescription: util.NullStringFromValue(in.MetaDescription),
		IsPublished:     in.IsPublished,
		ReadTimeMinutes: util.NullInt64FromValue(estimateReadTime(in.Content)),
	}
	if in.IsPublished {
		post.PublishedAt.Time, post.PublishedAt.Valid = time.Now().UTC(), true
	}
	return post
}

func (h *Handler) uniquePostSlug(w http.ResponseWriter, r *http.Request, in *validation.BlogPostInput, excludeID int64) bool {
	if in.Slug == "" {
		in.Slug = util.Slugify(in.Title)
	}
	exists, err := h.posts.SlugExists(r.Context(), in.Slug, excludeID)
	if err != nil {
		h.renderer.Internal(w, err, "checking post slug")
		return false
	}
	if exists {
		h.renderer.ErrorDetails(w, http.StatusConflict, render.CodeValidationError,
			"Validation failed", validation.Errors{"slug": "is already in use"})
		return false
	}
	return true
}

// AdminCreatePost handles POST /api/admin/posts.
func (h *Handler) AdminCreatePost(w http.ResponseWriter, r *http.Request) {
	var in validation.BlogPostInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if h.validationFailed(w, in.Validate()) {
		return
	}
	if !h.uniquePostSlug(w, r, &in, 0) {
		return
	}

	post := postFromInput(&in)
	id, err := h.posts.Create(r.Context(), post)
	if err != nil {
		h.renderer.Internal(w, err, "creating post")
		return
	}

	created, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		h.renderer.Internal(w, err, "loading created post", "id", id)
		return
	}
	h.renderer.SuccessStatus(w, http.StatusCreated, created, "Post created")
}

// AdminUpdatePost handles PUT /api/admin/posts/{id}. An already
// published post keeps its original published_at.
func (h *Handler) AdminUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	existing, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Post not found")
			return
		}
		h.renderer.Internal(w, err, "getting post", "id", id)
		return
	}

	var in validation.BlogPostInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if h.validationFailed(w, in.Validate()) {
		return
	}
	if !h.uniquePostSlug(w, r, &in, id) {
		return
	}

	post := postFromInput(&in)
	post.ID = id
	if existing.PublishedAt.Valid {
		post.PublishedAt = existing.PublishedAt
	}
	if err := h.posts.Update(r.Context(), post); err != nil {
		h.renderer.Internal(w, err, "updating post", "id", id)
		return
	}

	updated, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		h.renderer.Internal(w, err, "loading updated post", "id", id)
		return
	}
	h.renderer.Success(w, updated, "Post updated")
}

// AdminDeletePost handles DELETE /api/admin/posts/{id}.
func (h *Handler) AdminDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if _, err := h.posts.GetByID(r.Context(), id); err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Post not found")
			return
		}
		h.renderer.Internal(w, err, "getting post", "id", id)
		return
	}
	if err := h.posts.Delete(r.Context(), id); err != nil {
		h.renderer.Internal(w, err, "deleting post", "id", id)
		return
	}
	h.renderer.Success(w, nil, "Post deleted")
}

// AdminPublishPost handles PATCH /api/admin/posts/{id}/publish.
func (h *Handler) AdminPublishPost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if _, err := h.posts.GetByID(r.Context(), id); err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Post not found")
			return
		}
		h.renderer.Internal(w, err, "getting post", "id", id)
		return
	}
	if err := h.posts.Publish(r.Context(), id, time.Now().UTC()); err != nil {
		h.renderer.Internal(w, err, "publishing post", "id", id)
		return
	}

	published, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		h.renderer.Internal(w, err, "loading published post", "id", id)
		return
	}
	h.renderer.Success(w, published, "Post published")
}
