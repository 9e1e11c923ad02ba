// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amoodyplace/moodyplace-go/internal/model"
)

const postColumns = `id, title, slug, content, excerpt, featured_image, meta_title,
	meta_description, is_published, published_at, read_time_minutes, view_count,
	created_at, updated_at`

// PostRepo provides access to the blog_posts table.
type PostRepo struct {
	db *DB
}

// NewPostRepo creates a new PostRepo.
func NewPostRepo(db *DB) *PostRepo {
	return &PostRepo{db: db}
}

func scanPost(row rowScanner) (model.BlogPost, error) {
	var p model.BlogPost
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt,
		&p.FeaturedImage, &p.MetaTitle, &p.MetaDescription, &p.IsPublished,
		&p.PublishedAt, &p.ReadTimeMinutes, &p.ViewCount, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func collectPosts(rows *sql.Rows) ([]model.BlogPost, error) {
	defer func() { _ = rows.Close() }()
	var posts []model.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPublished returns published posts, newest first.
func (r *PostRepo) ListPublished(ctx context.Context, limit, offset int) ([]model.BlogPost, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE is_published = 1
		 ORDER BY published_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing published posts: %w", err)
	}
	return collectPosts(rows)
}

// CountPublished returns the number of published posts.
func (r *PostRepo) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_posts WHERE is_published = 1`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting published posts: %w", err)
	}
	return count, nil
}

// ListRecentPublished returns the most recent published posts.
func (r *PostRepo) ListRecentPublished(ctx context.Context, limit int) ([]model.BlogPost, error) {
	return r.ListPublished(ctx, limit, 0)
}

// GetPublishedBySlug fetches a published post by slug.
func (r *PostRepo) GetPublishedBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE slug = ? AND is_published = 1`, slug)
	p, err := scanPost(row)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("getting post by slug: %w", err)
	}
	return p, nil
}

// GetByID fetches a post regardless of publication state.
func (r *PostRepo) GetByID(ctx context.Context, id int64) (model.BlogPost, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE id = ?`, id)
	p, err := scanPost(row)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("getting post %d: %w", id, err)
	}
	return p, nil
}

// ListAll returns posts including drafts, newest first.
func (r *PostRepo) ListAll(ctx context.Context, limit, offset int) ([]model.BlogPost, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM blog_posts ORDER BY id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return collectPosts(rows)
}

// CountAll returns the total number of posts.
func (r *PostRepo) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}
	return count, nil
}

// SlugExists reports whether another post already uses the slug.
func (r *PostRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_posts WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking post slug: %w", err)
	}
	return count > 0, nil
}

// Create inserts a post and returns its ID.
func (r *PostRepo) Create(ctx context.Context, p *model.BlogPost) (int64, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO blog_posts (title, slug, content, excerpt, featured_image,
		   meta_title, meta_description, is_published, published_at,
		   read_time_minutes, view_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage,
		p.MetaTitle, p.MetaDescription, p.IsPublished, p.PublishedAt,
		p.ReadTimeMinutes, now, now)
	if err != nil {
		return 0, fmt.Errorf("creating post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new post id: %w", err)
	}
	return id, nil
}

// Update replaces a post's editable fields.
func (r *PostRepo) Update(ctx context.Context, p *model.BlogPost) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE blog_posts SET title = ?, slug = ?, content = ?, excerpt = ?,
		   featured_image = ?, meta_title = ?, meta_description = ?,
		   is_published = ?, published_at = ?, read_time_minutes = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage,
		p.MetaTitle, p.MetaDescription, p.IsPublished, p.PublishedAt,
		p.ReadTimeMinutes, time.Now().UTC(), p.ID)
	if err != nil {
		return fmt.Errorf("updating post %d: %w", p.ID, err)
	}
	return nil
}

// Delete removes a post.
func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting post %d: %w", id, err)
	}
	return nil
}

// Publish marks a post published and stamps published_at when unset.
func (r *PostRepo) Publish(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE blog_posts SET is_published = 1,
		   published_at = COALESCE(published_at, ?), updated_at = ?
		 WHERE id = ?`,
		at, at, id)
	if err != nil {
		return fmt.Errorf("publishing post %d: %w", id, err)
	}
	return nil
}

// IncrementViewCount bumps the view counter for a published post.
func (r *PostRepo) IncrementViewCount(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE blog_posts SET view_count = view_count + 1 WHERE id = ? AND is_published = 1`, id)
	if err != nil {
		return fmt.Errorf("incrementing view count for post %d: %w", id, err)
	}
	return nil
}
