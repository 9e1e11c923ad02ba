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

const photoColumns = `id, title, caption, alt_text, category, photographer, location,
	file_path, is_featured, is_press_approved, sort_order, created_at, updated_at`

// PhotoRepo provides access to the photos table.
type PhotoRepo struct {
	db *DB
}

// NewPhotoRepo creates a new PhotoRepo.
func NewPhotoRepo(db *DB) *PhotoRepo {
	return &PhotoRepo{db: db}
}

func scanPhoto(row rowScanner) (model.Photo, error) {
	var p model.Photo
	err := row.Scan(&p.ID, &p.Title, &p.Caption, &p.AltText, &p.Category,
		&p.Photographer, &p.Location, &p.FilePath, &p.IsFeatured,
		&p.IsPressApproved, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func collectPhotos(rows *sql.Rows) ([]model.Photo, error) {
	defer func() { _ = rows.Close() }()
	var photos []model.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// List returns photos, optionally filtered by category.
func (r *PhotoRepo) List(ctx context.Context, category string, limit, offset int) ([]model.Photo, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category != "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+photoColumns+` FROM photos WHERE category = ?
			 ORDER BY sort_order, id DESC LIMIT ? OFFSET ?`, category, limit, offset)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+photoColumns+` FROM photos
			 ORDER BY sort_order, id DESC LIMIT ? OFFSET ?`, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	return collectPhotos(rows)
}

// Count returns the number of photos, optionally filtered by category.
func (r *PhotoRepo) Count(ctx context.Context, category string) (int64, error) {
	var count int64
	var err error
	if category != "" {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM photos WHERE category = ?`, category).Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos`).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("counting photos: %w", err)
	}
	return count, nil
}

// ListFeatured returns featured photos.
func (r *PhotoRepo) ListFeatured(ctx context.Context, limit int) ([]model.Photo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE is_featured = 1
		 ORDER BY sort_order, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing featured photos: %w", err)
	}
	return collectPhotos(rows)
}

// ListPressApproved returns photos cleared for press use.
func (r *PhotoRepo) ListPressApproved(ctx context.Context) ([]model.Photo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE is_press_approved = 1
		 ORDER BY sort_order, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing press photos: %w", err)
	}
	return collectPhotos(rows)
}

// GetByID fetches a photo.
func (r *PhotoRepo) GetByID(ctx context.Context, id int64) (model.Photo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+photoColumns+` FROM photos WHERE id = ?`, id)
	p, err := scanPhoto(row)
	if err != nil {
		return model.Photo{}, fmt.Errorf("getting photo %d: %w", id, err)
	}
	return p, nil
}

// Create inserts a photo and returns its ID.
func (r *PhotoRepo) Create(ctx context.Context, p *model.Photo) (int64, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO photos (title, caption, alt_text, category, photographer,
		   location, file_path, is_featured, is_press_approved, sort_order,
		   created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Caption, p.AltText, p.Category, p.Photographer,
		p.Location, p.FilePath, p.IsFeatured, p.IsPressApproved, p.SortOrder,
		now, now)
	if err != nil {
		return 0, fmt.Errorf("creating photo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new photo id: %w", err)
	}
	return id, nil
}

// Update replaces a photo's editable fields.
func (r *PhotoRepo) Update(ctx context.Context, p *model.Photo) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE photos SET title = ?, caption = ?, alt_text = ?, category = ?,
		   photographer = ?, location = ?, file_path = ?, is_featured = ?,
		   is_press_approved = ?, sort_order = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Caption, p.AltText, p.Category, p.Photographer, p.Location,
		p.FilePath, p.IsFeatured, p.IsPressApproved, p.SortOrder,
		time.Now().UTC(), p.ID)
	if err != nil {
		return fmt.Errorf("updating photo %d: %w", p.ID, err)
	}
	return nil
}

// Delete removes a photo.
func (r *PhotoRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting photo %d: %w", id, err)
	}
	return nil
}
