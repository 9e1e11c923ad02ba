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

const songColumns = `id, title, slug, description, release_date, duration_seconds,
	spotify_url, apple_music_url, youtube_url, soundcloud_url, cover_image_url,
	is_featured, is_published, sort_order, play_count, created_at, updated_at`

// SongRepo provides access to the songs table.
type SongRepo struct {
	db *DB
}

// NewSongRepo creates a new SongRepo.
func NewSongRepo(db *DB) *SongRepo {
	return &SongRepo{db: db}
}

func scanSong(row rowScanner) (model.Song, error) {
	var s model.Song
	err := row.Scan(&s.ID, &s.Title, &s.Slug, &s.Description, &s.ReleaseDate,
		&s.Duration, &s.SpotifyURL, &s.AppleMusicURL, &s.YouTubeURL,
		&s.SoundCloudURL, &s.CoverImageURL, &s.IsFeatured, &s.IsPublished,
		&s.SortOrder, &s.PlayCount, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func collectSongs(rows *sql.Rows) ([]model.Song, error) {
	defer func() { _ = rows.Close() }()
	var songs []model.Song
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

// ListPublished returns published songs ordered for display.
func (r *SongRepo) ListPublished(ctx context.Context, limit, offset int) ([]model.Song, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+songColumns+` FROM songs WHERE is_published = 1
		 ORDER BY sort_order, release_date DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing published songs: %w", err)
	}
	return collectSongs(rows)
}

// CountPublished returns the number of published songs.
func (r *SongRepo) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM songs WHERE is_published = 1`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting published songs: %w", err)
	}
	return count, nil
}

// ListFeatured returns published, featured songs.
func (r *SongRepo) ListFeatured(ctx context.Context, limit int) ([]model.Song, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+songColumns+` FROM songs WHERE is_published = 1 AND is_featured = 1
		 ORDER BY sort_order, release_date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing featured songs: %w", err)
	}
	return collectSongs(rows)
}

// GetPublishedBySlug fetches a published song by slug.
func (r *SongRepo) GetPublishedBySlug(ctx context.Context, slug string) (model.Song, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+songColumns+` FROM songs WHERE slug = ? AND is_published = 1`, slug)
	s, err := scanSong(row)
	if err != nil {
		return model.Song{}, fmt.Errorf("getting song by slug: %w", err)
	}
	return s, nil
}

// GetByID fetches a song regardless of publication state.
func (r *SongRepo) GetByID(ctx context.Context, id int64) (model.Song, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+songColumns+` FROM songs WHERE id = ?`, id)
	s, err := scanSong(row)
	if err != nil {
		return model.Song{}, fmt.Errorf("getting song %d: %w", id, err)
	}
	return s, nil
}

// ListAll returns songs including unpublished ones, newest first.
func (r *SongRepo) ListAll(ctx context.Context, limit, offset int) ([]model.Song, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+songColumns+` FROM songs ORDER BY id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing songs: %w", err)
	}
	return collectSongs(rows)
}

// CountAll returns the total number of songs.
func (r *SongRepo) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM songs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting songs: %w", err)
	}
	return count, nil
}

// SlugExists reports whether another song already uses the slug.
func (r *SongRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM songs WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking song slug: %w", err)
	}
	return count > 0, nil
}

// Create inserts a song and returns its ID.
func (r *SongRepo) Create(ctx context.Context, s *model.Song) (int64, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO songs (title, slug, description, release_date, duration_seconds,
		   spotify_url, apple_music_url, youtube_url, soundcloud_url, cover_image_url,
		   is_featured, is_published, sort_order, play_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		s.Title, s.Slug, s.Description, s.ReleaseDate, s.Duration,
		s.SpotifyURL, s.AppleMusicURL, s.YouTubeURL, s.SoundCloudURL, s.CoverImageURL,
		s.IsFeatured, s.IsPublished, s.SortOrder, now, now)
	if err != nil {
		return 0, fmt.Errorf("creating song: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new song id: %w", err)
	}
	return id, nil
}

// Update replaces a song's editable fields.
func (r *SongRepo) Update(ctx context.Context, s *model.Song) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE songs SET title = ?, slug = ?, description = ?, release_date = ?,
		   duration_seconds = ?, spotify_url = ?, apple_music_url = ?, youtube_url = ?,
		   soundcloud_url = ?, cover_image_url = ?, is_featured = ?, is_published = ?,
		   sort_order = ?, updated_at = ?
		 WHERE id = ?`,
		s.Title, s.Slug, s.Description, s.ReleaseDate, s.Duration,
		s.SpotifyURL, s.AppleMusicURL, s.YouTubeURL, s.SoundCloudURL, s.CoverImageURL,
		s.IsFeatured, s.IsPublished, s.SortOrder, time.Now().UTC(), s.ID)
	if err != nil {
		return fmt.Errorf("updating song %d: %w", s.ID, err)
	}
	return nil
}

// Delete removes a song.
func (r *SongRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting song %d: %w", id, err)
	}
	return nil
}

// IncrementPlayCount bumps the play counter for a published song.
func (r *SongRepo) IncrementPlayCount(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE songs SET play_count = play_count + 1 WHERE id = ? AND is_published = 1`, id)
	if err != nil {
		return fmt.Errorf("incrementing play count for song %d: %w", id, err)
	}
	return nil
}

// ToggleFeatured flips the featured flag and returns the new value.
func (r *SongRepo) ToggleFeatured(ctx context.Context, id int64) (bool, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	featured := !s.IsFeatured
	_, err = r.db.ExecContext(ctx,
		`UPDATE songs SET is_featured = ?, updated_at = ? WHERE id = ?`,
		featured, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("toggling featured for song %d: %w", id, err)
	}
	return featured, nil
}
