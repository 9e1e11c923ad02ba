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

const showColumns = `id, title, venue, city, state_province, country, event_date,
	doors_time, show_time, ticket_url, ticket_price, description, age_restriction,
	status, created_at, updated_at`

// ShowRepo provides access to the shows table.
type ShowRepo struct {
	db *DB
}

// NewShowRepo creates a new ShowRepo.
func NewShowRepo(db *DB) *ShowRepo {
	return &ShowRepo{db: db}
}

func scanShow(row rowScanner) (model.Show, error) {
	var s model.Show
	err := row.Scan(&s.ID, &s.Title, &s.Venue, &s.City, &s.StateProvince,
		&s.Country, &s.EventDate, &s.DoorsTime, &s.ShowTime, &s.TicketURL,
		&s.TicketPrice, &s.Description, &s.AgeRestriction, &s.Status,
		&s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func collectShows(rows *sql.Rows) ([]model.Show, error) {
	defer func() { _ = rows.Close() }()
	var shows []model.Show
	for rows.Next() {
		s, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, s)
	}
	return shows, rows.Err()
}

// ListUpcoming returns non-cancelled shows on or after now, soonest first.
func (r *ShowRepo) ListUpcoming(ctx context.Context, now time.Time, limit, offset int) ([]model.Show, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+showColumns+` FROM shows
		 WHERE event_date >= ? AND status != ?
		 ORDER BY event_date LIMIT ? OFFSET ?`,
		now, model.ShowStatusCancelled, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing upcoming shows: %w", err)
	}
	return collectShows(rows)
}

// CountUpcoming counts non-cancelled shows on or after now.
func (r *ShowRepo) CountUpcoming(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shows WHERE event_date >= ? AND status != ?`,
		now, model.ShowStatusCancelled).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting upcoming shows: %w", err)
	}
	return count, nil
}

// ListPast returns shows before now, most recent first.
func (r *ShowRepo) ListPast(ctx context.Context, now time.Time, limit, offset int) ([]model.Show, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+showColumns+` FROM shows
		 WHERE event_date < ?
		 ORDER BY event_date DESC LIMIT ? OFFSET ?`,
		now, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing past shows: %w", err)
	}
	return collectShows(rows)
}

// CountPast counts shows before now.
func (r *ShowRepo) CountPast(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shows WHERE event_date < ?`, now).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting past shows: %w", err)
	}
	return count, nil
}

// ListAll returns all shows, soonest upcoming first.
func (r *ShowRepo) ListAll(ctx context.Context, limit, offset int) ([]model.Show, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+showColumns+` FROM shows ORDER BY event_date DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing shows: %w", err)
	}
	return collectShows(rows)
}

// CountAll returns the total number of shows.
func (r *ShowRepo) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting shows: %w", err)
	}
	return count, nil
}

// GetByID fetches a show.
func (r *ShowRepo) GetByID(ctx context.Context, id int64) (model.Show, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+showColumns+` FROM shows WHERE id = ?`, id)
	s, err := scanShow(row)
	if err != nil {
		return model.Show{}, fmt.Errorf("getting show %d: %w", id, err)
	}
	return s, nil
}

// Create inserts a show and returns its ID.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) (int64, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO shows (title, venue, city, state_province, country, event_date,
		   doors_time, show_time, ticket_url, ticket_price, description,
		   age_restriction, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Title, s.Venue, s.City, s.StateProvince, s.Country, s.EventDate,
		s.DoorsTime, s.ShowTime, s.TicketURL, s.TicketPrice, s.Description,
		s.AgeRestriction, s.Status, now, now)
	if err != nil {
		return 0, fmt.Errorf("creating show: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new show id: %w", err)
	}
	return id, nil
}

// Update replaces a show's editable fields.
func (r *ShowRepo) Update(ctx context.Context, s *model.Show) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE shows SET title = ?, venue = ?, city = ?, state_province = ?,
		   country = ?, event_date = ?, doors_time = ?, show_time = ?,
		   ticket_url = ?, ticket_price = ?, description = ?, age_restriction = ?,
		   status = ?, updated_at = ?
		 WHERE id = ?`,
		s.Title, s.Venue, s.City, s.StateProvince, s.Country, s.EventDate,
		s.DoorsTime, s.ShowTime, s.TicketURL, s.TicketPrice, s.Description,
		s.AgeRestriction, s.Status, time.Now().UTC(), s.ID)
	if err != nil {
		return fmt.Errorf("updating show %d: %w", s.ID, err)
	}
	return nil
}

// Delete removes a show.
func (r *ShowRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM shows WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting show %d: %w", id, err)
	}
	return nil
}
