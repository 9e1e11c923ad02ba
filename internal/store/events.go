// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/amoodyplace/moodyplace-go/internal/model"
)

const eventColumns = `id, event_type, event_data, user_id, user_ip, user_agent,
	device_type, created_at`

// EventRepo provides append-only access to the analytics_events table.
type EventRepo struct {
	db *DB
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(db *DB) *EventRepo {
	return &EventRepo{db: db}
}

// Create appends an event.
func (r *EventRepo) Create(ctx context.Context, ev *model.AnalyticsEvent) error {
	createdAt := ev.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO analytics_events (event_type, event_data, user_id, user_ip,
		   user_agent, device_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.Type, ev.Data, ev.UserID, ev.UserIP, ev.UserAgent, ev.DeviceType, createdAt)
	if err != nil {
		return fmt.Errorf("creating analytics event: %w", err)
	}
	return nil
}

// ListRecent returns the most recent events.
func (r *EventRepo) ListRecent(ctx context.Context, limit, offset int) ([]model.AnalyticsEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM analytics_events
		 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []model.AnalyticsEvent
	for rows.Next() {
		var ev model.AnalyticsEvent
		if err := rows.Scan(&ev.ID, &ev.Type, &ev.Data, &ev.UserID, &ev.UserIP,
			&ev.UserAgent, &ev.DeviceType, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Count returns the total number of events.
func (r *EventRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analytics_events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return count, nil
}

// CountByTypeSince returns per-type event counts since the given time.
func (r *EventRepo) CountByTypeSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT event_type, COUNT(*) FROM analytics_events
		 WHERE created_at >= ? GROUP BY event_type`, since)
	if err != nil {
		return nil, fmt.Errorf("summarizing events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int64)
	for rows.Next() {
		var eventType string
		var count int64
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, err
		}
		counts[eventType] = count
	}
	return counts, rows.Err()
}

// DeleteOlderThan removes events created before the cutoff.
func (r *EventRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM analytics_events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting old events: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting old events: %w", err)
	}
	return affected, nil
}
