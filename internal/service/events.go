// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic on top of the store layer,
// including analytics event recording for the admin dashboard.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/amoodyplace/moodyplace-go/internal/auth"
	"github.com/amoodyplace/moodyplace-go/internal/model"
)

// EventStore is the persistence surface EventService writes to.
type EventStore interface {
	Create(ctx context.Context, ev *model.AnalyticsEvent) error
	ListRecent(ctx context.Context, limit, offset int) ([]model.AnalyticsEvent, error)
	Count(ctx context.Context) (int64, error)
	CountByTypeSince(ctx context.Context, since time.Time) (map[string]int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// EventService records analytics events. All Record* methods are
// best-effort: a write failure is logged and never surfaced to the
// caller, so analytics can never break a user-facing request.
type EventService struct {
	events EventStore
	logger *slog.Logger
}

// NewEventService creates a new EventService.
func NewEventService(events EventStore, logger *slog.Logger) *EventService {
	return &EventService{events: events, logger: logger}
}

// Record writes an event with the device class derived from the User-Agent.
func (s *EventService) Record(ctx context.Context, eventType string, userID *int64, ip, userAgent string, detail map[string]any) {
	data := "{}"
	if detail != nil {
		if encoded, err := json.Marshal(detail); err == nil {
			data = string(encoded)
		}
	}

	var nullUserID sql.NullInt64
	if userID != nil {
		nullUserID = sql.NullInt64{Int64: *userID, Valid: true}
	}

	ev := &model.AnalyticsEvent{
		Type:       eventType,
		Data:       data,
		UserID:     nullUserID,
		UserIP:     ip,
		UserAgent:  userAgent,
		DeviceType: auth.DeviceType(userAgent),
	}
	if err := s.events.Create(ctx, ev); err != nil {
		s.logger.Error("failed to record analytics event", "type", eventType, "error", err)
	}
}

// RecordAuth implements auth.EventRecorder.
func (s *EventService) RecordAuth(ctx context.Context, eventType string, userID *int64, ip, userAgent string, detail map[string]any) {
	s.Record(ctx, eventType, userID, ip, userAgent, detail)
}

// RecordSongPlay records a play of a published song.
func (s *EventService) RecordSongPlay(ctx context.Context, songID int64, ip, userAgent string) {
	s.Record(ctx, model.EventSongPlay, nil, ip, userAgent, map[string]any{"song_id": songID})
}

// RecordPostView records a view of a published blog post.
func (s *EventService) RecordPostView(ctx context.Context, postID int64, ip, userAgent string) {
	s.Record(ctx, model.EventPostView, nil, ip, userAgent, map[string]any{"post_id": postID})
}

// RecordContact records a submitted contact inquiry.
func (s *EventService) RecordContact(ctx context.Context, inquiryID int64, inquiryType, ip, userAgent string) {
	s.Record(ctx, model.EventContactSubmitted, nil, ip, userAgent,
		map[string]any{"inquiry_id": inquiryID, "inquiry_type": inquiryType})
}

// RecordNewsletter records a newsletter lifecycle event.
func (s *EventService) RecordNewsletter(ctx context.Context, eventType string, subscriberID int64, ip, userAgent string) {
	s.Record(ctx, eventType, nil, ip, userAgent, map[string]any{"subscriber_id": subscriberID})
}

// Summary aggregates per-type event counts for the dashboard.
type Summary struct {
	Since  time.Time        `json:"since"`
	Total  int64            `json:"total"`
	ByType map[string]int64 `json:"by_type"`
}

// Summarize returns per-type counts for events recorded in the window.
func (s *EventService) Summarize(ctx context.Context, window time.Duration) (*Summary, error) {
	since := time.Now().UTC().Add(-window)
	counts, err := s.events.CountByTypeSince(ctx, since)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range counts {
		total += n
	}
	return &Summary{Since: since, Total: total, ByType: counts}, nil
}

// Recent returns the most recent events for the admin dashboard.
func (s *EventService) Recent(ctx context.Context, limit, offset int) ([]model.AnalyticsEvent, int64, error) {
	events, err := s.events.ListRecent(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.events.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// Prune removes events older than the retention window.
func (s *EventService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	return s.events.DeleteOlderThan(ctx, time.Now().UTC().Add(-retention))
}
