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

const subscriberColumns = `id, email, first_name, last_name, subscriber_type, interests,
	confirm_token, is_confirmed, is_active, subscribed_at, updated_at`

// NewsletterRepo provides access to the newsletter_subscribers table.
type NewsletterRepo struct {
	db *DB
}

// NewNewsletterRepo creates a new NewsletterRepo.
func NewNewsletterRepo(db *DB) *NewsletterRepo {
	return &NewsletterRepo{db: db}
}

func scanSubscriber(row rowScanner) (model.NewsletterSubscriber, error) {
	var s model.NewsletterSubscriber
	err := row.Scan(&s.ID, &s.Email, &s.FirstName, &s.LastName, &s.SubscriberType,
		&s.Interests, &s.ConfirmToken, &s.IsConfirmed, &s.IsActive,
		&s.SubscribedAt, &s.UpdatedAt)
	return s, err
}

// GetByEmail fetches a subscriber by email, whether active or not.
func (r *NewsletterRepo) GetByEmail(ctx context.Context, email string) (model.NewsletterSubscriber, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+subscriberColumns+` FROM newsletter_subscribers WHERE email = ?`, email)
	s, err := scanSubscriber(row)
	if err != nil {
		return model.NewsletterSubscriber{}, fmt.Errorf("getting subscriber by email: %w", err)
	}
	return s, nil
}

// Create inserts a subscriber and returns its ID.
func (r *NewsletterRepo) Create(ctx context.Context, s *model.NewsletterSubscriber) (int64, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO newsletter_subscribers (email, first_name, last_name,
		   subscriber_type, interests, confirm_token, is_confirmed, is_active,
		   subscribed_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		s.Email, s.FirstName, s.LastName, s.SubscriberType, s.Interests,
		s.ConfirmToken, s.IsConfirmed, now, now)
	if err != nil {
		return 0, fmt.Errorf("creating subscriber: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new subscriber id: %w", err)
	}
	return id, nil
}

// Resubscribe reactivates an existing subscriber with fresh preferences and
// a new confirmation token.
func (r *NewsletterRepo) Resubscribe(ctx context.Context, s *model.NewsletterSubscriber) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE newsletter_subscribers SET first_name = ?, last_name = ?,
		   subscriber_type = ?, interests = ?, confirm_token = ?,
		   is_confirmed = ?, is_active = 1, subscribed_at = ?, updated_at = ?
		 WHERE id = ?`,
		s.FirstName, s.LastName, s.SubscriberType, s.Interests, s.ConfirmToken,
		s.IsConfirmed, time.Now().UTC(), time.Now().UTC(), s.ID)
	if err != nil {
		return fmt.Errorf("resubscribing %d: %w", s.ID, err)
	}
	return nil
}

// ConfirmByToken marks the matching subscriber confirmed and clears the
// token. Returns sql.ErrNoRows (wrapped) when no subscriber matches.
func (r *NewsletterRepo) ConfirmByToken(ctx context.Context, token string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE newsletter_subscribers SET is_confirmed = 1, confirm_token = NULL, updated_at = ?
		 WHERE confirm_token = ? AND is_active = 1`,
		time.Now().UTC(), token)
	if err != nil {
		return fmt.Errorf("confirming subscriber: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("confirming subscriber: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("confirming subscriber: %w", sql.ErrNoRows)
	}
	return nil
}

// Unsubscribe deactivates the subscriber with the given email.
func (r *NewsletterRepo) Unsubscribe(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE newsletter_subscribers SET is_active = 0, updated_at = ? WHERE email = ?`,
		time.Now().UTC(), email)
	if err != nil {
		return fmt.Errorf("unsubscribing %s: %w", email, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unsubscribing %s: %w", email, err)
	}
	if affected == 0 {
		return fmt.Errorf("unsubscribing %s: %w", email, sql.ErrNoRows)
	}
	return nil
}

// List returns subscribers, newest first.
func (r *NewsletterRepo) List(ctx context.Context, limit, offset int) ([]model.NewsletterSubscriber, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+subscriberColumns+` FROM newsletter_subscribers
		 ORDER BY subscribed_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing subscribers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var subs []model.NewsletterSubscriber
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// Count returns the total number of subscribers.
func (r *NewsletterRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM newsletter_subscribers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting subscribers: %w", err)
	}
	return count, nil
}

// Delete removes a subscriber.
func (r *NewsletterRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM newsletter_subscribers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting subscriber %d: %w", id, err)
	}
	return nil
}
