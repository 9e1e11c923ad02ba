// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/amoodyplace/moodyplace-go/internal/model"
)

const contactColumns = `id, name, email, phone, company_organization, inquiry_type,
	subject, message, preferred_contact_method, urgency, is_responded, created_at, updated_at`

// ContactRepo provides access to the contact_inquiries table.
type ContactRepo struct {
	db *DB
}

// NewContactRepo creates a new ContactRepo.
func NewContactRepo(db *DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func scanContact(row rowScanner) (model.ContactInquiry, error) {
	var c model.ContactInquiry
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CompanyOrganization,
		&c.InquiryType, &c.Subject, &c.Message, &c.PreferredContactMethod,
		&c.Urgency, &c.IsResponded, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts a contact inquiry and returns its ID.
func (r *ContactRepo) Create(ctx context.Context, c *model.ContactInquiry) (int64, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_inquiries (name, email, phone, company_organization,
		   inquiry_type, subject, message, preferred_contact_method, urgency,
		   is_responded, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		c.Name, c.Email, c.Phone, c.CompanyOrganization, c.InquiryType,
		c.Subject, c.Message, c.PreferredContactMethod, c.Urgency, now, now)
	if err != nil {
		return 0, fmt.Errorf("creating contact inquiry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new inquiry id: %w", err)
	}
	return id, nil
}

// List returns inquiries, newest first.
func (r *ContactRepo) List(ctx context.Context, limit, offset int) ([]model.ContactInquiry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contact_inquiries
		 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing contact inquiries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var inquiries []model.ContactInquiry
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, c)
	}
	return inquiries, rows.Err()
}

// Count returns the total number of inquiries.
func (r *ContactRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_inquiries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting contact inquiries: %w", err)
	}
	return count, nil
}

// GetByID fetches an inquiry.
func (r *ContactRepo) GetByID(ctx context.Context, id int64) (model.ContactInquiry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contact_inquiries WHERE id = ?`, id)
	c, err := scanContact(row)
	if err != nil {
		return model.ContactInquiry{}, fmt.Errorf("getting inquiry %d: %w", id, err)
	}
	return c, nil
}

// SetResponded updates the responded flag.
func (r *ContactRepo) SetResponded(ctx context.Context, id int64, responded bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE contact_inquiries SET is_responded = ?, updated_at = ? WHERE id = ?`,
		responded, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating inquiry %d: %w", id, err)
	}
	return nil
}

// Delete removes an inquiry.
func (r *ContactRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM contact_inquiries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting inquiry %d: %w", id, err)
	}
	return nil
}
