// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Contact inquiry types.
const (
	InquiryCollaboration = "collaboration"
	InquiryBooking       = "booking"
	InquiryPress         = "press"
	InquiryLicensing     = "licensing"
	InquiryFan           = "fan"
	InquiryGeneral       = "general"
)

// ValidInquiryType reports whether s is a recognized inquiry type.
func ValidInquiryType(s string) bool {
	switch s {
	case InquiryCollaboration, InquiryBooking, InquiryPress,
		InquiryLicensing, InquiryFan, InquiryGeneral:
		return true
	}
	return false
}

// Contact inquiry urgency levels.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// ValidUrgency reports whether s is a recognized urgency level.
func ValidUrgency(s string) bool {
	switch s {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// ContactInquiry represents a submitted contact form message.
type ContactInquiry struct {
	ID                     int64          `json:"id"`
	Name                   string         `json:"name"`
	Email                  string         `json:"email"`
	Phone                  sql.NullString `json:"phone,omitempty"`
	CompanyOrganization    sql.NullString `json:"company_organization,omitempty"`
	InquiryType            string         `json:"inquiry_type"`
	Subject                sql.NullString `json:"subject,omitempty"`
	Message                string         `json:"message"`
	PreferredContactMethod sql.NullString `json:"preferred_contact_method,omitempty"`
	Urgency                string         `json:"urgency"`
	IsResponded            bool           `json:"is_responded"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

// Newsletter subscriber types.
const (
	SubscriberFan      = "fan"
	SubscriberIndustry = "industry"
	SubscriberPress    = "press"
)

// ValidSubscriberType reports whether s is a recognized subscriber type.
func ValidSubscriberType(s string) bool {
	switch s {
	case SubscriberFan, SubscriberIndustry, SubscriberPress:
		return true
	}
	return false
}

// Newsletter interest topics a subscriber may opt into.
var NewsletterInterests = []string{"new-releases", "shows", "blog-posts", "press"}

// ValidNewsletterInterest reports whether s is a recognized interest topic.
func ValidNewsletterInterest(s string) bool {
	for _, v := range NewsletterInterests {
		if v == s {
			return true
		}
	}
	return false
}

// NewsletterSubscriber represents a mailing list signup.
// Interests is stored as a JSON array in the database.
type NewsletterSubscriber struct {
	ID             int64          `json:"id"`
	Email          string         `json:"email"`
	FirstName      sql.NullString `json:"first_name,omitempty"`
	LastName       sql.NullString `json:"last_name,omitempty"`
	SubscriberType string         `json:"subscriber_type"`
	Interests      string         `json:"interests"`
	ConfirmToken   sql.NullString `json:"-"`
	IsConfirmed    bool           `json:"is_confirmed"`
	IsActive       bool           `json:"is_active"`
	SubscribedAt   time.Time      `json:"subscribed_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
