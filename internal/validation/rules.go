// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package validation

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/amoodyplace/moodyplace-go/internal/model"
	"github.com/amoodyplace/moodyplace-go/internal/util"
)

var (
	// strict strips all markup from plain text fields.
	strict = bluemonday.StrictPolicy()
	// ugc keeps the safe formatting subset for blog post bodies.
	ugc = bluemonday.UGCPolicy()
)

// SanitizeText strips markup and trims a plain text field.
func SanitizeText(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// SanitizeHTML sanitizes user-authored HTML, keeping safe formatting.
func SanitizeHTML(s string) string {
	return strings.TrimSpace(ugc.Sanitize(s))
}

// LoginInput is the login request payload.
type LoginInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Validate checks the login payload.
func (in *LoginInput) Validate() Errors {
	in.Identifier = strings.TrimSpace(in.Identifier)

	v := New()
	v.Required("identifier", in.Identifier)
	v.MaxLength("identifier", in.Identifier, 255)
	v.Required("password", in.Password)
	return v.Errors()
}

// RegisterInput is the account registration payload.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Validate checks the registration payload.
func (in *RegisterInput) Validate() Errors {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = SanitizeText(in.FullName)

	v := New()
	v.Required("username", in.Username)
	v.Username("username", in.Username)
	v.Required("email", in.Email)
	v.Email("email", in.Email)
	v.Required("password", in.Password)
	v.Password("password", in.Password)
	v.Required("full_name", in.FullName)
	v.MaxLength("full_name", in.FullName, 100)
	v.Required("role", in.Role)
	v.OneOf("role", in.Role, string(model.RoleAdmin), string(model.RoleEditor))
	return v.Errors()
}

// ChangePasswordInput is the password change payload.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate checks the password change payload.
func (in *ChangePasswordInput) Validate() Errors {
	v := New()
	v.Required("current_password", in.CurrentPassword)
	v.Required("new_password", in.NewPassword)
	v.Password("new_password", in.NewPassword)
	v.Check(in.CurrentPassword != in.NewPassword || in.NewPassword == "",
		"new_password", "must differ from the current password")
	return v.Errors()
}

// SongInput is the song create/update payload.
type SongInput struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
	ReleaseDate   string `json:"release_date"`
	Duration      int    `json:"duration_seconds"`
	SpotifyURL    string `json:"spotify_url"`
	AppleMusicURL string `json:"apple_music_url"`
	YouTubeURL    string `json:"youtube_url"`
	SoundCloudURL string `json:"soundcloud_url"`
	CoverImageURL string `json:"cover_image_url"`
	IsFeatured    bool   `json:"is_featured"`
	IsPublished   bool   `json:"is_published"`
	SortOrder     int    `json:"sort_order"`
}

// Validate checks the song payload.
func (in *SongInput) Validate() Errors {
	in.Title = SanitizeText(in.Title)
	in.Description = SanitizeText(in.Description)
	in.Slug = strings.TrimSpace(in.Slug)

	v := New()
	v.Required("title", in.Title)
	v.MaxLength("title", in.Title, 255)
	v.Slug("slug", in.Slug)
	v.MaxLength("description", in.Description, 5000)
	v.Date("release_date", in.ReleaseDate)
	v.NonNegative("duration_seconds", in.Duration)
	v.URLHost("spotify_url", in.SpotifyURL, "open.spotify.com")
	v.URLHost("apple_music_url", in.AppleMusicURL, "music.apple.com")
	v.URLHost("youtube_url", in.YouTubeURL, "youtube.com")
	v.URLHost("soundcloud_url", in.SoundCloudURL, "soundcloud.com")
	v.URL("cover_image_url", in.CoverImageURL)
	v.NonNegative("sort_order", in.SortOrder)
	return v.Errors()
}

// BlogPostInput is the blog post create/update payload.
type BlogPostInput struct {
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Content         string `json:"content"`
	Excerpt         string `json:"excerpt"`
	FeaturedImage   string `json:"featured_image"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	IsPublished     bool   `json:"is_published"`
}

// Validate checks the blog post payload.
func (in *BlogPostInput) Validate() Errors {
	in.Title = SanitizeText(in.Title)
	in.Content = SanitizeHTML(in.Content)
	in.Excerpt = SanitizeText(in.Excerpt)
	in.MetaTitle = SanitizeText(in.MetaTitle)
	in.MetaDescription = SanitizeText(in.MetaDescription)
	in.Slug = strings.TrimSpace(in.Slug)

	v := New()
	v.Required("title", in.Title)
	v.MaxLength("title", in.Title, 255)
	v.Slug("slug", in.Slug)
	v.Required("content", in.Content)
	v.MaxLength("excerpt", in.Excerpt, 500)
	v.URL("featured_image", in.FeaturedImage)
	v.MaxLength("meta_title", in.MetaTitle, 70)
	v.MaxLength("meta_description", in.MetaDescription, 160)
	return v.Errors()
}

// ShowInput is the show create/update payload.
type ShowInput struct {
	Title          string `json:"title"`
	Venue          string `json:"venue"`
	City           string `json:"city"`
	StateProvince  string `json:"state_province"`
	Country        string `json:"country"`
	EventDate      string `json:"event_date"`
	DoorsTime      string `json:"doors_time"`
	ShowTime       string `json:"show_time"`
	TicketURL      string `json:"ticket_url"`
	TicketPrice    string `json:"ticket_price"`
	Description    string `json:"description"`
	AgeRestriction string `json:"age_restriction"`
	Status         string `json:"status"`
}

// Validate checks the show payload.
func (in *ShowInput) Validate() Errors {
	in.Title = SanitizeText(in.Title)
	in.Venue = SanitizeText(in.Venue)
	in.City = SanitizeText(in.City)
	in.Country = SanitizeText(in.Country)
	in.Description = SanitizeText(in.Description)
	if in.Status == "" {
		in.Status = model.ShowStatusUpcoming
	}

	v := New()
	v.Required("venue", in.Venue)
	v.MaxLength("venue", in.Venue, 255)
	v.Required("city", in.City)
	v.MaxLength("city", in.City, 100)
	v.Required("country", in.Country)
	v.MaxLength("country", in.Country, 100)
	v.Required("event_date", in.EventDate)
	v.Date("event_date", in.EventDate)
	v.TimeOfDay("doors_time", in.DoorsTime)
	v.TimeOfDay("show_time", in.ShowTime)
	v.URL("ticket_url", in.TicketURL)
	v.Check(model.ValidShowStatus(in.Status), "status",
		"must be one of: upcoming, completed, cancelled, postponed")
	return v.Errors()
}

// PhotoInput is the photo create/update payload.
type PhotoInput struct {
	Title           string `json:"title"`
	Caption         string `json:"caption"`
	AltText         string `json:"alt_text"`
	Category        string `json:"category"`
	Photographer    string `json:"photographer"`
	Location        string `json:"location"`
	FilePath        string `json:"file_path"`
	IsFeatured      bool   `json:"is_featured"`
	IsPressApproved bool   `json:"is_press_approved"`
	SortOrder       int    `json:"sort_order"`
}

// Validate checks the photo payload.
func (in *PhotoInput) Validate() Errors {
	in.Title = SanitizeText(in.Title)
	in.Caption = SanitizeText(in.Caption)
	in.AltText = SanitizeText(in.AltText)

	v := New()
	v.Required("alt_text", in.AltText)
	v.MaxLength("alt_text", in.AltText, 255)
	v.Required("category", in.Category)
	v.Check(model.ValidPhotoCategory(in.Category), "category",
		"must be one of: professional, performance, studio, personal, press")
	v.Required("file_path", in.FilePath)
	v.Check(!util.ContainsPathTraversal(in.FilePath), "file_path", "must not contain path traversal")
	v.NonNegative("sort_order", in.SortOrder)
	return v.Errors()
}

// ContactInput is the public contact form payload.
type ContactInput struct {
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	Phone                  string `json:"phone"`
	CompanyOrganization    string `json:"company_organization"`
	InquiryType            string `json:"inquiry_type"`
	Subject                string `json:"subject"`
	Message                string `json:"message"`
	PreferredContactMethod string `json:"preferred_contact_method"`
	Urgency                string `json:"urgency"`
}

// Validate checks the contact form payload.
func (in *ContactInput) Validate() Errors {
	in.Name = SanitizeText(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Subject = SanitizeText(in.Subject)
	in.Message = SanitizeText(in.Message)
	in.CompanyOrganization = SanitizeText(in.CompanyOrganization)
	if in.Urgency == "" {
		in.Urgency = model.UrgencyMedium
	}

	v := New()
	v.Required("name", in.Name)
	v.MaxLength("name", in.Name, 100)
	v.Required("email", in.Email)
	v.Email("email", in.Email)
	v.MaxLength("phone", in.Phone, 30)
	v.Required("inquiry_type", in.InquiryType)
	v.Check(model.ValidInquiryType(in.InquiryType), "inquiry_type",
		"must be one of: collaboration, booking, press, licensing, fan, general")
	v.MaxLength("subject", in.Subject, 255)
	v.Required("message", in.Message)
	v.MinLength("message", in.Message, 10)
	v.MaxLength("message", in.Message, 5000)
	v.OneOf("preferred_contact_method", in.PreferredContactMethod, "email", "phone")
	v.Check(model.ValidUrgency(in.Urgency), "urgency", "must be one of: low, medium, high")
	return v.Errors()
}

// NewsletterInput is the newsletter signup payload.
type NewsletterInput struct {
	Email          string   `json:"email"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	SubscriberType string   `json:"subscriber_type"`
	Interests      []string `json:"interests"`
}

// Validate checks the newsletter signup payload.
func (in *NewsletterInput) Validate() Errors {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = SanitizeText(in.FirstName)
	in.LastName = SanitizeText(in.LastName)
	if in.SubscriberType == "" {
		in.SubscriberType = model.SubscriberFan
	}

	v := New()
	v.Required("email", in.Email)
	v.Email("email", in.Email)
	v.MaxLength("first_name", in.FirstName, 100)
	v.MaxLength("last_name", in.LastName, 100)
	v.Check(model.ValidSubscriberType(in.SubscriberType), "subscriber_type",
		"must be one of: fan, industry, press")
	for _, interest := range in.Interests {
		if !model.ValidNewsletterInterest(interest) {
			v.Check(false, "interests",
				"must contain only: "+strings.Join(model.NewsletterInterests, ", "))
			break
		}
	}
	return v.Errors()
}
