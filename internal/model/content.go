// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Song represents a released track with streaming platform links.
type Song struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	Description   sql.NullString `json:"description,omitempty"`
	ReleaseDate   sql.NullTime   `json:"release_date,omitempty"`
	Duration      sql.NullInt64  `json:"duration_seconds,omitempty"`
	SpotifyURL    sql.NullString `json:"spotify_url,omitempty"`
	AppleMusicURL sql.NullString `json:"apple_music_url,omitempty"`
	YouTubeURL    sql.NullString `json:"youtube_url,omitempty"`
	SoundCloudURL sql.NullString `json:"soundcloud_url,omitempty"`
	CoverImageURL sql.NullString `json:"cover_image_url,omitempty"`
	IsFeatured    bool           `json:"is_featured"`
	IsPublished   bool           `json:"is_published"`
	SortOrder     int            `json:"sort_order"`
	PlayCount     int64          `json:"play_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// BlogPost represents a blog entry with SEO metadata.
type BlogPost struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	Content         string         `json:"content"`
	Excerpt         sql.NullString `json:"excerpt,omitempty"`
	FeaturedImage   sql.NullString `json:"featured_image,omitempty"`
	MetaTitle       sql.NullString `json:"meta_title,omitempty"`
	MetaDescription sql.NullString `json:"meta_description,omitempty"`
	IsPublished     bool           `json:"is_published"`
	PublishedAt     sql.NullTime   `json:"published_at,omitempty"`
	ReadTimeMinutes sql.NullInt64  `json:"read_time_minutes,omitempty"`
	ViewCount       int64          `json:"view_count"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Show statuses.
const (
	ShowStatusUpcoming  = "upcoming"
	ShowStatusCompleted = "completed"
	ShowStatusCancelled = "cancelled"
	ShowStatusPostponed = "postponed"
)

// ValidShowStatus reports whether s is a recognized show status.
func ValidShowStatus(s string) bool {
	switch s {
	case ShowStatusUpcoming, ShowStatusCompleted, ShowStatusCancelled, ShowStatusPostponed:
		return true
	}
	return false
}

// Show represents a live performance date.
type Show struct {
	ID             int64          `json:"id"`
	Title          sql.NullString `json:"title,omitempty"`
	Venue          string         `json:"venue"`
	City           string         `json:"city"`
	StateProvince  sql.NullString `json:"state_province,omitempty"`
	Country        string         `json:"country"`
	EventDate      time.Time      `json:"event_date"`
	DoorsTime      sql.NullString `json:"doors_time,omitempty"` // HH:MM:SS
	ShowTime       sql.NullString `json:"show_time,omitempty"`  // HH:MM:SS
	TicketURL      sql.NullString `json:"ticket_url,omitempty"`
	TicketPrice    sql.NullString `json:"ticket_price,omitempty"`
	Description    sql.NullString `json:"description,omitempty"`
	AgeRestriction sql.NullString `json:"age_restriction,omitempty"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Photo categories.
const (
	PhotoCategoryProfessional = "professional"
	PhotoCategoryPerformance  = "performance"
	PhotoCategoryStudio       = "studio"
	PhotoCategoryPersonal     = "personal"
	PhotoCategoryPress        = "press"
)

// ValidPhotoCategory reports whether s is a recognized photo category.
func ValidPhotoCategory(s string) bool {
	switch s {
	case PhotoCategoryProfessional, PhotoCategoryPerformance,
		PhotoCategoryStudio, PhotoCategoryPersonal, PhotoCategoryPress:
		return true
	}
	return false
}

// Photo represents a gallery image.
type Photo struct {
	ID              int64          `json:"id"`
	Title           sql.NullString `json:"title,omitempty"`
	Caption         sql.NullString `json:"caption,omitempty"`
	AltText         string         `json:"alt_text"`
	Category        string         `json:"category"`
	Photographer    sql.NullString `json:"photographer,omitempty"`
	Location        sql.NullString `json:"location,omitempty"`
	FilePath        string         `json:"file_path"`
	IsFeatured      bool           `json:"is_featured"`
	IsPressApproved bool           `json:"is_press_approved"`
	SortOrder       int            `json:"sort_order"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
