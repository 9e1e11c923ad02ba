// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Authentication event types recorded in the analytics log.
const (
	EventLoginSuccess   = "login_success"
	EventLoginFailed    = "login_failed"
	EventLoginBlocked   = "login_blocked"
	EventAccountLocked  = "account_locked"
	EventLogout         = "logout"
	EventPasswordChange = "password_change"
	EventUserRegistered = "user_registered"
)

// Content and engagement event types.
const (
	EventSongPlay              = "song_play"
	EventPostView              = "post_view"
	EventContactSubmitted      = "contact_submitted"
	EventNewsletterSubscribe   = "newsletter_subscribe"
	EventNewsletterConfirm     = "newsletter_confirm"
	EventNewsletterUnsubscribe = "newsletter_unsubscribe"
)

// System event types emitted by the logging bridge.
const (
	EventLogWarning = "log_warning"
	EventLogError   = "log_error"
)

// Device classes derived from the User-Agent header.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
	DeviceDesktop = "desktop"
)

// AnalyticsEvent is an append-only record of a site or auth event.
// Data holds a JSON object with event-specific detail.
type AnalyticsEvent struct {
	ID         int64         `json:"id"`
	Type       string        `json:"event_type"`
	Data       string        `json:"event_data"`
	UserID     sql.NullInt64 `json:"user_id,omitempty"`
	UserIP     string        `json:"user_ip"`
	UserAgent  string        `json:"user_agent"`
	DeviceType string        `json:"device_type"`
	CreatedAt  time.Time     `json:"created_at"`
}
