package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_CollectsAllErrors(t *testing.T) {
	v := New()
	v.Required("name", "")
	v.Required("email", "")
	v.Required("message", "")

	assert.False(t, v.Valid())
	assert.Len(t, v.Errors(), 3)
	assert.Equal(t, "is required", v.Errors()["name"])
}

func TestValidator_FirstErrorPerFieldWins(t *testing.T) {
	v := New()
	v.Required("email", "")
	v.Email("email", "not-an-email")

	assert.Equal(t, "is required", v.Errors()["email"])
}

func TestEmail(t *testing.T) {
	valid := []string{"fan@example.com", "a.b+c@sub.domain.org", "UPPER@CASE.COM"}
	invalid := []string{"plainaddress", "@missing.local", "user@", "user@.com", "user@domain"}

	for _, email := range valid {
		v := New()
		v.Email("email", email)
		assert.True(t, v.Valid(), "expected %q to be valid", email)
	}
	for _, email := range invalid {
		v := New()
		v.Email("email", email)
		assert.False(t, v.Valid(), "expected %q to be invalid", email)
	}
}

func TestEmail_EmptySkipped(t *testing.T) {
	v := New()
	v.Email("email", "")
	assert.True(t, v.Valid(), "empty values are the job of Required")
}

func TestURL(t *testing.T) {
	v := New()
	v.URL("ticket_url", "https://tickets.example.com/event/1")
	assert.True(t, v.Valid())

	v = New()
	v.URL("ticket_url", "javascript:alert(1)")
	assert.False(t, v.Valid())

	v = New()
	v.URL("ticket_url", "not a url")
	assert.False(t, v.Valid())
}

func TestURLHost(t *testing.T) {
	v := New()
	v.URLHost("spotify_url", "https://open.spotify.com/track/abc", "open.spotify.com")
	assert.True(t, v.Valid())

	v = New()
	v.URLHost("youtube_url", "https://www.youtube.com/watch?v=abc", "youtube.com")
	assert.True(t, v.Valid(), "subdomains of the platform are allowed")

	v = New()
	v.URLHost("spotify_url", "https://evil.example.com/track/abc", "open.spotify.com")
	assert.False(t, v.Valid())

	v = New()
	v.URLHost("spotify_url", "https://notopen.spotify.com.evil.example", "open.spotify.com")
	assert.False(t, v.Valid())
}

func TestPassword(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Str0ngpass", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
	}
	for _, tc := range cases {
		v := New()
		v.Password("password", tc.password)
		assert.Equal(t, tc.valid, v.Valid(), "password %q", tc.password)
	}
}

func TestUsername(t *testing.T) {
	v := New()
	v.Username("username", "moody-artist_1")
	assert.True(t, v.Valid())

	v = New()
	v.Username("username", "ab")
	assert.False(t, v.Valid())

	v = New()
	v.Username("username", "Bad User!")
	assert.False(t, v.Valid())
}

func TestDateAndTimeOfDay(t *testing.T) {
	v := New()
	v.Date("event_date", "2026-09-15")
	v.TimeOfDay("doors_time", "19:30")
	assert.True(t, v.Valid())

	v = New()
	v.Date("event_date", "15/09/2026")
	assert.False(t, v.Valid())

	v = New()
	v.TimeOfDay("doors_time", "7pm")
	assert.False(t, v.Valid())
}

func TestSlugRule(t *testing.T) {
	v := New()
	v.Slug("slug", "midnight-rain-2")
	assert.True(t, v.Valid())

	v = New()
	v.Slug("slug", "Midnight Rain")
	assert.False(t, v.Valid())
}
