// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package validation checks request payloads declaratively. A Validator
// collects every field failure instead of stopping at the first one, so
// a single response can report the complete set of problems.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/amoodyplace/moodyplace-go/internal/util"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// Errors maps field names to their first failure message.
type Errors map[string]string

// Validator accumulates field errors across rule checks.
type Validator struct {
	errs Errors
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{errs: make(Errors)}
}

// Valid reports whether no rule has failed.
func (v *Validator) Valid() bool {
	return len(v.errs) == 0
}

// Errors returns the accumulated field errors.
func (v *Validator) Errors() Errors {
	return v.errs
}

// Check records message for field when ok is false. Only the first
// failure per field is kept.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		if _, exists := v.errs[field]; !exists {
			v.errs[field] = message
		}
	}
}

// Required fails when value is empty after trimming.
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// MaxLength fails when value exceeds max characters.
func (v *Validator) MaxLength(field, value string, max int) {
	v.Check(len([]rune(value)) <= max, field,
		fmt.Sprintf("must be at most %d characters", max))
}

// MinLength fails when a non-empty value is shorter than min characters.
func (v *Validator) MinLength(field, value string, min int) {
	if value == "" {
		return
	}
	v.Check(len([]rune(value)) >= min, field,
		fmt.Sprintf("must be at least %d characters", min))
}

// Email fails when a non-empty value is not a plausible email address.
func (v *Validator) Email(field, value string) {
	if value == "" {
		return
	}
	v.Check(len(value) <= 254 && emailRegex.MatchString(value), field,
		"must be a valid email address")
}

// URL fails when a non-empty value is not an absolute http(s) URL.
func (v *Validator) URL(field, value string) {
	if value == "" {
		return
	}
	parsed, err := url.Parse(value)
	ok := err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
	v.Check(ok, field, "must be a valid http or https URL")
}

// URLHost fails when a non-empty URL's host is not host or a subdomain
// of it. Used to pin streaming links to their platforms.
func (v *Validator) URLHost(field, value, host string) {
	if value == "" {
		return
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" {
		v.Check(false, field, "must be a valid http or https URL")
		return
	}
	h := strings.ToLower(parsed.Hostname())
	v.Check(h == host || strings.HasSuffix(h, "."+host), field,
		fmt.Sprintf("must be a %s link", host))
}

// OneOf fails when a non-empty value is not in the allowed set.
func (v *Validator) OneOf(field, value string, allowed ...string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.Check(false, field, "must be one of: "+strings.Join(allowed, ", "))
}

// Slug fails when a non-empty value is not a valid URL slug.
func (v *Validator) Slug(field, value string) {
	if value == "" {
		return
	}
	v.Check(util.IsValidSlug(value), field,
		"must contain only lowercase letters, numbers, and hyphens")
}

// Date fails when a non-empty value is not a YYYY-MM-DD date.
func (v *Validator) Date(field, value string) {
	if value == "" {
		return
	}
	_, err := time.Parse("2006-01-02", value)
	v.Check(err == nil, field, "must be a date in YYYY-MM-DD format")
}

// TimeOfDay fails when a non-empty value is not an HH:MM time.
func (v *Validator) TimeOfDay(field, value string) {
	if value == "" {
		return
	}
	_, err := time.Parse("15:04", value)
	v.Check(err == nil, field, "must be a time in HH:MM format")
}

// Range fails when value is outside [min, max].
func (v *Validator) Range(field string, value, min, max int) {
	v.Check(value >= min && value <= max, field,
		fmt.Sprintf("must be between %d and %d", min, max))
}

// NonNegative fails when value is below zero.
func (v *Validator) NonNegative(field string, value int) {
	v.Check(value >= 0, field, "must not be negative")
}

// Password enforces the account password policy: at least 8 characters
// with an upper case letter, a lower case letter, and a digit.
func (v *Validator) Password(field, value string) {
	if len(value) < 8 {
		v.Check(false, field, "must be at least 8 characters")
		return
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	v.Check(hasUpper && hasLower && hasDigit, field,
		"must contain an upper case letter, a lower case letter, and a digit")
}

// Username fails when value contains characters outside [a-z0-9_-] or is
// shorter than 3 characters.
func (v *Validator) Username(field, value string) {
	if value == "" {
		return
	}
	if len(value) < 3 || len(value) > 50 {
		v.Check(false, field, "must be 3 to 50 characters")
		return
	}
	for _, r := range value {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			v.Check(false, field, "may contain only lowercase letters, numbers, hyphens, and underscores")
			return
		}
	}
}
