// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"time"
)

// SecurityTxtConfig holds the fields for RFC 9116 security.txt.
type SecurityTxtConfig struct {
	Contact []string  // Required. mailto:, https:, or tel: URIs.
	Expires time.Time // Defaults to one year out when zero.
	Policy  string
}

// GenerateSecurityTxt builds the security.txt content.
func GenerateSecurityTxt(cfg SecurityTxtConfig) string {
	var sb strings.Builder

	for _, contact := range cfg.Contact {
		if contact != "" {
			sb.WriteString("Contact: ")
			sb.WriteString(contact)
			sb.WriteString("\n")
		}
	}

	expires := cfg.Expires
	if expires.IsZero() {
		expires = time.Now().UTC().AddDate(1, 0, 0)
	}
	sb.WriteString("Expires: ")
	sb.WriteString(expires.UTC().Format(time.RFC3339))
	sb.WriteString("\n")

	if cfg.Policy != "" {
		sb.WriteString("Policy: ")
		sb.WriteString(cfg.Policy)
		sb.WriteString("\n")
	}
	return sb.String()
}
