// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
)

// SocialLinks holds the artist's public profiles.
type SocialLinks struct {
	Spotify    string `json:"spotify"`
	AppleMusic string `json:"apple_music"`
	YouTube    string `json:"youtube"`
	SoundCloud string `json:"soundcloud"`
	Instagram  string `json:"instagram"`
}

// SiteInfo is the static site metadata served to the frontend.
type SiteInfo struct {
	ArtistName   string      `json:"artist_name"`
	Tagline      string      `json:"tagline"`
	Bio          string      `json:"bio"`
	ContactEmail string      `json:"contact_email"`
	BookingEmail string      `json:"booking_email"`
	PressEmail   string      `json:"press_email"`
	Social       SocialLinks `json:"social"`
}

var siteInfo = SiteInfo{
	ArtistName:   "A Moody Place",
	Tagline:      "Atmospheric indie from somewhere between midnight and morning",
	Bio:          "A Moody Place writes and records atmospheric indie music built on layered guitars, analog synths, and late-night vocal takes.",
	ContactEmail: "hello@a-moody-place.com",
	BookingEmail: "booking@a-moody-place.com",
	PressEmail:   "press@a-moody-place.com",
	Social: SocialLinks{
		Spotify:    "https://open.spotify.com/artist/a-moody-place",
		AppleMusic: "https://music.apple.com/artist/a-moody-place",
		YouTube:    "https://www.youtube.com/@amoodyplace",
		SoundCloud: "https://soundcloud.com/amoodyplace",
		Instagram:  "https://www.instagram.com/amoodyplace",
	},
}

// GetSiteInfo handles GET /api/site-info.
func (h *Handler) GetSiteInfo(w http.ResponseWriter, r *http.Request) {
	h.renderer.Success(w, siteInfo, "")
}

// pressBios are the short and long biography variants offered in the
// press kit.
var pressBios = map[string]string{
	"short": "A Moody Place is an atmospheric indie project blending layered guitars, analog synths, and intimate vocals.",
	"long": "A Moody Place is an atmospheric indie project built around layered guitars, analog synths, and intimate late-night " +
		"vocals. Written, recorded, and produced independently, the music moves between ambient textures and melodic songwriting, " +
		"drawing comparisons to the quieter corners of dream pop and slowcore.",
}

// GetPressKit handles GET /api/press-kit: bios, press-approved photos,
// and press contact details in one payload.
func (h *Handler) GetPressKit(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photos.ListPressApproved(r.Context())
	if err != nil {
		h.renderer.Internal(w, err, "listing press photos")
		return
	}

	h.renderer.Success(w, map[string]any{
		"artist_name": siteInfo.ArtistName,
		"bios":        pressBios,
		"photos":      photos,
		"contact": map[string]string{
			"press":   siteInfo.PressEmail,
			"booking": siteInfo.BookingEmail,
		},
		"social": siteInfo.Social,
	}, "")
}
