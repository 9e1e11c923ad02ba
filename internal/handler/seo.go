// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/amoodyplace/moodyplace-go/internal/seo"
)

// sitemapEntryLimit caps how many rows of each type feed the sitemap.
const sitemapEntryLimit = 1000

// Sitemap handles GET /sitemap.xml over published songs and posts. The
// generated document is cached for an hour; freshly published content
// tolerates that lag.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.seoCache.Get("sitemap"); ok {
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write(cached)
		return
	}

	songs, err := h.songs.ListPublished(r.Context(), sitemapEntryLimit, 0)
	if err != nil {
		h.renderer.Internal(w, err, "listing songs for sitemap")
		return
	}
	posts, err := h.posts.ListPublished(r.Context(), sitemapEntryLimit, 0)
	if err != nil {
		h.renderer.Internal(w, err, "listing posts for sitemap")
		return
	}

	out, err := seo.GenerateSitemap(h.siteURL, songs, posts)
	if err != nil {
		h.renderer.Internal(w, err, "building sitemap")
		return
	}
	h.seoCache.Set("sitemap", out)

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

// Robots handles GET /robots.txt. Non-production environments block
// all crawlers.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	out := seo.GenerateRobots(seo.RobotsConfig{
		SiteURL:     h.siteURL,
		DisallowAll: h.renderer.IsDev(),
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// SecurityTxt handles GET /.well-known/security.txt.
func (h *Handler) SecurityTxt(w http.ResponseWriter, r *http.Request) {
	out := seo.GenerateSecurityTxt(seo.SecurityTxtConfig{
		Contact: []string{"mailto:security@a-moody-place.com"},
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(out))
}
