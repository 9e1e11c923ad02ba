// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo generates the sitemap, robots.txt, and security.txt
// served alongside the JSON API.
package seo

import (
	"encoding/xml"
	"time"

	"github.com/amoodyplace/moodyplace-go/internal/model"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq is a sitemap change frequency hint.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL is a single URL entry.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap is the complete urlset document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder assembles sitemap entries for the public site.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a SitemapBuilder. siteURL must not end
// with a slash.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{siteURL: siteURL}
}

// AddStaticPages adds the homepage and the fixed site sections.
func (b *SitemapBuilder) AddStaticPages() {
	b.urls = append(b.urls,
		SitemapURL{Loc: b.siteURL + "/", ChangeFreq: ChangeFreqDaily, Priority: "1.0"},
		SitemapURL{Loc: b.siteURL + "/music", ChangeFreq: ChangeFreqWeekly, Priority: "0.9"},
		SitemapURL{Loc: b.siteURL + "/blog", ChangeFreq: ChangeFreqDaily, Priority: "0.8"},
		SitemapURL{Loc: b.siteURL + "/shows", ChangeFreq: ChangeFreqWeekly, Priority: "0.8"},
		SitemapURL{Loc: b.siteURL + "/photos", ChangeFreq: ChangeFreqWeekly, Priority: "0.6"},
		SitemapURL{Loc: b.siteURL + "/press", ChangeFreq: ChangeFreqMonthly, Priority: "0.5"},
		SitemapURL{Loc: b.siteURL + "/contact", ChangeFreq: ChangeFreqMonthly, Priority: "0.5"},
	)
}

// AddSongs adds published song pages.
func (b *SitemapBuilder) AddSongs(songs []model.Song) {
	for _, s := range songs {
		if !s.IsPublished {
			continue
		}
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + "/music/" + s.Slug,
			LastMod:    s.UpdatedAt.Format(time.RFC3339),
			ChangeFreq: ChangeFreqMonthly,
			Priority:   "0.7",
		})
	}
}

// AddPosts adds published blog post pages.
func (b *SitemapBuilder) AddPosts(posts []model.BlogPost) {
	for _, p := range posts {
		if !p.IsPublished {
			continue
		}
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + "/blog/" + p.Slug,
			LastMod:    p.UpdatedAt.Format(time.RFC3339),
			ChangeFreq: ChangeFreqWeekly,
			Priority:   "0.6",
		})
	}
}

// Build generates the sitemap XML with the standard header.
func (b *SitemapBuilder) Build() ([]byte, error) {
	doc := Sitemap{XMLNS: XMLNamespace, URLs: b.urls}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// GenerateSitemap builds the full public sitemap in one call.
func GenerateSitemap(siteURL string, songs []model.Song, posts []model.BlogPost) ([]byte, error) {
	b := NewSitemapBuilder(siteURL)
	b.AddStaticPages()
	b.AddSongs(songs)
	b.AddPosts(posts)
	return b.Build()
}
