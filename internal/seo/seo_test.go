package seo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoodyplace/moodyplace-go/internal/model"
)

func TestGenerateSitemap(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	songs := []model.Song{
		{Slug: "midnight-rain", IsPublished: true, UpdatedAt: now},
		{Slug: "unreleased", IsPublished: false, UpdatedAt: now},
	}
	posts := []model.BlogPost{
		{Slug: "studio-diary", IsPublished: true, UpdatedAt: now},
	}

	out, err := GenerateSitemap("https://a-moody-place.com", songs, posts)
	require.NoError(t, err)
	xml := string(out)

	assert.True(t, strings.HasPrefix(xml, "<?xml"))
	assert.Contains(t, xml, XMLNamespace)
	assert.Contains(t, xml, "<loc>https://a-moody-place.com/</loc>")
	assert.Contains(t, xml, "<loc>https://a-moody-place.com/music/midnight-rain</loc>")
	assert.Contains(t, xml, "<loc>https://a-moody-place.com/blog/studio-diary</loc>")
	assert.Contains(t, xml, "<lastmod>2026-08-01T12:00:00Z</lastmod>")
	assert.NotContains(t, xml, "unreleased", "drafts stay out of the sitemap")
}

func TestSitemapBuilder_StaticPages(t *testing.T) {
	b := NewSitemapBuilder("https://a-moody-place.com")
	b.AddStaticPages()
	out, err := b.Build()
	require.NoError(t, err)

	for _, path := range []string{"/music", "/blog", "/shows", "/photos", "/press", "/contact"} {
		assert.Contains(t, string(out), "https://a-moody-place.com"+path)
	}
}

func TestGenerateRobots(t *testing.T) {
	out := GenerateRobots(RobotsConfig{SiteURL: "https://a-moody-place.com/"})

	assert.Contains(t, out, "User-agent: *")
	assert.Contains(t, out, "Disallow: /api/admin")
	assert.Contains(t, out, "Allow: /")
	assert.Contains(t, out, "Sitemap: https://a-moody-place.com/sitemap.xml")
}

func TestGenerateRobots_DisallowAll(t *testing.T) {
	out := GenerateRobots(RobotsConfig{SiteURL: "https://staging.a-moody-place.com", DisallowAll: true})

	assert.Contains(t, out, "Disallow: /\n")
	assert.NotContains(t, out, "Sitemap:", "staging sites do not advertise a sitemap")
}

func TestGenerateSecurityTxt(t *testing.T) {
	out := GenerateSecurityTxt(SecurityTxtConfig{
		Contact: []string{"mailto:security@a-moody-place.com"},
		Expires: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Contains(t, out, "Contact: mailto:security@a-moody-place.com")
	assert.Contains(t, out, "Expires: 2027-01-01T00:00:00Z")
}

func TestGenerateSecurityTxt_DefaultExpiry(t *testing.T) {
	out := GenerateSecurityTxt(SecurityTxtConfig{
		Contact: []string{"mailto:security@a-moody-place.com"},
	})
	assert.Contains(t, out, "Expires: ")
}
