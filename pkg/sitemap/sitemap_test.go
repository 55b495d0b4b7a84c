package sitemap

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	mod := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := Write(&buf, []URL{
		{Loc: "https://transfer.example/", ChangeFreq: Daily, Priority: 1},
		{
			Loc:      "https://transfer.example/blog/gdansk",
			LastMod:  &mod,
			Priority: 0.64,
			Images:   []Image{{Loc: "https://cdn.example/cover.jpg", Title: "Gdansk"}},
			Videos: []Video{{
				ThumbnailLoc: "https://cdn.example/cover.jpg",
				Title:        "Gdansk",
				Description:  "Road to Gdansk",
				ContentLoc:   "https://cdn.example/trip.mp4",
			}},
		},
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, out, `xmlns:image="http://www.google.com/schemas/sitemap-image/1.1"`)
	assert.Contains(t, out, `<loc>https://transfer.example/</loc>`)
	assert.Contains(t, out, `<priority>1.0</priority>`)
	assert.Contains(t, out, `<changefreq>daily</changefreq>`)
	assert.Contains(t, out, `<lastmod>2026-03-14</lastmod>`)
	assert.Contains(t, out, `<priority>0.6</priority>`)
	assert.Contains(t, out, `<image:loc>https://cdn.example/cover.jpg</image:loc>`)
	assert.Contains(t, out, `<video:content_loc>https://cdn.example/trip.mp4</video:content_loc>`)
	assert.NotContains(t, out, `<video:player_loc>`)
}

func TestFormatPriority(t *testing.T) {
	assert.Equal(t, "0.5", formatPriority(0.5))
	assert.Equal(t, "1.0", formatPriority(3))
	assert.Equal(t, "0.8", formatPriority(0.75))
}
