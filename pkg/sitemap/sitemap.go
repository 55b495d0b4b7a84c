// Package sitemap writes sitemaps.org XML with Google image and video extensions.
package sitemap

import (
	"encoding/xml"
	"io"
	"math"
	"strconv"
	"time"
)

const (
	xmlnsSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xmlnsImage   = "http://www.google.com/schemas/sitemap-image/1.1"
	xmlnsVideo   = "http://www.google.com/schemas/sitemap-video/1.1"
)

// Change frequencies.
const (
	Daily   = "daily"
	Weekly  = "weekly"
	Monthly = "monthly"
)

// URL is one page entry. Zero LastMod and Priority are omitted.
type URL struct {
	Loc        string
	LastMod    *time.Time
	ChangeFreq string
	Priority   float64
	Images     []Image
	Videos     []Video
}

type Image struct {
	Loc     string `xml:"image:loc"`
	Title   string `xml:"image:title,omitempty"`
	Caption string `xml:"image:caption,omitempty"`
}

type Video struct {
	ThumbnailLoc string `xml:"video:thumbnail_loc,omitempty"`
	Title        string `xml:"video:title"`
	Description  string `xml:"video:description"`
	ContentLoc   string `xml:"video:content_loc,omitempty"`
	PlayerLoc    string `xml:"video:player_loc,omitempty"`
}

type urlSet struct {
	XMLName    xml.Name `xml:"urlset"`
	Xmlns      string   `xml:"xmlns,attr"`
	XmlnsImage string   `xml:"xmlns:image,attr"`
	XmlnsVideo string   `xml:"xmlns:video,attr"`
	URLs       []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   string  `xml:"priority,omitempty"`
	Images     []Image `xml:"image:image"`
	Videos     []Video `xml:"video:video"`
}

// Write encodes urls as a complete sitemap document.
func Write(w io.Writer, urls []URL) error {
	set := urlSet{
		Xmlns:      xmlnsSitemap,
		XmlnsImage: xmlnsImage,
		XmlnsVideo: xmlnsVideo,
		URLs:       make([]xmlURL, 0, len(urls)),
	}
	for _, u := range urls {
		x := xmlURL{Loc: u.Loc, ChangeFreq: u.ChangeFreq, Images: u.Images, Videos: u.Videos}
		if u.LastMod != nil && !u.LastMod.IsZero() {
			x.LastMod = u.LastMod.UTC().Format("2006-01-02")
		}
		if u.Priority > 0 {
			x.Priority = formatPriority(u.Priority)
		}
		set.URLs = append(set.URLs, x)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return err
	}
	return enc.Flush()
}

func formatPriority(p float64) string {
	return strconv.FormatFloat(math.Round(math.Min(p, 1)*10)/10, 'f', 1, 64)
}
