package service

import (
	"context"
	"fmt"
	"strings"

	"kgtransfer/internal/repository"
	"kgtransfer/pkg/sitemap"
)

type staticPage struct {
	path       string
	changeFreq string
	priority   float64
}

var staticPages = []staticPage{
	{"/", sitemap.Daily, 1.0},
	{"/routes", sitemap.Weekly, 0.9},
	{"/vehicles", sitemap.Monthly, 0.7},
	{"/blog", sitemap.Daily, 0.8},
	{"/reviews", sitemap.Weekly, 0.6},
	{"/gallery", sitemap.Monthly, 0.5},
	{"/contacts", sitemap.Monthly, 0.6},
}

type SitemapService struct {
	baseURL   string
	blog      *repository.BlogRepository
	routes    *repository.RouteRepository
	galleries *repository.GalleryRepository
}

func NewSitemapService(baseURL string, blog *repository.BlogRepository, routes *repository.RouteRepository, galleries *repository.GalleryRepository) *SitemapService {
	return &SitemapService{baseURL: strings.TrimRight(baseURL, "/"), blog: blog, routes: routes, galleries: galleries}
}

// URLs lists static pages followed by published posts, active routes and active galleries.
func (s *SitemapService) URLs(ctx context.Context) ([]sitemap.URL, error) {
	urls := make([]sitemap.URL, 0, len(staticPages))
	for _, p := range staticPages {
		urls = append(urls, sitemap.URL{Loc: s.baseURL + p.path, ChangeFreq: p.changeFreq, Priority: p.priority})
	}

	posts, err := s.blog.AllPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	for i := range posts {
		p := &posts[i]
		u := sitemap.URL{
			Loc:        s.baseURL + "/blog/" + p.Slug,
			LastMod:    &p.UpdatedAt,
			ChangeFreq: sitemap.Monthly,
			Priority:   0.7,
		}
		if p.CoverImageURL != "" {
			u.Images = append(u.Images, sitemap.Image{Loc: p.CoverImageURL, Title: p.Title})
		}
		if p.VideoURL != "" {
			u.Videos = append(u.Videos, sitemap.Video{
				ThumbnailLoc: p.CoverImageURL,
				Title:        p.Title,
				Description:  firstNonEmpty(p.MetaDescription, p.Excerpt, p.Title),
				ContentLoc:   p.VideoURL,
			})
		}
		urls = append(urls, u)
	}

	routes, err := s.routes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	for i := range routes {
		rt := &routes[i]
		u := sitemap.URL{
			Loc:        s.baseURL + "/routes/" + rt.Slug,
			LastMod:    &rt.UpdatedAt,
			ChangeFreq: sitemap.Weekly,
			Priority:   0.8,
		}
		if rt.ImageURL != "" {
			u.Images = append(u.Images, sitemap.Image{Loc: rt.ImageURL, Title: rt.Title()})
		}
		urls = append(urls, u)
	}

	galleries, err := s.galleries.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load galleries: %w", err)
	}
	for i := range galleries {
		g := &galleries[i]
		u := sitemap.URL{
			Loc:        fmt.Sprintf("%s/gallery/%d", s.baseURL, g.ID),
			LastMod:    &g.UpdatedAt,
			ChangeFreq: sitemap.Monthly,
			Priority:   0.4,
		}
		for _, ph := range g.Photos {
			u.Images = append(u.Images, sitemap.Image{Loc: ph.URL, Title: firstNonEmpty(ph.Alt, g.Title), Caption: ph.Caption})
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// Robots is the robots.txt body pointing crawlers at the sitemap.
func (s *SitemapService) Robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Disallow: /admin\n")
	b.WriteString("Allow: /\n\n")
	b.WriteString("Sitemap: " + s.baseURL + "/sitemap.xml\n")
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
