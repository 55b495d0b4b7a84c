package service

import (
	"context"
	"strings"

	"kgtransfer/internal/domain"
	"kgtransfer/internal/repository"
	"kgtransfer/pkg/seo"
)

// AreaServed lists the destinations named in the organization document.
var AreaServed = []string{"Калининград", "Польша", "Литва", "Латвия", "Германия"}

type SEOService struct {
	baseURL  string
	settings *SettingsService
	reviews  *ReviewService
	blog     *repository.BlogRepository
	routes   *repository.RouteRepository
}

func NewSEOService(baseURL string, settings *SettingsService, reviews *ReviewService, blog *repository.BlogRepository, routes *repository.RouteRepository) *SEOService {
	return &SEOService{baseURL: strings.TrimRight(baseURL, "/"), settings: settings, reviews: reviews, blog: blog, routes: routes}
}

func (s *SEOService) Organization(ctx context.Context) (*seo.Organization, error) {
	values, err := s.settings.Public(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := s.reviews.Summary(ctx)
	if err != nil {
		return nil, err
	}
	org := seo.NewOrganization(seo.OrganizationInput{
		BaseURL:      s.baseURL,
		Name:         values[domain.SettingCompanyName],
		Logo:         values[domain.SettingLogoURL],
		Phone:        values[domain.SettingPhone],
		Email:        values[domain.SettingEmail],
		Address:      values[domain.SettingAddress],
		WorkingHours: values[domain.SettingWorkingHours],
		WhatsApp:     values[domain.SettingWhatsApp],
		Telegram:     values[domain.SettingTelegram],
		AreaServed:   AreaServed,
		ReviewCount:  summary.Count,
		RatingValue:  summary.Average,
	})
	return &org, nil
}

// BlogPost returns the BlogPosting and breadcrumb documents for a published post.
func (s *SEOService) BlogPost(ctx context.Context, slug string) ([]interface{}, error) {
	p, err := s.blog.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	path := "/blog/" + p.Slug
	posting := seo.NewBlogPosting(seo.BlogPostingInput{
		BaseURL:     s.baseURL,
		Path:        path,
		Title:       firstNonEmpty(p.MetaTitle, p.Title),
		Description: firstNonEmpty(p.MetaDescription, p.Excerpt),
		ImageURL:    p.CoverImageURL,
		VideoURL:    p.VideoURL,
		PublishedAt: p.PublishedAt,
		UpdatedAt:   p.UpdatedAt,
	})
	crumbs := seo.NewBreadcrumbs(s.baseURL,
		seo.Crumb{Name: "Главная", Path: "/"},
		seo.Crumb{Name: "Блог", Path: "/blog"},
		seo.Crumb{Name: p.Title, Path: path},
	)
	return []interface{}{posting, crumbs}, nil
}

// Route returns the Service offer and breadcrumb documents for an active route.
func (s *SEOService) Route(ctx context.Context, slug string) ([]interface{}, error) {
	rt, err := s.routes.GetActiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	path := "/routes/" + rt.Slug
	svc := seo.NewRouteService(seo.RouteInput{
		BaseURL:     s.baseURL,
		Path:        path,
		FromCity:    rt.FromCity,
		ToCity:      rt.ToCity,
		Description: rt.Description,
		ImageURL:    rt.ImageURL,
		PriceFrom:   rt.PriceFrom,
		Currency:    rt.Currency,
	})
	crumbs := seo.NewBreadcrumbs(s.baseURL,
		seo.Crumb{Name: "Главная", Path: "/"},
		seo.Crumb{Name: "Маршруты", Path: "/routes"},
		seo.Crumb{Name: rt.Title(), Path: path},
	)
	return []interface{}{svc, crumbs}, nil
}
