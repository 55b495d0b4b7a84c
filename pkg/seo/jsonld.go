// Package seo builds schema.org JSON-LD documents for the public site.
package seo

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const Context = "https://schema.org"

type PostalAddress struct {
	Type           string `json:"@type"`
	StreetAddress  string `json:"streetAddress,omitempty"`
	AddressCountry string `json:"addressCountry,omitempty"`
}

type AggregateRating struct {
	Type        string  `json:"@type"`
	RatingValue float64 `json:"ratingValue"`
	ReviewCount int64   `json:"reviewCount"`
	BestRating  int     `json:"bestRating"`
	WorstRating int     `json:"worstRating"`
}

type ImageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

// Organization describes the business as a LocalBusiness offering taxi service.
type Organization struct {
	Context         string           `json:"@context"`
	Type            []string         `json:"@type"`
	ID              string           `json:"@id"`
	Name            string           `json:"name"`
	URL             string           `json:"url"`
	Logo            string           `json:"logo,omitempty"`
	Telephone       string           `json:"telephone,omitempty"`
	Email           string           `json:"email,omitempty"`
	Address         *PostalAddress   `json:"address,omitempty"`
	OpeningHours    string           `json:"openingHours,omitempty"`
	AreaServed      []string         `json:"areaServed,omitempty"`
	SameAs          []string         `json:"sameAs,omitempty"`
	AggregateRating *AggregateRating `json:"aggregateRating,omitempty"`
}

// OrganizationInput is the site contact information used for Organization.
type OrganizationInput struct {
	BaseURL      string
	Name         string
	Logo         string
	Phone        string
	Email        string
	Address      string
	WorkingHours string
	WhatsApp     string
	Telegram     string
	AreaServed   []string
	ReviewCount  int64
	RatingValue  float64
}

func NewOrganization(in OrganizationInput) Organization {
	base := strings.TrimRight(in.BaseURL, "/")
	org := Organization{
		Context:      Context,
		Type:         []string{"LocalBusiness", "TaxiService"},
		ID:           base + "/#organization",
		Name:         in.Name,
		URL:          base + "/",
		Logo:         in.Logo,
		Telephone:    in.Phone,
		Email:        in.Email,
		OpeningHours: openingHours(in.WorkingHours),
		AreaServed:   in.AreaServed,
	}
	if in.Address != "" {
		org.Address = &PostalAddress{Type: "PostalAddress", StreetAddress: in.Address, AddressCountry: "RU"}
	}
	if in.WhatsApp != "" {
		org.SameAs = append(org.SameAs, "https://wa.me/"+digits(in.WhatsApp))
	}
	if in.Telegram != "" {
		org.SameAs = append(org.SameAs, "https://t.me/"+strings.TrimPrefix(in.Telegram, "@"))
	}
	if in.ReviewCount > 0 {
		org.AggregateRating = &AggregateRating{
			Type:        "AggregateRating",
			RatingValue: RoundRating(in.RatingValue),
			ReviewCount: in.ReviewCount,
			BestRating:  5,
			WorstRating: 1,
		}
	}
	return org
}

// RoundRating rounds an average rating to one decimal place.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

// openingHours maps "24/7" to the schema.org form; anything else is passed through.
func openingHours(s string) string {
	if strings.TrimSpace(s) == "24/7" {
		return "Mo-Su 00:00-23:59"
	}
	return s
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type Reference struct {
	Type string `json:"@type,omitempty"`
	ID   string `json:"@id"`
}

type BlogPosting struct {
	Context          string       `json:"@context"`
	Type             string       `json:"@type"`
	Headline         string       `json:"headline"`
	Description      string       `json:"description,omitempty"`
	URL              string       `json:"url"`
	MainEntityOfPage string       `json:"mainEntityOfPage"`
	Image            []string     `json:"image,omitempty"`
	DatePublished    string       `json:"datePublished,omitempty"`
	DateModified     string       `json:"dateModified,omitempty"`
	Author           Reference    `json:"author"`
	Publisher        Reference    `json:"publisher"`
	Video            *VideoObject `json:"video,omitempty"`
}

type VideoObject struct {
	Type         string `json:"@type"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ContentURL   string `json:"contentUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	UploadDate   string `json:"uploadDate,omitempty"`
}

type BlogPostingInput struct {
	BaseURL     string
	Path        string
	Title       string
	Description string
	ImageURL    string
	VideoURL    string
	PublishedAt *time.Time
	UpdatedAt   time.Time
}

func NewBlogPosting(in BlogPostingInput) BlogPosting {
	base := strings.TrimRight(in.BaseURL, "/")
	org := Reference{Type: "Organization", ID: base + "/#organization"}
	p := BlogPosting{
		Context:          Context,
		Type:             "BlogPosting",
		Headline:         in.Title,
		Description:      in.Description,
		URL:              base + in.Path,
		MainEntityOfPage: base + in.Path,
		DateModified:     formatDate(in.UpdatedAt),
		Author:           org,
		Publisher:        org,
	}
	if in.ImageURL != "" {
		p.Image = []string{in.ImageURL}
	}
	if in.PublishedAt != nil {
		p.DatePublished = formatDate(*in.PublishedAt)
	}
	if in.VideoURL != "" {
		p.Video = &VideoObject{
			Type:         "VideoObject",
			Name:         in.Title,
			Description:  in.Description,
			ContentURL:   in.VideoURL,
			ThumbnailURL: in.ImageURL,
			UploadDate:   p.DatePublished,
		}
	}
	return p
}

type Place struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type Offer struct {
	Type          string `json:"@type"`
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
	URL           string `json:"url,omitempty"`
	Availability  string `json:"availability,omitempty"`
}

// RouteService is a transfer route offered at a starting price.
type RouteService struct {
	Context     string    `json:"@context"`
	Type        string    `json:"@type"`
	ServiceType string    `json:"serviceType"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	Image       string    `json:"image,omitempty"`
	Provider    Reference `json:"provider"`
	AreaServed  []Place   `json:"areaServed"`
	Offers      *Offer    `json:"offers,omitempty"`
}

type RouteInput struct {
	BaseURL     string
	Path        string
	FromCity    string
	ToCity      string
	Description string
	ImageURL    string
	PriceFrom   int64
	Currency    string
}

func NewRouteService(in RouteInput) RouteService {
	base := strings.TrimRight(in.BaseURL, "/")
	s := RouteService{
		Context:     Context,
		Type:        "Service",
		ServiceType: "Transfer",
		Name:        in.FromCity + " - " + in.ToCity,
		Description: in.Description,
		URL:         base + in.Path,
		Image:       in.ImageURL,
		Provider:    Reference{Type: "Organization", ID: base + "/#organization"},
		AreaServed: []Place{
			{Type: "City", Name: in.FromCity},
			{Type: "City", Name: in.ToCity},
		},
	}
	if in.PriceFrom > 0 {
		s.Offers = &Offer{
			Type:          "Offer",
			Price:         strconv.FormatInt(in.PriceFrom, 10),
			PriceCurrency: in.Currency,
			URL:           base + in.Path,
			Availability:  "https://schema.org/InStock",
		}
	}
	return s
}

type Crumb struct {
	Name string
	Path string
}

type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// NewBreadcrumbs numbers crumbs from 1 in the given order.
func NewBreadcrumbs(baseURL string, crumbs ...Crumb) BreadcrumbList {
	base := strings.TrimRight(baseURL, "/")
	list := BreadcrumbList{Context: Context, Type: "BreadcrumbList", ItemListElement: make([]ListItem, 0, len(crumbs))}
	for i, c := range crumbs {
		list.ItemListElement = append(list.ItemListElement, ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     c.Name,
			Item:     base + c.Path,
		})
	}
	return list
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
