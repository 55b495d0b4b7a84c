package models

import (
	"time"

	"gorm.io/gorm"
)

// Route is a marketed city pair, e.g. Kaliningrad - Gdansk.
type Route struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	FromCity        string         `gorm:"size:120;not null" json:"from_city"`
	ToCity          string         `gorm:"size:120;not null" json:"to_city"`
	Slug            string         `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	FromLat         *float64       `json:"from_lat"`
	FromLng         *float64       `json:"from_lng"`
	ToLat           *float64       `json:"to_lat"`
	ToLng           *float64       `json:"to_lng"`
	DistanceKm      float64        `json:"distance_km"`
	DurationMinutes int            `json:"duration_minutes"`
	PriceFrom       int64          `json:"price_from"`
	Currency        string         `gorm:"size:3;default:'EUR'" json:"currency"`
	Description     string         `gorm:"type:text" json:"description"`
	ImageURL        string         `gorm:"size:512" json:"image_url"`
	SortOrder       int            `gorm:"default:0" json:"sort_order"`
	IsActive        bool           `json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Route) TableName() string { return "routes" }

func (r *Route) Title() string { return r.FromCity + " - " + r.ToCity }

func (r *Route) HasCoordinates() bool {
	return r.FromLat != nil && r.FromLng != nil && r.ToLat != nil && r.ToLng != nil
}
