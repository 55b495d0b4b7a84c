package models

import (
	"time"

	"gorm.io/gorm"
)

type PhotoGallery struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	CoverURL    string         `gorm:"size:512" json:"cover_url"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Photos []Photo `gorm:"foreignKey:GalleryID" json:"photos,omitempty"`
}

func (PhotoGallery) TableName() string { return "photo_galleries" }

type Photo struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	GalleryID    uint           `gorm:"not null;index" json:"gallery_id"`
	URL          string         `gorm:"size:512;not null" json:"url"`
	ThumbnailURL string         `gorm:"size:512" json:"thumbnail_url"`
	Caption      string         `gorm:"size:255" json:"caption"`
	Alt          string         `gorm:"size:255" json:"alt"`
	SortOrder    int            `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Photo) TableName() string { return "photos" }
