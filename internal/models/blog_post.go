package models

import (
	"time"

	"gorm.io/gorm"
)

type BlogPost struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Title           string         `gorm:"size:255;not null" json:"title"`
	Slug            string         `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt         string         `gorm:"size:512" json:"excerpt"`
	Content         string         `gorm:"type:text;not null" json:"content"`
	CoverImageURL   string         `gorm:"size:512" json:"cover_image_url"`
	VideoURL        string         `gorm:"size:512" json:"video_url"`
	MetaTitle       string         `gorm:"size:255" json:"meta_title"`
	MetaDescription string         `gorm:"size:512" json:"meta_description"`
	Published       bool           `gorm:"default:false;index" json:"published"`
	PublishedAt     *time.Time     `json:"published_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BlogPost) TableName() string { return "blog_posts" }

// SetPublished toggles publication, stamping PublishedAt the first time.
func (p *BlogPost) SetPublished(published bool, now time.Time) {
	p.Published = published
	if published && p.PublishedAt == nil {
		p.PublishedAt = &now
	}
}
