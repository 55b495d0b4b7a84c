package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	AuthorName string         `gorm:"size:120;not null" json:"author_name"`
	AuthorCity string         `gorm:"size:120" json:"author_city"`
	Rating     int            `gorm:"not null" json:"rating"`
	Text       string         `gorm:"type:text;not null" json:"text"`
	RouteLabel string         `gorm:"size:255" json:"route_label"`
	AvatarURL  string         `gorm:"size:512" json:"avatar_url"`
	Status     string         `gorm:"size:20;not null;default:'pending';index" json:"status"` // pending, approved, rejected
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Review) TableName() string { return "reviews" }
