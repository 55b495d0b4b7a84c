package models

import (
	"time"

	"gorm.io/gorm"
)

type Vehicle struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Class           string         `gorm:"size:20;not null;index" json:"class"` // economy, comfort, business, minivan, minibus
	Seats           int            `gorm:"not null" json:"seats"`
	Luggage         int            `json:"luggage"`
	ImageURL        string         `gorm:"size:512" json:"image_url"`
	Description     string         `gorm:"type:text" json:"description"`
	PriceMultiplier float64        `gorm:"default:1" json:"price_multiplier"`
	SortOrder       int            `gorm:"default:0" json:"sort_order"`
	IsActive        bool           `json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Vehicle) TableName() string { return "vehicles" }
