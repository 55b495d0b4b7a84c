package models

import (
	"time"

	"gorm.io/gorm"
)

// SiteSetting stores admin-configurable key/value settings.
// Public rows are exposed to the site; the rest stay in the back-office.
type SiteSetting struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Key       string         `gorm:"column:setting_key;uniqueIndex;size:100;not null" json:"key"`
	Value     string         `gorm:"type:text" json:"value"`
	IsPublic  bool           `json:"is_public"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SiteSetting) TableName() string { return "site_settings" }

// HomeSettings is the singleton holding home page copy.
type HomeSettings struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	HeroTitle    string    `gorm:"size:255" json:"hero_title"`
	HeroSubtitle string    `gorm:"size:512" json:"hero_subtitle"`
	HeroImageURL string    `gorm:"size:512" json:"hero_image_url"`
	HeroVideoURL string    `gorm:"size:512" json:"hero_video_url"`
	CTAText      string    `gorm:"size:120" json:"cta_text"`
	AboutTitle   string    `gorm:"size:255" json:"about_title"`
	AboutText    string    `gorm:"type:text" json:"about_text"`
	ShowBenefits bool      `json:"show_benefits"`
	ShowReviews  bool      `json:"show_reviews"`
	ShowGallery  bool      `json:"show_gallery"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (HomeSettings) TableName() string { return "home_settings" }

func DefaultHomeSettings() HomeSettings {
	return HomeSettings{
		HeroTitle:    "Трансферы из Калининграда в Европу",
		HeroSubtitle: "Комфортные поездки в Польшу, Литву, Германию и другие страны",
		CTAText:      "Заказать трансфер",
		ShowBenefits: true,
		ShowReviews:  true,
		ShowGallery:  true,
	}
}
