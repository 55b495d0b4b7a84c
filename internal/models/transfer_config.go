package models

import "time"

// TransferConfig is the singleton pricing and booking-rule row.
type TransferConfig struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PricePerKm      float64   `gorm:"not null" json:"price_per_km"`
	MinimumFare     int64     `gorm:"not null" json:"minimum_fare"`
	Currency        string    `gorm:"size:3;not null" json:"currency"`
	RoadFactor      float64   `gorm:"not null" json:"road_factor"`
	AverageSpeedKmh float64   `gorm:"not null" json:"average_speed_kmh"`
	MinLeadHours    int       `json:"min_lead_hours"`
	MaxPassengers   int       `json:"max_passengers"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (TransferConfig) TableName() string { return "transfer_configs" }

// DefaultTransferConfig is used until an admin saves their own values.
func DefaultTransferConfig() TransferConfig {
	return TransferConfig{
		PricePerKm:      0.9,
		MinimumFare:     60,
		Currency:        "EUR",
		RoadFactor:      1.25,
		AverageSpeedKmh: 70,
		MinLeadHours:    12,
		MaxPassengers:   19,
	}
}
