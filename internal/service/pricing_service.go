package service

import (
	"context"
	"errors"
	"math"

	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"
	"kgtransfer/pkg/location"
)

// Estimate is the computed road distance, drive time and fare of a trip.
type Estimate struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           int64   `json:"price"`
	Currency        string  `json:"currency"`
	VehicleID       *uint   `json:"vehicle_id,omitempty"`
}

type EstimateInput struct {
	From      location.Point
	To        location.Point
	VehicleID *uint
}

type PricingService struct {
	settings *SettingsService
	vehicles *repository.VehicleRepository
}

func NewPricingService(settings *SettingsService, vehicles *repository.VehicleRepository) *PricingService {
	return &PricingService{settings: settings, vehicles: vehicles}
}

func (s *PricingService) Estimate(ctx context.Context, in EstimateInput) (*Estimate, error) {
	if !in.From.Valid() || !in.To.Valid() {
		return nil, invalidf("coordinates out of range")
	}
	cfg, err := s.settings.TransferConfig(ctx)
	if err != nil {
		return nil, err
	}
	multiplier := 1.0
	if in.VehicleID != nil {
		v, err := s.vehicles.GetActiveByID(ctx, *in.VehicleID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, invalidf("vehicle not found")
			}
			return nil, err
		}
		multiplier = v.PriceMultiplier
	}
	est := Calculate(cfg, in.From, in.To, multiplier)
	est.VehicleID = in.VehicleID
	return &est, nil
}

// Calculate applies the tariff in cfg to the straight-line distance between from and to.
func Calculate(cfg *models.TransferConfig, from, to location.Point, multiplier float64) Estimate {
	if multiplier <= 0 {
		multiplier = 1
	}
	roadFactor := cfg.RoadFactor
	if roadFactor < 1 {
		roadFactor = 1
	}
	distance := location.Distance(from, to) * roadFactor
	est := Estimate{
		DistanceKm: math.Round(distance*10) / 10,
		Currency:   cfg.Currency,
	}
	if cfg.AverageSpeedKmh > 0 {
		est.DurationMinutes = int(math.Ceil(distance / cfg.AverageSpeedKmh * 60))
	}
	price := math.Round(distance * cfg.PricePerKm * multiplier)
	est.Price = int64(math.Max(float64(cfg.MinimumFare), price))
	return est
}
