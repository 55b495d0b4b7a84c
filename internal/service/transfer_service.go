package service

import (
	"context"
	"errors"
	"time"

	"kgtransfer/internal/domain"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"
	"kgtransfer/pkg/location"
)

// TransferService applies booking rules to incoming transfer requests.
type TransferService struct {
	transfers *repository.TransferRequestRepository
	vehicles  *repository.VehicleRepository
	routes    *repository.RouteRepository
	settings  *SettingsService
	now       func() time.Time
}

func NewTransferService(
	transfers *repository.TransferRequestRepository,
	vehicles *repository.VehicleRepository,
	routes *repository.RouteRepository,
	settings *SettingsService,
) *TransferService {
	return &TransferService{transfers: transfers, vehicles: vehicles, routes: routes, settings: settings, now: time.Now}
}

// Create validates the booking against the transfer config, prices it when
// coordinates are known and stores it with status new.
func (s *TransferService) Create(ctx context.Context, req *models.TransferRequest) error {
	cfg, err := s.settings.TransferConfig(ctx)
	if err != nil {
		return err
	}
	if req.Passengers < 1 {
		req.Passengers = 1
	}
	if cfg.MaxPassengers > 0 && req.Passengers > cfg.MaxPassengers {
		return invalidf("passengers must not exceed %d", cfg.MaxPassengers)
	}
	earliest := s.now().Add(time.Duration(cfg.MinLeadHours) * time.Hour)
	if req.PickupAt.Before(earliest) {
		return invalidf("pickup_at must be at least %d hours from now", cfg.MinLeadHours)
	}

	multiplier := 1.0
	if req.VehicleID != nil {
		v, err := s.vehicles.GetActiveByID(ctx, *req.VehicleID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return invalidf("vehicle not found")
			}
			return err
		}
		if v.Seats < req.Passengers {
			return invalidf("vehicle %s seats only %d passengers", v.Name, v.Seats)
		}
		multiplier = v.PriceMultiplier
	}

	var route *models.Route
	if req.RouteID != nil {
		route, err = s.routes.GetByID(ctx, *req.RouteID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && !route.IsActive) {
			return invalidf("route not found")
		}
		if err != nil {
			return err
		}
	}

	if !req.HasCoordinates() && route != nil && route.HasCoordinates() {
		req.FromLat, req.FromLng = route.FromLat, route.FromLng
		req.ToLat, req.ToLng = route.ToLat, route.ToLng
	}
	if req.HasCoordinates() {
		from := location.Point{Lat: *req.FromLat, Lng: *req.FromLng}
		to := location.Point{Lat: *req.ToLat, Lng: *req.ToLng}
		if !from.Valid() || !to.Valid() {
			return invalidf("coordinates out of range")
		}
		est := Calculate(cfg, from, to, multiplier)
		req.DistanceKm = est.DistanceKm
		req.DurationMinutes = est.DurationMinutes
		req.EstimatedPrice = est.Price
		req.Currency = est.Currency
	} else if route != nil {
		req.DistanceKm = route.DistanceKm
		req.DurationMinutes = route.DurationMinutes
		req.EstimatedPrice = route.PriceFrom
		req.Currency = route.Currency
	}

	req.ID = 0
	req.Status = domain.RequestStatusNew
	return s.transfers.Create(ctx, req)
}
