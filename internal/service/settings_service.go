package service

import (
	"context"
	"sync"

	"kgtransfer/internal/domain"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"
)

// SettingsService is the shared site configuration. Reads are served from
// memory after the first load; every write goes through here and drops the cache.
type SettingsService struct {
	settings *repository.SettingRepository
	home     *repository.HomeSettingsRepository
	transfer *repository.TransferConfigRepository
	private  map[string]bool

	mu sync.RWMutex

	// gen is bumped by Invalidate; a load started under an older gen is not cached.
	gen           uint64
	publicCache   map[string]string
	homeCache     *models.HomeSettings
	transferCache *models.TransferConfig
}

func NewSettingsService(
	settings *repository.SettingRepository,
	home *repository.HomeSettingsRepository,
	transfer *repository.TransferConfigRepository,
	private map[string]bool,
) *SettingsService {
	return &SettingsService{settings: settings, home: home, transfer: transfer, private: private}
}

// Public returns a copy of the public key/value settings.
func (s *SettingsService) Public(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	cached, gen := s.publicCache, s.gen
	s.mu.RUnlock()
	if cached == nil {
		values, err := s.settings.GetPublic(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if s.gen == gen {
			s.publicCache = values
		}
		s.mu.Unlock()
		cached = values
	}
	out := make(map[string]string, len(cached))
	for k, v := range cached {
		out[k] = v
	}
	return out, nil
}

// All returns every setting row, private ones included. Not cached.
func (s *SettingsService) All(ctx context.Context) ([]models.SiteSetting, error) {
	return s.settings.GetAll(ctx)
}

func (s *SettingsService) Update(ctx context.Context, values map[string]string) error {
	if err := s.settings.SetMany(ctx, values, s.private); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// NotificationEmail is the private override for the notification recipient, or "".
func (s *SettingsService) NotificationEmail(ctx context.Context) string {
	v, err := s.settings.Get(ctx, domain.SettingNotificationEmail)
	if err != nil {
		return ""
	}
	return v
}

func (s *SettingsService) Home(ctx context.Context) (*models.HomeSettings, error) {
	s.mu.RLock()
	cached, gen := s.homeCache, s.gen
	s.mu.RUnlock()
	if cached == nil {
		hs, err := s.home.Get(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if s.gen == gen {
			s.homeCache = hs
		}
		s.mu.Unlock()
		cached = hs
	}
	cp := *cached
	return &cp, nil
}

func (s *SettingsService) UpdateHome(ctx context.Context, hs *models.HomeSettings) error {
	if err := s.home.Save(ctx, hs); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

func (s *SettingsService) TransferConfig(ctx context.Context) (*models.TransferConfig, error) {
	s.mu.RLock()
	cached, gen := s.transferCache, s.gen
	s.mu.RUnlock()
	if cached == nil {
		tc, err := s.transfer.Get(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if s.gen == gen {
			s.transferCache = tc
		}
		s.mu.Unlock()
		cached = tc
	}
	cp := *cached
	return &cp, nil
}

func (s *SettingsService) UpdateTransferConfig(ctx context.Context, tc *models.TransferConfig) error {
	if err := s.transfer.Save(ctx, tc); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// Invalidate drops every cached value; the next read reloads from the database.
func (s *SettingsService) Invalidate() {
	s.mu.Lock()
	s.gen++
	s.publicCache = nil
	s.homeCache = nil
	s.transferCache = nil
	s.mu.Unlock()
}
