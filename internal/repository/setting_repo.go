package repository

import (
	"context"
	"errors"

	"kgtransfer/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	var s models.SiteSetting
	if err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&s).Error; err != nil {
		return "", translate(err)
	}
	return s.Value, nil
}

// Set upserts the value; the visibility of an existing key is kept.
func (r *SettingRepository) Set(ctx context.Context, key, value string, public bool) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&models.SiteSetting{Key: key, Value: value, IsPublic: public}).Error
}

// SetMany upserts all values in one transaction.
func (r *SettingRepository) SetMany(ctx context.Context, values map[string]string, private map[string]bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &SettingRepository{db: tx}
		for k, v := range values {
			if err := txRepo.Set(ctx, k, v, !private[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SettingRepository) GetAll(ctx context.Context) ([]models.SiteSetting, error) {
	var list []models.SiteSetting
	err := r.db.WithContext(ctx).Order("setting_key ASC").Find(&list).Error
	return list, err
}

// GetPublic returns public settings as a key/value map.
func (r *SettingRepository) GetPublic(ctx context.Context) (map[string]string, error) {
	var list []models.SiteSetting
	if err := r.db.WithContext(ctx).Where("is_public = ?", true).Find(&list).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(list))
	for _, s := range list {
		out[s.Key] = s.Value
	}
	return out, nil
}

// SeedDefaults inserts default settings if they don't already exist.
func (r *SettingRepository) SeedDefaults(ctx context.Context, defaults map[string]string, private map[string]bool) error {
	for k, v := range defaults {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.SiteSetting{}).Where("setting_key = ?", k).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := r.db.WithContext(ctx).Create(&models.SiteSetting{Key: k, Value: v, IsPublic: !private[k]}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// HomeSettingsRepository and TransferConfigRepository manage single-row tables.
type HomeSettingsRepository struct {
	db *gorm.DB
}

func NewHomeSettingsRepository(db *gorm.DB) *HomeSettingsRepository {
	return &HomeSettingsRepository{db: db}
}

// Get returns the home settings row, creating it with defaults on first access.
func (r *HomeSettingsRepository) Get(ctx context.Context) (*models.HomeSettings, error) {
	var hs models.HomeSettings
	err := r.db.WithContext(ctx).Order("id ASC").First(&hs).Error
	if err == nil {
		return &hs, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hs = models.DefaultHomeSettings()
	if err := r.db.WithContext(ctx).Create(&hs).Error; err != nil {
		return nil, err
	}
	return &hs, nil
}

func (r *HomeSettingsRepository) Save(ctx context.Context, hs *models.HomeSettings) error {
	current, err := r.Get(ctx)
	if err != nil {
		return err
	}
	hs.ID = current.ID
	return r.db.WithContext(ctx).Save(hs).Error
}

type TransferConfigRepository struct {
	db *gorm.DB
}

func NewTransferConfigRepository(db *gorm.DB) *TransferConfigRepository {
	return &TransferConfigRepository{db: db}
}

func (r *TransferConfigRepository) Get(ctx context.Context) (*models.TransferConfig, error) {
	var tc models.TransferConfig
	err := r.db.WithContext(ctx).Order("id ASC").First(&tc).Error
	if err == nil {
		return &tc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	tc = models.DefaultTransferConfig()
	if err := r.db.WithContext(ctx).Create(&tc).Error; err != nil {
		return nil, err
	}
	return &tc, nil
}

func (r *TransferConfigRepository) Save(ctx context.Context, tc *models.TransferConfig) error {
	current, err := r.Get(ctx)
	if err != nil {
		return err
	}
	tc.ID = current.ID
	return r.db.WithContext(ctx).Save(tc).Error
}
