package database

import (
	"context"

	"kgtransfer/internal/domain"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"

	"gorm.io/gorm"
)

// DefaultSettings are inserted on startup for keys that don't exist yet.
var DefaultSettings = map[string]string{
	domain.SettingCompanyName:       "Калининград Трансфер",
	domain.SettingPhone:             "+7 (4012) 00-00-00",
	domain.SettingEmail:             "info@kaliningrad-transfer.ru",
	domain.SettingAddress:           "Калининград, Россия",
	domain.SettingWhatsApp:          "",
	domain.SettingTelegram:          "",
	domain.SettingWorkingHours:      "24/7",
	domain.SettingMapsAPIKey:        "",
	domain.SettingLogoURL:           "",
	domain.SettingNotificationEmail: "",
}

// PrivateSettings never leave the back-office.
var PrivateSettings = map[string]bool{
	domain.SettingNotificationEmail: true,
}

// Seed fills default settings and the singleton rows.
func Seed(ctx context.Context, db *gorm.DB) error {
	if err := repository.NewSettingRepository(db).SeedDefaults(ctx, DefaultSettings, PrivateSettings); err != nil {
		return err
	}
	if _, err := repository.NewHomeSettingsRepository(db).Get(ctx); err != nil {
		return err
	}
	if _, err := repository.NewTransferConfigRepository(db).Get(ctx); err != nil {
		return err
	}
	return nil
}

// SeedBenefits inserts starter home page benefits when the table is empty.
func SeedBenefits(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Benefit{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	starter := []models.Benefit{
		{Title: "Фиксированная цена", Description: "Стоимость известна заранее и не меняется в пути", Icon: "price", SortOrder: 1, IsActive: true},
		{Title: "Помощь на границе", Description: "Водитель поможет с документами на пункте пропуска", Icon: "border", SortOrder: 2, IsActive: true},
		{Title: "Комфортные автомобили", Description: "Седаны и минивэны с кондиционером", Icon: "car", SortOrder: 3, IsActive: true},
		{Title: "Работаем круглосуточно", Description: "Подача в любое время дня и ночи", Icon: "clock", SortOrder: 4, IsActive: true},
	}
	return db.WithContext(ctx).Create(&starter).Error
}
