package repository

import (
	"context"

	"kgtransfer/internal/models"

	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VehicleRepository) GetByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := getByID(ctx, r.db, &v, id); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetActiveByID returns the vehicle only when it is offered on the site.
func (r *VehicleRepository) GetActiveByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&v, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

// List filters by vehicle class through ListQuery.Status.
func (r *VehicleRepository) List(ctx context.Context, lq ListQuery) ([]models.Vehicle, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Vehicle{})
	if lq.Status != "" {
		q = q.Where("class = ?", lq.Status)
	}
	if lq.Search != "" {
		q = q.Where("name LIKE ?", likePattern(lq.Search))
	}
	var list []models.Vehicle
	total, err := findPage(q, lq, "sort_order ASC, id ASC", &list)
	return list, total, err
}

func (r *VehicleRepository) ListActive(ctx context.Context) ([]models.Vehicle, error) {
	var list []models.Vehicle
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *VehicleRepository) Update(ctx context.Context, v *models.Vehicle) error {
	return save(ctx, r.db, v)
}

func (r *VehicleRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return updateColumn(ctx, r.db, &models.Vehicle{}, id, "is_active", active)
}

func (r *VehicleRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Vehicle{}, id)
}
