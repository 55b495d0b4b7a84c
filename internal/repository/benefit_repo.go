package repository

import (
	"context"

	"kgtransfer/internal/models"

	"gorm.io/gorm"
)

type BenefitRepository struct {
	db *gorm.DB
}

func NewBenefitRepository(db *gorm.DB) *BenefitRepository {
	return &BenefitRepository{db: db}
}

func (r *BenefitRepository) Create(ctx context.Context, b *models.Benefit) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BenefitRepository) GetByID(ctx context.Context, id uint) (*models.Benefit, error) {
	var b models.Benefit
	if err := getByID(ctx, r.db, &b, id); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BenefitRepository) List(ctx context.Context, lq ListQuery) ([]models.Benefit, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Benefit{})
	if lq.Search != "" {
		q = q.Where("title LIKE ?", likePattern(lq.Search))
	}
	var list []models.Benefit
	total, err := findPage(q, lq, "sort_order ASC, id ASC", &list)
	return list, total, err
}

func (r *BenefitRepository) ListActive(ctx context.Context) ([]models.Benefit, error) {
	var list []models.Benefit
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *BenefitRepository) Update(ctx context.Context, b *models.Benefit) error {
	return save(ctx, r.db, b)
}

func (r *BenefitRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return updateColumn(ctx, r.db, &models.Benefit{}, id, "is_active", active)
}

func (r *BenefitRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Benefit{}, id)
}
