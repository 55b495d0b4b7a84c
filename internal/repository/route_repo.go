package repository

import (
	"context"

	"kgtransfer/internal/models"

	"gorm.io/gorm"
)

type RouteRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// Create stores the route under a unique slug built from its city pair.
func (r *RouteRepository) Create(ctx context.Context, rt *models.Route) error {
	s, err := uniqueSlug(ctx, r.db, &models.Route{}, firstNonEmpty(rt.Slug, rt.FromCity+" "+rt.ToCity), 0)
	if err != nil {
		return err
	}
	rt.Slug = s
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *RouteRepository) GetByID(ctx context.Context, id uint) (*models.Route, error) {
	var rt models.Route
	if err := getByID(ctx, r.db, &rt, id); err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RouteRepository) GetActiveBySlug(ctx context.Context, s string) (*models.Route, error) {
	var rt models.Route
	err := r.db.WithContext(ctx).Where("slug = ? AND is_active = ?", s, true).First(&rt).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rt, nil
}

func (r *RouteRepository) List(ctx context.Context, lq ListQuery) ([]models.Route, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Route{})
	if lq.Search != "" {
		p := likePattern(lq.Search)
		q = q.Where("from_city LIKE ? OR to_city LIKE ?", p, p)
	}
	var list []models.Route
	total, err := findPage(q, lq, "sort_order ASC, id ASC", &list)
	return list, total, err
}

func (r *RouteRepository) ListActive(ctx context.Context) ([]models.Route, error) {
	var list []models.Route
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *RouteRepository) Update(ctx context.Context, rt *models.Route) error {
	s, err := uniqueSlug(ctx, r.db, &models.Route{}, firstNonEmpty(rt.Slug, rt.FromCity+" "+rt.ToCity), rt.ID)
	if err != nil {
		return err
	}
	rt.Slug = s
	return save(ctx, r.db, rt)
}

func (r *RouteRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return updateColumn(ctx, r.db, &models.Route{}, id, "is_active", active)
}

func (r *RouteRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Route{}, id)
}
