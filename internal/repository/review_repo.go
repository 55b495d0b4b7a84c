package repository

import (
	"context"

	"kgtransfer/internal/domain"
	"kgtransfer/internal/models"

	"gorm.io/gorm"
)

// RatingStats is the aggregate over approved reviews.
type RatingStats struct {
	Count     int64         `json:"count"`
	Average   float64       `json:"average"`
	Histogram map[int]int64 `json:"histogram"`
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var rv models.Review
	if err := getByID(ctx, r.db, &rv, id); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) List(ctx context.Context, lq ListQuery) ([]models.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Review{})
	if lq.Status != "" {
		q = q.Where("status = ?", lq.Status)
	}
	if lq.Search != "" {
		p := likePattern(lq.Search)
		q = q.Where("author_name LIKE ? OR text LIKE ?", p, p)
	}
	var list []models.Review
	total, err := findPage(q, lq, "created_at DESC, id DESC", &list)
	return list, total, err
}

func (r *ReviewRepository) ListApproved(ctx context.Context, lq ListQuery) ([]models.Review, int64, error) {
	lq.Status = domain.ReviewStatusApproved
	lq.Search = ""
	return r.List(ctx, lq)
}

func (r *ReviewRepository) Update(ctx context.Context, rv *models.Review) error {
	return save(ctx, r.db, rv)
}

func (r *ReviewRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return updateColumn(ctx, r.db, &models.Review{}, id, "status", status)
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Review{}, id)
}

// Stats aggregates count, average and per-star histogram over approved reviews.
func (r *ReviewRepository) Stats(ctx context.Context) (*RatingStats, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("status = ?", domain.ReviewStatusApproved).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	stats := &RatingStats{Histogram: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	var sum int64
	for _, row := range rows {
		stats.Histogram[row.Rating] += row.Count
		stats.Count += row.Count
		sum += int64(row.Rating) * row.Count
	}
	if stats.Count > 0 {
		stats.Average = float64(sum) / float64(stats.Count)
	}
	return stats, nil
}
