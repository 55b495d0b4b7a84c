package service

import (
	"context"

	"kgtransfer/internal/domain"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"
	"kgtransfer/pkg/seo"
)

// ReviewSummary is the public aggregate over approved reviews.
type ReviewSummary struct {
	Count     int64         `json:"count"`
	Average   float64       `json:"average"`
	Histogram map[int]int64 `json:"histogram"`
}

type ReviewService struct {
	reviews *repository.ReviewRepository
}

func NewReviewService(reviews *repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

// Summary returns count, average rounded to one decimal, and per-star counts.
func (s *ReviewService) Summary(ctx context.Context) (*ReviewSummary, error) {
	stats, err := s.reviews.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &ReviewSummary{
		Count:     stats.Count,
		Average:   seo.RoundRating(stats.Average),
		Histogram: stats.Histogram,
	}, nil
}

// Submit stores a visitor review for moderation.
func (s *ReviewService) Submit(ctx context.Context, rv *models.Review) error {
	rv.ID = 0
	rv.Status = domain.ReviewStatusPending
	return s.reviews.Create(ctx, rv)
}
