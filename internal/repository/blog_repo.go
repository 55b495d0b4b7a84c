package repository

import (
	"context"

	"kgtransfer/internal/models"

	"gorm.io/gorm"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// Create stores the post under a unique slug derived from the given slug or the title.
func (r *BlogRepository) Create(ctx context.Context, p *models.BlogPost) error {
	s, err := uniqueSlug(ctx, r.db, &models.BlogPost{}, firstNonEmpty(p.Slug, p.Title), 0)
	if err != nil {
		return err
	}
	p.Slug = s
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *BlogRepository) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	var p models.BlogPost
	if err := getByID(ctx, r.db, &p, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPublishedBySlug returns a post only if it is published.
func (r *BlogRepository) GetPublishedBySlug(ctx context.Context, s string) (*models.BlogPost, error) {
	var p models.BlogPost
	err := r.db.WithContext(ctx).Where("slug = ? AND published = ?", s, true).First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// List returns all posts for the back-office, optionally filtered by
// status "published" / "draft" and a title search.
func (r *BlogRepository) List(ctx context.Context, lq ListQuery) ([]models.BlogPost, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.BlogPost{})
	switch lq.Status {
	case "published":
		q = q.Where("published = ?", true)
	case "draft":
		q = q.Where("published = ?", false)
	}
	if lq.Search != "" {
		q = q.Where("title LIKE ?", likePattern(lq.Search))
	}
	var list []models.BlogPost
	total, err := findPage(q, lq, "created_at DESC, id DESC", &list)
	return list, total, err
}

// ListPublished returns published posts, newest publication first.
func (r *BlogRepository) ListPublished(ctx context.Context, lq ListQuery) ([]models.BlogPost, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("published = ?", true)
	if lq.Search != "" {
		q = q.Where("title LIKE ?", likePattern(lq.Search))
	}
	var list []models.BlogPost
	total, err := findPage(q, lq, "published_at DESC, id DESC", &list)
	return list, total, err
}

// AllPublished returns every published post; used by sitemap generation.
func (r *BlogRepository) AllPublished(ctx context.Context) ([]models.BlogPost, error) {
	var list []models.BlogPost
	err := r.db.WithContext(ctx).Where("published = ?", true).Order("published_at DESC, id DESC").Find(&list).Error
	return list, err
}

// Update re-derives the slug if it changed and saves the post.
func (r *BlogRepository) Update(ctx context.Context, p *models.BlogPost) error {
	s, err := uniqueSlug(ctx, r.db, &models.BlogPost{}, firstNonEmpty(p.Slug, p.Title), p.ID)
	if err != nil {
		return err
	}
	p.Slug = s
	return save(ctx, r.db, p)
}

func (r *BlogRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.BlogPost{}, id)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
