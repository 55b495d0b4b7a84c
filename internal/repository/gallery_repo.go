package repository

import (
	"context"

	"kgtransfer/internal/models"

	"gorm.io/gorm"
)

type GalleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func orderedPhotos(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

func (r *GalleryRepository) Create(ctx context.Context, g *models.PhotoGallery) error {
	return r.db.WithContext(ctx).Omit("Photos").Create(g).Error
}

func (r *GalleryRepository) GetByID(ctx context.Context, id uint) (*models.PhotoGallery, error) {
	var g models.PhotoGallery
	err := r.db.WithContext(ctx).Preload("Photos", orderedPhotos).First(&g, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (r *GalleryRepository) GetActiveByID(ctx context.Context, id uint) (*models.PhotoGallery, error) {
	var g models.PhotoGallery
	err := r.db.WithContext(ctx).Preload("Photos", orderedPhotos).Where("is_active = ?", true).First(&g, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (r *GalleryRepository) List(ctx context.Context, lq ListQuery) ([]models.PhotoGallery, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.PhotoGallery{})
	if lq.Search != "" {
		q = q.Where("title LIKE ?", likePattern(lq.Search))
	}
	var list []models.PhotoGallery
	total, err := findPage(q, lq, "sort_order ASC, id ASC", &list)
	return list, total, err
}

// ListActive returns active galleries with their photos.
func (r *GalleryRepository) ListActive(ctx context.Context) ([]models.PhotoGallery, error) {
	var list []models.PhotoGallery
	err := r.db.WithContext(ctx).Preload("Photos", orderedPhotos).
		Where("is_active = ?", true).Order("sort_order ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *GalleryRepository) Update(ctx context.Context, g *models.PhotoGallery) error {
	return save(ctx, r.db, g)
}

func (r *GalleryRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return updateColumn(ctx, r.db, &models.PhotoGallery{}, id, "is_active", active)
}

// Delete removes the gallery and its photos together.
func (r *GalleryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gallery_id = ?", id).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		return deleteByID(ctx, tx, &models.PhotoGallery{}, id)
	})
}

func (r *GalleryRepository) AddPhoto(ctx context.Context, p *models.Photo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GalleryRepository) GetPhoto(ctx context.Context, id uint) (*models.Photo, error) {
	var p models.Photo
	if err := getByID(ctx, r.db, &p, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GalleryRepository) UpdatePhoto(ctx context.Context, p *models.Photo) error {
	return save(ctx, r.db, p)
}

func (r *GalleryRepository) DeletePhoto(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Photo{}, id)
}
