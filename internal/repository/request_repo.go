package repository

import (
	"context"

	"kgtransfer/internal/models"

	"gorm.io/gorm"
)

type ContactRequestRepository struct {
	db *gorm.DB
}

func NewContactRequestRepository(db *gorm.DB) *ContactRequestRepository {
	return &ContactRequestRepository{db: db}
}

func (r *ContactRequestRepository) Create(ctx context.Context, req *models.ContactRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *ContactRequestRepository) GetByID(ctx context.Context, id uint) (*models.ContactRequest, error) {
	var req models.ContactRequest
	if err := getByID(ctx, r.db, &req, id); err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns contact requests with optional status filter and name/phone/email search.
func (r *ContactRequestRepository) List(ctx context.Context, lq ListQuery) ([]models.ContactRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.ContactRequest{})
	if lq.Status != "" {
		q = q.Where("status = ?", lq.Status)
	}
	if lq.Search != "" {
		p := likePattern(lq.Search)
		q = q.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", p, p, p)
	}
	var list []models.ContactRequest
	total, err := findPage(q, lq, "created_at DESC, id DESC", &list)
	return list, total, err
}

func (r *ContactRequestRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return updateColumn(ctx, r.db, &models.ContactRequest{}, id, "status", status)
}

func (r *ContactRequestRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.ContactRequest{}, id)
}

type ApplicationRequestRepository struct {
	db *gorm.DB
}

func NewApplicationRequestRepository(db *gorm.DB) *ApplicationRequestRepository {
	return &ApplicationRequestRepository{db: db}
}

func (r *ApplicationRequestRepository) Create(ctx context.Context, req *models.ApplicationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *ApplicationRequestRepository) GetByID(ctx context.Context, id uint) (*models.ApplicationRequest, error) {
	var req models.ApplicationRequest
	if err := getByID(ctx, r.db, &req, id); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *ApplicationRequestRepository) List(ctx context.Context, lq ListQuery) ([]models.ApplicationRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.ApplicationRequest{})
	if lq.Status != "" {
		q = q.Where("status = ?", lq.Status)
	}
	if lq.Search != "" {
		p := likePattern(lq.Search)
		q = q.Where("name LIKE ? OR phone LIKE ? OR from_city LIKE ? OR to_city LIKE ?", p, p, p, p)
	}
	var list []models.ApplicationRequest
	total, err := findPage(q, lq, "created_at DESC, id DESC", &list)
	return list, total, err
}

func (r *ApplicationRequestRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return updateColumn(ctx, r.db, &models.ApplicationRequest{}, id, "status", status)
}

func (r *ApplicationRequestRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.ApplicationRequest{}, id)
}

type TransferRequestRepository struct {
	db *gorm.DB
}

func NewTransferRequestRepository(db *gorm.DB) *TransferRequestRepository {
	return &TransferRequestRepository{db: db}
}

func (r *TransferRequestRepository) Create(ctx context.Context, req *models.TransferRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetByID loads the request with its vehicle and route.
func (r *TransferRequestRepository) GetByID(ctx context.Context, id uint) (*models.TransferRequest, error) {
	var req models.TransferRequest
	err := r.db.WithContext(ctx).Preload("Vehicle").Preload("Route").First(&req, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *TransferRequestRepository) List(ctx context.Context, lq ListQuery) ([]models.TransferRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.TransferRequest{})
	if lq.Status != "" {
		q = q.Where("status = ?", lq.Status)
	}
	if lq.Search != "" {
		p := likePattern(lq.Search)
		q = q.Where("reference LIKE ? OR name LIKE ? OR phone LIKE ? OR from_address LIKE ? OR to_address LIKE ?", p, p, p, p, p)
	}
	var list []models.TransferRequest
	total, err := findPage(q, lq, "created_at DESC, id DESC", &list, "Vehicle")
	return list, total, err
}

// Update saves every column of a request loaded with GetByID.
func (r *TransferRequestRepository) Update(ctx context.Context, req *models.TransferRequest) error {
	return save(ctx, r.db, req)
}

func (r *TransferRequestRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return updateColumn(ctx, r.db, &models.TransferRequest{}, id, "status", status)
}

func (r *TransferRequestRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.TransferRequest{}, id)
}
