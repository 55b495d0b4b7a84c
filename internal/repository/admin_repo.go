package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"kgtransfer/internal/domain"
	"kgtransfer/internal/models"

	"gorm.io/gorm"
)

type AdminUserRepository struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

func (r *AdminUserRepository) Create(ctx context.Context, u *models.AdminUser) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *AdminUserRepository) GetByID(ctx context.Context, id uint) (*models.AdminUser, error) {
	var u models.AdminUser
	if err := getByID(ctx, r.db, &u, id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var u models.AdminUser
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *AdminUserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.AdminUser{}).Count(&n).Error
	return n, err
}

func (r *AdminUserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return updateColumn(ctx, r.db, &models.AdminUser{}, id, "password_hash", hash)
}

func (r *AdminUserRepository) TouchLogin(ctx context.Context, id uint, at time.Time) error {
	return updateColumn(ctx, r.db, &models.AdminUser{}, id, "last_login_at", at)
}

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, log *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// List filters by resource through ListQuery.Status.
func (r *AuditLogRepository) List(ctx context.Context, lq ListQuery) ([]models.AuditLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if lq.Status != "" {
		q = q.Where("resource = ?", lq.Status)
	}
	if lq.Search != "" {
		q = q.Where("action LIKE ?", likePattern(lq.Search))
	}
	var list []models.AuditLog
	total, err := findPage(q, lq, "created_at DESC, id DESC", &list)
	return list, total, err
}

// StatusCounts maps request status to row count.
type StatusCounts map[string]int64

type DashboardStats struct {
	ContactRequests     StatusCounts `json:"contact_requests"`
	ApplicationRequests StatusCounts `json:"application_requests"`
	TransferRequests    StatusCounts `json:"transfer_requests"`
	PendingReviews      int64        `json:"pending_reviews"`
	ApprovedReviews     int64        `json:"approved_reviews"`
	AverageRating       float64      `json:"average_rating"`
	PublishedPosts      int64        `json:"published_posts"`
	ActiveRoutes        int64        `json:"active_routes"`
	ActiveVehicles      int64        `json:"active_vehicles"`
}

type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) statusCounts(ctx context.Context, model interface{}) (StatusCounts, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(model).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := StatusCounts{}
	for _, s := range domain.RequestStatuses {
		out[s] = 0
	}
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *DashboardRepository) GetStats(ctx context.Context) (*DashboardStats, error) {
	var s DashboardStats
	var err error
	if s.ContactRequests, err = r.statusCounts(ctx, &models.ContactRequest{}); err != nil {
		return nil, err
	}
	if s.ApplicationRequests, err = r.statusCounts(ctx, &models.ApplicationRequest{}); err != nil {
		return nil, err
	}
	if s.TransferRequests, err = r.statusCounts(ctx, &models.TransferRequest{}); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)
	counts := []struct {
		dest  *int64
		model interface{}
		where string
		arg   interface{}
	}{
		{&s.PendingReviews, &models.Review{}, "status = ?", domain.ReviewStatusPending},
		{&s.ApprovedReviews, &models.Review{}, "status = ?", domain.ReviewStatusApproved},
		{&s.PublishedPosts, &models.BlogPost{}, "published = ?", true},
		{&s.ActiveRoutes, &models.Route{}, "is_active = ?", true},
		{&s.ActiveVehicles, &models.Vehicle{}, "is_active = ?", true},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where(c.where, c.arg).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	var avg struct{ Avg float64 }
	err = db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg").
		Where("status = ?", domain.ReviewStatusApproved).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	s.AverageRating = math.Round(avg.Avg*10) / 10
	return &s, nil
}

const dayLayout = "2006-01-02"

// seriesDay reads a DATE() result. Postgres and MySQL with parseTime return
// time.Time, SQLite returns text.
type seriesDay string

func (d *seriesDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = seriesDay(v.Format(dayLayout))
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("unsupported date value %T", src)
	}
}

func (d *seriesDay) parse(v string) error {
	if len(v) > len(dayLayout) {
		v = v[:len(dayLayout)]
	}
	t, err := time.Parse(dayLayout, v)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", v, err)
	}
	*d = seriesDay(t.Format(dayLayout))
	return nil
}

// RequestsByDay returns daily counts of model rows created in the last N days,
// dated YYYY-MM-DD.
func (r *DashboardRepository) RequestsByDay(ctx context.Context, model interface{}, days int) ([]TimeSeriesPoint, error) {
	since := time.Now().AddDate(0, 0, -days)
	var rows []struct {
		Day   seriesDay
		Count int64
	}
	err := r.db.WithContext(ctx).Model(model).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	points := make([]TimeSeriesPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, TimeSeriesPoint{Date: string(row.Day), Count: row.Count})
	}
	return points, nil
}
