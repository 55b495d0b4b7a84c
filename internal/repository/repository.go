package repository

import (
	"context"
	"errors"
	"fmt"

	"kgtransfer/pkg/slug"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListQuery carries the pagination and filter parameters shared by admin lists.
type ListQuery struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// Normalize clamps page and limit to sane values.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > MaxLimit {
		q.Limit = DefaultLimit
	}
	return q
}

func (q ListQuery) Offset() int { return (q.Page - 1) * q.Limit }

// Pages returns the number of pages needed for total rows.
func Pages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// findPage counts the filtered query and loads one page of it into dest.
func findPage(q *gorm.DB, lq ListQuery, order string, dest interface{}, preloads ...string) (int64, error) {
	q = q.Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	page := q.Order(order).Limit(lq.Limit).Offset(lq.Offset())
	for _, p := range preloads {
		page = page.Preload(p)
	}
	return total, page.Find(dest).Error
}

// save writes every column of an already loaded row, leaving associations alone.
func save(ctx context.Context, db *gorm.DB, value interface{}) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(value).Error
}

func getByID(ctx context.Context, db *gorm.DB, dest interface{}, id uint) error {
	return translate(db.WithContext(ctx).First(dest, id).Error)
}

func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uint) error {
	res := db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func updateColumn(ctx context.Context, db *gorm.DB, model interface{}, id uint, column string, value interface{}) error {
	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func likePattern(s string) string { return "%" + s + "%" }

// uniqueSlug derives a slug from title that is free in model's table,
// ignoring the row with excludeID (0 for new rows).
func uniqueSlug(ctx context.Context, db *gorm.DB, model interface{}, title string, excludeID uint) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "item"
	}
	candidate := base
	for i := 2; ; i++ {
		var count int64
		q := db.WithContext(ctx).Unscoped().Model(model).Where("slug = ?", candidate)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
