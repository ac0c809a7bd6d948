package repository

import (
	"fmt"

	"campusforum/internal/models"

	"gorm.io/gorm"
)

// Paginate counts the rows matched by base and loads page number page of
// perPage rows. base must carry a Model and any filters; scopes (ordering,
// preloads) only apply to the row query. A page below 1 is treated as 1, and a
// page past the last one is a NOT_FOUND error.
func Paginate[T any](base *gorm.DB, page, perPage int, scopes ...func(*gorm.DB) *gorm.DB) (models.Page[T], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		return models.Page[T]{}, fmt.Errorf("paginate: invalid page size %d", perPage)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return models.Page[T]{}, fmt.Errorf("paginate count: %w", err)
	}

	result := models.NewPage[T](nil, page, perPage, total)
	if page > 1 && page > result.Pages {
		return models.Page[T]{}, models.NewNotFoundError("Page", page)
	}
	if total == 0 {
		return result, nil
	}

	var items []T
	err := base.Session(&gorm.Session{}).
		Scopes(scopes...).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&items).Error
	if err != nil {
		return models.Page[T]{}, fmt.Errorf("paginate find: %w", err)
	}

	return models.NewPage(items, page, perPage, total), nil
}

func orderBy(order string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}

func preload(query string, args ...interface{}) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(query, args...)
	}
}
