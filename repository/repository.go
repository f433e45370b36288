// Package repository provides the shared persistence layer used by
// every resource controller. Each entity gets the same four
// operations with the same error contract, parameterized by the
// entity type and its display-sort column, instead of hand-copied
// query code per entity.
package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the targeted id does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert or update violates a
	// uniqueness constraint
	ErrDuplicate = errors.New("record already exists")
)

// Repository implements uniform CRUD over one gorm model
type Repository[T any] struct {
	db      *gorm.DB
	orderBy string
}

// New creates a repository for T. orderBy is the natural display key
// used by List (e.g. "name asc").
func New[T any](db *gorm.DB, orderBy string) *Repository[T] {
	return &Repository[T]{db: db, orderBy: orderBy}
}

// List returns all records sorted by the display key
func (r *Repository[T]) List() ([]T, error) {
	var records []T
	if err := r.db.Order(r.orderBy).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Get loads one record by id
func (r *Repository[T]) Get(id uint) (*T, error) {
	var record T
	if err := r.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Create inserts a record, translating uniqueness violations to ErrDuplicate
func (r *Repository[T]) Create(record *T) error {
	if err := r.db.Create(record).Error; err != nil {
		if IsDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Update applies the named fields to the record identified by id.
// A missing id is an error, not a silent no-op.
func (r *Repository[T]) Update(id uint, fields map[string]interface{}) error {
	var model T
	result := r.db.Model(&model).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if IsDuplicateKey(result.Error) {
			return ErrDuplicate
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes the record identified by id
func (r *Repository[T]) Delete(id uint) error {
	var model T
	result := r.db.Delete(&model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsDuplicateKey reports whether err is a uniqueness violation.
// Matches on the driver message so it works with both PostgreSQL and
// SQLite.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}
