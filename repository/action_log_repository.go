package repository

import (
	"context"

	"musicapp/model"

	"gorm.io/gorm"
)

// ActionLogRepository defines the interface for audit log persistence.
// The log is append-only: entries are never updated or deleted.
type ActionLogRepository interface {
	// Create appends one audit entry.
	Create(ctx context.Context, entry *model.UserActionLog) error

	// List returns the most recent entries, newest first.
	List(ctx context.Context, limit int) ([]*model.UserActionLog, error)
}

// gormActionLogRepository is the GORM implementation.
type gormActionLogRepository struct {
	db *gorm.DB
}

// NewGormActionLogRepository creates a GORM action log repository.
func NewGormActionLogRepository(db *gorm.DB) ActionLogRepository {
	return &gormActionLogRepository{db: db}
}

func (r *gormActionLogRepository) Create(ctx context.Context, entry *model.UserActionLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormActionLogRepository) List(ctx context.Context, limit int) ([]*model.UserActionLog, error) {
	var entries []*model.UserActionLog
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
