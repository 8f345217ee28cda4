package repository

import (
	"context"

	"musicapp/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MusicianRepository defines the interface for musician data operations.
type MusicianRepository interface {
	// List returns all musicians with their albums preloaded.
	List(ctx context.Context) ([]*model.Musician, error)

	// GetByID returns the musician with its albums, or (nil, nil) if absent.
	GetByID(ctx context.Context, id int64) (*model.Musician, error)

	// Create inserts a new musician and assigns its identity.
	Create(ctx context.Context, m *model.Musician) error

	// Update replaces all fields, guarded by the stored version.
	// Returns ErrConflict when the version check fails.
	Update(ctx context.Context, m *model.Musician) error

	// Delete removes the musician and cascades to its albums and their tracks.
	Delete(ctx context.Context, id int64) error

	// ExistsByID reports whether a musician row exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// gormMusicianRepository is the GORM implementation.
type gormMusicianRepository struct {
	db *gorm.DB
}

// NewGormMusicianRepository creates a GORM musician repository.
func NewGormMusicianRepository(db *gorm.DB) MusicianRepository {
	return &gormMusicianRepository{db: db}
}

func (r *gormMusicianRepository) List(ctx context.Context) ([]*model.Musician, error) {
	var musicians []*model.Musician
	err := r.db.WithContext(ctx).
		Preload("Albums").
		Find(&musicians).Error
	if err != nil {
		return nil, err
	}
	return musicians, nil
}

func (r *gormMusicianRepository) GetByID(ctx context.Context, id int64) (*model.Musician, error) {
	var musician model.Musician
	err := r.db.WithContext(ctx).
		Preload("Albums").
		First(&musician, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &musician, nil
}

func (r *gormMusicianRepository) Create(ctx context.Context, m *model.Musician) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
}

func (r *gormMusicianRepository) Update(ctx context.Context, m *model.Musician) error {
	res := r.db.WithContext(ctx).Model(&model.Musician{}).
		Where("id = ? AND version = ?", m.ID, m.Version).
		Updates(map[string]interface{}{
			"name":              m.Name,
			"age":               m.Age,
			"genre":             m.Genre,
			"career_start_year": m.CareerStartYear,
			"version":           m.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	m.Version++
	return nil
}

// Delete removes musician, albums and tracks in one transaction so a partial
// cascade never becomes visible.
func (r *gormMusicianRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		albumIDs := tx.Model(&model.Album{}).Select("id").Where("musician_id = ?", id)
		if err := tx.Where("album_id IN (?)", albumIDs).Delete(&model.Track{}).Error; err != nil {
			return err
		}
		if err := tx.Where("musician_id = ?", id).Delete(&model.Album{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Musician{}, id).Error
	})
}

func (r *gormMusicianRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Musician{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
