package repository

import (
	"context"

	"musicapp/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AlbumRepository defines the interface for album data operations.
type AlbumRepository interface {
	// List returns all albums with their musician preloaded.
	List(ctx context.Context) ([]*model.Album, error)

	// GetByID returns the album with its musician, or (nil, nil) if absent.
	GetByID(ctx context.Context, id int64) (*model.Album, error)

	// Create inserts a new album and assigns its identity.
	Create(ctx context.Context, a *model.Album) error

	// Update replaces all fields, guarded by the stored version.
	// Returns ErrConflict when the version check fails.
	Update(ctx context.Context, a *model.Album) error

	// Delete removes the album and cascades to its tracks.
	Delete(ctx context.Context, id int64) error

	// ExistsByID reports whether an album row exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// gormAlbumRepository is the GORM implementation.
type gormAlbumRepository struct {
	db *gorm.DB
}

// NewGormAlbumRepository creates a GORM album repository.
func NewGormAlbumRepository(db *gorm.DB) AlbumRepository {
	return &gormAlbumRepository{db: db}
}

func (r *gormAlbumRepository) List(ctx context.Context) ([]*model.Album, error) {
	var albums []*model.Album
	err := r.db.WithContext(ctx).
		Preload("Musician").
		Find(&albums).Error
	if err != nil {
		return nil, err
	}
	return albums, nil
}

func (r *gormAlbumRepository) GetByID(ctx context.Context, id int64) (*model.Album, error) {
	var album model.Album
	err := r.db.WithContext(ctx).
		Preload("Musician").
		First(&album, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &album, nil
}

func (r *gormAlbumRepository) Create(ctx context.Context, a *model.Album) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *gormAlbumRepository) Update(ctx context.Context, a *model.Album) error {
	res := r.db.WithContext(ctx).Model(&model.Album{}).
		Where("id = ? AND version = ?", a.ID, a.Version).
		Updates(map[string]interface{}{
			"title":        a.Title,
			"genre":        a.Genre,
			"release_date": a.ReleaseDate,
			"musician_id":  a.MusicianID,
			"version":      a.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	a.Version++
	return nil
}

// Delete removes the album and its tracks in one transaction.
func (r *gormAlbumRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("album_id = ?", id).Delete(&model.Track{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Album{}, id).Error
	})
}

func (r *gormAlbumRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Album{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
