package repository

import (
	"context"

	"musicapp/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TrackRepository defines the interface for track data operations.
type TrackRepository interface {
	// List returns all tracks with their album preloaded, optionally
	// filtered by album id.
	List(ctx context.Context, albumID *int64) ([]*model.Track, error)

	// GetByID returns the track with its album, or (nil, nil) if absent.
	GetByID(ctx context.Context, id int64) (*model.Track, error)

	// Create inserts a new track and assigns its identity.
	Create(ctx context.Context, t *model.Track) error

	// Update replaces all fields including rating and counters, guarded by
	// the stored version. Returns ErrConflict when the version check fails.
	Update(ctx context.Context, t *model.Track) error

	// Delete removes the track.
	Delete(ctx context.Context, id int64) error

	// ExistsByID reports whether a track row exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// gormTrackRepository is the GORM implementation.
type gormTrackRepository struct {
	db *gorm.DB
}

// NewGormTrackRepository creates a GORM track repository.
func NewGormTrackRepository(db *gorm.DB) TrackRepository {
	return &gormTrackRepository{db: db}
}

func (r *gormTrackRepository) List(ctx context.Context, albumID *int64) ([]*model.Track, error) {
	query := r.db.WithContext(ctx).Preload("Album")
	if albumID != nil {
		query = query.Where("album_id = ?", *albumID)
	}

	var tracks []*model.Track
	if err := query.Find(&tracks).Error; err != nil {
		return nil, err
	}
	return tracks, nil
}

func (r *gormTrackRepository) GetByID(ctx context.Context, id int64) (*model.Track, error) {
	var track model.Track
	err := r.db.WithContext(ctx).
		Preload("Album").
		First(&track, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &track, nil
}

func (r *gormTrackRepository) Create(ctx context.Context, t *model.Track) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error
}

// Update persists the new rating and counters atomically with the rest of
// the entity update.
func (r *gormTrackRepository) Update(ctx context.Context, t *model.Track) error {
	res := r.db.WithContext(ctx).Model(&model.Track{}).
		Where("id = ? AND version = ?", t.ID, t.Version).
		Updates(map[string]interface{}{
			"name":           t.Name,
			"duration":       t.Duration,
			"is_favorite":    t.IsFavorite,
			"is_listened":    t.IsListened,
			"rating":         t.Rating,
			"likes_count":    t.LikesCount,
			"dislikes_count": t.DislikesCount,
			"album_id":       t.AlbumID,
			"version":        t.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	t.Version++
	return nil
}

func (r *gormTrackRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Track{}, id).Error
}

func (r *gormTrackRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Track{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
