package model

import "time"

// RatingType is the track rating state: exactly one of None, Like or Dislike
// is active at a time.
type RatingType int8

const (
	RatingNone    RatingType = 0
	RatingLike    RatingType = 1
	RatingDislike RatingType = 2
)

// Valid reports whether r is one of the defined rating values.
func (r RatingType) Valid() bool {
	switch r {
	case RatingNone, RatingLike, RatingDislike:
		return true
	}
	return false
}

// String returns the rating name.
func (r RatingType) String() string {
	switch r {
	case RatingLike:
		return "Like"
	case RatingDislike:
		return "Dislike"
	default:
		return "None"
	}
}

// RatingNames lists the valid rating names for validation messages.
func RatingNames() string {
	return "None, Like, Dislike"
}

// Track belongs to exactly one album. LikesCount and DislikesCount are
// cumulative counters adjusted only on rating transitions, never negative.
type Track struct {
	ID            int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string     `json:"name" gorm:"size:255;not null"`
	Duration      string     `json:"duration" gorm:"size:5;not null"` // M{1,2}:SS, e.g. "3:45"
	IsFavorite    bool       `json:"isFavorite" gorm:"not null;default:false"`
	IsListened    bool       `json:"isListened" gorm:"not null;default:false"`
	Rating        RatingType `json:"rating" gorm:"type:tinyint;not null;default:0"`
	LikesCount    int        `json:"likesCount" gorm:"not null;default:0"`
	DislikesCount int        `json:"dislikesCount" gorm:"not null;default:0"`
	AlbumID       int64      `json:"albumId" gorm:"index;not null"`
	Album         *Album     `json:"-" gorm:"foreignKey:AlbumID"`
	Version       int        `json:"-" gorm:"not null;default:0"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// TableName specifies the table name.
func (Track) TableName() string {
	return "tracks"
}
