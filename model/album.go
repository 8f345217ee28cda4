package model

import "time"

// Album belongs to exactly one musician and owns a collection of tracks.
type Album struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Genre       string    `json:"genre" gorm:"size:100;not null"`
	ReleaseDate time.Time `json:"releaseDate" gorm:"not null"`
	MusicianID  int64     `json:"artistId" gorm:"index;not null"`
	Musician    *Musician `json:"-" gorm:"foreignKey:MusicianID"`
	Tracks      []Track   `json:"-" gorm:"foreignKey:AlbumID"`
	Version     int       `json:"-" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name.
func (Album) TableName() string {
	return "albums"
}
