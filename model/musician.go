package model

import "time"

// Musician is an artist owning a collection of albums.
// Deleting a musician cascades to its albums and their tracks.
type Musician struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string    `json:"name" gorm:"size:255;not null"`
	Age             int       `json:"age"`
	Genre           string    `json:"genre" gorm:"size:100;not null"`
	CareerStartYear int       `json:"careerStartYear"`
	Albums          []Album   `json:"albums,omitempty" gorm:"foreignKey:MusicianID"`
	Version         int       `json:"-" gorm:"not null;default:0"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TableName specifies the table name.
func (Musician) TableName() string {
	return "musicians"
}
