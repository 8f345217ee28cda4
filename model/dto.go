package model

import "time"

// Transfer shapes returned by the API, with denormalized parent display
// fields, plus the request payloads. Mapping is done by explicit per-type
// functions rather than reflection.

// AlbumInfoDTO is the short album reference embedded in other DTOs.
type AlbumInfoDTO struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// MusicianDTO is the musician transfer shape.
type MusicianDTO struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Age             int            `json:"age"`
	Genre           string         `json:"genre"`
	CareerStartYear int            `json:"careerStartYear"`
	Albums          []AlbumInfoDTO `json:"albums"`
}

// AlbumDTO is the album transfer shape.
type AlbumDTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	ReleaseDate time.Time `json:"releaseDate"`
	ArtistID    int64     `json:"artistId"`
	ArtistName  string    `json:"artistName"`
}

// TrackDTO is the track transfer shape.
type TrackDTO struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Duration      string        `json:"duration"`
	IsFavorite    bool          `json:"isFavorite"`
	IsListened    bool          `json:"isListened"`
	Rating        RatingType    `json:"rating"`
	LikesCount    int           `json:"likesCount"`
	DislikesCount int           `json:"dislikesCount"`
	AlbumID       int64         `json:"albumId"`
	Album         *AlbumInfoDTO `json:"album,omitempty"`
}

// NewMusicianDTO maps a musician and its albums to the transfer shape.
func NewMusicianDTO(m *Musician) MusicianDTO {
	albums := make([]AlbumInfoDTO, 0, len(m.Albums))
	for _, a := range m.Albums {
		albums = append(albums, AlbumInfoDTO{ID: a.ID, Title: a.Title})
	}
	return MusicianDTO{
		ID:              m.ID,
		Name:            m.Name,
		Age:             m.Age,
		Genre:           m.Genre,
		CareerStartYear: m.CareerStartYear,
		Albums:          albums,
	}
}

// NewAlbumDTO maps an album to the transfer shape. The musician association
// may be nil; the artist name is then left empty.
func NewAlbumDTO(a *Album) AlbumDTO {
	dto := AlbumDTO{
		ID:          a.ID,
		Title:       a.Title,
		Genre:       a.Genre,
		ReleaseDate: a.ReleaseDate,
		ArtistID:    a.MusicianID,
	}
	if a.Musician != nil {
		dto.ArtistName = a.Musician.Name
	}
	return dto
}

// NewTrackDTO maps a track to the transfer shape. The album association may
// be nil; the embedded album reference is then omitted.
func NewTrackDTO(t *Track) TrackDTO {
	dto := TrackDTO{
		ID:            t.ID,
		Name:          t.Name,
		Duration:      t.Duration,
		IsFavorite:    t.IsFavorite,
		IsListened:    t.IsListened,
		Rating:        t.Rating,
		LikesCount:    t.LikesCount,
		DislikesCount: t.DislikesCount,
		AlbumID:       t.AlbumID,
	}
	if t.Album != nil {
		dto.Album = &AlbumInfoDTO{ID: t.Album.ID, Title: t.Album.Title}
	}
	return dto
}

// CreateMusicianRequest is the POST /api/Musician payload.
type CreateMusicianRequest struct {
	Name            string `json:"name" validate:"required"`
	Age             int    `json:"age"`
	Genre           string `json:"genre" validate:"required"`
	CareerStartYear int    `json:"careerStartYear"`
}

// UpdateMusicianRequest is the PUT /api/Musician/{id} payload.
type UpdateMusicianRequest struct {
	ID              int64  `json:"id"`
	Name            string `json:"name" validate:"required"`
	Age             int    `json:"age"`
	Genre           string `json:"genre" validate:"required"`
	CareerStartYear int    `json:"careerStartYear"`
}

// CreateAlbumRequest is the POST /api/Album payload. ReleaseDate is nullable
// in the transfer shape but its absence is rejected with a dedicated message.
type CreateAlbumRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	ArtistID    int64      `json:"artistId" validate:"required"`
	Genre       string     `json:"genre" validate:"required"`
	ReleaseDate *time.Time `json:"releaseDate"`
}

// UpdateAlbumRequest is the PUT /api/Album/{id} payload.
type UpdateAlbumRequest struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title" validate:"required,max=200"`
	ArtistID    int64      `json:"artistId" validate:"required"`
	Genre       string     `json:"genre" validate:"required"`
	ReleaseDate *time.Time `json:"releaseDate"`
}

// CreateTrackRequest is the POST /api/Track payload.
type CreateTrackRequest struct {
	Name       string     `json:"name" validate:"required"`
	Duration   string     `json:"duration" validate:"required,duration"`
	IsFavorite bool       `json:"isFavorite"`
	IsListened bool       `json:"isListened"`
	Rating     RatingType `json:"rating"`
	AlbumID    int64      `json:"albumId" validate:"required"`
}

// UpdateTrackRequest is the PUT /api/Track/{id} payload.
type UpdateTrackRequest struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name" validate:"required"`
	Duration   string     `json:"duration" validate:"required,duration"`
	IsFavorite bool       `json:"isFavorite"`
	IsListened bool       `json:"isListened"`
	Rating     RatingType `json:"rating"`
	AlbumID    int64      `json:"albumId" validate:"required"`
}

// RateTrackRequest is the POST /api/Track/{id}/rate payload.
type RateTrackRequest struct {
	Rating RatingType `json:"rating"`
}
