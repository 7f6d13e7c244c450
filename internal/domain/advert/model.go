package advert

import "errors"

// Domain errors
var (
	ErrInvalidID   = errors.New("advertisement ID must be positive")
	ErrInvalidType = errors.New("advertisement type must be image or video")
	ErrEmptyTitle  = errors.New("advertisement title cannot be empty")
)

// Media types
const (
	TypeImage = "image"
	TypeVideo = "video"
)

// DefaultTitle is used for advertisements created from the admin dashboard.
const DefaultTitle = "Nuevo Anuncio"

// Advertisement is a promotional banner shown on the home screen.
type Advertisement struct {
	ID           int64
	Type         string
	Title        string
	MediaURL     string
	ThumbnailURL string // videos only
}

// Validate checks if the Advertisement has valid data.
// PRE: Advertisement struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Advertisement) Validate() error {
	if a.ID <= 0 {
		return ErrInvalidID
	}
	if a.Type != TypeImage && a.Type != TypeVideo {
		return ErrInvalidType
	}
	if a.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}

// IsVideo reports whether the advertisement plays a video.
func (a *Advertisement) IsVideo() bool {
	return a.Type == TypeVideo
}

// New returns an empty image advertisement.
func New(id int64) Advertisement {
	return Advertisement{ID: id, Type: TypeImage, Title: DefaultTitle}
}
