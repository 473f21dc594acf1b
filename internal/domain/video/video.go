package video

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Rating string

const (
	RatingFree Rating = "L"
	Rating10   Rating = "10"
	Rating12   Rating = "12"
	Rating14   Rating = "14"
	Rating16   Rating = "16"
	Rating18   Rating = "18"
)

var RatingList = []Rating{RatingFree, Rating10, Rating12, Rating14, Rating16, Rating18}

func (r Rating) IsValid() bool {
	for _, v := range RatingList {
		if r == v {
			return true
		}
	}
	return false
}

// File field names as they appear in the multipart form and in storage.
const (
	FieldThumbFile   = "thumb_file"
	FieldBannerFile  = "banner_file"
	FieldTrailerFile = "trailer_file"
	FieldVideoFile   = "video_file"
)

type Video struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	YearLaunched int         `json:"year_launched"`
	Opened       bool        `json:"opened"`
	Rating       Rating      `json:"rating"`
	Duration     int         `json:"duration"`
	ThumbFile    *string     `json:"thumb_file"`
	BannerFile   *string     `json:"banner_file"`
	TrailerFile  *string     `json:"trailer_file"`
	VideoFile    *string     `json:"video_file"`
	CategoryIDs  []uuid.UUID `json:"categories_id"`
	GenreIDs     []uuid.UUID `json:"genres_id"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	DeletedAt    *time.Time  `json:"deleted_at"`
}

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidRating   = errors.New("rating must be one of L, 10, 12, 14, 16, 18")
	ErrInvalidDuration = errors.New("duration must be greater than zero")
	ErrInvalidYear     = errors.New("year_launched must be a four digit year")
)

func (v *Video) Validate() error {
	if v.Title == "" {
		return ErrTitleRequired
	}
	if !v.Rating.IsValid() {
		return ErrInvalidRating
	}
	if v.Duration <= 0 {
		return ErrInvalidDuration
	}
	if v.YearLaunched < 1000 || v.YearLaunched > 9999 {
		return ErrInvalidYear
	}
	return nil
}

// UploadDir is the storage directory holding every file of this video.
func (v *Video) UploadDir() string {
	return v.ID.String()
}

// FileRef returns a pointer to the stored filename column for a file field.
func (v *Video) FileRef(field string) **string {
	switch field {
	case FieldThumbFile:
		return &v.ThumbFile
	case FieldBannerFile:
		return &v.BannerFile
	case FieldTrailerFile:
		return &v.TrailerFile
	case FieldVideoFile:
		return &v.VideoFile
	default:
		return nil
	}
}

type ListParams struct {
	Search  string
	Page    int
	PerPage int
}

type Repository interface {
	Save(ctx context.Context, v *Video) error
	Update(ctx context.Context, v *Video) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Video, error)
	List(ctx context.Context, params ListParams) ([]*Video, int64, error)
	SyncCategories(ctx context.Context, videoID uuid.UUID, categoryIDs []uuid.UUID) error
	SyncGenres(ctx context.Context, videoID uuid.UUID, genreIDs []uuid.UUID) error
}
