package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/codeflix/catalog-admin-api/internal/application/service"
	"github.com/codeflix/catalog-admin-api/internal/domain/castmember"
	"github.com/codeflix/catalog-admin-api/internal/domain/category"
	"github.com/codeflix/catalog-admin-api/internal/domain/genre"
	"github.com/codeflix/catalog-admin-api/internal/domain/video"
)

// Category DTOs

type SaveCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type CategoryDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToCategoryDTO(c *category.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// Genre DTOs

type SaveGenreRequest struct {
	Name         string   `json:"name" binding:"required,max=255"`
	IsActive     *bool    `json:"is_active"`
	CategoriesID []string `json:"categories_id" binding:"required,min=1,dive,uuid"`
}

type GenreDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	IsActive     bool      `json:"is_active"`
	CategoriesID []string  `json:"categories_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToGenreDTO(g *genre.Genre) GenreDTO {
	return GenreDTO{
		ID:           g.ID.String(),
		Name:         g.Name,
		IsActive:     g.IsActive,
		CategoriesID: uuidStrings(g.CategoryIDs),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// Cast member DTOs

type SaveCastMemberRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	Type *int   `json:"type" binding:"required,oneof=0 1"`
}

type CastMemberDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      int       `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToCastMemberDTO(m *castmember.CastMember) CastMemberDTO {
	return CastMemberDTO{
		ID:        m.ID.String(),
		Name:      m.Name,
		Type:      int(m.Type),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Video DTOs

type VideoDTO struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	YearLaunched   int       `json:"year_launched"`
	Opened         bool      `json:"opened"`
	Rating         string    `json:"rating"`
	Duration       int       `json:"duration"`
	CategoriesID   []string  `json:"categories_id"`
	GenresID       []string  `json:"genres_id"`
	ThumbFileURL   *string   `json:"thumb_file_url"`
	BannerFileURL  *string   `json:"banner_file_url"`
	TrailerFileURL *string   `json:"trailer_file_url"`
	VideoFileURL   *string   `json:"video_file_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToVideoDTO(v *video.Video, store service.FileStore) VideoDTO {
	return VideoDTO{
		ID:             v.ID.String(),
		Title:          v.Title,
		Description:    v.Description,
		YearLaunched:   v.YearLaunched,
		Opened:         v.Opened,
		Rating:         string(v.Rating),
		Duration:       v.Duration,
		CategoriesID:   uuidStrings(v.CategoryIDs),
		GenresID:       uuidStrings(v.GenreIDs),
		ThumbFileURL:   fileURL(store, v.UploadDir(), v.ThumbFile),
		BannerFileURL:  fileURL(store, v.UploadDir(), v.BannerFile),
		TrailerFileURL: fileURL(store, v.UploadDir(), v.TrailerFile),
		VideoFileURL:   fileURL(store, v.UploadDir(), v.VideoFile),
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func fileURL(store service.FileStore, dir string, filename *string) *string {
	if filename == nil {
		return nil
	}
	url := store.URLFor(dir, *filename)
	return &url
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func listMeta(total int64, page, perPage int) gin.H {
	return gin.H{
		"total":        total,
		"current_page": page,
		"per_page":     perPage,
	}
}
