package genre

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Genre struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	IsActive    bool        `json:"is_active"`
	CategoryIDs []uuid.UUID `json:"categories_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	DeletedAt   *time.Time  `json:"deleted_at"`
}

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = errors.New("name must not exceed 255 characters")
)

func (g *Genre) Validate() error {
	if g.Name == "" {
		return ErrNameRequired
	}
	if len(g.Name) > 255 {
		return ErrNameTooLong
	}
	return nil
}

type ListParams struct {
	Search  string
	Page    int
	PerPage int
}

type Repository interface {
	Save(ctx context.Context, g *Genre) error
	Update(ctx context.Context, g *Genre) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Genre, error)
	List(ctx context.Context, params ListParams) ([]*Genre, int64, error)
	SyncCategories(ctx context.Context, genreID uuid.UUID, categoryIDs []uuid.UUID) error
	// ExistingIDs filters the given set down to IDs of live (not soft-deleted) genres.
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	// LinkedCategories returns, for each genre in genreIDs, the subset of
	// categoryIDs it is linked to through the category_genre junction.
	LinkedCategories(ctx context.Context, genreIDs, categoryIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
}
