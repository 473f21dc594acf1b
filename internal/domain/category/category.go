package category

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = errors.New("name must not exceed 255 characters")
)

func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if len(c.Name) > 255 {
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
	Save(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context, params ListParams) ([]*Category, int64, error)
	// ExistingIDs filters the given set down to IDs of live (not soft-deleted) categories.
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}
