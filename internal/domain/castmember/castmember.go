package castmember

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Type int

const (
	TypeActor    Type = 0
	TypeDirector Type = 1
)

func (t Type) IsValid() bool {
	return t == TypeActor || t == TypeDirector
}

type CastMember struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Type      Type       `json:"type"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

var (
	ErrNameRequired = errors.New("name is required")
	ErrInvalidType  = errors.New("type must be 0 (actor) or 1 (director)")
)

func (m *CastMember) Validate() error {
	if m.Name == "" {
		return ErrNameRequired
	}
	if !m.Type.IsValid() {
		return ErrInvalidType
	}
	return nil
}

type ListParams struct {
	Search  string
	Page    int
	PerPage int
}

type Repository interface {
	Save(ctx context.Context, m *CastMember) error
	Update(ctx context.Context, m *CastMember) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*CastMember, error)
	List(ctx context.Context, params ListParams) ([]*CastMember, int64, error)
}
