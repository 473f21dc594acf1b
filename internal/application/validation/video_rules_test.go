package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeflix/catalog-admin-api/internal/domain/category"
	"github.com/codeflix/catalog-admin-api/internal/domain/genre"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
)

type stubCategoryRepo struct {
	category.Repository
	existing map[uuid.UUID]bool
}

func (r *stubCategoryRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for _, id := range ids {
		if r.existing[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

type stubGenreRepo struct {
	genre.Repository
	existing map[uuid.UUID]bool
	links    map[uuid.UUID][]uuid.UUID
}

func (r *stubGenreRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for _, id := range ids {
		if r.existing[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *stubGenreRepo) LinkedCategories(ctx context.Context, genreIDs, categoryIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	requested := map[uuid.UUID]bool{}
	for _, id := range categoryIDs {
		requested[id] = true
	}
	out := map[uuid.UUID][]uuid.UUID{}
	for _, genreID := range genreIDs {
		for _, catID := range r.links[genreID] {
			if requested[catID] {
				out[genreID] = append(out[genreID], catID)
			}
		}
	}
	return out, nil
}

func TestValidateRelations_Coherence(t *testing.T) {
	cat1, cat2 := uuid.New(), uuid.New()
	genX, genY := uuid.New(), uuid.New()

	catRepo := &stubCategoryRepo{existing: map[uuid.UUID]bool{cat1: true, cat2: true}}
	genRepo := &stubGenreRepo{
		existing: map[uuid.UUID]bool{genX: true, genY: true},
		links:    map[uuid.UUID][]uuid.UUID{genX: {cat1}, genY: {cat2}},
	}
	rules := NewVideoRules(catRepo, genRepo)

	tests := []struct {
		name       string
		categories []uuid.UUID
		genres     []uuid.UUID
		wantErr    bool
	}{
		{"both genres cover both categories", []uuid.UUID{cat1, cat2}, []uuid.UUID{genX, genY}, false},
		{"single genre single matching category", []uuid.UUID{cat1}, []uuid.UUID{genX}, false},
		{"category not reachable by any genre", []uuid.UUID{cat1, cat2}, []uuid.UUID{genX}, true},
		{"genre with no requested category", []uuid.UUID{cat1}, []uuid.UUID{genX, genY}, true},
		{"duplicates collapse before checking", []uuid.UUID{cat1, cat1}, []uuid.UUID{genX, genX}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rules.ValidateRelations(context.Background(), tt.categories, tt.genres)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperror.ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRelations_RequiredSets(t *testing.T) {
	cat1 := uuid.New()
	genX := uuid.New()
	rules := NewVideoRules(
		&stubCategoryRepo{existing: map[uuid.UUID]bool{cat1: true}},
		&stubGenreRepo{existing: map[uuid.UUID]bool{genX: true}, links: map[uuid.UUID][]uuid.UUID{genX: {cat1}}},
	)

	err := rules.ValidateRelations(context.Background(), nil, []uuid.UUID{genX})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "categories_id")

	err = rules.ValidateRelations(context.Background(), []uuid.UUID{cat1}, nil)
	require.Error(t, err)
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "genres_id")
}

func TestValidateRelations_UnknownIDs(t *testing.T) {
	cat1 := uuid.New()
	genX := uuid.New()
	rules := NewVideoRules(
		&stubCategoryRepo{existing: map[uuid.UUID]bool{cat1: true}},
		&stubGenreRepo{existing: map[uuid.UUID]bool{genX: true}, links: map[uuid.UUID][]uuid.UUID{genX: {cat1}}},
	)

	err := rules.ValidateRelations(context.Background(), []uuid.UUID{uuid.New()}, []uuid.UUID{genX})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	err = rules.ValidateRelations(context.Background(), []uuid.UUID{cat1}, []uuid.UUID{uuid.New()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}
