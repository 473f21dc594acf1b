package validation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/codeflix/catalog-admin-api/internal/domain/category"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
)

// GenreRules validates the category set attached to a genre save.
type GenreRules struct {
	categoryRepo category.Repository
}

func NewGenreRules(cRepo category.Repository) *GenreRules {
	return &GenreRules{categoryRepo: cRepo}
}

func (r *GenreRules) ValidateCategories(ctx context.Context, categoryIDs []uuid.UUID) error {
	categoryIDs = dedupe(categoryIDs)
	if len(categoryIDs) == 0 {
		return apperror.NewValidation("missing relation IDs", map[string]string{
			"categories_id": "categories_id is required",
		})
	}
	existing, err := r.categoryRepo.ExistingIDs(ctx, categoryIDs)
	if err != nil {
		return apperror.NewInternal("failed to check category IDs", err)
	}
	if missing := firstMissing(categoryIDs, existing); missing != uuid.Nil {
		return apperror.NewValidation("unknown relation IDs", map[string]string{
			"categories_id": fmt.Sprintf("category %s does not exist", missing),
		})
	}
	return nil
}
