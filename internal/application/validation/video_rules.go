package validation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/codeflix/catalog-admin-api/internal/domain/category"
	"github.com/codeflix/catalog-admin-api/internal/domain/genre"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
)

// VideoRules checks the relation-ID sets of a video save before the
// orchestrator runs: every referenced category and genre must exist (and not
// be soft-deleted), and the genre/category sets must be coherent. Each
// requested genre carries at least one requested category, and the union of
// categories carried by the requested genres equals the requested category
// set exactly.
type VideoRules struct {
	categoryRepo category.Repository
	genreRepo    genre.Repository
}

func NewVideoRules(cRepo category.Repository, gRepo genre.Repository) *VideoRules {
	return &VideoRules{categoryRepo: cRepo, genreRepo: gRepo}
}

func (r *VideoRules) ValidateRelations(ctx context.Context, categoryIDs, genreIDs []uuid.UUID) error {
	categoryIDs = dedupe(categoryIDs)
	genreIDs = dedupe(genreIDs)

	fields := map[string]string{}
	if len(categoryIDs) == 0 {
		fields["categories_id"] = "categories_id is required"
	}
	if len(genreIDs) == 0 {
		fields["genres_id"] = "genres_id is required"
	}
	if len(fields) > 0 {
		return apperror.NewValidation("missing relation IDs", fields)
	}

	if err := r.checkExisting(ctx, categoryIDs, genreIDs, fields); err != nil {
		return err
	}
	if len(fields) > 0 {
		return apperror.NewValidation("unknown relation IDs", fields)
	}

	linked, err := r.genreRepo.LinkedCategories(ctx, genreIDs, categoryIDs)
	if err != nil {
		return apperror.NewInternal("failed to load genre/category links", err)
	}

	reachable := map[uuid.UUID]struct{}{}
	for _, genreID := range genreIDs {
		cats := linked[genreID]
		if len(cats) == 0 {
			return apperror.NewValidation("incoherent genre/category sets", map[string]string{
				"genres_id": "a genre ID must be related at least a category ID",
			})
		}
		for _, catID := range cats {
			reachable[catID] = struct{}{}
		}
	}
	if len(reachable) != len(categoryIDs) {
		return apperror.NewValidation("incoherent genre/category sets", map[string]string{
			"categories_id": "every category ID must be reachable through the selected genres",
		})
	}
	return nil
}

func (r *VideoRules) checkExisting(ctx context.Context, categoryIDs, genreIDs []uuid.UUID, fields map[string]string) error {
	existingCats, err := r.categoryRepo.ExistingIDs(ctx, categoryIDs)
	if err != nil {
		return apperror.NewInternal("failed to check category IDs", err)
	}
	if missing := firstMissing(categoryIDs, existingCats); missing != uuid.Nil {
		fields["categories_id"] = fmt.Sprintf("category %s does not exist", missing)
	}

	existingGenres, err := r.genreRepo.ExistingIDs(ctx, genreIDs)
	if err != nil {
		return apperror.NewInternal("failed to check genre IDs", err)
	}
	if missing := firstMissing(genreIDs, existingGenres); missing != uuid.Nil {
		fields["genres_id"] = fmt.Sprintf("genre %s does not exist", missing)
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func firstMissing(requested, existing []uuid.UUID) uuid.UUID {
	present := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		present[id] = struct{}{}
	}
	for _, id := range requested {
		if _, ok := present[id]; !ok {
			return id
		}
	}
	return uuid.Nil
}
