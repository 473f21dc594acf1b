package genre

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/codeflix/catalog-admin-api/internal/application/service"
	"github.com/codeflix/catalog-admin-api/internal/application/validation"
	"github.com/codeflix/catalog-admin-api/internal/domain/genre"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

// GenreUseCase saves the genre row and its category links inside one
// transaction, mirroring the video orchestrator without the file step.
type GenreUseCase struct {
	repo   genre.Repository
	rules  *validation.GenreRules
	tx     service.Transactor
	logger logger.Logger
}

func NewGenreUseCase(r genre.Repository, rules *validation.GenreRules, tx service.Transactor, log logger.Logger) *GenreUseCase {
	return &GenreUseCase{repo: r, rules: rules, tx: tx, logger: log}
}

type SaveGenreInput struct {
	Name        string
	IsActive    bool
	CategoryIDs []uuid.UUID
}

func (uc *GenreUseCase) Create(ctx context.Context, in SaveGenreInput) (*genre.Genre, error) {
	if err := uc.rules.ValidateCategories(ctx, in.CategoryIDs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	g := &genre.Genre{
		ID:        uuid.New(),
		Name:      in.Name,
		IsActive:  in.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := g.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error(), map[string]string{"name": err.Error()})
	}

	err := uc.tx.InTx(ctx, func(txCtx context.Context) error {
		if err := uc.repo.Save(txCtx, g); err != nil {
			return err
		}
		return uc.repo.SyncCategories(txCtx, g.ID, in.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, g.ID)
}

func (uc *GenreUseCase) Update(ctx context.Context, id uuid.UUID, in SaveGenreInput) (*genre.Genre, error) {
	g, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.rules.ValidateCategories(ctx, in.CategoryIDs); err != nil {
		return nil, err
	}

	g.Name = in.Name
	g.IsActive = in.IsActive
	g.UpdatedAt = time.Now().UTC()
	if err := g.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error(), map[string]string{"name": err.Error()})
	}

	err = uc.tx.InTx(ctx, func(txCtx context.Context) error {
		if err := uc.repo.Update(txCtx, g); err != nil {
			return err
		}
		return uc.repo.SyncCategories(txCtx, g.ID, in.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, g.ID)
}

func (uc *GenreUseCase) Get(ctx context.Context, id uuid.UUID) (*genre.Genre, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *GenreUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.SoftDelete(ctx, id)
}

type ListGenresOutput struct {
	Genres  []*genre.Genre
	Total   int64
	Page    int
	PerPage int
}

func (uc *GenreUseCase) List(ctx context.Context, params genre.ListParams) (*ListGenresOutput, error) {
	if params.PerPage <= 0 {
		params.PerPage = 15
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	genres, total, err := uc.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list genres failed: %w", err)
	}
	return &ListGenresOutput{Genres: genres, Total: total, Page: params.Page, PerPage: params.PerPage}, nil
}
