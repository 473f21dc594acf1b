package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/codeflix/catalog-admin-api/internal/domain/category"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

type CategoryUseCase struct {
	repo   category.Repository
	logger logger.Logger
}

func NewCategoryUseCase(r category.Repository, log logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: r, logger: log}
}

type SaveCategoryInput struct {
	Name        string
	Description string
	IsActive    bool
}

func (uc *CategoryUseCase) Create(ctx context.Context, in SaveCategoryInput) (*category.Category, error) {
	now := time.Now().UTC()
	c := &category.Category{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error(), map[string]string{"name": err.Error()})
	}
	if err := uc.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id uuid.UUID, in SaveCategoryInput) (*category.Category, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Description = in.Description
	c.IsActive = in.IsActive
	c.UpdatedAt = time.Now().UTC()

	if err := c.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error(), map[string]string{"name": err.Error()})
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CategoryUseCase) Get(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *CategoryUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.SoftDelete(ctx, id)
}

type ListCategoriesOutput struct {
	Categories []*category.Category
	Total      int64
	Page       int
	PerPage    int
}

func (uc *CategoryUseCase) List(ctx context.Context, params category.ListParams) (*ListCategoriesOutput, error) {
	if params.PerPage <= 0 {
		params.PerPage = 15
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	categories, total, err := uc.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list categories failed: %w", err)
	}
	return &ListCategoriesOutput{Categories: categories, Total: total, Page: params.Page, PerPage: params.PerPage}, nil
}
