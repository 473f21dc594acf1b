package castmember

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/codeflix/catalog-admin-api/internal/domain/castmember"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

type CastMemberUseCase struct {
	repo   castmember.Repository
	logger logger.Logger
}

func NewCastMemberUseCase(r castmember.Repository, log logger.Logger) *CastMemberUseCase {
	return &CastMemberUseCase{repo: r, logger: log}
}

type SaveCastMemberInput struct {
	Name string
	Type castmember.Type
}

func (uc *CastMemberUseCase) Create(ctx context.Context, in SaveCastMemberInput) (*castmember.CastMember, error) {
	now := time.Now().UTC()
	m := &castmember.CastMember{
		ID:        uuid.New(),
		Name:      in.Name,
		Type:      in.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error(), nil)
	}
	if err := uc.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *CastMemberUseCase) Update(ctx context.Context, id uuid.UUID, in SaveCastMemberInput) (*castmember.CastMember, error) {
	m, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Name = in.Name
	m.Type = in.Type
	m.UpdatedAt = time.Now().UTC()

	if err := m.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error(), nil)
	}
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *CastMemberUseCase) Get(ctx context.Context, id uuid.UUID) (*castmember.CastMember, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *CastMemberUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.SoftDelete(ctx, id)
}

type ListCastMembersOutput struct {
	CastMembers []*castmember.CastMember
	Total       int64
	Page        int
	PerPage     int
}

func (uc *CastMemberUseCase) List(ctx context.Context, params castmember.ListParams) (*ListCastMembersOutput, error) {
	if params.PerPage <= 0 {
		params.PerPage = 15
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	members, total, err := uc.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list cast members failed: %w", err)
	}
	return &ListCastMembersOutput{CastMembers: members, Total: total, Page: params.Page, PerPage: params.PerPage}, nil
}
