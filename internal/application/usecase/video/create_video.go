package video

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/codeflix/catalog-admin-api/adapters/event"
	"github.com/codeflix/catalog-admin-api/internal/application/service"
	"github.com/codeflix/catalog-admin-api/internal/application/validation"
	"github.com/codeflix/catalog-admin-api/internal/domain/video"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

type CreateVideoUseCase struct {
	saver
}

func NewCreateVideoUseCase(
	r video.Repository,
	rules *validation.VideoRules,
	tx service.Transactor,
	store service.FileStore,
	cache service.VideoCache,
	events event.Publisher,
	log logger.Logger,
) *CreateVideoUseCase {
	return &CreateVideoUseCase{saver{
		videoRepo: r, rules: rules, tx: tx, store: store,
		cache: cache, events: events, logger: log,
	}}
}

func (uc *CreateVideoUseCase) Execute(ctx context.Context, in SaveVideoInput) (*video.Video, error) {
	if err := uc.rules.ValidateRelations(ctx, in.CategoryIDs, in.GenreIDs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	v := &video.Video{
		ID:           uuid.New(),
		Title:        in.Title,
		Description:  in.Description,
		YearLaunched: in.YearLaunched,
		Opened:       in.Opened,
		Rating:       in.Rating,
		Duration:     in.Duration,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := v.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error(), nil)
	}

	uploads, _, err := uc.extractFiles(v, in.Files)
	if err != nil {
		return nil, err
	}

	if err := uc.persist(ctx, v, in, uploads, true); err != nil {
		return nil, err
	}

	uc.publish(event.CatalogEventVideoCreated, v)

	return uc.videoRepo.FindByID(ctx, v.ID)
}
