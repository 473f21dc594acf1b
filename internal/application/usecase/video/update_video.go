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

type UpdateVideoUseCase struct {
	saver
}

func NewUpdateVideoUseCase(
	r video.Repository,
	rules *validation.VideoRules,
	tx service.Transactor,
	store service.FileStore,
	cache service.VideoCache,
	events event.Publisher,
	log logger.Logger,
) *UpdateVideoUseCase {
	return &UpdateVideoUseCase{saver{
		videoRepo: r, rules: rules, tx: tx, store: store,
		cache: cache, events: events, logger: log,
	}}
}

func (uc *UpdateVideoUseCase) Execute(ctx context.Context, id uuid.UUID, in SaveVideoInput) (*video.Video, error) {
	v, err := uc.videoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.rules.ValidateRelations(ctx, in.CategoryIDs, in.GenreIDs); err != nil {
		return nil, err
	}

	v.Title = in.Title
	v.Description = in.Description
	v.YearLaunched = in.YearLaunched
	v.Opened = in.Opened
	v.Rating = in.Rating
	v.Duration = in.Duration
	v.UpdatedAt = time.Now().UTC()
	if err := v.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error(), nil)
	}

	uploads, replaced, err := uc.extractFiles(v, in.Files)
	if err != nil {
		return nil, err
	}

	if err := uc.persist(ctx, v, in, uploads, false); err != nil {
		return nil, err
	}

	// Old blobs go only after the new state is durable.
	uc.deleteReplaced(ctx, v, replaced)

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, v.ID)
	}
	uc.publish(event.CatalogEventVideoUpdated, v)

	return uc.videoRepo.FindByID(ctx, v.ID)
}
