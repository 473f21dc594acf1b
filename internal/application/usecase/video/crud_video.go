package video

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/codeflix/catalog-admin-api/adapters/event"
	"github.com/codeflix/catalog-admin-api/internal/application/service"
	"github.com/codeflix/catalog-admin-api/internal/domain/video"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

// Get

type GetVideoUseCase struct {
	videoRepo video.Repository
	cache     service.VideoCache
}

func NewGetVideoUseCase(r video.Repository, cache service.VideoCache) *GetVideoUseCase {
	return &GetVideoUseCase{videoRepo: r, cache: cache}
}

func (uc *GetVideoUseCase) Execute(ctx context.Context, id uuid.UUID) (*video.Video, error) {
	if uc.cache != nil {
		if v, ok := uc.cache.Get(ctx, id); ok {
			return v, nil
		}
	}
	v, err := uc.videoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, v)
	}
	return v, nil
}

// List

type ListVideosUseCase struct {
	videoRepo video.Repository
}

func NewListVideosUseCase(r video.Repository) *ListVideosUseCase {
	return &ListVideosUseCase{videoRepo: r}
}

type ListVideosOutput struct {
	Videos  []*video.Video
	Total   int64
	Page    int
	PerPage int
}

func (uc *ListVideosUseCase) Execute(ctx context.Context, params video.ListParams) (*ListVideosOutput, error) {
	if params.PerPage <= 0 {
		params.PerPage = 15
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	videos, total, err := uc.videoRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list videos failed: %w", err)
	}
	return &ListVideosOutput{Videos: videos, Total: total, Page: params.Page, PerPage: params.PerPage}, nil
}

// Delete (soft): the row keeps its file references, so blobs stay in place.

type DeleteVideoUseCase struct {
	videoRepo video.Repository
	cache     service.VideoCache
	events    event.Publisher
	logger    logger.Logger
}

func NewDeleteVideoUseCase(r video.Repository, cache service.VideoCache, events event.Publisher, log logger.Logger) *DeleteVideoUseCase {
	return &DeleteVideoUseCase{videoRepo: r, cache: cache, events: events, logger: log}
}

func (uc *DeleteVideoUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	v, err := uc.videoRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.videoRepo.SoftDelete(ctx, v.ID); err != nil {
		return err
	}
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, v.ID)
	}
	if uc.events != nil {
		go func() {
			payload := event.CatalogEventPayload{
				EventType: event.CatalogEventVideoDeleted,
				VideoID:   v.ID,
				Title:     v.Title,
			}
			if err := uc.events.PublishCatalogEvent(context.Background(), payload); err != nil {
				uc.logger.Error("failed to publish catalog event", err)
			}
		}()
	}
	return nil
}
