package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/codeflix/catalog-admin-api/internal/domain/video"
)

// VideoCache is a best-effort read cache; misses and errors fall through to
// the repository.
type VideoCache interface {
	Get(ctx context.Context, id uuid.UUID) (*video.Video, bool)
	Set(ctx context.Context, v *video.Video)
	Invalidate(ctx context.Context, id uuid.UUID)
}
