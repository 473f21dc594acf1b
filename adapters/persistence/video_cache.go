package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/codeflix/catalog-admin-api/internal/application/service"
	"github.com/codeflix/catalog-admin-api/internal/domain/video"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

const videoCacheTTL = 5 * time.Minute

// redisVideoCache is best-effort: every failure is logged and treated as a
// miss so reads always have the repository to fall back on.
type redisVideoCache struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewRedisVideoCache(rdb *redis.Client, log logger.Logger) service.VideoCache {
	return &redisVideoCache{rdb: rdb, logger: log}
}

func videoCacheKey(id uuid.UUID) string {
	return "video:" + id.String()
}

func (c *redisVideoCache) Get(ctx context.Context, id uuid.UUID) (*video.Video, bool) {
	data, err := c.rdb.Get(ctx, videoCacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("video cache read failed", zap.String("video_id", id.String()), zap.Error(err))
		}
		return nil, false
	}
	v := &video.Video{}
	if err := json.Unmarshal(data, v); err != nil {
		c.logger.Warn("video cache entry corrupt", zap.String("video_id", id.String()), zap.Error(err))
		return nil, false
	}
	return v, true
}

func (c *redisVideoCache) Set(ctx context.Context, v *video.Video) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("video cache marshal failed", zap.String("video_id", v.ID.String()), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, videoCacheKey(v.ID), data, videoCacheTTL).Err(); err != nil {
		c.logger.Warn("video cache write failed", zap.String("video_id", v.ID.String()), zap.Error(err))
	}
}

func (c *redisVideoCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.rdb.Del(ctx, videoCacheKey(id)).Err(); err != nil {
		c.logger.Warn("video cache invalidation failed", zap.String("video_id", id.String()), zap.Error(err))
	}
}
