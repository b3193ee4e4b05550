package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/logger"
)

const generationKey = "feed:global:gen"

// FeedCache 在 Redis 中缓存全局 feed 的每一页。
// key 中带有代数，写操作 INCR 代数即让所有旧页失效，旧 key 靠 TTL 过期。
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ service.FeedCache = (*FeedCache)(nil)

func NewFeedCache(client *redis.Client, ttl time.Duration) *FeedCache {
	if ttl <= 0 {
		ttl = 20 * time.Second
	}
	return &FeedCache{client: client, ttl: ttl}
}

func (c *FeedCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func pageKey(gen int64, page int) string {
	return fmt.Sprintf("feed:global:%d:%d", gen, page)
}

func (c *FeedCache) GetGlobal(ctx context.Context, page int) (*service.PostPage, int64, bool) {
	gen, err := c.generation(ctx)
	if err != nil {
		logger.Warn("feed cache generation read failed", zap.Error(err))
		return nil, -1, false
	}
	data, err := c.client.Get(ctx, pageKey(gen, page)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("feed cache read failed", zap.Error(err))
		}
		return nil, gen, false
	}
	var out service.PostPage
	if err := json.Unmarshal(data, &out); err != nil {
		logger.Warn("feed cache entry corrupt", zap.Error(err))
		return nil, gen, false
	}
	return &out, gen, true
}

// SetGlobal 写入 gen 代的 key。gen 若已被 Invalidate 推进，这个 key 不会再被读到，
// 只等 TTL 过期。
func (c *FeedCache) SetGlobal(ctx context.Context, gen int64, page int, p *service.PostPage) {
	if gen < 0 {
		return
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, pageKey(gen, page), payload, c.ttl).Err(); err != nil {
		logger.Warn("feed cache write failed", zap.Error(err))
	}
}

func (c *FeedCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		logger.Error("feed cache invalidation failed", zap.Error(err))
	}
}
