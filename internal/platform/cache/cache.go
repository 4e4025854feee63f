package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/config"
	"go.uber.org/zap"
)

// NewRedisClient は redis 設定からクライアントを生成します。
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// QueryCache はエンティティ単位で世代管理する読み取りキャッシュです。
// 書き込みがあると Invalidate で世代を進め、そのエンティティの既存キーをすべて無効にします。
// Redis の障害時は常にストアへフォールバックします。
type QueryCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// New は QueryCache を生成します。
func New(client redis.Cmdable, prefix string, ttl time.Duration, logger *zap.Logger) *QueryCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryCache{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (c *QueryCache) generationKey(entity string) string {
	return fmt.Sprintf("%s:%s:gen", c.prefix, entity)
}

func (c *QueryCache) dataKey(entity, generation, key string) string {
	return fmt.Sprintf("%s:%s:g%s:%s", c.prefix, entity, generation, key)
}

func (c *QueryCache) generation(ctx context.Context, entity string) (string, error) {
	gen, err := c.client.Get(ctx, c.generationKey(entity)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return gen, err
}

// Invalidate はエンティティの世代を進めます。
func (c *QueryCache) Invalidate(ctx context.Context, entity string) error {
	if c == nil {
		return nil
	}
	if err := c.client.Incr(ctx, c.generationKey(entity)).Err(); err != nil {
		return fmt.Errorf("cache: invalidate %s: %w", entity, err)
	}
	c.logger.Debug("cache invalidated", zap.String("entity", entity))
	return nil
}

// Fetch はキャッシュから値を取得し、無ければ load の結果を保存して返します。
// load のエラーはキャッシュしません。
func Fetch[T any](ctx context.Context, c *QueryCache, entity, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}

	gen, err := c.generation(ctx, entity)
	if err != nil {
		c.logger.Warn("cache generation lookup failed", zap.String("entity", entity), zap.Error(err))
		return load(ctx)
	}
	dataKey := c.dataKey(entity, gen, key)

	raw, err := c.client.Get(ctx, dataKey).Bytes()
	switch {
	case err == nil:
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		c.logger.Warn("cache entry is corrupted", zap.String("key", dataKey))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("cache read failed", zap.String("key", dataKey), zap.Error(err))
		return load(ctx)
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("key", dataKey), zap.Error(err))
		return value, nil
	}
	if err := c.client.Set(ctx, dataKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", dataKey), zap.Error(err))
	}
	return value, nil
}
