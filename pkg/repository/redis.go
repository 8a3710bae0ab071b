package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/example/fastbite/pkg/config"
)

const (
	menuItemsKey  = "menu:items"
	menuCombosKey = "menu:combos"

	menuCacheTTL = 10 * time.Minute
)

// RedisRepository caches read-heavy menu responses. Cache misses and
// Redis failures are non-fatal; callers fall through to MySQL.
type RedisRepository struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		config: cfg,
	}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisRepository) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (r *RedisRepository) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// CacheMenuItems caches the unfiltered food item listing.
func (r *RedisRepository) CacheMenuItems(ctx context.Context, value interface{}) error {
	return r.SetJSON(ctx, menuItemsKey, value, menuCacheTTL)
}

func (r *RedisRepository) GetMenuItems(ctx context.Context, dest interface{}) error {
	return r.GetJSON(ctx, menuItemsKey, dest)
}

// CacheMenuCombos caches the combo listing.
func (r *RedisRepository) CacheMenuCombos(ctx context.Context, value interface{}) error {
	return r.SetJSON(ctx, menuCombosKey, value, menuCacheTTL)
}

func (r *RedisRepository) GetMenuCombos(ctx context.Context, dest interface{}) error {
	return r.GetJSON(ctx, menuCombosKey, dest)
}

// InvalidateMenu drops cached listings after an admin catalog write.
func (r *RedisRepository) InvalidateMenu(ctx context.Context) error {
	return r.Del(ctx, menuItemsKey, menuCombosKey)
}
