// internal/cache/forecast_cache.go
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fermaeda/procurement-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	forecastKeyPrefix    = "forecast"
	forecastScanBatchLen = 100
)

// ForecastCache memoizes forecast values per (product, target date).
// History writes for a product must invalidate its entries, otherwise a
// recorded sale would not show up in the next recommendation run.
type ForecastCache interface {
	Get(ctx context.Context, product string, date time.Time) (float64, bool, error)
	Set(ctx context.Context, product string, date time.Time, value float64) error
	InvalidateProduct(ctx context.Context, product string) error
	InvalidateAll(ctx context.Context) error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopForecastCache struct{}

func NewForecastCache(cfg config.CacheConfig) (ForecastCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisForecastCache{client: client, ttl: ttl}, nil
}

func NewNoopForecastCache() ForecastCache {
	return &noopForecastCache{}
}

func forecastKey(product string, date time.Time) string {
	return fmt.Sprintf("%s:%s:%s", forecastKeyPrefix, product, date.Format("2006-01-02"))
}

func (c *redisForecastCache) Get(ctx context.Context, product string, date time.Time) (float64, bool, error) {
	raw, err := c.client.Get(ctx, forecastKey(product, date)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get failed: %w", err)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("decode forecast cache: %w", err)
	}
	return value, true, nil
}

func (c *redisForecastCache) Set(ctx context.Context, product string, date time.Time, value float64) error {
	payload := strconv.FormatFloat(value, 'f', -1, 64)
	if err := c.client.Set(ctx, forecastKey(product, date), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisForecastCache) InvalidateProduct(ctx context.Context, product string) error {
	prefix := fmt.Sprintf("%s:%s:", forecastKeyPrefix, product)
	return deleteKeysWithPrefix(ctx, c.client, prefix, forecastScanBatchLen)
}

func (c *redisForecastCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, forecastKeyPrefix+":", forecastScanBatchLen)
}

func (n *noopForecastCache) Get(ctx context.Context, product string, date time.Time) (float64, bool, error) {
	return 0, false, nil
}

func (n *noopForecastCache) Set(ctx context.Context, product string, date time.Time, value float64) error {
	return nil
}

func (n *noopForecastCache) InvalidateProduct(ctx context.Context, product string) error {
	return nil
}

func (n *noopForecastCache) InvalidateAll(ctx context.Context) error {
	return nil
}
