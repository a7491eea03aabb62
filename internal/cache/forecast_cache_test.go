// internal/cache/forecast_cache_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fermaeda/procurement-backend/internal/config"
)

func TestForecastKey(t *testing.T) {
	date := time.Date(2024, 2, 5, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, "forecast:Wheat bread:2024-02-05", forecastKey("Wheat bread", date))
}

func TestNewForecastCacheDisabled(t *testing.T) {
	c, err := NewForecastCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	_, ok, err := c.Get(context.Background(), "Wheat bread", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNoopCacheNeverHits(t *testing.T) {
	c := NewNoopForecastCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "Wheat bread", time.Now(), 10))

	_, ok, err := c.Get(ctx, "Wheat bread", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.InvalidateProduct(ctx, "Wheat bread"))
	require.NoError(t, c.InvalidateAll(ctx))
}
