package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundlens/backend/pkg/config"
)

func TestDisabledClient(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{Enabled: false},
	}

	client, err := New(cfg)
	require.NoError(t, err)
	assert.False(t, client.Enabled())

	// All cache operations are no-ops when disabled
	cache := NewCache(client, "fundlens")
	ctx := context.Background()

	found, err := cache.Get(ctx, "portfolio:summary", &struct{}{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "portfolio:summary", map[string]int{"count": 3}, time.Minute))
	require.NoError(t, cache.Delete(ctx, "portfolio:summary"))
	require.NoError(t, cache.InvalidatePrefix(ctx))
}

func TestCacheGetOrSetDisabled(t *testing.T) {
	client := &Client{enabled: false}
	cache := NewCache(client, "fundlens")

	calls := 0
	var dest map[string]float64
	err := cache.GetOrSet(context.Background(), "benchmarks:arr", &dest, time.Minute, func() (interface{}, error) {
		calls++
		return map[string]float64{"p50": 1200000}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls, "populate function should run on miss")
	assert.Equal(t, 1200000.0, dest["p50"])
}

func TestCacheRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	cfg := &config.Config{
		Redis: config.RedisConfig{
			Host:    "localhost",
			Port:    "6379",
			Enabled: true,
		},
	}

	client, err := New(cfg)
	require.NoError(t, err, "redis connection failed")
	defer client.Close()

	cache := NewCache(client, "fundlens-test")
	ctx := context.Background()

	type summary struct {
		Metric string  `json:"metric"`
		Sum    float64 `json:"sum"`
	}

	original := summary{Metric: "revenue", Sum: 600}
	require.NoError(t, cache.Set(ctx, "summary:revenue", original, time.Minute))

	var decoded summary
	found, err := cache.Get(ctx, "summary:revenue", &decoded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, original, decoded)

	require.NoError(t, cache.InvalidatePrefix(ctx))
	found, err = cache.Get(ctx, "summary:revenue", &decoded)
	require.NoError(t, err)
	assert.False(t, found)
}
