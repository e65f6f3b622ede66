package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ice-routes/internal/config"
)

func TestDisabledCache(t *testing.T) {
	c, err := NewRedisCache(config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	var out string
	assert.ErrorIs(t, c.Get(ctx, "k", &out), ErrMiss)
	assert.NoError(t, c.Close())
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *RedisCache
	assert.False(t, c.Enabled())
}

func TestRolloverKey(t *testing.T) {
	assert.Equal(t, "ice:rollover:daily_rollover", RolloverKey("daily_rollover"))
}
