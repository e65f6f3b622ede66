package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "America/Mexico_City", cfg.Business.Timezone)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.True(t, cfg.Rollover.Lazy)
	assert.False(t, cfg.Auth.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ICE_SERVER_PORT", "9090")
	t.Setenv("ICE_DATABASE_URL", "postgres://other/db")
	t.Setenv("ICE_AUTH_ENABLED", "true")
	t.Setenv("ICE_ROLLOVER_CRON", "0 1 * * *")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "postgres://other/db", cfg.Database.URL)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, "0 1 * * *", cfg.Rollover.Cron)
}
