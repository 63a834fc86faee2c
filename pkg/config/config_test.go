package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "TOKEN_TTL_HOURS", "MEDIA_BACKEND", "SNAPSHOT_INTERVAL", "SEED_DEMO", "REDIS_ADDR"} {
		t.Setenv(key, "")
	}
	cfg := FromEnv()
	require.Equal(t, "8000", cfg.Port)
	require.Equal(t, 72*time.Hour, cfg.TokenTTL)
	require.Equal(t, MediaBackendLocal, cfg.MediaBackend)
	require.Equal(t, 5*time.Minute, cfg.SnapshotInterval)
	require.False(t, cfg.SeedDemo)
	require.Empty(t, cfg.RedisAddr)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MEDIA_BACKEND", MediaBackendGridFS)
	t.Setenv("SNAPSHOT_INTERVAL", "0s")
	t.Setenv("SEED_DEMO", "true")
	t.Setenv("TOKEN_TTL_HOURS", "nope")

	cfg := FromEnv()
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, 72*time.Hour, cfg.TokenTTL)
	require.Equal(t, MediaBackendGridFS, cfg.MediaBackend)
	require.Zero(t, cfg.SnapshotInterval)
	require.True(t, cfg.SeedDemo)
}
