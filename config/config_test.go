package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: enter dir
// for the duration of the test and restore the previous working directory
// on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	// Load reads a .env from the working directory when one exists; run
	// from an empty directory so only real defaults are asserted.
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "memory", cfg.Store.Type)
	require.Equal(t, 6*time.Hour, cfg.Limiter.EpochLength)
	require.Empty(t, cfg.Limiter.Limits)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FLOWLIMIT_STORE", "redis")
	t.Setenv("FLOWLIMIT_REDIS_ADDR", "redis:6380")
	t.Setenv("FLOWLIMIT_EPOCH", "1h")
	t.Setenv("FLOWLIMIT_LIMITS", "assetA=100,assetB=500")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "redis", cfg.Store.Type)
	require.Equal(t, "redis:6380", cfg.Store.RedisAddr)
	require.Equal(t, time.Hour, cfg.Limiter.EpochLength)
	require.Equal(t, map[string]uint64{"assetA": 100, "assetB": 500}, cfg.Limiter.Limits)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown store", "FLOWLIMIT_STORE", "cassandra"},
		{"bad epoch", "FLOWLIMIT_EPOCH", "soon"},
		{"negative epoch", "FLOWLIMIT_EPOCH", "-1h"},
		{"malformed limits", "FLOWLIMIT_LIMITS", "assetA"},
		{"non-numeric limit", "FLOWLIMIT_LIMITS", "assetA=lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
