package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults fill missing keys", func(t *testing.T) {
		// Given: a config with only the redis host
		path := writeConfig(t, "redis:\n  host: cache\n")

		// When: loading it
		conf, err := Load(path)

		// Then: everything else falls back to defaults
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, LeaderboardRedis, conf.Leaderboard)
		assert.Equal(t, 10, conf.LeaderboardLimit)
		assert.Equal(t, 500*time.Millisecond, conf.Bot.ThinkingDelay)
		assert.Equal(t, "easy", conf.Bot.Difficulty)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "bot:\n  thinking-delay: 1s\n")
		t.Setenv("BOT_THINKING_DELAY", "0s")
		t.Setenv("LEADERBOARD_STORAGE", LeaderboardSQLite)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), conf.Bot.ThinkingDelay)
		assert.Equal(t, LeaderboardSQLite, conf.Leaderboard)
	})

	t.Run("Unknown leaderboard storage", func(t *testing.T) {
		path := writeConfig(t, "leaderboard-storage: mongo\n")

		_, err := Load(path)

		require.Error(t, err)
	})

	t.Run("MustLoad panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
