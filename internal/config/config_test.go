package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

// isolate runs the test from an empty directory so no stray .env is loaded.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("ACCOUNT_HANDLE", "dummy")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dummy", cfg.AccountHandle)
	assert.Equal(t, "https://api.twitter.com/1.1", cfg.APIBaseURL)
	assert.Equal(t, 60*time.Second, cfg.APITimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.RunInterval)
	assert.Empty(t, cfg.StoreDriver)
	assert.Equal(t, domain.SearchParams{Count: 10, ResultType: "recent", IncludeEntities: true}, cfg.Search)
	assert.Equal(t, domain.DefaultPostPolicy(), cfg.Policy)
}

func TestLoad_RequiresHandle(t *testing.T) {
	isolate(t)
	t.Setenv("ACCOUNT_HANDLE", "")

	_, err := Load()
	assert.EqualError(t, err, "ACCOUNT_HANDLE is required")
}

func TestLoad_Overrides(t *testing.T) {
	isolate(t)
	t.Setenv("ACCOUNT_HANDLE", "dummy")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("RUN_INTERVAL", "1h")
	t.Setenv("SEARCH_QUERY", "#golang")
	t.Setenv("SEARCH_COUNT", "50")
	t.Setenv("SEARCH_LANG", "fa")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "reshare-bot.db", cfg.DatabaseURL)
	assert.Equal(t, time.Hour, cfg.RunInterval)
	assert.Equal(t, "#golang", cfg.Search.Query)
	assert.Equal(t, 50, cfg.Search.Count)
	assert.Equal(t, "fa", cfg.Search.Lang)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"port":              {"PORT", "abc"},
		"interval":          {"RUN_INTERVAL", "soon"},
		"zero interval":     {"RUN_INTERVAL", "0s"},
		"negative interval": {"RUN_INTERVAL", "-1m"},
		"negative timeout":  {"API_TIMEOUT", "-5s"},
		"negative port":     {"PORT", "-1"},
		"port out of range": {"PORT", "70000"},
		"log level":         {"LOG_LEVEL", "loud"},
		"store driver":      {"STORE_DRIVER", "mongo"},
		"policy file":       {"POLICY_FILE", "missing.yaml"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			t.Setenv("ACCOUNT_HANDLE", "dummy")
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	t.Setenv("ACCOUNT_HANDLE", "from-env")
	require.NoError(t, os.Unsetenv("SEARCH_LANG"))
	t.Cleanup(func() { os.Unsetenv("SEARCH_LANG") })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ACCOUNT_HANDLE=from-file\nSEARCH_LANG=de\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.AccountHandle)
	assert.Equal(t, "de", cfg.Search.Lang)
}

func TestLoadPolicy(t *testing.T) {
	dir := t.TempDir()

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
max_hashtags: 2
blocked_words: ["spam", "giveaway"]
author:
  blocklist: ["666"]
`), 0o600))

		policy, err := LoadPolicy(path)
		require.NoError(t, err)

		want := domain.DefaultPostPolicy()
		want.MaxHashtags = 2
		want.BlockedWords = []string{"spam", "giveaway"}
		want.Author.Blocklist = []string{"666"}
		assert.Equal(t, want, policy)
	})

	t.Run("rejects negative thresholds", func(t *testing.T) {
		path := filepath.Join(dir, "negative.yaml")
		require.NoError(t, os.WriteFile(path, []byte("author:\n  min_followers: -1\n"), 0o600))

		_, err := LoadPolicy(path)
		assert.ErrorContains(t, err, "author.min_followers must not be negative")
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("max_hashtags: [\n"), 0o600))

		_, err := LoadPolicy(path)
		assert.ErrorContains(t, err, "parse policy file")
	})
}
