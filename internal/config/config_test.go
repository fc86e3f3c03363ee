package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := LoadDefault()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "data", "tchat", "tchat.db"), cfg.Session.Database)
	require.Equal(t, filepath.Join(dir, "state", "tchat", "tchat.log"), cfg.Logging.File)
	require.Equal(t, 10*time.Millisecond, cfg.TUI.RenderInterval)
	require.Equal(t, 20, cfg.Sync.BackfillLimit)
	require.ErrorIs(t, cfg.RequireSession(), ErrMissingUser)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "tchat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
session:
  user: alice
  database: ~/chat.db
sync:
  poll_interval: 250ms
  backfill_limit: 40
tui:
  newest_first: true
`), 0o644))

	t.Setenv("TCHAT_SYNC_BACKFILL_LIMIT", "50")
	t.Setenv("TCHAT_SESSION_TOKEN", "secret")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "alice", cfg.Session.User)
	require.Equal(t, "secret", cfg.Session.Token)
	require.Equal(t, filepath.Join(dir, "chat.db"), cfg.Session.Database)
	require.Equal(t, 250*time.Millisecond, cfg.Sync.PollInterval)
	require.Equal(t, 50, cfg.Sync.BackfillLimit)
	require.True(t, cfg.TUI.NewestFirst)
	require.NoError(t, cfg.RequireSession())
}

func TestFlagOverridesWin(t *testing.T) {
	isolate(t)
	t.Setenv("TCHAT_SESSION_USER", "from-env")

	loader := NewLoader()
	loader.Set("session.user", "from-flag")
	cfg, err := loader.Load()
	require.NoError(t, err)
	require.Equal(t, "from-flag", cfg.Session.User)
}

func TestExplicitMissingFileFails(t *testing.T) {
	dir := isolate(t)
	_, err := LoadFromFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no database", func(c *Config) { c.Session.Database = "" }},
		{"fast poll", func(c *Config) { c.Sync.PollInterval = time.Millisecond }},
		{"zero backfill", func(c *Config) { c.Sync.BackfillLimit = 0 }},
		{"zero buffer", func(c *Config) { c.Sync.EventBuffer = 0 }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
	require.NoError(t, DefaultConfig().Validate())
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Session.Database = filepath.Join(dir, "a", "chat.db")
	cfg.Logging.File = filepath.Join(dir, "b", "chat.log")
	require.NoError(t, cfg.EnsureDirectories())
	require.DirExists(t, filepath.Join(dir, "a"))
	require.DirExists(t, filepath.Join(dir, "b"))
}
