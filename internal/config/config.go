// Package config handles tchat configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the root configuration structure for tchat.
type Config struct {
	// Session identifies the user and the server database.
	Session SessionConfig `yaml:"session" mapstructure:"session"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// Sync controls the live stream and history paging.
	Sync SyncConfig `yaml:"sync" mapstructure:"sync"`

	// TUI settings
	TUI TUIConfig `yaml:"tui" mapstructure:"tui"`
}

// SessionConfig holds login credentials and the server location.
type SessionConfig struct {
	// User is the account name to log in as.
	User string `yaml:"user" mapstructure:"user"`

	// Token is the user's access token.
	Token string `yaml:"token" mapstructure:"token"`

	// Database is the SQLite file backing the local server.
	Database string `yaml:"database" mapstructure:"database"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File receives the log; empty disables logging while the UI runs.
	File string `yaml:"file" mapstructure:"file"`
}

// SyncConfig contains live stream and backfill settings.
type SyncConfig struct {
	// PollInterval is the fallback interval for checking new events when no
	// change notification arrives.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// BackfillLimit is the number of events requested per history page.
	BackfillLimit int `yaml:"backfill_limit" mapstructure:"backfill_limit"`

	// EventBuffer is the capacity of the live event channel.
	EventBuffer int `yaml:"event_buffer" mapstructure:"event_buffer"`
}

// TUIConfig contains TUI settings.
type TUIConfig struct {
	// RenderInterval is how often a fresh snapshot is drawn.
	RenderInterval time.Duration `yaml:"render_interval" mapstructure:"render_interval"`

	// NewestFirst lists the newest message at the top.
	NewestFirst bool `yaml:"newest_first" mapstructure:"newest_first"`

	// ShowTimestamps shows message times in the UI.
	ShowTimestamps bool `yaml:"show_timestamps" mapstructure:"show_timestamps"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			Database: filepath.Join(dataHome(), "tchat", "tchat.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(stateHome(), "tchat", "tchat.log"),
		},
		Sync: SyncConfig{
			PollInterval:  2 * time.Second,
			BackfillLimit: 20,
			EventBuffer:   256,
		},
		TUI: TUIConfig{
			RenderInterval: 10 * time.Millisecond,
			NewestFirst:    false,
			ShowTimestamps: true,
		},
	}
}

var (
	ErrMissingUser     = errors.New("session.user is required")
	ErrMissingDatabase = errors.New("session.database is required")
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Session.Database == "" {
		return ErrMissingDatabase
	}
	if c.Sync.PollInterval < 50*time.Millisecond {
		return fmt.Errorf("sync.poll_interval must be at least 50ms")
	}
	if c.Sync.BackfillLimit < 1 || c.Sync.BackfillLimit > 1000 {
		return fmt.Errorf("sync.backfill_limit must be between 1 and 1000")
	}
	if c.Sync.EventBuffer < 1 {
		return fmt.Errorf("sync.event_buffer must be at least 1")
	}
	if c.TUI.RenderInterval < time.Millisecond {
		return fmt.Errorf("tui.render_interval must be at least 1ms")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console")
	}
	return nil
}

// RequireSession checks the fields needed to log in.
func (c *Config) RequireSession() error {
	if c.Session.User == "" {
		return ErrMissingUser
	}
	return nil
}

// EnsureDirectories creates the directories the database and log file live in.
func (c *Config) EnsureDirectories() error {
	for _, path := range []string{c.Session.Database, c.Logging.File} {
		if path == "" {
			continue
		}
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share")
}

func stateHome() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state")
}
