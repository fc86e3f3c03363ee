// Package store implements a small chat server on a SQLite file. Several
// processes may share one database: the TUI, CLI commands and fixtures all
// read and write the same event log.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/tOgg1/tchat/internal/logging"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultEventBuffer  = 256
	streamBatchSize     = 500
)

var (
	// ErrUserExists is returned when creating a user whose name is taken.
	ErrUserExists = errors.New("user already exists")

	// ErrNotAuthor is returned when editing another user's message.
	ErrNotAuthor = errors.New("only the author can edit a message")
)

// Store is an open chat database.
type Store struct {
	db     *sql.DB
	path   string
	notify *notifier
	logger zerolog.Logger

	pollInterval time.Duration
	eventBuffer  int
	now          func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithPollInterval sets how often live streams re-check the database when
// no change notification arrived.
func WithPollInterval(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithEventBuffer sets the capacity of live stream channels.
func WithEventBuffer(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.eventBuffer = n
		}
	}
}

// WithClock overrides the time source used to stamp new events.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{
		db:           db,
		path:         path,
		notify:       newNotifier(),
		logger:       logging.Component("store"),
		pollInterval: defaultPollInterval,
		eventBuffer:  defaultEventBuffer,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			name TEXT PRIMARY KEY,
			token TEXT NOT NULL UNIQUE,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS room_members (
			room_id TEXT NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
			user TEXT NOT NULL REFERENCES users(name) ON DELETE CASCADE,
			PRIMARY KEY (room_id, user)
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			room_id TEXT NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			sender TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			target TEXT NOT NULL DEFAULT '',
			ts INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS events_room_seq_idx ON events(room_id, seq)`,
		`CREATE INDEX IF NOT EXISTS events_target_idx ON events(target) WHERE target != ''`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// CreateUser registers name and returns a fresh access token. An empty
// token argument generates one.
func (s *Store) CreateUser(ctx context.Context, name, token string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("user name is required")
	}
	if token == "" {
		token = newToken()
	}
	err := s.transaction(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE name = ?`, name).Scan(&exists)
		if err != nil {
			return err
		}
		if exists > 0 {
			return ErrUserExists
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO users (name, token, created_at) VALUES (?, ?, ?)`,
			name, token, s.now().UnixMilli(),
		)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to create user %s: %w", name, err)
	}
	return token, nil
}

// CreateRoom creates the room or renames an existing one.
func (s *Store) CreateRoom(ctx context.Context, id, name string) error {
	if id == "" {
		return errors.New("room id is required")
	}
	return s.transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rooms (id, name) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
			id, name,
		)
		return err
	})
}

// Join adds user to room.
func (s *Store) Join(ctx context.Context, room, user string) error {
	return s.transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO room_members (room_id, user) VALUES (?, ?)`,
			room, user,
		)
		return err
	})
}

func newToken() string {
	return "tct_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func newEventID() string {
	return "$" + uuid.NewString()
}
