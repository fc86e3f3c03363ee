// Package app holds the client's shared state: the reconciled timeline, the
// channel selector, the input buffer and the active mode, all behind one
// lock. Key handling, live ingestion and backfill mutate it; the renderer
// only reads snapshots.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tOgg1/tchat/internal/logging"
	"github.com/tOgg1/tchat/internal/mode"
	"github.com/tOgg1/tchat/internal/models"
	"github.com/tOgg1/tchat/internal/selector"
	"github.com/tOgg1/tchat/internal/textbuf"
	"github.com/tOgg1/tchat/internal/timeline"
)

const (
	defaultBackfillLimit = 20

	// QuitCommand typed as the whole input and submitted shuts the client down.
	QuitCommand = "/quit"
)

// Config tunes the state.
type Config struct {
	// BackfillLimit bounds each history page.
	BackfillLimit int

	// NewestFirst orders snapshot messages newest first.
	NewestFirst bool
}

// State is the single shared application state. Every exported method takes
// the lock for its whole duration; nothing blocks on I/O while holding it.
type State struct {
	mu sync.Mutex

	cfg      Config
	logger   zerolog.Logger
	shutdown context.CancelFunc
	quitting bool

	timeline *timeline.Timeline
	channels *selector.Selector
	input    textbuf.Buffer
	mode     mode.Mode
	current  string
	status   string

	backfilling map[string]bool
}

// New returns an empty state in Normal mode. shutdown is called when the
// user asks to quit; it may be nil.
func New(cfg Config, shutdown context.CancelFunc) *State {
	if cfg.BackfillLimit <= 0 {
		cfg.BackfillLimit = defaultBackfillLimit
	}
	return &State{
		cfg:         cfg,
		logger:      logging.Component("app"),
		shutdown:    shutdown,
		timeline:    timeline.New(),
		channels:    selector.New(nil),
		mode:        mode.Normal{},
		backfilling: make(map[string]bool),
	}
}

// Seed registers the roster. Every room gets the login sync position so its
// first backward fetch starts where live events begin.
func (s *State) Seed(rooms []models.Room, syncPosition string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, room := range rooms {
		ch, _ := s.timeline.Ensure(room.ID, room.Name)
		if ch.SyncPosition() == "" {
			ch.SetSyncPosition(syncPosition)
		}
		s.channels.Append(room.ID)
	}
	s.logger.Debug().Int("rooms", len(rooms)).Str("position", syncPosition).Msg("roster seeded")
}

// Quitting reports whether shutdown was requested.
func (s *State) Quitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quitting
}

// Mode returns the active mode.
func (s *State) Mode() mode.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Current returns the current channel id, or "" when none is selected.
func (s *State) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Status returns the status line text.
func (s *State) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Channel returns a copy of the channel's messages, oldest first.
func (s *State) Channel(id string) ([]timeline.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.timeline.Channel(id)
	if !ok {
		return nil, false
	}
	return ch.Messages(), true
}

// AtTop reports whether the channel's history is fully loaded.
func (s *State) AtTop(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.timeline.Channel(id)
	return ok && ch.AtTop()
}

func (s *State) requestShutdownLocked() {
	if s.quitting {
		return
	}
	s.quitting = true
	s.logger.Info().Msg("shutdown requested")
	if s.shutdown != nil {
		s.shutdown()
	}
}

func (s *State) currentChannelLocked() (*timeline.Channel, bool) {
	if s.current == "" {
		return nil, false
	}
	return s.timeline.Channel(s.current)
}
