package store

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tOgg1/tchat/internal/client"
	"github.com/tOgg1/tchat/internal/logging"
	"github.com/tOgg1/tchat/internal/models"
)

// Session is a logged-in user's view of the store. It implements
// client.Client.
type Session struct {
	store    *Store
	user     string
	position string
	logger   zerolog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
	stops  map[int]context.CancelFunc
	nextID int
}

var _ client.Client = (*Session)(nil)
var _ client.Authenticator = (*Store)(nil)

// Login checks creds against the users table and opens a session whose sync
// position is the current end of the event log.
func (s *Store) Login(ctx context.Context, creds client.Credentials) (client.Client, error) {
	var token string
	err := s.db.QueryRowContext(ctx, `SELECT token FROM users WHERE name = ?`, creds.User).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, client.ErrAuthFailed
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(creds.Token)) != 1 {
		return nil, client.ErrAuthFailed
	}

	head, err := s.head(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user", creds.User).
		Str("token", logging.Redact(creds.Token)).
		Int64("position", head).
		Msg("login")

	return &Session{
		store:    s,
		user:     creds.User,
		position: formatPosition(head),
		logger:   logging.Component("session").With().Str("user", creds.User).Logger(),
		stops:    make(map[int]context.CancelFunc),
	}, nil
}

// User returns the logged-in user.
func (c *Session) User() string { return c.user }

// SyncPosition returns the stream position captured at login.
func (c *Session) SyncPosition() string { return c.position }

// Rooms lists the rooms the user has joined.
func (c *Session) Rooms(ctx context.Context) ([]models.Room, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT r.id, r.name FROM rooms r
		JOIN room_members m ON m.room_id = r.id
		WHERE m.user = ?
		ORDER BY r.name, r.id
	`, c.user)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Name); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// Send appends a message to room.
func (c *Session) Send(ctx context.Context, room, body string) (string, error) {
	return c.store.appendEvent(ctx, models.Event{
		Kind:   models.EventMessage,
		Room:   room,
		Sender: c.user,
		Body:   body,
	}, c.user)
}

// Edit appends an edit of one of the user's own messages.
func (c *Session) Edit(ctx context.Context, room, target, body string) (string, error) {
	return c.store.appendEvent(ctx, models.Event{
		Kind:   models.EventEdit,
		Room:   room,
		Sender: c.user,
		Body:   body,
		Target: target,
	}, c.user)
}

// Redact appends a redaction of target.
func (c *Session) Redact(ctx context.Context, room, target string) error {
	_, err := c.store.appendEvent(ctx, models.Event{
		Kind:   models.EventRedaction,
		Room:   room,
		Sender: c.user,
		Target: target,
	}, c.user)
	return err
}

// Close stops every live stream opened by the session and waits for them.
func (c *Session) Close() error {
	c.mu.Lock()
	c.closed = true
	for id, stop := range c.stops {
		stop()
		delete(c.stops, id)
	}
	c.mu.Unlock()
	c.wg.Wait()
	return nil
}

// Subscribe streams events after since from every room
// the user belongs to, including rooms joined later.
func (c *Session) Subscribe(since string) (<-chan models.Event, func()) {
	out := make(chan models.Event, c.store.eventBuffer)
	cursor, err := parsePosition(since)
	if err != nil {
		c.logger.Warn().Err(err).Str("since", since).Msg("invalid stream position; starting at head")
		cursor = -1
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(out)
		return out, func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	id := c.nextID
	c.nextID++
	c.stops[id] = cancel
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		defer close(out)
		c.stream(ctx, cursor, out)
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.stops, id)
			c.mu.Unlock()
			cancel()
		})
	}
	return out, stop
}

func (c *Session) stream(ctx context.Context, cursor int64, out chan<- models.Event) {
	s := c.store
	if cursor < 0 {
		head, err := s.head(ctx)
		if err != nil {
			c.logger.Error().Err(err).Msg("stream head lookup failed")
			return
		}
		cursor = head
	}

	subID, local := s.notify.subscribe()
	defer s.notify.unsubscribe(subID)

	external := make(chan struct{}, 1)
	if err := s.watchDatabase(ctx, external); err != nil {
		c.logger.Warn().Err(err).Msg("file watch unavailable; relying on polling")
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		for {
			events, next, err := s.eventsSince(ctx, c.user, cursor, streamBatchSize)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Warn().Err(err).Int64("cursor", cursor).Msg("stream query failed")
				break
			}
			for _, event := range events {
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
			cursor = next
			if len(events) < streamBatchSize {
				break
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-local:
		case <-external:
		case <-ticker.C:
		}
	}
}

func formatPosition(seq int64) string {
	return strconv.FormatInt(seq, 10)
}

// parsePosition accepts "" as "from the current head" and returns -1 for it.
func parsePosition(pos string) (int64, error) {
	if pos == "" {
		return -1, nil
	}
	seq, err := strconv.ParseInt(pos, 10, 64)
	if err != nil || seq < 0 {
		return 0, fmt.Errorf("invalid position %q", pos)
	}
	return seq, nil
}
