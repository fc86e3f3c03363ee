package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/tOgg1/tchat/internal/client"
	"github.com/tOgg1/tchat/internal/models"
)

const eventColumns = `seq, id, room_id, kind, sender, body, target, ts`

// appendEvent validates event against the log and stores it with a fresh id
// and timestamp. actor must be a member of the room.
func (s *Store) appendEvent(ctx context.Context, event models.Event, actor string) (string, error) {
	if event.ID == "" {
		event.ID = newEventID()
	}
	if event.Timestamp == 0 {
		event.Timestamp = s.now().UnixMilli()
	}
	if err := event.Validate(); err != nil {
		return "", err
	}

	err := s.transaction(ctx, func(tx *sql.Tx) error {
		if err := requireMember(ctx, tx, event.Room, actor); err != nil {
			return err
		}
		if event.Kind != models.EventMessage {
			if err := checkTarget(ctx, tx, event, actor); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO events (id, room_id, kind, sender, body, target, ts)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, event.ID, event.Room, string(event.Kind), event.Sender, event.Body, event.Target, event.Timestamp)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to store %s in %s: %w", event.Kind, event.Room, err)
	}

	s.logger.Debug().
		Str("room", event.Room).
		Str("kind", string(event.Kind)).
		Str("event_id", event.ID).
		Msg("event stored")
	s.notify.publish()
	return event.ID, nil
}

func requireMember(ctx context.Context, tx *sql.Tx, room, user string) error {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM room_members WHERE room_id = ? AND user = ?`,
		room, user,
	).Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		return client.ErrUnknownRoom
	}
	return nil
}

// checkTarget requires an edit or redaction to point at a message of the
// same room. Only the author may edit.
func checkTarget(ctx context.Context, tx *sql.Tx, event models.Event, actor string) error {
	var sender string
	err := tx.QueryRowContext(ctx,
		`SELECT sender FROM events WHERE id = ? AND room_id = ? AND kind = ?`,
		event.Target, event.Room, string(models.EventMessage),
	).Scan(&sender)
	if errors.Is(err, sql.ErrNoRows) {
		return client.ErrUnknownEvent
	}
	if err != nil {
		return err
	}
	if event.Kind == models.EventEdit && sender != actor {
		return ErrNotAuthor
	}
	return nil
}

// head returns the position of the newest event, 0 for an empty log.
func (s *Store) head(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM events`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to read stream head: %w", err)
	}
	return seq.Int64, nil
}

// eventsSince returns up to limit events after cursor from rooms user has
// joined, oldest first, and the cursor to continue from.
func (s *Store) eventsSince(ctx context.Context, user string, cursor int64, limit int) ([]models.Event, int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE seq > ?
		  AND room_id IN (SELECT room_id FROM room_members WHERE user = ?)
		ORDER BY seq
		LIMIT ?
	`, cursor, user, limit)
	if err != nil {
		return nil, cursor, err
	}
	defer rows.Close()

	events, last, err := scanEvents(rows)
	if err != nil {
		return nil, cursor, err
	}
	if len(events) > 0 {
		cursor = last
	}
	return events, cursor, nil
}

// Messages returns one backward page of room history at or before the
// position from, newest first. Messages that were later redacted, and edits
// of them, are left out. Limits below one are treated as one.
func (c *Session) Messages(ctx context.Context, room, from string, limit int) (models.Page, error) {
	s := c.store
	if limit < 1 {
		limit = 1
	}
	upper, err := parsePosition(from)
	if err != nil {
		return models.Page{}, err
	}
	if upper < 0 {
		if upper, err = s.head(ctx); err != nil {
			return models.Page{}, err
		}
	}

	var member int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM room_members WHERE room_id = ? AND user = ?`,
		room, c.user,
	).Scan(&member)
	if err != nil {
		return models.Page{}, fmt.Errorf("failed to check membership: %w", err)
	}
	if member == 0 {
		return models.Page{}, client.ErrUnknownRoom
	}

	// Fetch one extra row to learn whether an older page exists.
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events e
		WHERE e.room_id = ?
		  AND e.seq <= ?
		  AND e.kind IN ('message', 'edit')
		  AND NOT EXISTS (
			SELECT 1 FROM events r
			WHERE r.kind = 'redaction'
			  AND r.room_id = e.room_id
			  AND r.target = CASE e.kind WHEN 'message' THEN e.id ELSE e.target END
		  )
		ORDER BY e.seq DESC
		LIMIT ?
	`, room, upper, limit+1)
	if err != nil {
		return models.Page{}, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	events, _, err := scanEvents(rows)
	if err != nil {
		return models.Page{}, err
	}

	page := models.Page{Events: events}
	if len(events) > limit {
		page.Events = events[:limit]
		oldest, _ := strconv.ParseInt(page.Events[limit-1].Position, 10, 64)
		page.End = formatPosition(oldest - 1)
	}
	return page, nil
}

func scanEvents(rows *sql.Rows) ([]models.Event, int64, error) {
	var (
		events []models.Event
		last   int64
	)
	for rows.Next() {
		var (
			seq   int64
			event models.Event
			kind  string
		)
		if err := rows.Scan(&seq, &event.ID, &event.Room, &kind, &event.Sender, &event.Body, &event.Target, &event.Timestamp); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		event.Kind = models.EventKind(kind)
		event.Position = formatPosition(seq)
		events = append(events, event)
		last = seq
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, last, nil
}
