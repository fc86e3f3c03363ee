package app

import (
	"context"

	"github.com/tOgg1/tchat/internal/client"
	"github.com/tOgg1/tchat/internal/mode"
	"github.com/tOgg1/tchat/internal/models"
	"github.com/tOgg1/tchat/internal/timeline"
)

// Bootstrap loads the roster from c and seeds the state with it.
func (s *State) Bootstrap(ctx context.Context, c client.Client) error {
	rooms, err := c.Rooms(ctx)
	if err != nil {
		return err
	}
	s.Seed(rooms, c.SyncPosition())
	return nil
}

// Sync subscribes to c's live stream from the login position and applies
// events until ctx ends or the stream closes.
func (s *State) Sync(ctx context.Context, c client.Client) error {
	events, cancel := c.Subscribe(c.SyncPosition())
	defer cancel()
	return s.Ingest(ctx, events)
}

// Ingest drains events, applying each under the lock. It returns when ctx
// is done or events is closed.
func (s *State) Ingest(ctx context.Context, events <-chan models.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			s.ApplyEvent(event)
		}
	}
}

// ApplyEvent reconciles one live event.
func (s *State) ApplyEvent(event models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := event.Validate(); err != nil {
		s.logger.Warn().Err(err).Str("event_id", event.ID).Msg("dropping invalid event")
		return
	}

	ch, created := s.timeline.Ensure(event.Room, "")
	if created {
		s.channels.Append(ch.ID)
	}
	if ch.SyncPosition() == "" && event.Position != "" {
		ch.SetSyncPosition(event.Position)
	}

	before := ch.Len()
	change := ch.Apply(event)
	s.trackChangeLocked(ch.ID, change, before)

	if change.Pending {
		s.logger.Debug().Str("room", ch.ID).Str("target", event.Target).Msg("edit parked until target arrives")
	}
}

// trackChangeLocked keeps the scroll highlight on the same logical message
// after change was applied to room, whose length was before. It returns the
// length after the change so page application can chain calls.
func (s *State) trackChangeLocked(room string, change timeline.Change, before int) int {
	if !change.Applied || change.Index < 0 {
		return before
	}
	switch change.Kind {
	case models.EventMessage:
		s.trackInsertLocked(room, change.Index, before)
		return before + 1
	case models.EventRedaction:
		s.trackRemovalLocked(room, change.Index, before)
		return before - 1
	default:
		return before
	}
}

func (s *State) trackInsertLocked(room string, index, before int) {
	h, ok := s.highlightIn(room)
	if !ok {
		return
	}
	s.mode = mode.ScrollAt(shiftForInsert(h, index, before))
}

func (s *State) trackRemovalLocked(room string, index, before int) {
	h, ok := s.highlightIn(room)
	if !ok {
		return
	}
	next, keep := shiftForRemoval(h, index, before)
	if !keep {
		s.mode = mode.ScrollMessages{}
		return
	}
	s.mode = mode.ScrollAt(next)
}

func (s *State) highlightIn(room string) (int, bool) {
	if room != s.current {
		return 0, false
	}
	scroll, ok := s.mode.(mode.ScrollMessages)
	if !ok {
		return 0, false
	}
	return scroll.Index()
}

// shiftForInsert maps a newest-first highlight h over a channel of length
// before onto the same message after an insertion at order index i.
// Inserting after the highlighted message (newer) pushes it one step further
// from the newest end; inserting at or before it leaves the offset alone.
func shiftForInsert(h, i, before int) int {
	q := before - 1 - h
	if i > q {
		return h + 1
	}
	return h
}

// shiftForRemoval maps h after removing order index i. When the highlighted
// message itself goes, the highlight moves to its older neighbour, or to
// the new oldest message; keep is false once the channel is empty.
func shiftForRemoval(h, i, before int) (next int, keep bool) {
	after := before - 1
	if after <= 0 {
		return 0, false
	}
	q := before - 1 - h
	if i > q {
		h--
	}
	if h < 0 {
		h = 0
	}
	if h > after-1 {
		h = after - 1
	}
	return h, true
}
