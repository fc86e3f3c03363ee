package app

import (
	"context"
	"fmt"

	"github.com/tOgg1/tchat/internal/client"
	"github.com/tOgg1/tchat/internal/mode"
)

// Request is network work produced by a key press. It runs outside the
// state lock; its result is applied under the lock afterwards.
type Request interface {
	Describe() string
}

// SendRequest posts Body to Room.
type SendRequest struct {
	Room string
	Body string
}

// RedactRequest removes Target from Room.
type RedactRequest struct {
	Room   string
	Target string
}

// BackfillRequest fetches the page of Room's history before From.
type BackfillRequest struct {
	Room  string
	From  string
	Limit int
}

func (r SendRequest) Describe() string     { return "send to " + r.Room }
func (r RedactRequest) Describe() string   { return "redact " + r.Target }
func (r BackfillRequest) Describe() string { return "backfill " + r.Room }

// Execute performs req against c and applies the outcome. Failures leave the
// timeline untouched; they are logged and shown on the status line, and
// nothing is retried.
func (s *State) Execute(ctx context.Context, c client.Client, req Request) error {
	var err error
	switch r := req.(type) {
	case SendRequest:
		_, err = c.Send(ctx, r.Room, r.Body)
	case RedactRequest:
		err = c.Redact(ctx, r.Room, r.Target)
		if err == nil {
			s.applyRedacted(r)
		}
	case BackfillRequest:
		err = s.backfill(ctx, c, r)
	default:
		err = fmt.Errorf("unsupported request %T", req)
	}
	if err != nil {
		s.fail(req, err)
	}
	return err
}

func (s *State) fail(req Request, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = fmt.Sprintf("%s failed: %v", req.Describe(), err)
	s.logger.Warn().Err(err).Str("request", req.Describe()).Msg("request failed")
}

func (s *State) applyRedacted(r RedactRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The live stream may already have delivered the redaction.
	ch, ok := s.timeline.Channel(r.Room)
	if !ok {
		return
	}
	before := ch.Len()
	i, removed := ch.ApplyRedaction(r.Target)
	if removed {
		s.trackRemovalLocked(ch.ID, i, before)
	}
}

func (s *State) backfill(ctx context.Context, c client.Client, r BackfillRequest) error {
	page, err := c.Messages(ctx, r.Room, r.From, r.Limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.backfilling, r.Room)
	if err != nil {
		return err
	}

	ch, ok := s.timeline.Channel(r.Room)
	if !ok {
		return nil
	}
	before := ch.Len()
	for _, change := range ch.ApplyPage(page) {
		before = s.trackChangeLocked(ch.ID, change, before)
	}
	s.logger.Debug().
		Str("room", r.Room).
		Int("events", len(page.Events)).
		Bool("at_top", ch.AtTop()).
		Msg("backfill applied")

	// The key press that asked for more history moves on once it arrived.
	if s.current != r.Room {
		return nil
	}
	if scroll, ok := s.mode.(mode.ScrollMessages); ok {
		h, set := scroll.Index()
		switch {
		case !set && ch.Len() > 0:
			s.mode = mode.ScrollAt(0)
		case set && h+1 < ch.Len():
			s.mode = mode.ScrollAt(h + 1)
		}
	}
	return nil
}
