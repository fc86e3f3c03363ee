package app

import (
	"github.com/tOgg1/tchat/internal/mode"
)

// HandleKey runs one mode transition for key and returns the network work
// it produced. Keys without a binding in the current mode change nothing.
func (s *State) HandleKey(key mode.Key) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	action := mode.Resolve(s.mode.Kind(), key)
	if action != mode.ActionNone && action != mode.ActionInsertRune {
		s.logger.Debug().
			Str("mode", s.mode.Kind().String()).
			Str("key", key.String()).
			Str("action", action.String()).
			Msg("key")
	}
	return s.applyLocked(action, key)
}

func (s *State) applyLocked(action mode.Action, key mode.Key) []Request {
	switch action {
	case mode.ActionQuit:
		s.requestShutdownLocked()

	case mode.ActionEnterInsert:
		s.mode = mode.Insert{}
	case mode.ActionLeaveInsert:
		s.mode = mode.Normal{}
	case mode.ActionEnterSelectChannel:
		s.mode = mode.SelectChannel{}
	case mode.ActionEnterScroll:
		if s.current != "" {
			s.mode = mode.ScrollMessages{}
		}

	case mode.ActionSubmit:
		return s.submitLocked()
	case mode.ActionInsertRune:
		s.input.InsertRune(key.Rune)
	case mode.ActionBackspace:
		s.input.DeleteBeforeCursor()
	case mode.ActionCursorLeft:
		s.input.MoveLeft()
	case mode.ActionCursorRight:
		s.input.MoveRight()
	case mode.ActionCursorHome:
		s.input.MoveHome()
	case mode.ActionCursorEnd:
		s.input.MoveEnd()

	case mode.ActionChannelUp:
		s.channels.MoveUp()
	case mode.ActionChannelDown:
		s.channels.MoveDown()
	case mode.ActionChannelCommit:
		if id, ok := s.channels.Highlighted(); ok {
			s.current = id
			s.status = ""
		}
		s.mode = mode.Normal{}
	case mode.ActionChannelCancel:
		s.current = ""
		s.channels.Clear()
		s.mode = mode.Normal{}

	case mode.ActionMessageOlder:
		return s.scrollOlderLocked()
	case mode.ActionMessageNewer:
		s.scrollNewerLocked()
	case mode.ActionMessageCancel:
		s.mode = mode.Normal{}
	case mode.ActionRedact:
		return s.redactHighlightedLocked()
	}
	return nil
}

func (s *State) submitLocked() []Request {
	text := s.input.Text()
	if text == QuitCommand {
		s.requestShutdownLocked()
		return nil
	}
	if text == "" {
		return nil
	}
	s.input.Clear()
	if s.current == "" {
		return nil
	}
	return []Request{SendRequest{Room: s.current, Body: text}}
}

// scrollOlderLocked moves the highlight one message back in time. At the
// oldest loaded message it asks for the previous history page instead,
// unless history is exhausted or a fetch is already in flight.
func (s *State) scrollOlderLocked() []Request {
	scroll, ok := s.mode.(mode.ScrollMessages)
	if !ok {
		return nil
	}
	ch, ok := s.currentChannelLocked()
	if !ok {
		return nil
	}

	n := ch.Len()
	h, set := scroll.Index()
	switch {
	case !set && n > 0:
		s.mode = mode.ScrollAt(0)
		return nil
	case set && h+1 < n:
		s.mode = mode.ScrollAt(h + 1)
		return nil
	}

	if !ch.CanBackfill() || s.backfilling[ch.ID] {
		return nil
	}
	s.backfilling[ch.ID] = true
	return []Request{BackfillRequest{
		Room:  ch.ID,
		From:  ch.BackfillFrom(),
		Limit: s.cfg.BackfillLimit,
	}}
}

func (s *State) scrollNewerLocked() {
	scroll, ok := s.mode.(mode.ScrollMessages)
	if !ok {
		return
	}
	if h, set := scroll.Index(); set && h > 0 {
		s.mode = mode.ScrollAt(h - 1)
	}
}

func (s *State) redactHighlightedLocked() []Request {
	scroll, ok := s.mode.(mode.ScrollMessages)
	if !ok {
		return nil
	}
	h, set := scroll.Index()
	if !set {
		return nil
	}
	ch, ok := s.currentChannelLocked()
	if !ok {
		return nil
	}
	msg, ok := ch.At(ch.Len() - 1 - h)
	if !ok {
		return nil
	}
	return []Request{RedactRequest{Room: ch.ID, Target: msg.ID}}
}
