package app

import (
	"github.com/tOgg1/tchat/internal/mode"
	"github.com/tOgg1/tchat/internal/textbuf"
)

// ChannelItem is one row of the channel list.
type ChannelItem struct {
	ID          string
	Name        string
	Highlighted bool
	Current     bool
}

// MessageItem is one visible message.
type MessageItem struct {
	ID          string
	Sender      string
	Body        string
	Edited      bool
	Timestamp   int64
	Highlighted bool
}

// ViewModel is an immutable copy of everything the renderer draws.
type ViewModel struct {
	Channels       []ChannelItem
	ChannelIndex   int // -1 when nothing is highlighted
	CurrentChannel string
	CurrentName    string

	// Messages are in display order: newest first when NewestFirst is set.
	Messages    []MessageItem
	NewestFirst bool
	AtTop       bool
	Loading     bool

	Input     string
	CharPos   int
	CursorCol int
	CursorRow int

	Mode      mode.Kind
	ModeLabel string
	Status    string
	Quitting  bool
}

// Snapshot projects the state for a renderer whose input widget is
// inputColumns wide (borders included).
func (s *State) Snapshot(inputColumns int) ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	vm := ViewModel{
		ChannelIndex:   -1,
		CurrentChannel: s.current,
		NewestFirst:    s.cfg.NewestFirst,
		Input:          s.input.Text(),
		CharPos:        s.input.CharPos(),
		Mode:           s.mode.Kind(),
		ModeLabel:      s.mode.Label(),
		Status:         s.status,
		Quitting:       s.quitting,
	}
	vm.CursorCol, vm.CursorRow = textbuf.CursorCell(vm.CharPos, textbuf.InnerWidth(inputColumns))

	highlighted, hasHighlight := s.channels.Highlighted()
	for i, id := range s.channels.IDs() {
		item := ChannelItem{ID: id, Name: id, Current: id == s.current}
		if ch, ok := s.timeline.Channel(id); ok {
			item.Name = ch.DisplayName()
		}
		if hasHighlight && id == highlighted {
			item.Highlighted = true
			vm.ChannelIndex = i
		}
		vm.Channels = append(vm.Channels, item)
	}

	ch, ok := s.currentChannelLocked()
	if !ok {
		return vm
	}
	vm.CurrentName = ch.DisplayName()
	vm.AtTop = ch.AtTop()
	vm.Loading = s.backfilling[ch.ID]

	h, scrolling := -1, false
	if scroll, isScroll := s.mode.(mode.ScrollMessages); isScroll {
		h, scrolling = scroll.Index()
	}

	msgs := ch.Messages()
	n := len(msgs)
	vm.Messages = make([]MessageItem, n)
	for i, m := range msgs {
		newestIndex := n - 1 - i
		slot := i
		if s.cfg.NewestFirst {
			slot = newestIndex
		}
		vm.Messages[slot] = MessageItem{
			ID:          m.ID,
			Sender:      m.Sender,
			Body:        m.Body,
			Edited:      m.Edited,
			Timestamp:   m.Timestamp,
			Highlighted: scrolling && newestIndex == h,
		}
	}
	return vm
}
