package timeline

import "github.com/tOgg1/tchat/internal/models"

// Timeline owns every channel seen during the session, in roster order.
// Channels are created lazily and never removed.
type Timeline struct {
	channels map[string]*Channel
	order    []string
}

// New returns an empty timeline.
func New() *Timeline {
	return &Timeline{channels: make(map[string]*Channel)}
}

// Ensure returns the channel for id, creating it if needed. A non-empty
// name replaces the current name, so the roster can label channels first
// created by live events.
func (t *Timeline) Ensure(id, name string) (*Channel, bool) {
	if ch, ok := t.channels[id]; ok {
		if name != "" {
			ch.Name = name
		}
		return ch, false
	}
	ch := NewChannel(id, name)
	t.channels[id] = ch
	t.order = append(t.order, id)
	return ch, true
}

// Channel returns the channel for id.
func (t *Timeline) Channel(id string) (*Channel, bool) {
	ch, ok := t.channels[id]
	return ch, ok
}

// IDs returns channel ids in the order they were first seen.
func (t *Timeline) IDs() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Apply routes a live event to its channel, creating the channel on first
// reference. created reports whether the channel is new.
func (t *Timeline) Apply(e models.Event) (change Change, created bool) {
	ch, created := t.Ensure(e.Room, "")
	return ch.Apply(e), created
}
