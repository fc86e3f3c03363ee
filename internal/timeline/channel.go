// Package timeline reconciles out-of-order message, edit and redaction events
// into a per-channel ordered, deduplicated message set.
package timeline

import "github.com/tOgg1/tchat/internal/models"

// Message is one reconciled chat message.
type Message struct {
	ID        string
	Sender    string
	Body      string
	Edited    bool
	Timestamp int64

	// EditedAt is the timestamp of the edit currently reflected in Body.
	EditedAt int64
}

// PendingEdit is an edit whose target message has not been seen yet.
type PendingEdit struct {
	Body      string
	Timestamp int64
}

// Change describes the effect of applying one event to a channel.
type Change struct {
	Kind models.EventKind

	// Index is the position in the order sequence that was inserted, edited
	// or removed, or -1 when nothing in the sequence was touched.
	Index int

	// Applied is true when visible state changed.
	Applied bool

	// Pending is true when an edit was parked for a message not yet seen.
	Pending bool
}

// Channel holds one conversation's message order and pagination state.
//
// The order sequence is sorted non-decreasing by timestamp; equal timestamps
// keep insertion order. Every id in the order has exactly one entry in the
// message map and vice versa.
type Channel struct {
	ID   string
	Name string

	order    []string
	messages map[string]*Message
	pending  map[string]PendingEdit

	atTop        bool
	prevToken    string
	syncPosition string
}

// NewChannel returns an empty channel.
func NewChannel(id, name string) *Channel {
	return &Channel{
		ID:       id,
		Name:     name,
		messages: make(map[string]*Message),
		pending:  make(map[string]PendingEdit),
	}
}

// DisplayName returns the channel name, falling back to its id.
func (c *Channel) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// Len returns the number of messages in the channel.
func (c *Channel) Len() int { return len(c.order) }

// At returns the message at order index i (0 = oldest).
func (c *Channel) At(i int) (Message, bool) {
	if i < 0 || i >= len(c.order) {
		return Message{}, false
	}
	return *c.messages[c.order[i]], true
}

// Message returns the message with the given id.
func (c *Channel) Message(id string) (Message, bool) {
	msg, ok := c.messages[id]
	if !ok {
		return Message{}, false
	}
	return *msg, true
}

// Messages returns a copy of the messages, oldest first.
func (c *Channel) Messages() []Message {
	out := make([]Message, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.messages[id])
	}
	return out
}

// Order returns a copy of the ordered message ids.
func (c *Channel) Order() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Pending returns the parked edit for target, if any.
func (c *Channel) Pending(target string) (PendingEdit, bool) {
	pe, ok := c.pending[target]
	return pe, ok
}

// PendingCount returns how many edits are waiting for their target.
func (c *Channel) PendingCount() int { return len(c.pending) }

// ApplyMessage inserts msg unless its id is already known.
//
// The insertion point is found by walking back from the newest entry and
// stopping after the last message whose timestamp is <= msg.Timestamp, so
// live traffic (mostly newest) inserts in O(1) and ties keep arrival order.
// A parked edit for the id is folded in before the message becomes visible.
func (c *Channel) ApplyMessage(msg Message) (int, bool) {
	if msg.ID == "" {
		return -1, false
	}
	if _, ok := c.messages[msg.ID]; ok {
		return -1, false
	}

	stored := msg
	if pe, ok := c.pending[msg.ID]; ok {
		stored.Body = pe.Body
		stored.Edited = true
		stored.EditedAt = pe.Timestamp
		delete(c.pending, msg.ID)
	}

	i := len(c.order)
	for i > 0 && c.messages[c.order[i-1]].Timestamp > stored.Timestamp {
		i--
	}
	c.order = append(c.order, "")
	copy(c.order[i+1:], c.order[i:])
	c.order[i] = stored.ID
	c.messages[stored.ID] = &stored
	return i, true
}

// ApplyEdit replaces the body of target, or parks the edit until target
// arrives. The edit with the larger timestamp wins regardless of arrival
// order. Edits never move a message within the order.
func (c *Channel) ApplyEdit(target, body string, ts int64) Change {
	change := Change{Kind: models.EventEdit, Index: -1}
	if target == "" {
		return change
	}

	if msg, ok := c.messages[target]; ok {
		if msg.Edited && ts < msg.EditedAt {
			return change
		}
		msg.Body = body
		msg.Edited = true
		msg.EditedAt = ts
		change.Index = c.indexOf(target)
		change.Applied = true
		return change
	}

	if existing, ok := c.pending[target]; ok && ts <= existing.Timestamp {
		return change
	}
	c.pending[target] = PendingEdit{Body: body, Timestamp: ts}
	change.Pending = true
	return change
}

// ApplyRedaction removes target from the order and the message map.
// Unknown ids are ignored. No tombstone is kept.
func (c *Channel) ApplyRedaction(target string) (int, bool) {
	if _, ok := c.messages[target]; !ok {
		return -1, false
	}
	i := c.indexOf(target)
	c.order = append(c.order[:i], c.order[i+1:]...)
	delete(c.messages, target)
	return i, true
}

// Apply routes one event to the matching reconciliation step.
func (c *Channel) Apply(e models.Event) Change {
	switch e.Kind {
	case models.EventMessage:
		i, ok := c.ApplyMessage(Message{
			ID:        e.ID,
			Sender:    e.Sender,
			Body:      e.Body,
			Timestamp: e.Timestamp,
		})
		return Change{Kind: e.Kind, Index: i, Applied: ok}
	case models.EventEdit:
		return c.ApplyEdit(e.Target, e.Body, e.Timestamp)
	case models.EventRedaction:
		i, ok := c.ApplyRedaction(e.Target)
		return Change{Kind: e.Kind, Index: i, Applied: ok}
	default:
		return Change{Kind: e.Kind, Index: -1}
	}
}

func (c *Channel) indexOf(id string) int {
	for i := len(c.order) - 1; i >= 0; i-- {
		if c.order[i] == id {
			return i
		}
	}
	return -1
}
