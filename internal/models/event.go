// Package models defines the transport-neutral types exchanged between the
// chat core and the transports that feed it.
package models

import (
	"errors"
	"fmt"
)

// EventKind categorizes timeline events.
type EventKind string

const (
	EventMessage   EventKind = "message"
	EventEdit      EventKind = "edit"
	EventRedaction EventKind = "redaction"
)

// Valid reports whether k is a known kind.
func (k EventKind) Valid() bool {
	switch k {
	case EventMessage, EventEdit, EventRedaction:
		return true
	default:
		return false
	}
}

var (
	ErrMissingRoom   = errors.New("event room is required")
	ErrMissingID     = errors.New("event id is required")
	ErrMissingTarget = errors.New("event target is required")
	ErrUnknownKind   = errors.New("unknown event kind")
)

// Event is one timeline event as delivered by a transport.
type Event struct {
	// ID is the event's own identifier. For messages it is the message id.
	ID string `json:"id"`

	// Kind selects which of the remaining fields are meaningful.
	Kind EventKind `json:"kind"`

	// Room is the channel the event belongs to.
	Room string `json:"room"`

	// Sender is the display label of the author.
	Sender string `json:"sender,omitempty"`

	// Body is the message text, or the replacement text for edits.
	Body string `json:"body,omitempty"`

	// Target is the message an edit or redaction refers to.
	Target string `json:"target,omitempty"`

	// Timestamp is the server-assigned time in milliseconds.
	Timestamp int64 `json:"ts"`

	// Position is the stream position after this event, when known.
	Position string `json:"position,omitempty"`
}

// Validate checks the fields required by the event's kind.
func (e Event) Validate() error {
	if e.Room == "" {
		return ErrMissingRoom
	}
	switch e.Kind {
	case EventMessage:
		if e.ID == "" {
			return ErrMissingID
		}
	case EventEdit, EventRedaction:
		if e.Target == "" {
			return ErrMissingTarget
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}
	return nil
}
