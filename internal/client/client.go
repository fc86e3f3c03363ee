// Package client defines the contracts the chat core consumes from a
// transport: login, roster, live events, history pages, send and redact.
package client

import (
	"context"
	"errors"

	"github.com/tOgg1/tchat/internal/models"
)

var (
	// ErrAuthFailed means the credentials were rejected. It is fatal at startup.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrUnknownRoom means the room does not exist or is not joined.
	ErrUnknownRoom = errors.New("unknown room")

	// ErrUnknownEvent means the referenced event does not exist.
	ErrUnknownEvent = errors.New("unknown event")
)

// Credentials identify the account to log in as.
type Credentials struct {
	User  string
	Token string
}

// Authenticator turns stored credentials into a client handle.
type Authenticator interface {
	Login(ctx context.Context, creds Credentials) (Client, error)
}

// Client is an authenticated session.
type Client interface {
	// User returns the logged-in user's label.
	User() string

	// Rooms lists the joined rooms with display names.
	Rooms(ctx context.Context) ([]models.Room, error)

	// SyncPosition returns the stream position at login. Live events start
	// after it and backward history starts before it.
	SyncPosition() string

	// Subscribe streams live events after since and returns a cancel
	// function. The channel closes after cancel is called.
	Subscribe(since string) (<-chan models.Event, func())

	// Messages returns up to limit events before from, newest first.
	// An empty End in the page means the head of history was reached.
	Messages(ctx context.Context, room, from string, limit int) (models.Page, error)

	// Send posts a message and returns its event id.
	Send(ctx context.Context, room, body string) (string, error)

	// Edit replaces the body of a message.
	Edit(ctx context.Context, room, target, body string) (string, error)

	// Redact removes a message.
	Redact(ctx context.Context, room, target string) error

	// Close releases the session.
	Close() error
}
