package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tOgg1/tchat/internal/models"
)

// Fixture describes users, rooms and history to load into a store.
type Fixture struct {
	Users []FixtureUser `yaml:"users"`
	Rooms []FixtureRoom `yaml:"rooms"`
}

// FixtureUser is an account; an empty Token is generated.
type FixtureUser struct {
	Name  string `yaml:"name"`
	Token string `yaml:"token,omitempty"`
}

// FixtureRoom is a room with its members and initial messages.
type FixtureRoom struct {
	ID       string           `yaml:"id"`
	Name     string           `yaml:"name"`
	Members  []string         `yaml:"members"`
	Messages []FixtureMessage `yaml:"messages"`
}

// FixtureMessage is one seeded message. At is optional; messages without it
// are stamped with the load time.
type FixtureMessage struct {
	ID     string    `yaml:"id,omitempty"`
	Sender string    `yaml:"sender"`
	Body   string    `yaml:"body"`
	At     time.Time `yaml:"at,omitempty"`
}

// DecodeFixture parses a YAML fixture, rejecting unknown fields.
func DecodeFixture(r io.Reader) (Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return Fixture{}, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return fx, nil
}

// LoadFixtureFile reads and parses the fixture at path.
func LoadFixtureFile(path string) (Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fixture{}, err
	}
	defer f.Close()
	return DecodeFixture(f)
}

// Validate reports every structural problem in fx. Room members must be
// users of the same fixture and messages must come from members.
func (fx Fixture) Validate() error {
	var problems models.ValidationErrors
	users := make(map[string]bool, len(fx.Users))
	for i, u := range fx.Users {
		field := models.Index("users", i)
		switch {
		case u.Name == "":
			problems.Addf(field+".name", "must not be empty")
		case users[u.Name]:
			problems.Addf(field+".name", "duplicate user %q", u.Name)
		}
		users[u.Name] = true
	}

	rooms := make(map[string]bool, len(fx.Rooms))
	for i, room := range fx.Rooms {
		field := models.Index("rooms", i)
		switch {
		case room.ID == "":
			problems.Addf(field+".id", "must not be empty")
		case rooms[room.ID]:
			problems.Addf(field+".id", "duplicate room %q", room.ID)
		}
		rooms[room.ID] = true

		members := make(map[string]bool, len(room.Members))
		for j, member := range room.Members {
			if !users[member] {
				problems.Addf(models.Index(field+".members", j), "unknown user %q", member)
			}
			members[member] = true
		}
		for j, msg := range room.Messages {
			if !members[msg.Sender] {
				problems.Addf(models.Index(field+".messages", j)+".sender", "%q is not a member", msg.Sender)
			}
		}
	}
	return problems.Err()
}

// Seed loads fx into the store and returns the access token of every user
// it created. Existing users keep their tokens and are skipped.
func (s *Store) Seed(ctx context.Context, fx Fixture) (map[string]string, error) {
	if err := fx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}

	tokens := make(map[string]string)
	for _, u := range fx.Users {
		token, err := s.CreateUser(ctx, u.Name, u.Token)
		if errors.Is(err, ErrUserExists) {
			continue
		}
		if err != nil {
			return nil, err
		}
		tokens[u.Name] = token
	}

	for _, room := range fx.Rooms {
		if err := s.CreateRoom(ctx, room.ID, room.Name); err != nil {
			return nil, fmt.Errorf("failed to create room %s: %w", room.ID, err)
		}
		for _, member := range room.Members {
			if err := s.Join(ctx, room.ID, member); err != nil {
				return nil, fmt.Errorf("failed to add %s to %s: %w", member, room.ID, err)
			}
		}
		for _, msg := range room.Messages {
			event := models.Event{
				ID:     msg.ID,
				Kind:   models.EventMessage,
				Room:   room.ID,
				Sender: msg.Sender,
				Body:   msg.Body,
			}
			if !msg.At.IsZero() {
				event.Timestamp = msg.At.UnixMilli()
			}
			if _, err := s.appendEvent(ctx, event, msg.Sender); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info().
		Int("users", len(fx.Users)).
		Int("rooms", len(fx.Rooms)).
		Msg("fixture loaded")
	return tokens, nil
}
