package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventValidate(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  error
	}{
		{name: "message ok", event: Event{Kind: EventMessage, Room: "r", ID: "m1"}},
		{name: "edit ok", event: Event{Kind: EventEdit, Room: "r", Target: "m1"}},
		{name: "missing room", event: Event{Kind: EventMessage, ID: "m1"}, want: ErrMissingRoom},
		{name: "message without id", event: Event{Kind: EventMessage, Room: "r"}, want: ErrMissingID},
		{name: "redaction without target", event: Event{Kind: EventRedaction, Room: "r"}, want: ErrMissingTarget},
		{name: "unknown kind", event: Event{Kind: "reaction", Room: "r"}, want: ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestRoomDisplayName(t *testing.T) {
	require.Equal(t, "general", Room{ID: "!abc", Name: "general"}.DisplayName())
	require.Equal(t, "!abc", Room{ID: "!abc"}.DisplayName())
}
