package mode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var allKinds = []Kind{KindNormal, KindInsert, KindSelectChannel, KindScrollMessages}

var sampleKeys = []Key{
	Rune('i'), Rune('C'), Rune('S'), Rune('h'), Rune('l'), Rune('j'), Rune('k'),
	Rune('d'), Rune('x'), Rune('é'), Rune('/'),
	Code(KeyEnter), Code(KeyEsc), Code(KeyLeft), Code(KeyRight), Code(KeyUp),
	Code(KeyDown), Code(KeyBackspace), Code(KeyHome), Code(KeyEnd),
	Code(KeyInterrupt), Code(KeyOther),
}

func TestResolveNormalMode(t *testing.T) {
	require.Equal(t, ActionEnterInsert, Resolve(KindNormal, Rune('i')))
	require.Equal(t, ActionEnterSelectChannel, Resolve(KindNormal, Rune('C')))
	require.Equal(t, ActionEnterScroll, Resolve(KindNormal, Rune('S')))
	require.Equal(t, ActionCursorLeft, Resolve(KindNormal, Rune('h')))
	require.Equal(t, ActionCursorLeft, Resolve(KindNormal, Code(KeyLeft)))
	require.Equal(t, ActionCursorRight, Resolve(KindNormal, Rune('l')))
	require.Equal(t, ActionCursorRight, Resolve(KindNormal, Code(KeyRight)))
	require.Equal(t, ActionSubmit, Resolve(KindNormal, Code(KeyEnter)))
	require.Equal(t, ActionNone, Resolve(KindNormal, Rune('x')))
	require.Equal(t, ActionNone, Resolve(KindNormal, Code(KeyEsc)))
}

func TestResolveInsertMode(t *testing.T) {
	require.Equal(t, ActionLeaveInsert, Resolve(KindInsert, Code(KeyEsc)))
	require.Equal(t, ActionSubmit, Resolve(KindInsert, Code(KeyEnter)))
	require.Equal(t, ActionBackspace, Resolve(KindInsert, Code(KeyBackspace)))
	// Command letters are plain text while inserting.
	require.Equal(t, ActionInsertRune, Resolve(KindInsert, Rune('i')))
	require.Equal(t, ActionInsertRune, Resolve(KindInsert, Rune('h')))
	require.Equal(t, ActionInsertRune, Resolve(KindInsert, Rune('日')))
	require.Equal(t, ActionNone, Resolve(KindInsert, Code(KeyUp)))
}

func TestResolveSelectAndScroll(t *testing.T) {
	require.Equal(t, ActionChannelUp, Resolve(KindSelectChannel, Code(KeyUp)))
	require.Equal(t, ActionChannelDown, Resolve(KindSelectChannel, Rune('j')))
	require.Equal(t, ActionChannelCommit, Resolve(KindSelectChannel, Code(KeyEnter)))
	require.Equal(t, ActionChannelCancel, Resolve(KindSelectChannel, Code(KeyEsc)))
	require.Equal(t, ActionNone, Resolve(KindSelectChannel, Rune('i')))

	require.Equal(t, ActionMessageOlder, Resolve(KindScrollMessages, Rune('k')))
	require.Equal(t, ActionMessageNewer, Resolve(KindScrollMessages, Code(KeyDown)))
	require.Equal(t, ActionRedact, Resolve(KindScrollMessages, Rune('d')))
	require.Equal(t, ActionMessageCancel, Resolve(KindScrollMessages, Code(KeyEsc)))
	require.Equal(t, ActionNone, Resolve(KindScrollMessages, Code(KeyEnter)))
}

func TestResolveIsTotal(t *testing.T) {
	for _, kind := range allKinds {
		for _, key := range sampleKeys {
			action := Resolve(kind, key)
			require.NotEqual(t, "unknown", action.String(), "%s/%s", kind, key)
		}
	}
}

func TestInterruptQuitsEverywhere(t *testing.T) {
	for _, kind := range allKinds {
		require.Equal(t, ActionQuit, Resolve(kind, Code(KeyInterrupt)), kind.String())
	}
}

func TestScrollHighlight(t *testing.T) {
	var s ScrollMessages
	_, ok := s.Index()
	require.False(t, ok)

	s = ScrollAt(3)
	idx, ok := s.Index()
	require.True(t, ok)
	require.Equal(t, 3, idx)
	require.Equal(t, "SCROLL", s.Label())
	require.Equal(t, KindScrollMessages, s.Kind())
}
