package textbuf

import (
	"math/rand"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func requireConsistent(t *testing.T, b *Buffer) {
	t.Helper()
	text := b.Text()
	require.True(t, utf8.ValidString(text), "text must stay valid UTF-8")
	require.GreaterOrEqual(t, b.BytePos(), 0)
	require.LessOrEqual(t, b.BytePos(), len(text))
	if b.BytePos() < len(text) {
		require.True(t, utf8.RuneStart(text[b.BytePos()]), "byte_pos %d is not on a boundary", b.BytePos())
	}
	require.Equal(t, utf8.RuneCountInString(text[:b.BytePos()]), b.CharPos())
}

func TestInsertAdvancesByEncodedLength(t *testing.T) {
	var b Buffer
	b.InsertRune('a')
	require.Equal(t, 1, b.BytePos())
	require.Equal(t, 1, b.CharPos())

	b.InsertRune('é')
	require.Equal(t, 3, b.BytePos())
	require.Equal(t, 2, b.CharPos())

	b.InsertRune('🦀')
	require.Equal(t, 7, b.BytePos())
	require.Equal(t, 3, b.CharPos())
	require.Equal(t, "aé🦀", b.Text())
	requireConsistent(t, &b)
}

func TestInsertInMiddle(t *testing.T) {
	b := New("hllo")
	for i := 0; i < 3; i++ {
		b.MoveLeft()
	}
	b.InsertRune('e')
	require.Equal(t, "hello", b.Text())
	require.Equal(t, 2, b.CharPos())

	b.MoveHome()
	b.InsertRune('ß')
	require.Equal(t, "ßhello", b.Text())
	require.Equal(t, 2, b.BytePos())
	requireConsistent(t, b)
}

func TestDeleteBeforeCursorMultiByte(t *testing.T) {
	b := New("añ🙂")
	b.DeleteBeforeCursor()
	require.Equal(t, "añ", b.Text())
	require.Equal(t, 3, b.BytePos())
	require.Equal(t, 2, b.CharPos())

	b.MoveLeft()
	b.DeleteBeforeCursor()
	require.Equal(t, "ñ", b.Text())
	require.Equal(t, 0, b.BytePos())
	require.Equal(t, 0, b.CharPos())
	requireConsistent(t, b)
}

func TestNoOpsAtExtents(t *testing.T) {
	var b Buffer
	b.DeleteBeforeCursor()
	b.MoveLeft()
	b.MoveRight()
	require.Equal(t, "", b.Text())
	require.Equal(t, 0, b.BytePos())
	require.Equal(t, 0, b.CharPos())

	b.InsertRune('日')
	b.MoveRight()
	require.Equal(t, 3, b.BytePos())
	require.Equal(t, 1, b.CharPos())

	b.MoveHome()
	b.DeleteBeforeCursor()
	b.MoveLeft()
	require.Equal(t, "日", b.Text())
	require.Equal(t, 0, b.BytePos())
}

func TestInvalidRuneStoredAsReplacement(t *testing.T) {
	var b Buffer
	b.InsertRune(0xD800)
	require.Equal(t, string(utf8.RuneError), b.Text())
	require.Equal(t, 1, b.CharPos())
	requireConsistent(t, &b)
}

func TestClearResetsPositions(t *testing.T) {
	b := New("héllo")
	b.MoveLeft()
	b.Clear()
	require.True(t, b.Empty())
	require.Equal(t, 0, b.BytePos())
	require.Equal(t, 0, b.CharPos())
}

func TestCorruptTextScanTerminates(t *testing.T) {
	b := &Buffer{text: []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80}}
	b.MoveEnd()
	steps := 0
	for b.BytePos() > 0 {
		b.MoveLeft()
		steps++
		require.LessOrEqual(t, steps, 6)
	}
	for b.BytePos() < 6 {
		b.MoveRight()
		steps++
		require.LessOrEqual(t, steps, 12)
	}
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	alphabet := []rune{'a', 'z', ' ', 'é', 'ß', '日', '本', '🙂', '🦀', 'ﬀ'}
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		var b Buffer
		for op := 0; op < 200; op++ {
			switch rng.Intn(6) {
			case 0, 1:
				b.InsertRune(alphabet[rng.Intn(len(alphabet))])
			case 2:
				b.DeleteBeforeCursor()
			case 3:
				b.MoveLeft()
			case 4:
				b.MoveRight()
			case 5:
				if rng.Intn(4) == 0 {
					b.MoveHome()
				} else {
					b.MoveEnd()
				}
			}
			requireConsistent(t, &b)
		}
	}
}
