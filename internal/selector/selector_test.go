package selector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func highlighted(t *testing.T, s *Selector) string {
	t.Helper()
	id, ok := s.Highlighted()
	require.True(t, ok)
	return id
}

func TestMoveUpWraps(t *testing.T) {
	s := New([]string{"a", "b", "c"})
	s.MoveUp()
	require.Equal(t, "c", highlighted(t, s))
	s.MoveUp()
	require.Equal(t, "b", highlighted(t, s))
	s.MoveUp()
	s.MoveUp()
	require.Equal(t, "c", highlighted(t, s))
}

func TestMoveDownFromNothingLandsOnLast(t *testing.T) {
	s := New([]string{"a", "b", "c"})
	s.MoveDown()
	require.Equal(t, "c", highlighted(t, s))
	s.MoveDown()
	require.Equal(t, "a", highlighted(t, s))
	s.MoveDown()
	require.Equal(t, "b", highlighted(t, s))
}

func TestEmptySelectorIgnoresMovement(t *testing.T) {
	s := New(nil)
	s.MoveUp()
	s.MoveDown()
	_, ok := s.Index()
	require.False(t, ok)
}

func TestAppendSelectClear(t *testing.T) {
	s := New([]string{"a", "a", ""})
	require.Equal(t, []string{"a"}, s.IDs())
	require.True(t, s.Append("b"))
	require.False(t, s.Append("b"))

	require.True(t, s.Select("b"))
	require.Equal(t, "b", highlighted(t, s))
	require.False(t, s.Select("zzz"))
	require.Equal(t, "b", highlighted(t, s))

	s.Clear()
	_, ok := s.Highlighted()
	require.False(t, ok)
}
