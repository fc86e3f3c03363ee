// Package selector keeps the ordered channel list and its movable highlight.
package selector

// Selector is an ordered list of channel ids with an optional highlight.
// Movement wraps at both ends.
type Selector struct {
	ids       []string
	highlight int // -1 when nothing is highlighted
}

// New returns a selector over ids with nothing highlighted.
func New(ids []string) *Selector {
	s := &Selector{highlight: -1}
	for _, id := range ids {
		s.Append(id)
	}
	return s
}

// Append adds id to the end of the list unless it is already present.
func (s *Selector) Append(id string) bool {
	if id == "" || s.Contains(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Contains reports whether id is in the list.
func (s *Selector) Contains(id string) bool {
	return s.indexOf(id) >= 0
}

// IDs returns a copy of the ordered ids.
func (s *Selector) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of channels.
func (s *Selector) Len() int { return len(s.ids) }

// Index returns the highlighted index and whether one is set.
func (s *Selector) Index() (int, bool) {
	if s.highlight < 0 || s.highlight >= len(s.ids) {
		return 0, false
	}
	return s.highlight, true
}

// Highlighted returns the highlighted channel id, if any.
func (s *Selector) Highlighted() (string, bool) {
	i, ok := s.Index()
	if !ok {
		return "", false
	}
	return s.ids[i], true
}

// MoveUp moves the highlight toward the start, wrapping to the last entry.
// With nothing highlighted it selects the last entry.
func (s *Selector) MoveUp() {
	n := len(s.ids)
	if n == 0 {
		return
	}
	i, ok := s.Index()
	switch {
	case !ok:
		s.highlight = n - 1
	case i == 0:
		s.highlight = n - 1
	default:
		s.highlight = i - 1
	}
}

// MoveDown moves the highlight toward the end, wrapping to the first entry.
// With nothing highlighted it also selects the last entry, mirroring MoveUp.
func (s *Selector) MoveDown() {
	n := len(s.ids)
	if n == 0 {
		return
	}
	i, ok := s.Index()
	switch {
	case !ok:
		s.highlight = n - 1
	case i == n-1:
		s.highlight = 0
	default:
		s.highlight = i + 1
	}
}

// Select highlights id. It returns false if id is unknown.
func (s *Selector) Select(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.highlight = i
	return true
}

// Clear removes the highlight.
func (s *Selector) Clear() { s.highlight = -1 }

func (s *Selector) indexOf(id string) int {
	for i, existing := range s.ids {
		if existing == id {
			return i
		}
	}
	return -1
}
