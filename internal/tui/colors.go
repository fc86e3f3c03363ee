package tui

import (
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// senderPalette is an ANSI 256 palette for sender names. Red and green are
// left out; they carry status meaning.
var senderPalette = []string{
	"33", "39", "45", "69", "75", "81", "87", "99",
	"111", "117", "123", "147", "153", "159", "183", "189",
}

// senderColors gives every sender a stable color. It is only used from the
// bubbletea goroutine.
type senderColors struct {
	cache map[string]lipgloss.Style
}

func newSenderColors() *senderColors {
	return &senderColors{cache: make(map[string]lipgloss.Style, 32)}
}

func (c *senderColors) style(sender string) lipgloss.Style {
	key := strings.ToLower(strings.TrimSpace(sender))
	if style, ok := c.cache[key]; ok {
		return style
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(senderPalette[paletteIndex(key, len(senderPalette))])).
		Bold(true)
	c.cache[key] = style
	return style
}

func paletteIndex(key string, n int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(n))
}
