package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tOgg1/tchat/internal/mode"
)

// translateKey maps a terminal key event onto the controller's key
// alphabet. A paste arrives as one message with many runes and yields one
// key per rune.
func translateKey(msg tea.KeyMsg) []mode.Key {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return []mode.Key{mode.Code(mode.KeyOther)}
		}
		keys := make([]mode.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, mode.Rune(r))
		}
		return keys
	case tea.KeySpace:
		return []mode.Key{mode.Rune(' ')}
	case tea.KeyEnter:
		return []mode.Key{mode.Code(mode.KeyEnter)}
	case tea.KeyEsc:
		return []mode.Key{mode.Code(mode.KeyEsc)}
	case tea.KeyLeft:
		return []mode.Key{mode.Code(mode.KeyLeft)}
	case tea.KeyRight:
		return []mode.Key{mode.Code(mode.KeyRight)}
	case tea.KeyUp:
		return []mode.Key{mode.Code(mode.KeyUp)}
	case tea.KeyDown:
		return []mode.Key{mode.Code(mode.KeyDown)}
	case tea.KeyBackspace:
		return []mode.Key{mode.Code(mode.KeyBackspace)}
	case tea.KeyHome:
		return []mode.Key{mode.Code(mode.KeyHome)}
	case tea.KeyEnd:
		return []mode.Key{mode.Code(mode.KeyEnd)}
	case tea.KeyCtrlC:
		return []mode.Key{mode.Code(mode.KeyInterrupt)}
	default:
		return []mode.Key{mode.Code(mode.KeyOther)}
	}
}
