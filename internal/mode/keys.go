package mode

import "fmt"

// KeyCode is the terminal-independent key alphabet.
type KeyCode int

const (
	KeyOther KeyCode = iota
	KeyRune
	KeyEnter
	KeyEsc
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyBackspace
	KeyHome
	KeyEnd
	KeyInterrupt
)

// Key is one key event. Rune is only meaningful when Code is KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

// Rune returns a printable-character key.
func Rune(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// Code returns a non-character key.
func Code(c KeyCode) Key { return Key{Code: c} }

func (k Key) String() string {
	switch k.Code {
	case KeyRune:
		return string(k.Rune)
	case KeyEnter:
		return "enter"
	case KeyEsc:
		return "esc"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyBackspace:
		return "backspace"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyInterrupt:
		return "ctrl+c"
	default:
		return fmt.Sprintf("key(%d)", int(k.Code))
	}
}
