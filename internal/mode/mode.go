// Package mode defines the modal interaction model: the mode variants, the key
// alphabet, and the single (mode, key) dispatch table.
package mode

// Kind identifies the active mode.
type Kind int

const (
	KindNormal Kind = iota
	KindInsert
	KindSelectChannel
	KindScrollMessages
)

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindInsert:
		return "insert"
	case KindSelectChannel:
		return "select-channel"
	case KindScrollMessages:
		return "scroll-messages"
	default:
		return "unknown"
	}
}

// Mode is a tagged variant: each implementation carries only the data its
// mode needs.
type Mode interface {
	Kind() Kind
	Label() string
}

// Normal is the command mode the client starts in.
type Normal struct{}

// Insert routes printable keys into the input buffer.
type Insert struct{}

// SelectChannel moves the channel highlight.
type SelectChannel struct{}

// ScrollMessages walks the current channel's messages. Highlight counts
// from the newest message (0) toward older ones; nil means nothing is
// highlighted yet.
type ScrollMessages struct {
	Highlight *int
}

func (Normal) Kind() Kind         { return KindNormal }
func (Insert) Kind() Kind         { return KindInsert }
func (SelectChannel) Kind() Kind  { return KindSelectChannel }
func (ScrollMessages) Kind() Kind { return KindScrollMessages }

func (Normal) Label() string         { return "NORMAL" }
func (Insert) Label() string         { return "INSERT" }
func (SelectChannel) Label() string  { return "CHANNEL" }
func (ScrollMessages) Label() string { return "SCROLL" }

// Index returns the highlight and whether one is set.
func (s ScrollMessages) Index() (int, bool) {
	if s.Highlight == nil {
		return 0, false
	}
	return *s.Highlight, true
}

// ScrollAt returns a ScrollMessages mode highlighting i.
func ScrollAt(i int) ScrollMessages {
	return ScrollMessages{Highlight: &i}
}
