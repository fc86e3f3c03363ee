package mode

// Action is what a key means in a given mode. The caller owns the state and
// performs the action; this package only decides which one applies.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionEnterInsert
	ActionEnterSelectChannel
	ActionEnterScroll
	ActionLeaveInsert
	ActionSubmit
	ActionInsertRune
	ActionBackspace
	ActionCursorLeft
	ActionCursorRight
	ActionCursorHome
	ActionCursorEnd
	ActionChannelUp
	ActionChannelDown
	ActionChannelCommit
	ActionChannelCancel
	ActionMessageOlder
	ActionMessageNewer
	ActionMessageCancel
	ActionRedact
)

var actionNames = map[Action]string{
	ActionNone:               "none",
	ActionQuit:               "quit",
	ActionEnterInsert:        "enter-insert",
	ActionEnterSelectChannel: "enter-select-channel",
	ActionEnterScroll:        "enter-scroll",
	ActionLeaveInsert:        "leave-insert",
	ActionSubmit:             "submit",
	ActionInsertRune:         "insert-rune",
	ActionBackspace:          "backspace",
	ActionCursorLeft:         "cursor-left",
	ActionCursorRight:        "cursor-right",
	ActionCursorHome:         "cursor-home",
	ActionCursorEnd:          "cursor-end",
	ActionChannelUp:          "channel-up",
	ActionChannelDown:        "channel-down",
	ActionChannelCommit:      "channel-commit",
	ActionChannelCancel:      "channel-cancel",
	ActionMessageOlder:       "message-older",
	ActionMessageNewer:       "message-newer",
	ActionMessageCancel:      "message-cancel",
	ActionRedact:             "redact",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// binding is a (mode, key) pair. Rune is zero for non-character keys.
type binding struct {
	kind Kind
	code KeyCode
	r    rune
}

func runeKey(kind Kind, r rune) binding     { return binding{kind: kind, code: KeyRune, r: r} }
func codeKey(kind Kind, c KeyCode) binding { return binding{kind: kind, code: c} }

var bindings = map[binding]Action{
	runeKey(KindNormal, 'i'):      ActionEnterInsert,
	runeKey(KindNormal, 'C'):      ActionEnterSelectChannel,
	runeKey(KindNormal, 'S'):      ActionEnterScroll,
	runeKey(KindNormal, 'h'):      ActionCursorLeft,
	runeKey(KindNormal, 'l'):      ActionCursorRight,
	codeKey(KindNormal, KeyLeft):  ActionCursorLeft,
	codeKey(KindNormal, KeyRight): ActionCursorRight,
	codeKey(KindNormal, KeyEnter): ActionSubmit,

	codeKey(KindInsert, KeyEsc):       ActionLeaveInsert,
	codeKey(KindInsert, KeyEnter):     ActionSubmit,
	codeKey(KindInsert, KeyLeft):      ActionCursorLeft,
	codeKey(KindInsert, KeyRight):     ActionCursorRight,
	codeKey(KindInsert, KeyHome):      ActionCursorHome,
	codeKey(KindInsert, KeyEnd):       ActionCursorEnd,
	codeKey(KindInsert, KeyBackspace): ActionBackspace,

	codeKey(KindSelectChannel, KeyUp):    ActionChannelUp,
	codeKey(KindSelectChannel, KeyDown):  ActionChannelDown,
	runeKey(KindSelectChannel, 'k'):      ActionChannelUp,
	runeKey(KindSelectChannel, 'j'):      ActionChannelDown,
	codeKey(KindSelectChannel, KeyEnter): ActionChannelCommit,
	codeKey(KindSelectChannel, KeyEsc):   ActionChannelCancel,

	codeKey(KindScrollMessages, KeyUp):   ActionMessageOlder,
	codeKey(KindScrollMessages, KeyDown): ActionMessageNewer,
	runeKey(KindScrollMessages, 'k'):     ActionMessageOlder,
	runeKey(KindScrollMessages, 'j'):     ActionMessageNewer,
	runeKey(KindScrollMessages, 'd'):     ActionRedact,
	codeKey(KindScrollMessages, KeyEsc):  ActionMessageCancel,
}

// Resolve returns the action key triggers in kind. It is total: any pair not
// bound returns ActionNone, which callers treat as "stay in the current mode".
func Resolve(kind Kind, key Key) Action {
	if key.Code == KeyInterrupt {
		return ActionQuit
	}
	b := binding{kind: kind, code: key.Code}
	if key.Code == KeyRune {
		b.r = key.Rune
	}
	if action, ok := bindings[b]; ok {
		return action
	}
	if kind == KindInsert && key.Code == KeyRune {
		return ActionInsertRune
	}
	return ActionNone
}
