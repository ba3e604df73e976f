// Package keys parses shortcut declarations such as "ctrl+shift+f2" and
// matches them against keyboard events.
package keys

import (
	"strings"

	"git.sr.ht/~accesskey/accesskey/lib/dom"
)

const DefaultSplitter = "+"

// Definition is a parsed shortcut declaration. Key is upper case; an
// empty Key never matches anything.
type Definition struct {
	Key   string
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
}

// Parse splits raw on splitter. Modifier names are recognized regardless
// of case and every other token is taken as the key. When several
// non-modifier tokens are present, the last one wins.
func Parse(raw, splitter string) Definition {
	var def Definition
	for _, tok := range strings.Split(raw, splitter) {
		switch strings.ToLower(tok) {
		case "ctrl":
			def.Ctrl = true
		case "shift":
			def.Shift = true
		case "alt":
			def.Alt = true
		case "meta":
			def.Meta = true
		default:
			def.Key = strings.ToUpper(tok)
		}
	}
	return def
}

// Matches reports whether ev carries exactly this key and these
// modifiers. A plain key press never matches a definition that requires
// a modifier, and the other way around.
func (d Definition) Matches(ev *dom.Event) bool {
	if d.Key == "" {
		return false
	}
	return strings.ToUpper(ev.Key) == d.Key &&
		ev.CtrlKey == d.Ctrl &&
		ev.ShiftKey == d.Shift &&
		ev.AltKey == d.Alt &&
		ev.MetaKey == d.Meta
}

// FromEvent returns the definition an event would be declared with.
func FromEvent(ev *dom.Event) Definition {
	return Definition{
		Key:   strings.ToUpper(ev.Key),
		Ctrl:  ev.CtrlKey,
		Shift: ev.ShiftKey,
		Alt:   ev.AltKey,
		Meta:  ev.MetaKey,
	}
}

func (d Definition) String() string {
	var parts []string
	if d.Ctrl {
		parts = append(parts, "ctrl")
	}
	if d.Shift {
		parts = append(parts, "shift")
	}
	if d.Alt {
		parts = append(parts, "alt")
	}
	if d.Meta {
		parts = append(parts, "meta")
	}
	if d.Key != "" {
		parts = append(parts, d.Key)
	}
	return strings.Join(parts, DefaultSplitter)
}

// KeyDown builds the keydown event this definition matches.
func (d Definition) KeyDown() *dom.Event {
	key := d.Key
	if len([]rune(key)) == 1 && !d.Shift {
		key = strings.ToLower(key)
	} else if name, ok := eventNames[key]; ok {
		key = name
	}
	return &dom.Event{
		Type:     "keydown",
		Key:      key,
		CtrlKey:  d.Ctrl,
		ShiftKey: d.Shift,
		AltKey:   d.Alt,
		MetaKey:  d.Meta,
	}
}
