package keys

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"git.sr.ht/~accesskey/accesskey/lib/dom"
)

// Key names follow KeyboardEvent.key. KeyBS and KeyTAB alias KeyCtrlH
// and KeyCtrlI, which is why they are listed here and not derived from
// the control range below.
var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "Tab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyEscape:     "Escape",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyUp:         "ArrowUp",
	tcell.KeyDown:       "ArrowDown",
	tcell.KeyLeft:       "ArrowLeft",
	tcell.KeyRight:      "ArrowRight",
	tcell.KeyHelp:       "Help",
	tcell.KeyPause:      "Pause",
	tcell.KeyPrint:      "PrintScreen",
	tcell.KeyClear:      "Clear",
	tcell.KeyCancel:     "Cancel",
}

// With ModCtrl set these are read as the letter, not as the named key
// sharing their code.
var ctrlAliases = map[tcell.Key]bool{
	tcell.KeyCtrlH: true,
	tcell.KeyCtrlI: true,
	tcell.KeyCtrlM: true,
}

// upper case name -> KeyboardEvent.key name
var eventNames = map[string]string{}

// upper case name -> tcell key
var tcellKeys = map[string]tcell.Key{}

func init() {
	for k, name := range keyNames {
		upper := strings.ToUpper(name)
		eventNames[upper] = name
		if _, ok := tcellKeys[upper]; !ok || k == tcell.KeyTab || k == tcell.KeyBackspace2 {
			tcellKeys[upper] = k
		}
	}
	for k := tcell.KeyF1; k <= tcell.KeyF64; k++ {
		name := "F" + strconv.Itoa(int(k-tcell.KeyF1)+1)
		eventNames[name] = name
		tcellKeys[name] = k
	}
}

// FromEventKey converts a terminal key event into a keydown event.
// Control codes become their letter with CtrlKey set and upper case
// runes imply ShiftKey, which is what a browser reports for the same
// key presses.
func FromEventKey(ev *tcell.EventKey) *dom.Event {
	mods := ev.Modifiers()
	out := &dom.Event{
		Type:     "keydown",
		CtrlKey:  mods&tcell.ModCtrl != 0,
		ShiftKey: mods&tcell.ModShift != 0,
		AltKey:   mods&tcell.ModAlt != 0,
		MetaKey:  mods&tcell.ModMeta != 0,
	}
	k := ev.Key()
	name, named := keyNames[k]
	switch {
	case out.CtrlKey && ctrlAliases[k]:
		out.Key = string(rune('a' + int(k-tcell.KeyCtrlA)))
	case k == tcell.KeyRune:
		r := ev.Rune()
		out.Key = string(r)
		if unicode.IsUpper(r) {
			out.ShiftKey = true
		}
	case named:
		out.Key = name
		if k == tcell.KeyBacktab {
			out.ShiftKey = true
		}
	case k >= tcell.KeyF1 && k <= tcell.KeyF64:
		out.Key = fmt.Sprintf("F%d", int(k-tcell.KeyF1)+1)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		out.Key = string(rune('a' + int(k-tcell.KeyCtrlA)))
		out.CtrlKey = true
	case k == tcell.KeyCtrlSpace:
		out.Key = " "
		out.CtrlKey = true
	default:
		out.Key = "Unidentified"
	}
	return out
}

// EventKey builds the terminal key event a user would type for d.
func (d Definition) EventKey() *tcell.EventKey {
	var mods tcell.ModMask
	if d.Ctrl {
		mods |= tcell.ModCtrl
	}
	if d.Shift {
		mods |= tcell.ModShift
	}
	if d.Alt {
		mods |= tcell.ModAlt
	}
	if d.Meta {
		mods |= tcell.ModMeta
	}
	if k, ok := tcellKeys[d.Key]; ok {
		return tcell.NewEventKey(k, 0, mods)
	}
	runes := []rune(d.Key)
	if len(runes) != 1 {
		return tcell.NewEventKey(tcell.KeyRune, unicode.ReplacementChar, mods)
	}
	r := runes[0]
	if d.Ctrl && r >= 'A' && r <= 'Z' {
		return tcell.NewEventKey(tcell.KeyCtrlA+tcell.Key(r-'A'), r, mods)
	}
	if !d.Shift {
		r = unicode.ToLower(r)
	}
	return tcell.NewEventKey(tcell.KeyRune, r, mods)
}
