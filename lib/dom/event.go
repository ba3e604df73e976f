package dom

// Event is a DOM-style event. Keyboard events fill Key and the modifier
// flags, Key following the browser KeyboardEvent.key naming ("a", "F2",
// "Enter", "ArrowUp", ...).
type Event struct {
	Type string

	Key      string
	CtrlKey  bool
	ShiftKey bool
	AltKey   bool
	MetaKey  bool

	Target        *Element
	CurrentTarget *Element

	stopped   bool
	prevented bool
}

func (ev *Event) StopPropagation() {
	ev.stopped = true
}

func (ev *Event) PreventDefault() {
	ev.prevented = true
}

func (ev *Event) PropagationStopped() bool {
	return ev.stopped
}

func (ev *Event) DefaultPrevented() bool {
	return ev.prevented
}
