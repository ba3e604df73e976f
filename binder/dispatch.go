package binder

import (
	"git.sr.ht/~accesskey/accesskey/lib/dom"
	"git.sr.ht/~accesskey/accesskey/lib/keys"
	"git.sr.ht/~accesskey/accesskey/log"
)

// Binding ties an element declaring a shortcut to its context.
type Binding struct {
	Context *dom.Element
	Element *dom.Element

	binder *Binder
}

func (bd *Binding) Splitter() string {
	if splitter, ok := lookup(bd.Context, bd.Element, AttrSplitter); ok {
		return splitter
	}
	return bd.binder.opts.Splitter
}

// Definition parses the current declaration of the element. It is not
// cached: attribute changes made after Init are honoured.
func (bd *Binding) Definition() keys.Definition {
	return keys.Parse(bd.Element.AccessKey(), bd.Splitter())
}

// HandlerName returns the handler attribute that applies to the binding,
// or an empty string.
func (bd *Binding) HandlerName() string {
	name, _ := lookup(bd.Context, bd.Element, AttrHandler)
	return name
}

func (bd *Binding) StopsPropagation() bool {
	return !flag(bd.Context, bd.Element, AttrNoStopPropagation)
}

func (bd *Binding) PreventsDefault() bool {
	return !flag(bd.Context, bd.Element, AttrNoPreventDefault)
}

// Handler resolves the function to run: the element's named handler,
// then the context's, each looked up in the binder's handlers and then
// in its scope, and finally the default handler.
func (bd *Binding) Handler() Handler {
	b := bd.binder
	for _, el := range chain(bd.Context, bd.Element) {
		name, ok := el.Attribute(AttrHandler)
		if !ok {
			continue
		}
		if fn := b.opts.Handlers[name]; fn != nil {
			return fn
		}
		if fn, ok := b.opts.Scope.LookupHandler(name); ok && fn != nil {
			return fn
		}
		log.Tracef("%s: handler %q not found", el, name)
	}
	return b.opts.Handler
}

func (b *Binder) handle(bd *Binding, ev *dom.Event) {
	def := bd.Definition()
	if !def.Matches(ev) {
		return
	}
	if bd.StopsPropagation() {
		ev.StopPropagation()
	}
	if bd.PreventsDefault() {
		ev.PreventDefault()
	}
	log.Debugf("%s: %s triggered %s", bd.Context, def, bd.Element)
	bd.Handler()(ev, bd.Element, bd.Context)
}
