// Package binder binds keyboard shortcuts declared with the accesskey
// attribute to handler functions, scoped to the context containers of a
// document.
//
// A context is any element carrying accesskey-context. Every element with
// an accesskey attribute belongs to its nearest enclosing context; a
// nested context shadows its children from the outer one. Keydown events
// that reach a context and match one of its shortcuts run the handler
// resolved for that shortcut.
package binder

import (
	"errors"

	"git.sr.ht/~accesskey/accesskey/lib/dom"
	"git.sr.ht/~accesskey/accesskey/lib/keys"
	"git.sr.ht/~accesskey/accesskey/log"
)

var (
	ErrNoContexts  = errors.New("no accesskey contexts found")
	ErrInitialized = errors.New("accesskey binder already initialized")
)

// Handler runs when a shortcut matches. element is the element declaring
// the shortcut and context the container it is bound to.
type Handler func(ev *dom.Event, element, context *dom.Element)

// HandlerScope resolves handler names that were not registered on the
// binder itself.
type HandlerScope interface {
	LookupHandler(name string) (Handler, bool)
}

type ScopeFunc func(name string) (Handler, bool)

func (f ScopeFunc) LookupHandler(name string) (Handler, bool) {
	return f(name)
}

type emptyScope struct{}

func (emptyScope) LookupHandler(string) (Handler, bool) {
	return nil, false
}

// ClickHandler simulates a click on the element. This is the default.
func ClickHandler(ev *dom.Event, element, context *dom.Element) {
	element.Click()
}

type Options struct {
	// Used when neither the element nor its context names a handler
	// that can be resolved. Defaults to ClickHandler.
	Handler Handler
	// Separator of the tokens of a shortcut declaration. Defaults to
	// keys.DefaultSplitter.
	Splitter string
	// Named handlers, looked up before Scope.
	Handlers map[string]Handler
	Scope    HandlerScope
}

type Binder struct {
	doc         *dom.Document
	opts        Options
	bindings    []*Binding
	initialized bool
}

func New(doc *dom.Document, opts Options) *Binder {
	if opts.Handler == nil {
		opts.Handler = ClickHandler
	}
	if opts.Splitter == "" {
		opts.Splitter = keys.DefaultSplitter
	}
	handlers := make(map[string]Handler, len(opts.Handlers))
	for name, fn := range opts.Handlers {
		handlers[name] = fn
	}
	opts.Handlers = handlers
	if opts.Scope == nil {
		opts.Scope = emptyScope{}
	}
	return &Binder{doc: doc, opts: opts}
}

// SetGlobalHandler replaces the default handler. nil restores
// ClickHandler.
func (b *Binder) SetGlobalHandler(fn Handler) *Binder {
	if fn == nil {
		fn = ClickHandler
	}
	b.opts.Handler = fn
	return b
}

func (b *Binder) RegisterHandler(name string, fn Handler) *Binder {
	b.opts.Handlers[name] = fn
	return b
}

// SetGlobalSplitter changes the default token separator. Use it when the
// shortcut itself needs the "+" key.
func (b *Binder) SetGlobalSplitter(splitter string) *Binder {
	b.opts.Splitter = splitter
	return b
}

// Bindings returns the shortcuts found by Init, in document order of
// their contexts.
func (b *Binder) Bindings() []*Binding {
	return b.bindings
}

// Init scans the document once and attaches one keydown listener per
// bound element to its context. Later changes to the document structure
// are not picked up.
func (b *Binder) Init() error {
	if b.initialized {
		return ErrInitialized
	}
	contexts, err := b.doc.QuerySelectorAll("[" + AttrContext + "]")
	if err != nil {
		return err
	}
	if len(contexts) == 0 {
		return ErrNoContexts
	}
	b.initialized = true

	for _, context := range contexts {
		elements, err := context.QuerySelectorAll("[" + AttrAccessKey + "]")
		if err != nil {
			return err
		}
		for _, element := range elements {
			// elements of nested contexts are bound when scanning those
			if element.AncestorWithAttribute(AttrContext) != context {
				continue
			}
			if flag(context, element, AttrIgnore) {
				log.Debugf("%s: ignoring %s", context, element)
				continue
			}
			b.bind(context, element)
		}
	}
	log.Infof("bound %d shortcuts in %d contexts", len(b.bindings), len(contexts))
	return nil
}

func (b *Binder) bind(context, element *dom.Element) {
	bd := &Binding{Context: context, Element: element, binder: b}
	context.AddEventListener("keydown", func(ev *dom.Event) {
		b.handle(bd, ev)
	})
	b.bindings = append(b.bindings, bd)
	if log.Enabled(log.DEBUG) {
		log.Debugf("%s: bound %s to %s", context, bd.Definition(), element)
	}
}
