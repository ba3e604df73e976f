// Package app is an interactive terminal viewer for the shortcuts of an
// HTML document. Key presses are sent as keydown events to the focused
// element and every handler that runs is logged on screen.
package app

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"git.sr.ht/~accesskey/accesskey/binder"
	"git.sr.ht/~accesskey/accesskey/config"
	"git.sr.ht/~accesskey/accesskey/lib/dom"
	"git.sr.ht/~accesskey/accesskey/lib/keys"
	"git.sr.ht/~accesskey/accesskey/lib/watchers"
	"git.sr.ht/~accesskey/accesskey/log"
)

const maxHistory = 200

type Options struct {
	// HTML file loaded by Load and watched by Run
	Path string
	// Selector of the element receiving key events. Overrides the
	// focus setting of the configuration.
	Focus string
}

type Viewer struct {
	screen tcell.Screen
	conf   *config.Config
	opts   Options

	doc      *dom.Document
	binder   *binder.Binder
	contexts []*dom.Element
	focus    *dom.Element

	history []string
	fired   int
	quit    bool
}

func New(screen tcell.Screen, conf *config.Config, opts Options) *Viewer {
	if opts.Focus == "" {
		opts.Focus = conf.General.Focus
	}
	return &Viewer{screen: screen, conf: conf, opts: opts}
}

// Load parses the file given in Options.Path.
func (v *Viewer) Load() error {
	f, err := os.Open(v.opts.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := dom.Parse(f)
	if err != nil {
		return errors.Wrapf(err, "load %s", v.opts.Path)
	}
	return v.SetDocument(doc)
}

// registered on every binder, before the [handlers] scope
var builtinHandlers = []string{"log", "quit"}

// SetDocument binds the shortcuts of doc and replaces the current
// document if that succeeds.
func (v *Viewer) SetDocument(doc *dom.Document) error {
	b := binder.New(doc, binder.Options{
		Handler:  v.defaultHandler(),
		Splitter: v.conf.General.Splitter,
		Scope:    binder.ScopeFunc(v.lookupHandler),
	})
	b.RegisterHandler("log", v.logHandler("log")).
		RegisterHandler("quit", v.quitHandler)
	for _, name := range builtinHandlers {
		if _, ok := v.conf.Handlers.Commands[name]; ok {
			v.Printf("warning: [handlers] %s is shadowed by the built-in handler", name)
		}
	}
	if err := b.Init(); err != nil {
		return err
	}
	contexts, err := doc.QuerySelectorAll("[" + binder.AttrContext + "]")
	if err != nil {
		return err
	}
	focus := contexts[0]
	if v.opts.Focus != "" {
		el, err := doc.QuerySelector(v.opts.Focus)
		if err != nil {
			return errors.Wrap(err, "focus")
		}
		if el != nil {
			focus = el
		} else {
			log.Warnf("focus: %q matches nothing", v.opts.Focus)
		}
	}
	v.doc = doc
	v.binder = b
	v.contexts = contexts
	v.focus = focus
	return nil
}

func (v *Viewer) Focus() *dom.Element {
	return v.focus
}

func (v *Viewer) Binder() *binder.Binder {
	return v.binder
}

func (v *Viewer) History() []string {
	return v.history
}

func (v *Viewer) Printf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	log.Infof("%s", line)
	v.history = append(v.history, line)
	if len(v.history) > maxHistory {
		v.history = v.history[len(v.history)-maxHistory:]
	}
}

func (v *Viewer) defaultHandler() binder.Handler {
	switch v.conf.General.DefaultHandler {
	case "log":
		return v.logHandler("default")
	case "none":
		return func(ev *dom.Event, element, context *dom.Element) {
			v.fired++
		}
	default:
		return func(ev *dom.Event, element, context *dom.Element) {
			v.fired++
			v.Printf("%s: click %s", keys.FromEvent(ev), element)
			binder.ClickHandler(ev, element, context)
		}
	}
}

func (v *Viewer) logHandler(name string) binder.Handler {
	return func(ev *dom.Event, element, context *dom.Element) {
		v.fired++
		v.Printf("%s: %s %s in %s", keys.FromEvent(ev), name, element, context)
	}
}

func (v *Viewer) quitHandler(ev *dom.Event, element, context *dom.Element) {
	v.fired++
	v.quit = true
}

// lookupHandler resolves names from the [handlers] section of the
// configuration.
func (v *Viewer) lookupHandler(name string) (binder.Handler, bool) {
	fn, ok := v.conf.Handlers.LookupHandler(name)
	if !ok {
		return nil, false
	}
	return func(ev *dom.Event, element, context *dom.Element) {
		v.fired++
		v.Printf("%s: run %s for %s", keys.FromEvent(ev), name, element)
		fn(ev, element, context)
	}, true
}

func (v *Viewer) nextContext() {
	if len(v.contexts) == 0 {
		return
	}
	next := 0
	for i, ctx := range v.contexts {
		if ctx == v.focus {
			next = (i + 1) % len(v.contexts)
			break
		}
	}
	v.focus = v.contexts[next]
}

// HandleEvent processes one terminal event. It returns true when the
// viewer should exit.
func (v *Viewer) HandleEvent(event tcell.Event) bool {
	switch event := event.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		switch {
		case event.Key() == tcell.KeyCtrlC:
			return true
		case event.Key() == tcell.KeyTab && event.Modifiers() == tcell.ModNone:
			v.nextContext()
			return false
		}
		v.dispatch(keys.FromEventKey(event))
	}
	return v.quit
}

func (v *Viewer) dispatch(ev *dom.Event) {
	if v.doc == nil {
		return
	}
	fired := v.fired
	v.doc.Dispatch(v.focus, ev)
	if v.fired == fired {
		v.Printf("%s: no shortcut", keys.FromEvent(ev))
	}
}

func (v *Viewer) reload(ev *watchers.FSEvent) {
	if ev.Operation == watchers.FSRemove {
		return
	}
	if err := v.Load(); err != nil {
		v.Printf("reload failed: %v", err)
		return
	}
	v.Printf("reloaded %s (%s)", v.opts.Path, ev.Operation)
}

// Run draws the viewer and processes events until the user quits. A nil
// fsEvents channel disables reloading.
func (v *Viewer) Run(fsEvents <-chan *watchers.FSEvent) {
	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	v.Draw()
	for {
		select {
		case event := <-events:
			if v.HandleEvent(event) {
				return
			}
		case ev, ok := <-fsEvents:
			if !ok {
				fsEvents = nil
				continue
			}
			v.reload(ev)
		}
		v.Draw()
	}
}
