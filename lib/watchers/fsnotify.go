package watchers

import (
	"github.com/fsnotify/fsnotify"

	"git.sr.ht/~accesskey/accesskey/log"
)

var logger = log.NewLogger("watchers")

type fsnotifyWatcher struct {
	w      *fsnotify.Watcher
	ch     chan *FSEvent
	filter func(string) bool
}

func newFsnotifyWatcher(filter func(string) bool) (*fsnotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	watcher := &fsnotifyWatcher{
		w:      w,
		ch:     make(chan *FSEvent, 16),
		filter: filter,
	}
	go watcher.watch()
	return watcher, nil
}

func (w *fsnotifyWatcher) watch() {
	defer log.PanicHandler()
	defer close(w.ch)
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if w.filter != nil && !w.filter(ev.Name) {
				continue
			}
			var op FSOperation
			switch {
			case ev.Has(fsnotify.Create):
				op = FSCreate
			case ev.Has(fsnotify.Write):
				op = FSWrite
			case ev.Has(fsnotify.Remove):
				op = FSRemove
			case ev.Has(fsnotify.Rename):
				op = FSRename
			default:
				// chmod
				continue
			}
			w.ch <- &FSEvent{Operation: op, Path: ev.Name}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			logger.Warnf("%v", err)
		}
	}
}

func (w *fsnotifyWatcher) Events() <-chan *FSEvent {
	return w.ch
}

func (w *fsnotifyWatcher) Add(p string) error {
	return w.w.Add(p)
}

func (w *fsnotifyWatcher) Close() error {
	return w.w.Close()
}
