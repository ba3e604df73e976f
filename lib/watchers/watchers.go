package watchers

import (
	"path/filepath"
)

// FSWatcher is a file system watcher
type FSWatcher interface {
	Events() <-chan *FSEvent
	// Adds a directory or file to the watcher
	Add(string) error
	Close() error
}

type FSOperation int

const (
	FSCreate FSOperation = iota
	FSWrite
	FSRemove
	FSRename
)

func (op FSOperation) String() string {
	switch op {
	case FSCreate:
		return "create"
	case FSWrite:
		return "write"
	case FSRemove:
		return "remove"
	case FSRename:
		return "rename"
	}
	return "unknown"
}

type FSEvent struct {
	Operation FSOperation
	Path      string
}

// WatchFile watches the directory containing path and only reports
// events about path itself. Editors often replace files by renaming a
// temporary one over them, which a watch on the file alone would miss.
func WatchFile(path string) (FSWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := newFsnotifyWatcher(func(name string) bool {
		return filepath.Clean(name) == abs
	})
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}
