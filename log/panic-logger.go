package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"
)

// UICleanup restores the terminal before a crash report is printed.
var UICleanup = func() {}

// PanicHandler must be deferred at the top of every goroutine. On panic
// it restores the terminal, saves a crash report in the temp dir and
// panics again with the same value.
func PanicHandler() {
	r := recover()
	if r == nil {
		return
	}
	UICleanup()

	now := time.Now()
	path := filepath.Join(os.TempDir(), now.Format("accesskey-crash-20060102-150405.log"))
	f, err := os.OpenFile(path, os.O_SYNC|os.O_APPEND|os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		panic(r)
	}
	writeCrashReport(f, now, r, debug.Stack())
	f.Close()

	fmt.Fprint(os.Stderr, panicMessage)
	fmt.Fprintf(os.Stderr, "panic: %v\ncrash report: %s\n", r, path)
	panic(r)
}

func writeCrashReport(w io.Writer, now time.Time, r any, stack []byte) {
	rule := strings.Repeat("#", 72)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "accesskey %s crashed at %s\n", BuildInfo, now.Format(time.RFC3339Nano))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "panic: %v\n\n", r)
	w.Write(stack) //nolint:errcheck // already crashing
}

const panicMessage = `
accesskey has encountered a critical error and has terminated. A handler
bound to a shortcut most likely panicked.
`
