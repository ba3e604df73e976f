package log

import (
	"fmt"
	"io"
	"log"
	"strings"
)

type LogLevel int

const (
	TRACE LogLevel = 5
	DEBUG LogLevel = 10
	INFO  LogLevel = 20
	WARN  LogLevel = 30
	ERROR LogLevel = 40
)

var levels = []LogLevel{TRACE, DEBUG, INFO, WARN, ERROR}

func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "trace"
	case DEBUG:
		return "debug"
	case INFO:
		return "info"
	case WARN:
		return "warn"
	case ERROR:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// prefix is the fixed width tag starting every line of that level
func (l LogLevel) prefix() string {
	return fmt.Sprintf("%-6s", strings.ToUpper(l.String()))
}

var (
	// nil when logging is disabled
	outputs  map[LogLevel]*log.Logger
	minLevel LogLevel = TRACE

	// set at build time by the main package
	BuildInfo string
)

// Init sets the destination of all loggers. A nil writer discards
// everything.
func Init(w io.Writer, level LogLevel) {
	minLevel = level
	if w == nil {
		outputs = nil
		return
	}
	flags := log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile
	outputs = make(map[LogLevel]*log.Logger, len(levels))
	for _, l := range levels {
		outputs[l] = log.New(w, l.prefix(), flags)
	}
}

func ParseLevel(value string) (LogLevel, error) {
	switch strings.ToLower(value) {
	case "trace":
		return TRACE, nil
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "err", "error":
		return ERROR, nil
	}
	return 0, fmt.Errorf("%s: invalid log level", value)
}

// Enabled reports whether messages of level are written anywhere. Use it
// to skip building expensive arguments.
func Enabled(level LogLevel) bool {
	return outputs != nil && level >= minLevel
}

type Logger interface {
	Tracef(string, ...any)
	Debugf(string, ...any)
	Infof(string, ...any)
	Warnf(string, ...any)
	Errorf(string, ...any)
}

type logger struct {
	name string
	// frames between the caller and Output
	depth int
}

// NewLogger returns a logger tagging its messages with [name].
func NewLogger(name string) Logger {
	return &logger{name: name, depth: 3}
}

func (l *logger) logf(level LogLevel, format string, args ...any) {
	if !Enabled(level) {
		return
	}
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}
	if l.name != "" {
		message = "[" + l.name + "] " + message
	}
	outputs[level].Output(l.depth, message) //nolint:errcheck // nowhere to report it
}

func (l *logger) Tracef(format string, args ...any) { l.logf(TRACE, format, args...) }
func (l *logger) Debugf(format string, args ...any) { l.logf(DEBUG, format, args...) }
func (l *logger) Infof(format string, args ...any)  { l.logf(INFO, format, args...) }
func (l *logger) Warnf(format string, args ...any)  { l.logf(WARN, format, args...) }
func (l *logger) Errorf(format string, args ...any) { l.logf(ERROR, format, args...) }

var root = &logger{depth: 3}

func Tracef(format string, args ...any) { root.logf(TRACE, format, args...) }
func Debugf(format string, args ...any) { root.logf(DEBUG, format, args...) }
func Infof(format string, args ...any)  { root.logf(INFO, format, args...) }
func Warnf(format string, args ...any)  { root.logf(WARN, format, args...) }
func Errorf(format string, args ...any) { root.logf(ERROR, format, args...) }
