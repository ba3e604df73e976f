package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"text/tabwriter"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/xo/terminfo"

	"git.sr.ht/~accesskey/accesskey/app"
	"git.sr.ht/~accesskey/accesskey/binder"
	"git.sr.ht/~accesskey/accesskey/config"
	"git.sr.ht/~accesskey/accesskey/lib/dom"
	"git.sr.ht/~accesskey/accesskey/lib/watchers"
	"git.sr.ht/~accesskey/accesskey/log"
)

// set at build time
var Version string

func buildInfo() string {
	return fmt.Sprintf("%s (%s %s %s)",
		Version, runtime.Version(), runtime.GOARCH, runtime.GOOS)
}

func usage(msg string) {
	if msg != "" {
		fmt.Fprintf(os.Stderr, "%s\n", msg)
	}
	fmt.Fprintln(os.Stderr, "usage: accesskey [-hvlw] [-c <config>] [-f <selector>] <file.html>")
	fmt.Fprint(os.Stderr, `
  -h             Show this help message and exit.
  -v             Print version information.
  -l             List the shortcuts bound in the document and exit.
  -w             Reload the document when the file changes.
  -c <config>    Read this file instead of accesskey.conf in the user
                 configuration directory.
  -f <selector>  CSS selector of the element receiving key presses. It
                 defaults to the first accesskey context.

In the viewer, <Tab> moves the focus to the next context and <C-c> quits;
shortcuts on these keys never fire. The handler names "log" and "quit" are
built in and take precedence over [handlers] entries of the same name.
`)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func setWindowTitle(title string) {
	log.Tracef("Parsing terminfo")
	ti, err := terminfo.LoadFromEnv()
	if err != nil {
		log.Warnf("Cannot get terminfo: %v", err)
		return
	}

	if !ti.Has(terminfo.HasStatusLine) {
		log.Infof("Terminal does not have status line support")
		return
	}

	log.Debugf("Setting terminal title")
	buf := new(bytes.Buffer)
	ti.Fprintf(buf, terminfo.ToStatusLine)
	fmt.Fprint(buf, title)
	ti.Fprintf(buf, terminfo.FromStatusLine)
	os.Stderr.Write(buf.Bytes()) //nolint:errcheck // cosmetic
}

// writeBindings prints one line per shortcut of b.
func writeBindings(w io.Writer, b *binder.Binder, scope binder.HandlerScope) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONTEXT\tELEMENT\tSHORTCUT\tHANDLER")
	for _, bd := range b.Bindings() {
		handler := bd.HandlerName()
		switch {
		case handler == "":
			handler = "(default)"
		case scope != nil:
			if _, ok := scope.LookupHandler(handler); !ok {
				handler += " (unresolved)"
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			bd.Context, bd.Element, bd.Definition(), handler)
	}
	return tw.Flush()
}

func listBindings(path string, conf *config.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := dom.Parse(f)
	if err != nil {
		return err
	}
	b := binder.New(doc, binder.Options{
		Splitter: conf.General.Splitter,
		Scope:    conf.Handlers,
	})
	if err := b.Init(); err != nil {
		return err
	}
	return writeBindings(os.Stdout, b, conf.Handlers)
}

func main() {
	defer log.PanicHandler()
	log.BuildInfo = buildInfo()

	opts, optind, err := getopt.Getopts(os.Args, "hvlwc:f:")
	if err != nil {
		usage("error: " + err.Error())
		os.Exit(1)
	}
	var list, watch bool
	var confPath, focus string
	for _, opt := range opts {
		switch opt.Option {
		case 'h':
			usage("")
			return
		case 'v':
			fmt.Println("accesskey " + log.BuildInfo)
			return
		case 'l':
			list = true
		case 'w':
			watch = true
		case 'c':
			confPath = opt.Value
		case 'f':
			focus = opt.Value
		}
	}
	args := os.Args[optind:]
	if len(args) != 1 {
		usage("error: expected exactly one file")
		os.Exit(1)
	}
	path := args[0]

	conf, err := config.LoadConfigFromFile(confPath)
	if err != nil {
		die("failed to load config: %s", err)
	}

	if list {
		if err := listBindings(path, conf); err != nil {
			die("%s", err)
		}
		return
	}

	logFile, err := conf.General.SetupLogging()
	if err != nil {
		die("%s", err)
	}
	defer logFile.Close()
	log.Infof("Starting up version %s", log.BuildInfo)

	screen, err := tcell.NewScreen()
	if err != nil {
		die("%s", err)
	}
	viewer := app.New(screen, conf, app.Options{Path: path, Focus: focus})
	if err := viewer.Load(); err != nil {
		die("%s", err)
	}

	var fsEvents <-chan *watchers.FSEvent
	if watch {
		w, err := watchers.WatchFile(path)
		if err != nil {
			die("watch %s: %s", path, err)
		}
		defer w.Close()
		fsEvents = w.Events()
	}

	if err := screen.Init(); err != nil {
		die("%s", err)
	}
	log.UICleanup = screen.Fini
	if isatty.IsTerminal(os.Stderr.Fd()) {
		setWindowTitle("accesskey " + path)
	}
	viewer.Run(fsEvents)
	screen.Fini()
}
