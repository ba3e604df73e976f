package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Reverse(true)
	styleHeader  = tcell.StyleDefault.Bold(true)
	styleActive  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDim     = tcell.StyleDefault.Dim(true)
)

// print writes s at x, y and clips it to the screen width. It returns
// the number of columns used.
func (v *Viewer) print(x, y int, style tcell.Style, s string) int {
	width, height := v.screen.Size()
	if y >= height {
		return 0
	}
	start := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		v.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x - start
}

func (v *Viewer) Draw() {
	v.screen.Clear()
	width, height := v.screen.Size()

	title := "accesskey"
	if v.doc != nil {
		if t := v.doc.Title(); t != "" {
			title += ": " + t
		}
	}
	if v.opts.Path != "" {
		title += " (" + v.opts.Path + ")"
	}
	title = runewidth.FillRight(runewidth.Truncate(title, width, "…"), width)
	v.print(0, 0, styleTitle, title)

	y := 1
	v.print(0, y, styleDim, fmt.Sprintf("focus: %s  <Tab> next context  <C-c> quit", v.focus))
	y += 2

	if v.binder != nil {
		v.print(0, y, styleHeader, fmt.Sprintf("  %-20s %-30s %-30s %s",
			"SHORTCUT", "ELEMENT", "CONTEXT", "HANDLER"))
		y++
		for _, bd := range v.binder.Bindings() {
			style := styleDefault
			marker := " "
			if bd.Context.Contains(v.focus) {
				style = styleActive
				marker = "*"
			}
			handler := bd.HandlerName()
			if handler == "" {
				handler = "(" + v.conf.General.DefaultHandler + ")"
			}
			v.print(0, y, style, fmt.Sprintf("%s %-20s %-30s %-30s %s", marker,
				bd.Definition(), bd.Element, bd.Context, handler))
			y++
		}
		y++
	}

	// most recent entries at the bottom
	rows := height - y
	history := v.history
	if rows < len(history) && rows >= 0 {
		history = history[len(history)-rows:]
	}
	for _, line := range history {
		v.print(0, y, styleDefault, line)
		y++
	}
	v.screen.Show()
}
