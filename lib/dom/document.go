// Package dom is a small document model on top of golang.org/x/net/html.
// It provides selector queries, attribute access and DOM-style event
// dispatch with bubbling, enough to bind keyboard shortcuts declared in
// HTML markup.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ericchiang/css"
	"golang.org/x/net/html"
)

type Document struct {
	root     *html.Node
	elements map[*html.Node]*Element
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{
		root:     n,
		elements: make(map[*html.Node]*Element),
	}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(bytes.NewBufferString(s))
}

// Element returns the wrapper for the given node. The same node always
// yields the same *Element, so elements can be compared with ==.
func (doc *Document) Element(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	el, ok := doc.elements[n]
	if !ok {
		el = &Element{node: n, doc: doc}
		doc.elements[n] = el
	}
	return el
}

// DocumentElement returns the <html> element.
func (doc *Document) DocumentElement() *Element {
	for c := doc.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return doc.Element(c)
		}
	}
	return nil
}

func (doc *Document) Title() string {
	el, err := doc.QuerySelector("title")
	if err != nil || el == nil {
		return ""
	}
	return el.Text()
}

func (doc *Document) QuerySelectorAll(selector string) ([]*Element, error) {
	return doc.selectFrom(doc.root, selector)
}

// QuerySelector returns the first element matching selector, or nil.
func (doc *Document) QuerySelector(selector string) (*Element, error) {
	elements, err := doc.QuerySelectorAll(selector)
	if err != nil || len(elements) == 0 {
		return nil, err
	}
	return elements[0], nil
}

func (doc *Document) selectFrom(from *html.Node, selector string) ([]*Element, error) {
	sel, err := css.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", selector, err)
	}
	matched := make(map[*html.Node]bool)
	for _, n := range sel.Select(from) {
		if n != from {
			matched[n] = true
		}
	}
	// walk the tree ourselves to guarantee document order
	var elements []*Element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if matched[c] {
				elements = append(elements, doc.Element(c))
			}
			walk(c)
		}
	}
	walk(from)
	return elements, nil
}

// Dispatch delivers ev to target and then to each of its ancestors, in
// listener registration order. After StopPropagation the remaining
// listeners of the current element still run but no ancestor is visited.
// It returns false if a listener called PreventDefault.
func (doc *Document) Dispatch(target *Element, ev *Event) bool {
	ev.Target = target
	for el := target; el != nil; el = el.Parent() {
		listeners := el.listeners[ev.Type]
		if len(listeners) == 0 {
			continue
		}
		ev.CurrentTarget = el
		// listeners added during dispatch only see the next event
		for _, fn := range append([]Listener(nil), listeners...) {
			fn(ev)
		}
		if ev.stopped {
			break
		}
	}
	ev.CurrentTarget = nil
	return !ev.prevented
}

// Render serializes the document back to HTML.
func (doc *Document) Render(w io.Writer) error {
	return html.Render(w, doc.root)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
