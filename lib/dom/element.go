package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

type Listener func(*Event)

type Element struct {
	node      *html.Node
	doc       *Document
	listeners map[string][]Listener
}

func (el *Element) Node() *html.Node {
	return el.node
}

func (el *Element) Tag() string {
	return el.node.Data
}

func (el *Element) ID() string {
	id, _ := el.Attribute("id")
	return id
}

// Attribute returns the value of the named attribute and whether it is
// present at all. Names are matched case-insensitively, like HTML does.
func (el *Element) Attribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range el.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (el *Element) HasAttribute(name string) bool {
	_, ok := el.Attribute(name)
	return ok
}

func (el *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	for i, a := range el.node.Attr {
		if a.Namespace == "" && a.Key == name {
			el.node.Attr[i].Val = value
			return
		}
	}
	el.node.Attr = append(el.node.Attr, html.Attribute{Key: name, Val: value})
}

func (el *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	attrs := el.node.Attr[:0]
	for _, a := range el.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	el.node.Attr = attrs
}

// AccessKey returns the raw shortcut declaration of the element.
func (el *Element) AccessKey() string {
	key, _ := el.Attribute("accesskey")
	return key
}

// Parent returns the parent element, or nil at the top of the tree.
func (el *Element) Parent() *Element {
	return el.doc.Element(el.node.Parent)
}

// AncestorWithAttribute returns the nearest ancestor, not counting el
// itself, that carries the named attribute.
func (el *Element) AncestorWithAttribute(name string) *Element {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.HasAttribute(name) {
			return p
		}
	}
	return nil
}

// Contains reports whether other is el or one of its descendants.
func (el *Element) Contains(other *Element) bool {
	for ; other != nil; other = other.Parent() {
		if other == el {
			return true
		}
	}
	return false
}

// QuerySelectorAll returns the descendants of el matching selector.
func (el *Element) QuerySelectorAll(selector string) ([]*Element, error) {
	return el.doc.selectFrom(el.node, selector)
}

// Text returns the text content with runs of white space collapsed.
func (el *Element) Text() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(el.node)
	return collapseSpace(sb.String())
}

func (el *Element) AddEventListener(typ string, fn Listener) {
	if el.listeners == nil {
		el.listeners = make(map[string][]Listener)
	}
	el.listeners[typ] = append(el.listeners[typ], fn)
}

func (el *Element) Listeners(typ string) int {
	return len(el.listeners[typ])
}

// Click simulates a mouse click: a bubbling "click" event targeted at el.
func (el *Element) Click() bool {
	return el.doc.Dispatch(el, &Event{Type: "click"})
}

// String returns a short selector-like description of el, such as
// button#save or a[accesskey="ctrl+f"].
func (el *Element) String() string {
	if el == nil {
		return "<nil>"
	}
	if id := el.ID(); id != "" {
		return el.Tag() + "#" + id
	}
	if key, ok := el.Attribute("accesskey"); ok {
		return fmt.Sprintf("%s[accesskey=%q]", el.Tag(), key)
	}
	if name, ok := el.Attribute("accesskey-context"); ok && name != "" {
		return fmt.Sprintf("%s[accesskey-context=%q]", el.Tag(), name)
	}
	return el.Tag()
}
