package binder

import "git.sr.ht/~accesskey/accesskey/lib/dom"

const (
	AttrContext           = "accesskey-context"
	AttrAccessKey         = "accesskey"
	AttrIgnore            = "accesskey-ignore"
	AttrNoStopPropagation = "accesskey-no-stop-propagation"
	AttrNoPreventDefault  = "accesskey-no-prevent-default"
	AttrHandler           = "accesskey-handler"
	AttrSplitter          = "accesskey-splitter"
)

// chain is the override order of attribute lookups. Binder options are
// the implicit last level.
func chain(context, element *dom.Element) [2]*dom.Element {
	return [2]*dom.Element{element, context}
}

func lookup(context, element *dom.Element, attr string) (string, bool) {
	for _, el := range chain(context, element) {
		if value, ok := el.Attribute(attr); ok {
			return value, true
		}
	}
	return "", false
}

func flag(context, element *dom.Element, attr string) bool {
	_, ok := lookup(context, element, attr)
	return ok
}
