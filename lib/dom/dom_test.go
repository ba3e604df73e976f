package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
<head><title>  Demo
  page </title></head>
<body>
<main id="outer" accesskey-context>
  <button id="save" accesskey="ctrl+s">Save</button>
  <section id="inner" accesskey-context="sidebar">
    <a id="help" href="#" accesskey="F1">Help <b>me</b></a>
  </section>
</main>
</body>
</html>`

func parse(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(page)
	require.NoError(t, err)
	return doc
}

func ids(elements []*Element) []string {
	var res []string
	for _, el := range elements {
		res = append(res, el.ID())
	}
	return res
}

func TestQuerySelectorAll(t *testing.T) {
	assert := assert.New(t)
	doc := parse(t)

	contexts, err := doc.QuerySelectorAll("[accesskey-context]")
	require.NoError(t, err)
	assert.Equal([]string{"outer", "inner"}, ids(contexts))

	keys, err := contexts[0].QuerySelectorAll("[accesskey]")
	require.NoError(t, err)
	assert.Equal([]string{"save", "help"}, ids(keys))

	// the element itself is never part of its own query
	self, err := contexts[1].QuerySelectorAll("[accesskey-context]")
	require.NoError(t, err)
	assert.Empty(self)

	_, err = doc.QuerySelectorAll("[[")
	assert.Error(err)
}

func TestElementIdentity(t *testing.T) {
	doc := parse(t)
	a, err := doc.QuerySelector("#help")
	require.NoError(t, err)
	b, err := doc.QuerySelector("a")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Same(t, a.Node(), b.Node())
}

func TestAttributes(t *testing.T) {
	assert := assert.New(t)
	doc := parse(t)
	save, _ := doc.QuerySelector("#save")

	assert.Equal("button", save.Tag())
	assert.Equal("ctrl+s", save.AccessKey())
	assert.True(save.HasAttribute("ACCESSKEY"))
	assert.False(save.HasAttribute("accesskey-ignore"))

	save.SetAttribute("accesskey-ignore", "")
	assert.True(save.HasAttribute("accesskey-ignore"))
	save.SetAttribute("accesskey", "alt+s")
	assert.Equal("alt+s", save.AccessKey())
	save.RemoveAttribute("accesskey-ignore")
	assert.False(save.HasAttribute("accesskey-ignore"))

	inner, _ := doc.QuerySelector("#inner")
	name, ok := inner.Attribute("accesskey-context")
	assert.True(ok)
	assert.Equal("sidebar", name)
}

func TestAncestors(t *testing.T) {
	assert := assert.New(t)
	doc := parse(t)
	outer, _ := doc.QuerySelector("#outer")
	inner, _ := doc.QuerySelector("#inner")
	help, _ := doc.QuerySelector("#help")
	save, _ := doc.QuerySelector("#save")

	assert.Same(inner, help.AncestorWithAttribute("accesskey-context"))
	assert.Same(outer, save.AncestorWithAttribute("accesskey-context"))
	assert.Same(outer, inner.AncestorWithAttribute("accesskey-context"))
	assert.Nil(outer.AncestorWithAttribute("accesskey-context"))

	assert.True(outer.Contains(help))
	assert.True(help.Contains(help))
	assert.False(inner.Contains(save))
	assert.Nil(doc.DocumentElement().Parent())
}

func TestText(t *testing.T) {
	doc := parse(t)
	help, _ := doc.QuerySelector("#help")
	assert.Equal(t, "Help me", help.Text())
	assert.Equal(t, "Demo page", doc.Title())
}

func TestString(t *testing.T) {
	doc, err := ParseString(`<div accesskey-context="main"><i accesskey="x"></i><p id="p"></p></div>`)
	require.NoError(t, err)
	div, _ := doc.QuerySelector("div")
	i, _ := doc.QuerySelector("i")
	p, _ := doc.QuerySelector("p")
	assert.Equal(t, `div[accesskey-context="main"]`, div.String())
	assert.Equal(t, `i[accesskey="x"]`, i.String())
	assert.Equal(t, "p#p", p.String())
}

func TestDispatchBubbles(t *testing.T) {
	assert := assert.New(t)
	doc := parse(t)
	outer, _ := doc.QuerySelector("#outer")
	inner, _ := doc.QuerySelector("#inner")
	help, _ := doc.QuerySelector("#help")

	var trail []string
	record := func(name string) Listener {
		return func(ev *Event) {
			trail = append(trail, name+":"+ev.CurrentTarget.ID())
			assert.Same(help, ev.Target)
		}
	}
	help.AddEventListener("keydown", record("a"))
	inner.AddEventListener("keydown", record("b"))
	inner.AddEventListener("keydown", record("c"))
	outer.AddEventListener("keydown", record("d"))
	outer.AddEventListener("click", record("never"))

	ev := &Event{Type: "keydown", Key: "F1"}
	assert.True(doc.Dispatch(help, ev))
	assert.Equal([]string{"a:help", "b:inner", "c:inner", "d:outer"}, trail)
	assert.Nil(ev.CurrentTarget)
}

func TestDispatchStopPropagation(t *testing.T) {
	assert := assert.New(t)
	doc := parse(t)
	outer, _ := doc.QuerySelector("#outer")
	inner, _ := doc.QuerySelector("#inner")
	help, _ := doc.QuerySelector("#help")

	var trail []string
	inner.AddEventListener("keydown", func(ev *Event) {
		trail = append(trail, "first")
		ev.StopPropagation()
		ev.PreventDefault()
	})
	inner.AddEventListener("keydown", func(ev *Event) {
		trail = append(trail, "second")
	})
	outer.AddEventListener("keydown", func(ev *Event) {
		trail = append(trail, "outer")
	})

	ev := &Event{Type: "keydown", Key: "x"}
	assert.False(doc.Dispatch(help, ev))
	assert.True(ev.PropagationStopped())
	assert.True(ev.DefaultPrevented())
	assert.Equal([]string{"first", "second"}, trail)
}

func TestClick(t *testing.T) {
	doc := parse(t)
	outer, _ := doc.QuerySelector("#outer")
	save, _ := doc.QuerySelector("#save")

	var clicked *Element
	outer.AddEventListener("click", func(ev *Event) {
		clicked = ev.Target
	})
	assert.True(t, save.Click())
	assert.Same(t, save, clicked)
}

func TestRender(t *testing.T) {
	doc := parse(t)
	var sb strings.Builder
	require.NoError(t, doc.Render(&sb))
	assert.Contains(t, sb.String(), `accesskey="ctrl+s"`)
}
