package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~accesskey/accesskey/binder"
	"git.sr.ht/~accesskey/accesskey/config"
	"git.sr.ht/~accesskey/accesskey/lib/dom"
)

func TestWriteBindings(t *testing.T) {
	doc, err := dom.ParseString(`
<div id="app" accesskey-context>
  <button id="save" accesskey="ctrl+s" accesskey-handler="save">Save</button>
  <button id="open" accesskey="ctrl+o" accesskey-handler="open">Open</button>
  <button id="quit" accesskey="q">Quit</button>
</div>`)
	require.NoError(t, err)

	conf := config.Default()
	cmd, err := config.ParseHandlerCommand("save", "true")
	require.NoError(t, err)
	conf.Handlers.Commands["save"] = cmd

	b := binder.New(doc, binder.Options{Scope: conf.Handlers})
	require.NoError(t, b.Init())

	var sb strings.Builder
	require.NoError(t, writeBindings(&sb, b, conf.Handlers))
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"CONTEXT", "ELEMENT", "SHORTCUT", "HANDLER"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"div#app", "button#save", "ctrl+S", "save"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"div#app", "button#open", "ctrl+O", "open", "(unresolved)"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"div#app", "button#quit", "Q", "(default)"}, strings.Fields(lines[3]))
}
