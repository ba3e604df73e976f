package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/go-ini/ini"
	"github.com/google/shlex"

	"git.sr.ht/~accesskey/accesskey/binder"
	"git.sr.ht/~accesskey/accesskey/lib/dom"
	"git.sr.ht/~accesskey/accesskey/lib/keys"
	"git.sr.ht/~accesskey/accesskey/log"
)

// HandlerCommand is a named handler declared in the [handlers] section.
type HandlerCommand struct {
	Name string
	Line string
	Args []string
}

// HandlersConfig is the handler scope built from the configuration file.
// It resolves the names that were not registered programmatically.
type HandlersConfig struct {
	Commands map[string]*HandlerCommand
	// Runs the expanded command. env holds extra NAME=value pairs.
	ExecuteCommand func(command []string, env []string) error
}

func defaultHandlersConfig() *HandlersConfig {
	return &HandlersConfig{
		Commands:       make(map[string]*HandlerCommand),
		ExecuteCommand: startCommand,
	}
}

func (config *Config) parseHandlers(file *ini.File) error {
	sec, err := file.GetSection("handlers")
	if err != nil {
		return nil
	}
	for _, key := range sec.Keys() {
		cmd, err := ParseHandlerCommand(key.Name(), key.Value())
		if err != nil {
			return fmt.Errorf("[handlers].%s: %w", key.Name(), err)
		}
		config.Handlers.Commands[cmd.Name] = cmd
	}
	log.Debugf("accesskey.conf: [handlers] %d commands", len(config.Handlers.Commands))
	return nil
}

func ParseHandlerCommand(name, line string) (*HandlerCommand, error) {
	if strings.TrimSpace(line) == "" {
		return nil, errors.New("command empty")
	}
	args, err := shlex.Split(line)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, errors.New("command empty")
	}
	return &HandlerCommand{Name: name, Line: line, Args: args}, nil
}

// LookupHandler implements binder.HandlerScope.
func (h *HandlersConfig) LookupHandler(name string) (binder.Handler, bool) {
	cmd, ok := h.Commands[name]
	if !ok {
		return nil, false
	}
	return func(ev *dom.Event, element, context *dom.Element) {
		vars := HandlerVars(ev, element, context)
		err := h.ExecuteCommand(cmd.Expand(vars), Environ(vars))
		if err != nil {
			log.Errorf("handler %s: %v", cmd.Name, err)
		}
	}, true
}

// HandlerVars returns the variables available to handler commands.
func HandlerVars(ev *dom.Event, element, context *dom.Element) map[string]string {
	return map[string]string{
		"key":       keys.FromEvent(ev).String(),
		"accesskey": element.AccessKey(),
		"id":        element.ID(),
		"tag":       element.Tag(),
		"text":      element.Text(),
		"context":   context.String(),
	}
}

// Expand substitutes $name and ${name} in every argument. Unknown
// variables expand to the empty string.
func (cmd *HandlerCommand) Expand(vars map[string]string) []string {
	command := make([]string, 0, len(cmd.Args))
	for _, arg := range cmd.Args {
		command = append(command, os.Expand(arg, func(name string) string {
			return vars[name]
		}))
	}
	return command
}

// Environ turns handler variables into ACCESSKEY_* environment entries.
func Environ(vars map[string]string) []string {
	env := make([]string, 0, len(vars))
	for name, value := range vars {
		env = append(env, fmt.Sprintf("ACCESSKEY_%s=%s", strings.ToUpper(name), value))
	}
	return env
}

func startCommand(command []string, env []string) error {
	if len(command) == 0 {
		return errors.New("command empty")
	}
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Env = append(os.Environ(), env...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		defer log.PanicHandler()
		if err := cmd.Wait(); err != nil {
			log.Warnf("%s: %v", command[0], err)
		}
	}()
	return nil
}
