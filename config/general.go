package config

import (
	"fmt"
	"io"
	"os"

	"github.com/go-ini/ini"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"

	"git.sr.ht/~accesskey/accesskey/lib/keys"
	"git.sr.ht/~accesskey/accesskey/log"
)

type GeneralConfig struct {
	Splitter       string       `ini:"splitter"`
	DefaultHandler string       `ini:"default-handler"`
	LogFile        string       `ini:"log-file"`
	LogLevel       log.LogLevel `ini:"-"`
	Focus          string       `ini:"focus"`
}

func defaultGeneralConfig() GeneralConfig {
	return GeneralConfig{
		Splitter:       keys.DefaultSplitter,
		DefaultHandler: "click",
		LogLevel:       log.INFO,
	}
}

func (config *Config) parseGeneral(file *ini.File) error {
	gen, err := file.GetSection("general")
	if err != nil {
		return nil
	}
	if err := gen.MapTo(&config.General); err != nil {
		return err
	}
	if level, err := gen.GetKey("log-level"); err == nil {
		l, err := log.ParseLevel(level.String())
		if err != nil {
			return err
		}
		config.General.LogLevel = l
	}
	if err := config.General.validateDefaultHandler(); err != nil {
		return err
	}
	log.Debugf("accesskey.conf: [general] %#v", config.General)
	return nil
}

func (gen *GeneralConfig) validateDefaultHandler() error {
	switch gen.DefaultHandler {
	case "click", "log", "none":
		return nil
	default:
		return fmt.Errorf("default-handler must be click, log or none, not %q",
			gen.DefaultHandler)
	}
}

// SetupLogging points the logger at the configured destination. When
// stdout is redirected, logs go there at DEBUG level. The returned closer
// releases the log file, if any.
func (gen *GeneralConfig) SetupLogging() (io.Closer, error) {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		log.Init(os.Stdout, log.DEBUG)
		return nopCloser{}, nil
	}
	if gen.LogFile == "" {
		log.Init(nil, gen.LogLevel)
		return nopCloser{}, nil
	}
	path, err := homedir.Expand(gen.LogFile)
	if err != nil {
		return nil, fmt.Errorf("log-file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("log-file: %w", err)
	}
	log.Init(f, gen.LogLevel)
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
