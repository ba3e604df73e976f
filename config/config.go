package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-ini/ini"
	"github.com/mitchellh/go-homedir"

	"git.sr.ht/~accesskey/accesskey/log"
)

type Config struct {
	General  GeneralConfig
	Handlers *HandlersConfig
	// file the configuration was read from, empty when using defaults
	Path string
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		General:  defaultGeneralConfig(),
		Handlers: defaultHandlersConfig(),
	}
}

// ConfigPath returns the default location of accesskey.conf.
func ConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, _ = homedir.Expand("~/.config")
	}
	return filepath.Join(dir, "accesskey", "accesskey.conf")
}

// LoadConfigFromFile reads the configuration at path. An empty path means
// the default location, which is allowed not to exist.
func LoadConfigFromFile(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = ConfigPath()
	} else {
		var err error
		path, err = homedir.Expand(path)
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !explicit {
		log.Debugf("%s not found, using defaults", path)
		return Default(), nil
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		// handler commands may legitimately contain ; and #
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	config, err := LoadConfig(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	config.Path = path
	return config, nil
}

func LoadConfig(file *ini.File) (*Config, error) {
	config := Default()
	if err := config.parseGeneral(file); err != nil {
		return nil, err
	}
	if err := config.parseHandlers(file); err != nil {
		return nil, err
	}
	for _, name := range file.SectionStrings() {
		switch name {
		case ini.DefaultSection, "general", "handlers":
		default:
			log.Warnf("accesskey.conf: unknown section [%s]", name)
		}
	}
	return config, nil
}
