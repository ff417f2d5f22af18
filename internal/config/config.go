// Package config loads zenkai.toml. Missing files and missing keys fall
// back to the defaults.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "zenkai.toml"

type Config struct {
	Viewport Viewport `toml:"viewport"`
	Nav      Nav      `toml:"nav"`
	Parse    Parse    `toml:"parse"`
	Log      Log      `toml:"log"`
}

// Viewport is the layout viewport in CSS pixels.
type Viewport struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Nav configures directional navigation.
type Nav struct {
	// Container is the selector of the element whose children are
	// navigated.
	Container string `toml:"container"`
}

type Parse struct {
	// Sanitize strips scripts and unsafe attributes from fragments.
	Sanitize bool `toml:"sanitize"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Viewport: Viewport{Width: 1024, Height: 768},
		Nav:      Nav{Container: "body"},
		Parse:    Parse{Sanitize: true},
		Log:      Log{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path reads DefaultFile when
// it exists; a missing explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := Decode(string(data), &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Decode decodes TOML into cfg, keeping the values of absent keys, and
// validates the result.
func Decode(data string, cfg *Config) error {
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return errors.Wrap(err, "decoding toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return errors.Errorf("viewport must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	if strings.TrimSpace(c.Nav.Container) == "" {
		return errors.New("nav.container must not be empty")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, errors.Wrapf(err, "log.level %q", c.Log.Level)
	}
	return level, nil
}
