package logging

import (
	"os"
	"strconv"
	"strings"
)

// Env maps each setting to the variable that overrides it. Empty names are
// skipped.
type Env struct {
	Level     string
	Format    string
	AddSource string
}

// Config selects the slog handler for a process.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
	// AddSource records the calling file and line on every entry.
	AddSource bool `toml:"add_source"`
}

// Finalize fills unset values with info/text, applies env, and rejects
// unknown levels or formats. Values are matched case-insensitively.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.override(env)
	}

	c.Level = Level(strings.ToLower(string(c.Level)))
	c.Format = Format(strings.ToLower(string(c.Format)))
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}

	if err := c.Level.Validate(); err != nil {
		return err
	}
	return c.Format.Validate()
}

// Merge copies the values overlay sets. AddSource can only be switched on.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	c.AddSource = c.AddSource || overlay.AddSource
}

func (c *Config) override(env *Env) {
	if v := lookup(env.Level); v != "" {
		c.Level = Level(v)
	}
	if v := lookup(env.Format); v != "" {
		c.Format = Format(v)
	}
	if v := lookup(env.AddSource); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.AddSource = on
		}
	}
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
