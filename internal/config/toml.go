// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Learn    LearnConfig    `toml:"learn"`
	Log      LogConfig      `toml:"log"`
	Calendar CalendarConfig `toml:"calendar"`
}

// LearnConfig maps learning-related settings.
type LearnConfig struct {
	Lang    *string `toml:"lang"`
	Catalog *string `toml:"catalog"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// CalendarConfig maps the timezone used to count streak days.
type CalendarConfig struct {
	Timezone *string `toml:"timezone"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Location resolves a timezone name. Empty and "local" mean time.Local.
func Location(name string) (*time.Location, error) {
	switch name {
	case "", "local", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}
