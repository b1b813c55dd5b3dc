// config.go - merged runtime configuration: CLI flags, an optional
// ~/.ffrc.toml, and environment variables, in that priority order
// (a flag set away from its built-in default wins, then the config
// file, then built-in defaults).
//
// Grounded on SPEC_FULL.md §6.1's expansion flags (--config, --log-file)
// and §2's "CLI & Configuration" component. The file format itself has
// no teacher precedent (go-fio is a library, not a CLI), so it is
// grounded on the pack's BurntSushi/toml dependency and a flat
// struct-tag-driven schema, the simplest idiomatic shape toml.Decode
// supports.

package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig is the schema for ~/.ffrc.toml. Every field mirrors a CLI
// flag, but cmd/ff applies only MaxDepth, Threads, MaxBufferMS, Color
// and LogFile as defaults; the other fields are decoded and have no
// effect. Fields left unset in the file keep the CLI's own defaults.
type FileConfig struct {
	Glob          bool   `toml:"glob"`
	Regex         bool   `toml:"regex"`
	IgnoreCase    bool   `toml:"ignore_case"`
	FullPath      bool   `toml:"full_path"`
	Unicode       bool   `toml:"unicode"`
	All           bool   `toml:"all"`
	NoIgnore      bool   `toml:"no_ignore"`
	Follow        bool   `toml:"follow"`
	Mount         bool   `toml:"mount"`
	MaxDepth      int    `toml:"max_depth"`
	Print0        bool   `toml:"print0"`
	AbsolutePath  bool   `toml:"absolute_path"`
	SortPath      bool   `toml:"sort_path"`
	Color         string `toml:"color"`
	Verbose       bool   `toml:"verbose"`
	Threads       int    `toml:"threads"`
	MaxBufferMS   int    `toml:"max_buffer_time_ms"`
	LogFile       string `toml:"log_file"`
}

// LoadFileConfig reads and decodes a TOML config file. An empty path
// resolves to "~/.ffrc.toml"; if that default file does not exist,
// LoadFileConfig returns a zero-value FileConfig and no error (the
// config file is optional, unlike an explicit --config path which is
// fatal if missing).
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	explicit := path != ""

	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return fc, nil
		}
		path = filepath.Join(home, ".ffrc.toml")
	}

	if _, err := os.Stat(path); err != nil {
		if explicit {
			return fc, fmt.Errorf("config %s: %w", path, err)
		}
		return fc, nil
	}

	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fc, fmt.Errorf("config %s: %w", path, err)
	}
	return fc, nil
}
