package config

import (
	"time"
)

// HwtreeConfig is the top-level configuration structure for hwtree.
type HwtreeConfig struct {
	Refresh RefreshConfig `yaml:"refresh" toml:"refresh"`
	Paths   PathsConfig   `yaml:"paths" toml:"paths"`
	Filters FilterConfig  `yaml:"filters" toml:"filters"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Watch   WatchConfig   `yaml:"watch" toml:"watch"`
}

// RefreshConfig controls the timed wait of the event loop.
type RefreshConfig struct {
	// Interval is the regular wait between two automatic redraws.
	Interval time.Duration `yaml:"interval,omitempty" toml:"interval,omitempty"`
	// Forced is used once after the user asked for a refresh.
	Forced time.Duration `yaml:"forced,omitempty" toml:"forced,omitempty"`
}

// PathsConfig holds the filesystem roots each subsystem is loaded from.
type PathsConfig struct {
	MountTable  string `yaml:"mountTable,omitempty" toml:"mount_table,omitempty"`
	DebugfsType string `yaml:"debugfsType,omitempty" toml:"debugfs_type,omitempty"`
	// ClockSubdir is joined to the debugfs mount point unless Clock is set.
	ClockSubdir string `yaml:"clockSubdir,omitempty" toml:"clock_subdir,omitempty"`
	Clock       string `yaml:"clock,omitempty" toml:"clock,omitempty"`
	GPIO        string `yaml:"gpio,omitempty" toml:"gpio,omitempty"`
	Regulator   string `yaml:"regulator,omitempty" toml:"regulator,omitempty"`
	Sensor      string `yaml:"sensor,omitempty" toml:"sensor,omitempty"`
}

// FilterConfig lists directory names left out of each tree. Entries may
// contain shell glob characters.
type FilterConfig struct {
	Clock     []string `yaml:"clock,omitempty" toml:"clock,omitempty"`
	GPIO      []string `yaml:"gpio,omitempty" toml:"gpio,omitempty"`
	Regulator []string `yaml:"regulator,omitempty" toml:"regulator,omitempty"`
	Sensor    []string `yaml:"sensor,omitempty" toml:"sensor,omitempty"`
}

// LoggingConfig selects the minimum level shown in the activity log.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty" toml:"level,omitempty"`
}

// WatchConfig toggles rebuilding a panel when its root directory changes.
type WatchConfig struct {
	Enabled  *bool         `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Debounce time.Duration `yaml:"debounce,omitempty" toml:"debounce,omitempty"`
}

// WatchEnabled reports whether hot-plug watching is on.
func (c HwtreeConfig) WatchEnabled() bool {
	return c.Watch.Enabled != nil && *c.Watch.Enabled
}
