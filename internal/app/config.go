package app

import (
	"io"
	"time"

	"hwtree/internal/config"
	"hwtree/internal/subsystem"
)

// Config holds the application configuration
type Config struct {
	// Selected lists the subsystems named on the command line, in the order
	// their flags were given. Empty selects all of them.
	Selected []subsystem.Kind

	// Dump prints the selected trees once instead of starting the dashboard.
	Dump bool
	// FindParents prints the ancestors of this clock and implies Dump.
	FindParents string

	Verbose bool
	// LogLevel overrides the level from the configuration file.
	LogLevel string

	// Interval overrides the refresh interval when positive.
	Interval time.Duration
	// Watch overrides the watch setting of the configuration file when set.
	Watch *bool

	// ConfigPath is an explicit configuration file.
	ConfigPath string

	// Out receives dumps. Defaults to os.Stdout.
	Out io.Writer
	// LogOut receives log records outside the dashboard. Defaults to
	// os.Stderr.
	LogOut io.Writer

	// HwtreeConfig is filled in by NewApplication.
	HwtreeConfig *config.HwtreeConfig
}

// NewConfig creates a new application configuration
func NewConfig(selected []subsystem.Kind, dump, verbose bool) *Config {
	return &Config{
		Selected: selected,
		Dump:     dump,
		Verbose:  verbose,
	}
}

// normalize applies the implications between options.
func (c *Config) normalize() {
	if c.FindParents != "" {
		c.Dump = true
		c.Selected = []subsystem.Kind{subsystem.Clock}
	}
}

// IsSelected reports whether k is shown or dumped.
func (c *Config) IsSelected(k subsystem.Kind) bool {
	if len(c.Selected) == 0 {
		return true
	}
	for _, s := range c.Selected {
		if s == k {
			return true
		}
	}
	return false
}

// Initial is the panel selected when the dashboard starts: the last
// subsystem flag given, the clocks otherwise.
func (c *Config) Initial() subsystem.Kind {
	if len(c.Selected) == 0 {
		return subsystem.Clock
	}
	return c.Selected[len(c.Selected)-1]
}

// watchEnabled resolves the watch setting.
func (c *Config) watchEnabled() bool {
	if c.Watch != nil {
		return *c.Watch
	}
	return c.HwtreeConfig != nil && c.HwtreeConfig.WatchEnabled()
}

// refreshInterval resolves the regular wait of the event loop.
func (c *Config) refreshInterval() time.Duration {
	if c.Interval > 0 {
		return c.Interval
	}
	if c.HwtreeConfig != nil && c.HwtreeConfig.Refresh.Interval > 0 {
		return c.HwtreeConfig.Refresh.Interval
	}
	return config.DefaultInterval
}

func (c *Config) forcedInterval() time.Duration {
	if c.HwtreeConfig != nil && c.HwtreeConfig.Refresh.Forced > 0 {
		return c.HwtreeConfig.Refresh.Forced
	}
	return config.DefaultForcedInterval
}
