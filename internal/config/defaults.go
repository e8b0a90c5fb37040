package config

import "time"

const (
	DefaultInterval       = 10 * time.Second
	DefaultForcedInterval = 3 * time.Second
	DefaultDebounce       = 500 * time.Millisecond
)

// GetDefaultConfig returns the configuration used when no file overrides it.
func GetDefaultConfig() HwtreeConfig {
	watch := false
	return HwtreeConfig{
		Refresh: RefreshConfig{
			Interval: DefaultInterval,
			Forced:   DefaultForcedInterval,
		},
		Paths: PathsConfig{
			MountTable:  "/proc/mounts",
			DebugfsType: "debugfs",
			ClockSubdir: "clock",
			GPIO:        "/sys/class/gpio",
			Regulator:   "/sys/class/regulator",
			Sensor:      "/sys/class/hwmon",
		},
		Filters: FilterConfig{
			// sysfs links back into the device hierarchy from these names.
			GPIO:      []string{"device", "subsystem", "driver", "*chip*", "power"},
			Regulator: []string{"device", "subsystem", "driver", "power"},
			Sensor:    []string{"device", "subsystem", "driver", "power"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Enabled:  &watch,
			Debounce: DefaultDebounce,
		},
	}
}
