package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/hwtree"
	projectConfigDir = ".hwtree"
	configFileName   = "config.yaml"
)

// LoadConfig loads the hwtree configuration by layering default, user, and
// project settings. A non-empty explicitPath is applied last.
func LoadConfig(explicitPath string) (HwtreeConfig, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else if config, err = overlayIfExists(config, userConfigPath); err != nil {
		return HwtreeConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else if config, err = overlayIfExists(config, projectConfigPath); err != nil {
		return HwtreeConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
	}

	if explicitPath != "" {
		explicit, err := loadConfigFromFile(explicitPath)
		if err != nil {
			return HwtreeConfig{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		config = mergeConfigs(config, explicit)
	}

	if err := config.Validate(); err != nil {
		return HwtreeConfig{}, err
	}
	return config, nil
}

func overlayIfExists(base HwtreeConfig, path string) (HwtreeConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return base, err
	}
	return mergeConfigs(base, overlay), nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile decodes a YAML or TOML file, chosen by extension.
func loadConfigFromFile(filePath string) (HwtreeConfig, error) {
	var config HwtreeConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return HwtreeConfig{}, err
	}
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &config); err != nil {
			return HwtreeConfig{}, err
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return HwtreeConfig{}, err
		}
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
func mergeConfigs(base, overlay HwtreeConfig) HwtreeConfig {
	merged := base

	if overlay.Refresh.Interval != 0 {
		merged.Refresh.Interval = overlay.Refresh.Interval
	}
	if overlay.Refresh.Forced != 0 {
		merged.Refresh.Forced = overlay.Refresh.Forced
	}

	mergeString(&merged.Paths.MountTable, overlay.Paths.MountTable)
	mergeString(&merged.Paths.DebugfsType, overlay.Paths.DebugfsType)
	mergeString(&merged.Paths.ClockSubdir, overlay.Paths.ClockSubdir)
	mergeString(&merged.Paths.Clock, overlay.Paths.Clock)
	mergeString(&merged.Paths.GPIO, overlay.Paths.GPIO)
	mergeString(&merged.Paths.Regulator, overlay.Paths.Regulator)
	mergeString(&merged.Paths.Sensor, overlay.Paths.Sensor)

	if overlay.Filters.Clock != nil {
		merged.Filters.Clock = overlay.Filters.Clock
	}
	if overlay.Filters.GPIO != nil {
		merged.Filters.GPIO = overlay.Filters.GPIO
	}
	if overlay.Filters.Regulator != nil {
		merged.Filters.Regulator = overlay.Filters.Regulator
	}
	if overlay.Filters.Sensor != nil {
		merged.Filters.Sensor = overlay.Filters.Sensor
	}

	mergeString(&merged.Logging.Level, overlay.Logging.Level)

	// Only an explicit value in the overlay changes the toggle.
	if overlay.Watch.Enabled != nil {
		merged.Watch.Enabled = overlay.Watch.Enabled
	}
	if overlay.Watch.Debounce != 0 {
		merged.Watch.Debounce = overlay.Watch.Debounce
	}

	return merged
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate rejects values the event loop cannot work with.
func (c HwtreeConfig) Validate() error {
	if c.Refresh.Interval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", c.Refresh.Interval)
	}
	if c.Refresh.Forced <= 0 {
		return fmt.Errorf("forced refresh interval must be positive, got %s", c.Refresh.Forced)
	}
	for _, pattern := range c.allFilters() {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func (c HwtreeConfig) allFilters() []string {
	var all []string
	all = append(all, c.Filters.Clock...)
	all = append(all, c.Filters.GPIO...)
	all = append(all, c.Filters.Regulator...)
	all = append(all, c.Filters.Sensor...)
	return all
}
