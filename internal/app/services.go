package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"hwtree/internal/config"
	"hwtree/internal/subsystem"
	"hwtree/internal/subsystem/clock"
	"hwtree/internal/subsystem/gpio"
	"hwtree/internal/subsystem/regulator"
	"hwtree/internal/subsystem/sensor"
	"hwtree/internal/tree"
	"hwtree/internal/watcher"
	"hwtree/pkg/logging"
)

// defaultDebugfs is assumed when the mount table lists no debugfs.
const defaultDebugfs = "/sys/kernel/debug"

// ErrNoSubsystem is returned when none of the selected subsystems could be
// loaded.
var ErrNoSubsystem = errors.New("no subsystem available")

// Services holds the loaded subsystems.
type Services struct {
	// Panels has one entry per subsystem in panel order. Subsystems whose
	// root is missing stay in the list with their error set.
	Panels  []subsystem.Subsystem
	Clock   *clock.Clock
	Watcher *watcher.Watcher
}

// InitializeServices creates every subsystem and loads its tree. It fails
// only when no selected subsystem could be loaded.
func InitializeServices(cfg *Config) (*Services, error) {
	hw := cfg.HwtreeConfig
	if hw == nil {
		d := config.GetDefaultConfig()
		hw = &d
	}
	paths := hw.Paths

	clockRoot, err := clock.ResolveRoot(paths.MountTable, paths.DebugfsType, paths.ClockSubdir, paths.Clock)
	if err != nil {
		logging.Warn(bootstrapSubsystem, "%v, trying %s", err, defaultDebugfs)
		clockRoot = filepath.Join(defaultDebugfs, paths.ClockSubdir)
	}

	s := &Services{}
	s.Clock = clock.New(clock.Options{Root: clockRoot, Filter: hw.Filters.Clock})
	byKind := map[subsystem.Kind]subsystem.Subsystem{
		subsystem.Regulator: regulator.New(regulator.Options{Root: paths.Regulator, Filter: hw.Filters.Regulator, Verbose: cfg.Verbose}),
		subsystem.Clock:     s.Clock,
		subsystem.Sensor:    sensor.New(sensor.Options{Root: paths.Sensor, Filter: hw.Filters.Sensor}),
		subsystem.GPIO:      gpio.New(gpio.Options{Root: paths.GPIO, Filter: hw.Filters.GPIO}),
	}

	var errs []error
	usable := 0
	for _, k := range subsystem.Kinds {
		sub := byKind[k]
		s.Panels = append(s.Panels, sub)
		if err := sub.Load(); err != nil {
			if errors.Is(err, tree.ErrNotFound) {
				logging.Warn(bootstrapSubsystem, "%s disabled: %v", k, err)
			} else {
				logging.Error(bootstrapSubsystem, err, "loading %s", k)
			}
			if cfg.IsSelected(k) {
				errs = append(errs, err)
			}
			continue
		}
		logging.Debug(bootstrapSubsystem, "%s loaded from %s", k, sub.Root())
		if cfg.IsSelected(k) {
			usable++
		}
	}
	if usable == 0 {
		return nil, fmt.Errorf("%w: %w", ErrNoSubsystem, errors.Join(errs...))
	}
	return s, nil
}

// Panel returns the subsystem of kind k.
func (s *Services) Panel(k subsystem.Kind) subsystem.Subsystem {
	for _, p := range s.Panels {
		if p.Kind() == k {
			return p
		}
	}
	return nil
}

// StartWatcher follows the roots of the loaded subsystems for hot-plug
// changes. Roots that cannot be watched are skipped.
func (s *Services) StartWatcher(cfg *Config) error {
	debounce := config.DefaultDebounce
	if cfg.HwtreeConfig != nil && cfg.HwtreeConfig.Watch.Debounce > 0 {
		debounce = cfg.HwtreeConfig.Watch.Debounce
	}
	w, err := watcher.New(debounce)
	if err != nil {
		return err
	}
	for _, p := range s.Panels {
		if p.Err() != nil {
			continue
		}
		if err := w.Add(p.Kind().String(), p.Root()); err != nil {
			logging.Warn(bootstrapSubsystem, "not watching %s: %v", p.Kind(), err)
		}
	}
	w.Start()
	s.Watcher = w
	return nil
}

// Close stops the watcher.
func (s *Services) Close() {
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			logging.Debug(bootstrapSubsystem, "closing watcher: %v", err)
		}
		s.Watcher = nil
	}
}
