package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"hwtree/internal/subsystem"
	"hwtree/internal/tui/controller"
	"hwtree/internal/tui/design"
	"hwtree/internal/tui/model"
	"hwtree/pkg/logging"
)

// ErrNoTerminal is returned when the dashboard is asked for without a
// terminal on standard input.
var ErrNoTerminal = errors.New("standard input is not a terminal")

// stdinIsTerminal and tuiInput are replaced in tests.
var (
	stdinIsTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd()))
	}
	tuiInput io.Reader = os.Stdin
)

// runDumpMode prints every selected subsystem once, in panel order.
func runDumpMode(ctx context.Context, cfg *Config, services *Services) error {
	if cfg.FindParents != "" {
		return services.Clock.DumpParents(cfg.Out, cfg.FindParents)
	}

	for _, p := range services.Panels {
		if !cfg.IsSelected(p.Kind()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Dump(cfg.Out); err != nil {
			// Disabled subsystems were reported while loading.
			logging.Debug("Dump", "skipping %s: %v", p.Kind(), err)
			fmt.Fprintf(cfg.Out, "error: path %s not found\n", p.Root())
		}
	}
	return nil
}

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, cfg *Config, services *Services) error {
	if !stdinIsTerminal() {
		return ErrNoTerminal
	}

	design.Initialize(true)

	if cfg.watchEnabled() {
		if err := services.StartWatcher(cfg); err != nil {
			logging.Warn("TUI-Lifecycle", "hot-plug watching disabled: %v", err)
		}
	}

	// Switch logging to channel-based system for TUI integration
	fileLevel := ""
	if cfg.HwtreeConfig != nil {
		fileLevel = cfg.HwtreeConfig.Logging.Level
	}
	level, err := logLevel(cfg, fileLevel)
	if err != nil {
		return err
	}
	logChan := logging.InitForTUI(level)
	defer logging.CloseTUIChannel()

	var rebuilds <-chan string
	if services.Watcher != nil {
		rebuilds = services.Watcher.Events()
	}

	p := controller.NewProgram(model.Options{
		Panels:         services.Panels,
		Initial:        initialIndex(services.Panels, cfg.Initial()),
		Interval:       cfg.refreshInterval(),
		ForcedInterval: cfg.forcedInterval(),
		LogChannel:     logChan,
		Rebuilds:       rebuilds,
	}, tuiInput, tea.WithContext(ctx), tea.WithOutput(cfg.Out))

	if _, err := p.Run(); err != nil {
		if errors.Is(err, controller.ErrEndOfInput) {
			logging.Warn("TUI-Lifecycle", "standard input closed, exiting")
			return controller.ErrEndOfInput
		}
		logging.Error("TUI-Lifecycle", err, "Error running TUI program")
		return err
	}
	return nil
}

// initialIndex returns the panel index of kind k.
func initialIndex(panels []subsystem.Subsystem, k subsystem.Kind) int {
	for i, p := range panels {
		if p.Kind() == k {
			return i
		}
	}
	return 0
}
