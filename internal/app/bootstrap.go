package app

import (
	"context"
	"fmt"
	"os"

	"hwtree/internal/config"
	"hwtree/pkg/logging"
)

const bootstrapSubsystem = "Bootstrap"

// Application is the main application structure that bootstraps and runs hwtree
type Application struct {
	config   *Config
	services *Services
}

// NewApplication loads the configuration, sets up logging and scans the
// selected subsystems.
func NewApplication(cfg *Config) (*Application, error) {
	cfg.normalize()
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.LogOut == nil {
		cfg.LogOut = os.Stderr
	}

	// Flags decide the level until the file has been read.
	level, err := logLevel(cfg, "")
	if err != nil {
		return nil, err
	}
	logging.InitForCLI(level, cfg.LogOut)

	hwCfg, err := config.LoadConfig(cfg.ConfigPath)
	if err != nil {
		logging.Error(bootstrapSubsystem, err, "Failed to load hwtree configuration")
		return nil, fmt.Errorf("failed to load hwtree configuration: %w", err)
	}
	cfg.HwtreeConfig = &hwCfg

	level, err = logLevel(cfg, hwCfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logging.InitForCLI(level, cfg.LogOut)

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error(bootstrapSubsystem, err, "Failed to initialize subsystems")
		return nil, err
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// logLevel resolves the log level: --verbose, then --log-level, then the
// configuration file.
func logLevel(cfg *Config, fileLevel string) (logging.LogLevel, error) {
	if cfg.Verbose {
		return logging.LevelDebug, nil
	}
	name := cfg.LogLevel
	if name == "" {
		name = fileLevel
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return level, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// Run executes the application in the appropriate mode
func (a *Application) Run(ctx context.Context) error {
	defer a.services.Close()
	if a.config.Dump {
		return runDumpMode(ctx, a.config, a.services)
	}
	return runTUIMode(ctx, a.config, a.services)
}
