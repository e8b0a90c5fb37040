package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hwtree/internal/app"
	"hwtree/internal/subsystem"
)

var (
	// selected records the subsystem flags in the order they were given.
	selected []subsystem.Kind

	findParents string
	refreshTime float64
	dump        bool
	verbose     bool
	configPath  string
	logLevel    string
	watch       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hwtree",
	Short: "Show the clock, regulator, sensor and gpio trees of this machine",
	Long: `hwtree mirrors the clock tree from debugfs, the gpio lines, the voltage
regulators and the hwmon sensors as indented trees.

Without --dump it starts a dashboard with one panel per subsystem that is
re-read every few seconds. The subsystem flags pick the panels to dump, or
the panel shown first. With several flags the last one wins the start panel.

Configuration:
  hwtree reads ~/.config/hwtree/config.yaml and .hwtree/config.yaml in the
  current directory. --config names an additional file (yaml or toml).`,
	Args: cobra.NoArgs,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. missing subsystems, no terminal)
	SilenceUsage: true,
	RunE:         runRoot,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "hwtree version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run(ctx)
}

// buildConfig turns the parsed flags into the application configuration.
func buildConfig(cmd *cobra.Command) (*app.Config, error) {
	if refreshTime < 0 {
		return nil, fmt.Errorf("invalid refresh time %v: must not be negative", refreshTime)
	}

	cfg := app.NewConfig(selected, dump, verbose)
	cfg.FindParents = findParents
	cfg.ConfigPath = configPath
	cfg.LogLevel = logLevel
	cfg.Interval = time.Duration(refreshTime * float64(time.Second))
	if cmd.Flags().Changed("watch") {
		w := watch
		cfg.Watch = &w
	}
	cfg.Out = cmd.OutOrStdout()
	cfg.LogOut = cmd.ErrOrStderr()
	return cfg, nil
}

// subsystemFlag is a boolean flag that appends its subsystem to a shared
// list each time it is set.
type subsystemFlag struct {
	kind  subsystem.Kind
	order *[]subsystem.Kind
	set   bool
}

func (f *subsystemFlag) String() string { return strconv.FormatBool(f.set) }

func (f *subsystemFlag) Type() string { return "bool" }

func (f *subsystemFlag) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	f.set = v

	// A repeated flag moves to the end.
	kinds := (*f.order)[:0]
	for _, k := range *f.order {
		if k != f.kind {
			kinds = append(kinds, k)
		}
	}
	if v {
		kinds = append(kinds, f.kind)
	}
	*f.order = kinds
	return nil
}

// addSubsystemFlags registers -r, -s, -c and -g on c.
func addSubsystemFlags(c *cobra.Command, order *[]subsystem.Kind) {
	flags := []struct {
		kind      subsystem.Kind
		name      string
		shorthand string
		usage     string
	}{
		{subsystem.Regulator, "regulator", "r", "Show the voltage regulators"},
		{subsystem.Sensor, "sensor", "s", "Show the hwmon sensors"},
		{subsystem.Clock, "clock", "c", "Show the clock tree"},
		{subsystem.GPIO, "gpio", "g", "Show the gpio lines"},
	}
	for _, fl := range flags {
		f := c.Flags().VarPF(&subsystemFlag{kind: fl.kind, order: order}, fl.name, fl.shorthand, fl.usage)
		f.NoOptDefVal = "true"
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	addSubsystemFlags(rootCmd, &selected)
	rootCmd.Flags().StringVarP(&findParents, "findparents", "p", "", "Print the parents of the named clock and exit")
	rootCmd.Flags().Float64VarP(&refreshTime, "time", "t", 0, "Refresh interval in seconds (default from configuration, 10)")
	rootCmd.Flags().BoolVarP(&dump, "dump", "d", false, "Print the selected trees once and exit")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show more attributes and enable debug logging")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Additional configuration file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "Rebuild panels when directories are created or removed below a root (sysfs and debugfs do not report device bind or unbind)")
}
