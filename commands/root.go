package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-project-clock/internal/application/clock"
	"github.com/penwyp/go-project-clock/internal/core/model"
	"github.com/penwyp/go-project-clock/internal/data/settings"
	"github.com/penwyp/go-project-clock/internal/data/store"
	"github.com/penwyp/go-project-clock/internal/util"
	"github.com/spf13/cobra"
)

const (
	defaultLogFile    = "~/.go-project-clock/logs/app.log"
	defaultConfigFile = "~/.go-project-clock/" + settings.DefaultFileName
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	// Logging related
	debug     bool
	logFile   string
	logFormat string

	// Storage
	dataDir    string
	reportDir  string
	configFile string

	// Tracking
	project  string
	timezone string
	icon     string

	// Filled by prepare
	settings settings.Settings
}

// NewRootCommand builds the command tree with fresh flag state.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "go-project-clock",
		Short: "Per-project focus time tracker",
		Long: `go-project-clock measures how long you are focused on a project workspace,
keeps cumulative and per-day totals, and shows a weekly chart.

The editor integration runs "go-project-clock track" and feeds focus and
workspace signals on stdin, one JSON object per line.

Examples:
  go-project-clock track --project ~/src/app     # Run the tracker for a workspace
  go-project-clock show --project ~/src/app      # Print the status text
  go-project-clock week -o json                  # Weekly chart as JSON
  go-project-clock status --follow               # Live status line`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.prepare(cmd)
		},
	}

	// Input data configuration
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", clock.DefaultDataDir,
		"Directory holding project_times.json")
	rootCmd.PersistentFlags().StringVar(&opts.reportDir, "report-dir", "",
		"Directory for per-project reports (default <data-dir>/reports)")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", defaultConfigFile,
		"Optional YAML settings file")

	// Tracking
	rootCmd.PersistentFlags().StringVarP(&opts.project, "project", "p", "",
		"Project key, usually the workspace path (default \"default\")")
	rootCmd.PersistentFlags().StringVar(&opts.timezone, "timezone", clock.DefaultTimezone,
		"Timezone for day buckets (e.g., Asia/Shanghai, UTC)")
	rootCmd.PersistentFlags().StringVar(&opts.icon, "icon", clock.DefaultIcon,
		"Icon placed before the status text")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", defaultLogFile,
		"Log file path")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text",
		"Log encoding (text, json)")

	rootCmd.AddCommand(
		newTrackCommand(opts),
		newShowCommand(opts),
		newWeekCommand(opts),
		newStatusCommand(opts),
		newReportCommand(opts),
		newInitCommand(opts),
	)
	return rootCmd
}

func Execute() error {
	return NewRootCommand().Execute()
}

// prepare loads the settings file, merges it under the flags and sets up
// logging and the time provider.
func (o *rootOptions) prepare(cmd *cobra.Command) error {
	loaded, err := settings.Load(expandPath(o.configFile))
	if err != nil {
		return err
	}
	o.settings = loaded

	flags := cmd.Flags()
	if !flags.Changed("data-dir") && loaded.DataDir != "" {
		o.dataDir = loaded.DataDir
	}
	if !flags.Changed("report-dir") && loaded.ReportDir != "" {
		o.reportDir = loaded.ReportDir
	}
	if !flags.Changed("timezone") && loaded.Timezone != "" {
		o.timezone = loaded.Timezone
	}
	if !flags.Changed("icon") && loaded.Icon != "" {
		o.icon = loaded.Icon
	}
	if !flags.Changed("project") && loaded.DefaultProject != "" {
		o.project = loaded.DefaultProject
	}

	logLevel := "info"
	if loaded.LogLevel != "" {
		logLevel = loaded.LogLevel
	}
	if o.debug {
		logLevel = "debug"
	}
	if !flags.Changed("log-format") && loaded.LogFormat != "" {
		o.logFormat = loaded.LogFormat
	}

	logFile := expandPath(o.logFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(logLevel, logFile, o.logFormat, o.debug); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := util.InitializeTimeProvider(o.timezone); err != nil {
		return err
	}
	return nil
}

// clockConfig returns the validated application config.
func (o *rootOptions) clockConfig() (*clock.Config, error) {
	config := &clock.Config{
		DataDir:      expandPath(o.dataDir),
		Project:      model.ProjectKey(o.project),
		Icon:         o.icon,
		Timezone:     o.timezone,
		TickInterval: o.settings.TickInterval(),
	}
	if o.reportDir != "" {
		config.ReportDir = expandPath(o.reportDir)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// openStore builds the file store for config using the configured timezone.
func openStore(config *clock.Config) (*store.Store, error) {
	provider, err := util.NewTimeProvider(config.Timezone)
	if err != nil {
		return nil, err
	}
	return store.New(config.DataDir, config.ReportDir, provider.Location()), nil
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
