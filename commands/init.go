package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/penwyp/go-project-clock/internal/application/clock"
	"github.com/penwyp/go-project-clock/internal/data/settings"
	"github.com/penwyp/go-project-clock/internal/util"
	"github.com/spf13/cobra"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the settings file",
		Long: `Writes the effective settings (flags merged over any existing settings
file) to the file named by --config, so later runs need no flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := expandPath(opts.configFile)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("settings file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check settings file: %w", err)
			}

			if err := settings.Save(path, opts.effectiveSettings()); err != nil {
				return err
			}
			util.LogInfof("Wrote settings to %s", path)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Settings written to %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false,
		"Overwrite an existing settings file")
	return cmd
}

// effectiveSettings returns the values in use after merging flags and file.
func (o *rootOptions) effectiveSettings() settings.Settings {
	tickSeconds := o.settings.TickSeconds
	if tickSeconds <= 0 {
		tickSeconds = int(clock.DefaultTickInterval / time.Second)
	}
	logLevel := o.settings.LogLevel
	if o.debug {
		logLevel = "debug"
	}
	if logLevel == "" {
		logLevel = "info"
	}

	return settings.Settings{
		DataDir:        o.dataDir,
		ReportDir:      o.reportDir,
		Timezone:       o.timezone,
		Icon:           o.icon,
		DefaultProject: o.project,
		TickSeconds:    tickSeconds,
		LogLevel:       logLevel,
		LogFormat:      o.logFormat,
	}
}
