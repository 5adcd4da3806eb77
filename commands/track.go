package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/penwyp/go-project-clock/internal/application/clock"
	"github.com/penwyp/go-project-clock/internal/core/dispatcher"
	"github.com/penwyp/go-project-clock/internal/core/model"
	"github.com/penwyp/go-project-clock/internal/host"
	"github.com/penwyp/go-project-clock/internal/platform"
	"github.com/penwyp/go-project-clock/internal/util"
	"github.com/spf13/cobra"
)

func newTrackCommand(opts *rootOptions) *cobra.Command {
	var tick time.Duration

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Run the tracker, reading host signals from stdin",
		Long: `Runs the tracking loop for one editor window.

Host signals are read from stdin, one JSON object per line:
  {"event":"focus_gained"}
  {"event":"focus_lost"}
  {"event":"project_changed","project":"/path/to/workspace"}
  {"event":"show_stats"}
  {"event":"shutdown"}

Status updates and notifications are written to stdout as
{"type":"status","text":"..."} and {"type":"notification","text":"..."}.
Closing stdin stops tracking and saves the totals.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.clockConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tick") {
				if tick <= 0 {
					return fmt.Errorf("tick must be positive, got %s", tick)
				}
				config.TickInterval = tick
			}
			return runTrack(cmd, config)
		},
	}

	cmd.Flags().DurationVar(&tick, "tick", clock.DefaultTickInterval,
		"Status refresh interval")
	return cmd
}

func runTrack(cmd *cobra.Command, config *clock.Config) error {
	lock, err := platform.AcquireLock(filepath.Join(config.DataDir, model.LockFileName))
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			return fmt.Errorf("cannot track %s: %w", config.DataDir, err)
		}
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			util.LogWarnf("Failed to release lock: %v", err)
		}
	}()

	runID := uuid.NewString()
	util.AttachFields(util.Field{Key: util.RunIDField, Value: runID})

	st, err := openStore(config)
	if err != nil {
		return err
	}
	util.LogInfof("Tracker started: project=%s snapshot=%s", config.Project, st.SnapshotPath())

	app, err := clock.NewApp(config, st, host.NewEmitter(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan dispatcher.Event, 16)
	reader := host.NewReader(cmd.InOrStdin(), time.Now)
	go func() {
		if err := reader.Run(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
			util.LogWarnf("Host reader stopped: %v", err)
		}
	}()

	if err := app.Run(ctx, events); err != nil {
		return err
	}
	util.LogInfo("Tracker stopped")
	return nil
}
