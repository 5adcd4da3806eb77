package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/penwyp/go-project-clock/internal/presentation/display"
	"github.com/penwyp/go-project-clock/internal/presentation/layout"
	"github.com/penwyp/go-project-clock/internal/util"
	"github.com/spf13/cobra"
)

func newStatusCommand(opts *rootOptions) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the status line, optionally following changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.clockConfig()
			if err != nil {
				return err
			}
			st, err := openStore(config)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			inPlace := false
			if f, ok := out.(*os.File); ok && follow {
				inPlace = layout.IsTerminal(f)
			}
			line := display.NewStatusLine(out, inPlace, 0)

			if _, err := line.Render(displayText(config, st)); err != nil {
				return err
			}
			if !follow {
				return nil
			}

			watcher, err := st.NewSnapshotWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			for {
				select {
				case <-ctx.Done():
					return line.Finish()
				case event, ok := <-watcher.Events():
					if !ok {
						return line.Finish()
					}
					util.LogDebugf("Snapshot changed: %s %s", event.Operation, event.Path)
					if _, err := line.Render(displayText(config, st)); err != nil {
						return err
					}
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false,
		"Re-render whenever the snapshot file changes")
	return cmd
}
