package commands

import (
	"fmt"

	"github.com/penwyp/go-project-clock/internal/application/clock"
	"github.com/penwyp/go-project-clock/internal/data/store"
	"github.com/penwyp/go-project-clock/internal/util"
	"github.com/spf13/cobra"
)

func newShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the status text for a project",
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
			_, err = fmt.Fprintln(cmd.OutOrStdout(), displayText(config, st))
			return err
		},
	}
}

// displayText renders the saved total of the configured project.
func displayText(config *clock.Config, st *store.Store) string {
	record, ok := st.LoadRecord(config.Project)
	if !ok {
		return util.FormatDisplayText(config.Icon, 0, false)
	}
	return util.FormatDisplayText(config.Icon, record.TotalSeconds(), true)
}
