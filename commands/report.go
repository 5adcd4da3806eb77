package commands

import (
	"fmt"

	"github.com/penwyp/go-project-clock/internal/data/store"
	"github.com/penwyp/go-project-clock/internal/util"
	"github.com/spf13/cobra"
)

func newReportCommand(opts *rootOptions) *cobra.Command {
	var printReport bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Regenerate the report file for a project",
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
			record, ok := st.LoadRecord(config.Project)
			if !ok {
				_, err = fmt.Fprintf(out, "%s for project %s\n", util.NoDataText, config.Project)
				return err
			}

			now := util.GetTimeProvider().Now()
			if err := st.SaveReport(config.Project, record, now); err != nil {
				return err
			}

			if printReport {
				_, err = fmt.Fprint(out, store.RenderReport(config.Project, record, now))
				return err
			}
			_, err = fmt.Fprintf(out, "Report written to %s\n", st.ReportPath(config.Project))
			return err
		},
	}

	cmd.Flags().BoolVar(&printReport, "print", false,
		"Also print the report to stdout")
	return cmd
}
