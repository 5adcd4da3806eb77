package commands

import (
	"github.com/penwyp/go-project-clock/internal/data/aggregator"
	"github.com/penwyp/go-project-clock/internal/presentation/formatter"
	"github.com/penwyp/go-project-clock/internal/util"
	"github.com/spf13/cobra"
)

func newWeekCommand(opts *rootOptions) *cobra.Command {
	var (
		outputFormat string
		width        int
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show this week's time per day for a project",
		Long: `Shows the seconds tracked on each day from Sunday to Saturday of the
current week. Days without activity are reported as zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatter.New(outputFormat, width)
			if err != nil {
				return err
			}

			config, err := opts.clockConfig()
			if err != nil {
				return err
			}
			st, err := openStore(config)
			if err != nil {
				return err
			}

			tp := util.GetTimeProvider()
			record, _ := st.LoadRecord(config.Project)
			chart := aggregator.New(tp.Location()).WeeklyChart(record, tp.Now())

			return f.Format(cmd.OutOrStdout(), formatter.NewWeeklyReport(config.Project.String(), chart))
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv)")
	cmd.Flags().IntVar(&width, "width", 0,
		"Table width (0 = terminal width)")
	return cmd
}
