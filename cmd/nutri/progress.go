package nutri

import (
	"fmt"

	"github.com/Snape93/nutrition-sub006/internal/model"
	"github.com/Snape93/nutrition-sub006/internal/progress"
	"github.com/spf13/cobra"
)

var (
	progressRange   string
	progressFrom    string
	progressTo      string
	progressRefresh bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the progress snapshot for a time range",
	RunE: func(cmd *cobra.Command, args []string) error {
		var r progress.TimeRange
		if progressFrom != "" || progressTo != "" {
			from, err := parseDate("--from", progressFrom)
			if err != nil {
				return err
			}
			to, err := parseDate("--to", progressTo)
			if err != nil {
				return err
			}
			r = progress.Custom(from, to)
		} else {
			switch progressRange {
			case "daily":
				r = progress.Daily()
			case "weekly":
				r = progress.Weekly()
			case "monthly":
				r = progress.Monthly()
			default:
				return fmt.Errorf("invalid --range %q (daily|weekly|monthly)", progressRange)
			}
		}

		return withApp(func(a *appContext) error {
			if err := requireUser(a); err != nil {
				return err
			}
			data, err := a.aggregator.ProgressData(cmd.Context(), a.userID, r, progressRefresh)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Progress %s to %s\n",
				data.Start.Format("2006-01-02"), data.End.Format("2006-01-02"))
			printSnapshot(cmd, "Calories", data.Calories)
			printSnapshot(cmd, "Exercise", data.Exercise)
			printSnapshot(cmd, "Steps", data.Steps)
			printSnapshot(cmd, "Water", data.Water)
			return nil
		})
	},
}

func printSnapshot(cmd *cobra.Command, label string, s model.MetricSnapshot) {
	fmt.Fprintf(cmd.OutOrStdout(), "%-9s %.0f / %.0f %s (%.0f%%)\n",
		label+":", s.Current, s.Goal, s.Unit, s.Percentage*100)
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.Flags().StringVar(&progressRange, "range", "daily", "Range (daily|weekly|monthly)")
	progressCmd.Flags().StringVar(&progressFrom, "from", "", "Custom range start YYYY-MM-DD")
	progressCmd.Flags().StringVar(&progressTo, "to", "", "Custom range end YYYY-MM-DD")
	progressCmd.Flags().BoolVar(&progressRefresh, "refresh", false, "Force a fresh fetch, bypassing the snapshot cache")
}
