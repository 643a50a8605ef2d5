package nutri

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Snape93/nutrition-sub006/internal/model"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Append food, exercise, weight, or water entries",
}

var (
	logDate     string
	logCalories float64
	logProtein  float64
	logCarbs    float64
	logFat      float64
	logDuration float64
	logWeightKg float64
	logWaterMl  float64
)

func appendEntry(cmd *cobra.Command, entry model.LogEntry) error {
	return withApp(func(a *appContext) error {
		if err := requireUser(a); err != nil {
			return err
		}
		entry.UserID = a.userID
		at, err := parseDateOrNow(logDate)
		if err != nil {
			return err
		}
		entry.LoggedAt = at
		id, err := a.repo.AppendLog(cmd.Context(), entry)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged %s entry #%d\n", entry.Kind, id)
		return nil
	})
}

var logFoodCmd = &cobra.Command{
	Use:   "food <name>",
	Short: "Log a food entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if logCalories < 0 {
			return fmt.Errorf("calories must be >= 0")
		}
		return appendEntry(cmd, model.LogEntry{
			Kind:     model.LogFood,
			Name:     args[0],
			Calories: logCalories,
			ProteinG: logProtein,
			CarbsG:   logCarbs,
			FatG:     logFat,
		})
	},
}

var logExerciseCmd = &cobra.Command{
	Use:   "exercise <activity>",
	Short: "Log an exercise entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if logDuration <= 0 {
			return fmt.Errorf("duration must be > 0")
		}
		return appendEntry(cmd, model.LogEntry{
			Kind:        model.LogExercise,
			Name:        args[0],
			DurationMin: logDuration,
			Calories:    logCalories,
		})
	},
}

var logWeightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Log a weight measurement",
	RunE: func(cmd *cobra.Command, args []string) error {
		if logWeightKg <= 0 {
			return fmt.Errorf("weight must be > 0")
		}
		return appendEntry(cmd, model.LogEntry{
			Kind:     model.LogWeight,
			WeightKg: logWeightKg,
		})
	},
}

var logWaterCmd = &cobra.Command{
	Use:   "water",
	Short: "Log water intake",
	RunE: func(cmd *cobra.Command, args []string) error {
		if logWaterMl <= 0 {
			return fmt.Errorf("amount must be > 0")
		}
		return appendEntry(cmd, model.LogEntry{
			Kind:     model.LogWater,
			AmountMl: logWaterMl,
		})
	},
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete <kind> <id>",
	Short: "Delete a log entry by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := model.LogKind(args[0])
		switch kind {
		case model.LogFood, model.LogExercise, model.LogWeight, model.LogWater:
		default:
			return fmt.Errorf("invalid kind %q (food|exercise|weight|water)", args[0])
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid id %q", args[1])
		}
		return withApp(func(a *appContext) error {
			if err := a.repo.DeleteLog(cmd.Context(), kind, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s entry #%d\n", kind, id)
			return nil
		})
	},
}

var (
	logsKind string
	logsFrom string
	logsTo   string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List log entries for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := model.LogKind(logsKind)
		switch kind {
		case model.LogFood, model.LogExercise, model.LogWeight, model.LogWater:
		default:
			return fmt.Errorf("invalid --kind %q (food|exercise|weight|water)", logsKind)
		}
		from, err := parseDate("--from", logsFrom)
		if err != nil {
			return err
		}
		to, err := parseDate("--to", logsTo)
		if err != nil {
			return err
		}
		to = to.Add(24*time.Hour - time.Nanosecond)

		return withApp(func(a *appContext) error {
			if err := requireUser(a); err != nil {
				return err
			}
			entries, err := a.repo.QueryLogs(cmd.Context(), kind, a.userID, from, to)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries")
				return nil
			}
			for _, e := range entries {
				stamp := e.LoggedAt.Format("2006-01-02 15:04")
				switch kind {
				case model.LogFood:
					fmt.Fprintf(out, "%s  %s  %.0f kcal (P %.1fg C %.1fg F %.1fg)\n",
						stamp, e.Name, e.Calories, e.ProteinG, e.CarbsG, e.FatG)
				case model.LogExercise:
					fmt.Fprintf(out, "%s  %s  %.0f min\n", stamp, e.Name, e.DurationMin)
				case model.LogWeight:
					fmt.Fprintf(out, "%s  %.1f kg\n", stamp, e.WeightKg)
				case model.LogWater:
					fmt.Fprintf(out, "%s  %.0f ml\n", stamp, e.AmountMl)
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(logsCmd)
	logCmd.AddCommand(logFoodCmd)
	logCmd.AddCommand(logExerciseCmd)
	logCmd.AddCommand(logWeightCmd)
	logCmd.AddCommand(logWaterCmd)
	logCmd.AddCommand(logDeleteCmd)

	logCmd.PersistentFlags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default now)")
	logFoodCmd.Flags().Float64Var(&logCalories, "calories", 0, "Calories (kcal)")
	logFoodCmd.Flags().Float64Var(&logProtein, "protein", 0, "Protein (g)")
	logFoodCmd.Flags().Float64Var(&logCarbs, "carbs", 0, "Carbs (g)")
	logFoodCmd.Flags().Float64Var(&logFat, "fat", 0, "Fat (g)")
	logExerciseCmd.Flags().Float64Var(&logDuration, "duration", 0, "Duration (minutes)")
	logExerciseCmd.Flags().Float64Var(&logCalories, "calories", 0, "Calories burned (kcal)")
	logWeightCmd.Flags().Float64Var(&logWeightKg, "kg", 0, "Weight (kg)")
	logWaterCmd.Flags().Float64Var(&logWaterMl, "ml", 0, "Amount (ml)")

	logsCmd.Flags().StringVar(&logsKind, "kind", "food", "Log kind (food|exercise|weight|water)")
	logsCmd.Flags().StringVar(&logsFrom, "from", "", "Start date YYYY-MM-DD")
	logsCmd.Flags().StringVar(&logsTo, "to", "", "End date YYYY-MM-DD")
}
