package nutri

import (
	"fmt"

	"github.com/Snape93/nutrition-sub006/internal/metrics"
	"github.com/Snape93/nutrition-sub006/internal/model"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the user profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile, BMI, and daily calorie goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			if err := requireUser(a); err != nil {
				return err
			}
			p, err := a.repo.GetUser(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "User: %s", p.Username)
			if p.Email != "" {
				fmt.Fprintf(out, " <%s>", p.Email)
			}
			fmt.Fprintln(out)
			if p.Age != nil {
				fmt.Fprintf(out, "Age: %d\n", *p.Age)
			}
			if p.Sex != nil {
				fmt.Fprintf(out, "Sex: %s\n", *p.Sex)
			}
			if p.HeightCm != nil && p.WeightKg != nil {
				bmi := metrics.BMI(*p.WeightKg, *p.HeightCm)
				fmt.Fprintf(out, "Height: %.1f cm | Weight: %.1f kg | BMI: %.1f (%s)\n",
					*p.HeightCm, *p.WeightKg, bmi, metrics.ClassifyBMI(bmi))
			}
			if p.ActivityLevel != nil {
				fmt.Fprintf(out, "Activity: %s\n", *p.ActivityLevel)
			}
			if p.Goal != nil {
				fmt.Fprintf(out, "Goal: %s\n", *p.Goal)
			}
			if p.DailyCalorieGoal != nil {
				fmt.Fprintf(out, "Daily calorie goal: %.0f kcal\n", *p.DailyCalorieGoal)
				if p.Goal != nil && p.Sex != nil {
					split := metrics.Macros(*p.DailyCalorieGoal, *p.Goal, *p.Sex)
					fmt.Fprintf(out, "Macros: P %.0fg | C %.0fg | F %.0fg\n",
						split.ProteinG, split.CarbG, split.FatG)
				}
			}
			return nil
		})
	},
}

var (
	setAge      int
	setSex      string
	setHeight   float64
	setWeight   float64
	setActivity string
	setGoal     string
	setTheme    string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields; goal-relevant changes recompute the calorie goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch model.ProfilePatch
		if cmd.Flags().Changed("age") {
			patch.Age = &setAge
		}
		if cmd.Flags().Changed("sex") {
			v := model.Sex(setSex)
			patch.Sex = &v
		}
		if cmd.Flags().Changed("height") {
			patch.HeightCm = &setHeight
		}
		if cmd.Flags().Changed("weight") {
			patch.WeightKg = &setWeight
		}
		if cmd.Flags().Changed("activity") {
			v := model.ActivityLevel(setActivity)
			patch.ActivityLevel = &v
		}
		if cmd.Flags().Changed("goal") {
			v := model.GoalType(setGoal)
			patch.Goal = &v
		}
		if cmd.Flags().Changed("theme") {
			patch.Theme = &setTheme
		}

		return withApp(func(a *appContext) error {
			if err := requireUser(a); err != nil {
				return err
			}
			if err := a.repo.UpdateProfile(cmd.Context(), a.userID, patch); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)

	profileSetCmd.Flags().IntVar(&setAge, "age", 0, "Age in years")
	profileSetCmd.Flags().StringVar(&setSex, "sex", "", "Sex (male|female)")
	profileSetCmd.Flags().Float64Var(&setHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().Float64Var(&setWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().StringVar(&setActivity, "activity", "", "Activity level (sedentary|lightly_active|moderately_active|very_active|extremely_active)")
	profileSetCmd.Flags().StringVar(&setGoal, "goal", "", "Goal (lose_weight|maintain_weight|gain_muscle)")
	profileSetCmd.Flags().StringVar(&setTheme, "theme", "", "UI theme preference")
}
