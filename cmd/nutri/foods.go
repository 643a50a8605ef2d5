package nutri

import (
	"fmt"

	"github.com/Snape93/nutrition-sub006/internal/model"
	"github.com/spf13/cobra"
)

var foodsCmd = &cobra.Command{
	Use:   "foods",
	Short: "Search the remote food catalogue",
}

var foodsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			items, err := a.client.SearchFoods(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printFoodItems(cmd, items)
			return nil
		})
	},
}

var recommendCalories float64

var foodsRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend foods for a calorie budget",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			items, err := a.client.RecommendFoods(cmd.Context(), recommendCalories)
			if err != nil {
				return err
			}
			printFoodItems(cmd, items)
			return nil
		})
	},
}

var foodsInfoCmd = &cobra.Command{
	Use:   "info <food-id>",
	Short: "Show catalogue details for one food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			item, err := a.client.FoodInfo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printFoodItems(cmd, []model.FoodItem{item})
			return nil
		})
	},
}

func printFoodItems(cmd *cobra.Command, items []model.FoodItem) {
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No results")
		return
	}
	for _, item := range items {
		name := item.Name
		if item.Brand != "" {
			name += " (" + item.Brand + ")"
		}
		fmt.Fprintf(out, "%-40s %.0f kcal | P %.1fg C %.1fg F %.1fg\n",
			name, item.Calories, item.ProteinG, item.CarbsG, item.FatG)
	}
}

func init() {
	rootCmd.AddCommand(foodsCmd)
	foodsCmd.AddCommand(foodsSearchCmd)
	foodsCmd.AddCommand(foodsRecommendCmd)
	foodsCmd.AddCommand(foodsInfoCmd)

	foodsRecommendCmd.Flags().Float64Var(&recommendCalories, "calories", 0, "Remaining calorie budget (kcal)")
}
