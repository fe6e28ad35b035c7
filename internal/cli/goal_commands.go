package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paisapal/paisa/internal/analytics"
	"github.com/paisapal/paisa/internal/models"
)

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalFundCmd)
	goalCmd.AddCommand(goalDeleteCmd)

	goalAddCmd.Flags().String("target", "", "Target amount (required)")
	goalAddCmd.Flags().String("icon", "", "Icon name")
	_ = goalAddCmd.MarkFlagRequired("target")
}

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage savings goals",
}

var goalAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a savings goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if _, err := requireUser(a.repo); err != nil {
			return err
		}

		targetStr, _ := cmd.Flags().GetString("target")
		target, err := models.ParseAmount(targetStr)
		if err != nil {
			return err
		}
		icon, _ := cmd.Flags().GetString("icon")

		goal, err := a.repo.AddGoal(ctx, models.Goal{
			Name:         args[0],
			TargetAmount: target,
			Icon:         icon,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Goal %q created, target %s.\n", goal.Name, analytics.FormatRupees(goal.TargetAmount))
		return nil
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals with progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		goals := a.repo.Goals()
		if len(goals) == 0 {
			fmt.Println("No goals yet.")
			return nil
		}
		for _, g := range goals {
			fmt.Printf("%-20s %s / %s  (%.0f%%)  %s\n",
				g.Name,
				analytics.FormatRupees(g.CurrentAmount),
				analytics.FormatRupees(g.TargetAmount),
				analytics.GoalProgressPercent(g),
				g.ID)
		}
		return nil
	},
}

var goalFundCmd = &cobra.Command{
	Use:   "fund ID AMOUNT",
	Short: "Add funds to a goal (recorded as Goal Funding income)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		amount, err := models.ParseAmount(args[1])
		if err != nil {
			return err
		}
		if err := a.repo.AddFunds(ctx, args[0], amount); err != nil {
			return err
		}
		fmt.Printf("Added %s.\n", analytics.FormatRupees(amount))
		return nil
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.repo.DeleteGoal(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}
