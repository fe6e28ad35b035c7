package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paisapal/paisa/internal/analytics"
	"github.com/paisapal/paisa/internal/models"
	"github.com/paisapal/paisa/internal/schedule"
)

func init() {
	rootCmd.AddCommand(billCmd)
	billCmd.AddCommand(billAddCmd)
	billCmd.AddCommand(billListCmd)
	billCmd.AddCommand(billPayCmd)
	billCmd.AddCommand(billDeleteCmd)
	billCmd.AddCommand(billUpcomingCmd)
	billCmd.AddCommand(billOverdueCmd)

	billAddCmd.Flags().String("amount", "", "Bill amount (required)")
	billAddCmd.Flags().String("due", "", "Anchor due date, YYYY-MM-DD (required)")
	billAddCmd.Flags().String("category", "", "Category label")
	billAddCmd.Flags().String("icon", "", "Icon name")
	billAddCmd.Flags().String("frequency", "", "weekly, monthly, or yearly (implies recurring)")
	_ = billAddCmd.MarkFlagRequired("amount")
	_ = billAddCmd.MarkFlagRequired("due")

	billPayCmd.Flags().Bool("no-expense", false, "Do not record an expense transaction")
	billPayCmd.Flags().String("occurrence", "", "Settle only the occurrence due on this date (YYYY-MM-DD)")
}

var billCmd = &cobra.Command{
	Use:   "bill",
	Short: "Manage bills and recurring dues",
}

var billAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a bill",
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

		amountStr, _ := cmd.Flags().GetString("amount")
		amount, err := models.ParseAmount(amountStr)
		if err != nil {
			return err
		}
		dueStr, _ := cmd.Flags().GetString("due")
		due, err := parseDay(dueStr)
		if err != nil {
			return err
		}
		category, _ := cmd.Flags().GetString("category")
		icon, _ := cmd.Flags().GetString("icon")
		freqStr, _ := cmd.Flags().GetString("frequency")

		bill := models.Bill{
			Name:     args[0],
			Amount:   amount,
			Category: category,
			Icon:     icon,
			DueDate:  due,
		}
		if freqStr != "" {
			bill.IsRecurring = true
			bill.Frequency = models.Frequency(freqStr)
		}

		created, err := a.repo.AddBill(ctx, bill)
		if err != nil {
			return err
		}
		fmt.Printf("Bill %q due %s.\n", created.Name, created.DueDate.Format(models.DateLayout))
		return nil
	},
}

var billListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bill templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		bills := a.repo.Bills()
		if len(bills) == 0 {
			fmt.Println("No bills yet.")
			return nil
		}
		for _, b := range bills {
			status := "due"
			if b.IsPaid {
				status = "paid"
			}
			recur := ""
			if b.IsRecurring {
				recur = " (" + string(b.Frequency) + ")"
			}
			fmt.Printf("%-20s %s  due %s%s  [%s]  %s\n",
				b.Name, analytics.FormatRupees(b.Amount),
				b.DueDate.Format(models.DateLayout), recur, status, b.ID)
		}
		return nil
	},
}

var billPayCmd = &cobra.Command{
	Use:   "pay ID",
	Short: "Mark a bill paid",
	Long: `Mark a bill paid and record the matching expense transaction.

By default the whole template is marked paid, which stops all projected
occurrences. For a recurring bill, pass --occurrence DATE to settle just
that period and keep the rest of the series.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		noExpense, _ := cmd.Flags().GetBool("no-expense")
		occStr, _ := cmd.Flags().GetString("occurrence")

		if occStr != "" {
			due, err := parseDay(occStr)
			if err != nil {
				return err
			}
			if err := a.repo.PayBillOccurrence(ctx, args[0], due, !noExpense); err != nil {
				return err
			}
		} else if err := a.repo.PayBill(ctx, args[0], !noExpense); err != nil {
			return err
		}
		fmt.Println("Paid.")
		return nil
	},
}

var billDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a bill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.repo.DeleteBill(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

var billUpcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Occurrences due in the next seven days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		printOccurrences(schedule.Upcoming(a.repo.Bills(), a.now()), "Nothing due in the next 7 days.")
		return nil
	},
}

var billOverdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Occurrences due before today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		printOccurrences(schedule.Overdue(a.repo.Bills(), a.now()), "Nothing overdue.")
		return nil
	},
}

func printOccurrences(occs []models.Occurrence, emptyMsg string) {
	if len(occs) == 0 {
		fmt.Println(emptyMsg)
		return
	}
	for _, occ := range occs {
		fmt.Printf("%s  %-20s %s  %s\n",
			occ.DueDate.Format(models.DateLayout),
			occ.Bill.Name, analytics.FormatRupees(occ.Bill.Amount), occ.Bill.ID)
	}
}
