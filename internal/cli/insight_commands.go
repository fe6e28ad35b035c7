package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paisapal/paisa/internal/analytics"
	"github.com/paisapal/paisa/internal/schedule"
)

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(adviseCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Balance, streak, and this month's figures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		user, err := requireUser(a.repo)
		if err != nil {
			return err
		}

		txs := a.repo.Transactions()
		monthly := analytics.MonthlyTransactions(txs, a.now())
		summary := analytics.Summarize(monthly)
		totals := analytics.CategoryTotals(monthly)

		fmt.Printf("%s — balance %s, %d-day streak, %d points\n",
			user.Name, analytics.FormatRupees(user.Balance), user.StreakDays, user.Points)
		fmt.Printf("This month: income %s, expense %s, net %s\n",
			analytics.FormatRupees(summary.Income),
			analytics.FormatRupees(summary.Expense),
			analytics.FormatRupees(summary.Net()))

		if len(totals) > 0 {
			cats := make([]string, 0, len(totals))
			for cat := range totals {
				cats = append(cats, cat)
			}
			sort.Slice(cats, func(i, j int) bool {
				return totals[cats[i]].GreaterThan(totals[cats[j]])
			})
			fmt.Println("Spending by category:")
			for _, cat := range cats {
				fmt.Printf("  %-16s %s\n", cat, analytics.FormatRupees(totals[cat]))
			}
		}

		bills := a.repo.Bills()
		if overdue := schedule.Overdue(bills, a.now()); len(overdue) > 0 {
			fmt.Printf("Overdue bills: %d\n", len(overdue))
		}
		if upcoming := schedule.Upcoming(bills, a.now()); len(upcoming) > 0 {
			fmt.Printf("Due in the next 7 days: %d\n", len(upcoming))
		}
		return nil
	},
}

var adviseCmd = &cobra.Command{
	Use:   "advise QUESTION...",
	Short: "Ask the assistant for financial advice",
	Args:  cobra.MinimumNArgs(1),
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

		prompt := strings.Join(args, " ")
		answer := a.advisor(ctx).Advise(ctx, prompt, a.financeContext())
		fmt.Println(answer)
		return nil
	},
}
