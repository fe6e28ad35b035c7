package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/paisapal/paisa/internal/analytics"
	"github.com/paisapal/paisa/internal/models"
)

func init() {
	rootCmd.AddCommand(txCmd)
	txCmd.AddCommand(txAddCmd)
	txCmd.AddCommand(txListCmd)
	txCmd.AddCommand(txDeleteCmd)

	txAddCmd.Flags().String("type", "expense", "Transaction type: income or expense")
	txAddCmd.Flags().String("category", "", "Category label")
	txAddCmd.Flags().String("note", "", "Optional note")
	txAddCmd.Flags().String("receipt", "", "Optional receipt reference")
	txListCmd.Flags().Bool("month", false, "Only the current calendar month")
}

var txCmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transaction"},
	Short:   "Log and review transactions",
}

var txAddCmd = &cobra.Command{
	Use:   "add AMOUNT",
	Short: "Record an income or expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxAdd,
}

func runTxAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := requireUser(a.repo); err != nil {
		return err
	}

	amount, err := models.ParseAmount(args[0])
	if err != nil {
		return err
	}
	txType, _ := cmd.Flags().GetString("type")
	category, _ := cmd.Flags().GetString("category")
	note, _ := cmd.Flags().GetString("note")
	receipt, _ := cmd.Flags().GetString("receipt")

	tx, err := a.repo.AddTransaction(ctx, models.Transaction{
		Type:     models.TransactionType(txType),
		Amount:   amount,
		Category: category,
		Note:     note,
		Receipt:  receipt,
	})
	if err != nil {
		return err
	}

	user, _ := a.repo.User()
	fmt.Printf("Recorded %s %s (%s). Balance: %s\n",
		tx.Type, analytics.FormatRupees(tx.Amount), tx.Category,
		analytics.FormatRupees(user.Balance))
	return nil
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		txs := a.repo.Transactions()
		if monthOnly, _ := cmd.Flags().GetBool("month"); monthOnly {
			txs = analytics.MonthlyTransactions(txs, a.now())
		}
		if len(txs) == 0 {
			fmt.Println("No transactions yet.")
			return nil
		}
		for _, tx := range txs {
			sign := "-"
			if tx.Type == models.TypeIncome {
				sign = "+"
			}
			fmt.Printf("%s  %s%s  %-16s %s  %s\n",
				tx.Date.Format(models.DateLayout), sign,
				analytics.FormatRupees(tx.Amount), tx.Category, tx.ID, tx.Note)
		}
		return nil
	},
}

var txDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a transaction and reverse its balance effect",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.repo.DeleteTransaction(ctx, args[0]); err != nil {
			return err
		}
		user, _ := a.repo.User()
		fmt.Printf("Deleted. Balance: %s\n", analytics.FormatRupees(user.Balance))
		return nil
	},
}

// parseDay parses a YYYY-MM-DD argument.
func parseDay(s string) (time.Time, error) {
	day, err := time.ParseInLocation(models.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return day, nil
}
