package cmd

import (
	"fmt"
	"time"

	"pawtally/internal/cli"
	"pawtally/internal/model"
	"pawtally/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagRecAmount   string
	flagRecCategory string
	flagRecDesc     string
)

var recurringCmd = &cobra.Command{
	Use:     "recurring",
	Aliases: []string{"rec"},
	Short:   "Manage monthly recurring expenses",
	RunE:    runRecurringList,
}

var recurringAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recurring expense template",
	RunE:  runRecurringAdd,
}

var recurringPayCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Mark a recurring expense paid, logging a real expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecurringPay,
}

var recurringResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all paid flags for a new month",
	RunE:  runRecurringReset,
}

var recurringRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a recurring expense template",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecurringRm,
}

func init() {
	recurringAddCmd.Flags().StringVarP(&flagRecAmount, "amount", "a", "", "Amount, e.g. 39.99")
	recurringAddCmd.Flags().StringVarP(&flagRecCategory, "category", "c", "other", "Category")
	recurringAddCmd.Flags().StringVar(&flagRecDesc, "desc", "", "Description, e.g. pet insurance")

	recurringCmd.AddCommand(recurringAddCmd, recurringPayCmd, recurringResetCmd, recurringRmCmd)
	rootCmd.AddCommand(recurringCmd)
}

func runRecurringList(_ *cobra.Command, _ []string) error {
	tr, closeStore, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	recurring := tr.Recurring()
	if len(recurring) == 0 {
		fmt.Println("\n  No recurring expenses. Add one with `pawtally recurring add`.")
		return nil
	}

	cur := currencyFor(cfg)
	rows := make([][]string, 0, len(recurring))
	for _, r := range recurring {
		status := cli.Warn("due")
		if r.PaidThisMonth {
			status = cli.Good("paid " + cli.FormatDay(r.LastPaidDate))
		}
		rows = append(rows, []string{
			r.ID[:8],
			cli.Truncate(tr.PetName(r.PetID), 14),
			cli.Truncate(r.Description, 20),
			r.Category.Label(),
			cur.Format(r.Amount),
			status,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Pet", "Description", "Category", "Amount", "This Month"},
		Rows:    rows,
	}))
	return nil
}

func runRecurringAdd(_ *cobra.Command, _ []string) error {
	tr, closeStore, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	petID, err := mustPet(tr, cfg, flagPet)
	if err != nil {
		return err
	}
	if flagRecAmount == "" {
		return fmt.Errorf("an amount is required: pass --amount")
	}
	amount, err := parseAmount(flagRecAmount)
	if err != nil {
		return err
	}

	r, err := tr.AddRecurring(petID, model.ParseCategory(flagRecCategory), amount, flagRecDesc, time.Now())
	if err != nil {
		return err
	}

	cur := currencyFor(cfg)
	fmt.Printf("\n  Added recurring %s/month for %s.\n", cur.Format(r.Amount), tr.PetName(petID))
	return nil
}

func runRecurringPay(_ *cobra.Command, args []string) error {
	tr, closeStore, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	id := resolveRecurringID(tr, args[0])
	e, err := tr.MarkRecurringPaid(id, time.Now())
	if err != nil {
		return err
	}
	if e.ID == "" {
		fmt.Println("\n  No recurring expense with that id.")
		return nil
	}

	cur := currencyFor(cfg)
	fmt.Printf("\n  Paid: logged %s for %s. +10 XP!\n", cur.Format(e.Amount), tr.PetName(e.PetID))
	return nil
}

func runRecurringReset(_ *cobra.Command, _ []string) error {
	tr, closeStore, _, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := tr.ResetMonthlyPaid(); err != nil {
		return err
	}
	fmt.Println("\n  All recurring expenses marked unpaid for the new month.")
	return nil
}

func runRecurringRm(_ *cobra.Command, args []string) error {
	tr, closeStore, _, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	id := resolveRecurringID(tr, args[0])
	before := len(tr.Recurring())
	if err := tr.DeleteRecurring(id); err != nil {
		return err
	}
	if len(tr.Recurring()) == before {
		fmt.Println("\n  No recurring expense with that id.")
		return nil
	}

	fmt.Println("\n  Recurring expense deleted.")
	return nil
}

// resolveRecurringID expands the 8-char prefix shown in the list back to
// a full id. Full ids pass through untouched.
func resolveRecurringID(tr *store.Tracker, prefix string) string {
	for _, r := range tr.Recurring() {
		if r.ID == prefix || (len(prefix) >= 8 && len(r.ID) >= len(prefix) && r.ID[:len(prefix)] == prefix) {
			return r.ID
		}
	}
	return prefix
}
