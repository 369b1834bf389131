package cmd

import (
	"fmt"
	"time"

	"pawtally/internal/cli"
	"pawtally/internal/model"
	"pawtally/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly spending summary with budget status",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	tr, closeStore, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	if len(tr.Expenses()) == 0 && len(tr.Pets()) == 0 {
		fmt.Println("\n  Nothing tracked yet.")
		fmt.Println("  Add a pet with `pawtally pets add`, then log an expense.")
		return nil
	}

	petID, err := resolvePet(tr, cfg, flagPet)
	if err != nil {
		return err
	}

	now := time.Now()
	monthStart, monthEnd := pipeline.MonthRange(now)
	snap := pipeline.Aggregate(tr.Expenses(), tr.Budgets(), pipeline.Options{
		PetID: petID,
		Since: monthStart,
		Until: monthEnd,
	})

	cur := currencyFor(cfg)
	scope := "All pets"
	if petID != "" {
		scope = tr.PetName(petID)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", scope, now.Format("January 2006"))))
	fmt.Println()

	budgets := pipeline.FilterBudgetsByPet(tr.Budgets(), petID)
	limits := make(map[model.Category]model.Budget, len(budgets))
	for _, b := range budgets {
		limits[b.Category] = b
	}

	rows := make([][]string, 0, len(model.Categories)+2)
	for _, c := range model.Categories {
		spent := snap.SpendingByCategory[c]
		if spent.IsZero() {
			if _, budgeted := limits[c]; !budgeted {
				continue
			}
		}
		status := ""
		if b, ok := limits[c]; ok {
			if spent.GreaterThan(b.MonthlyLimit) {
				status = cli.Warn("over " + cur.Format(b.MonthlyLimit))
			} else {
				status = cli.Good("of " + cur.Format(b.MonthlyLimit))
			}
		}
		rows = append(rows, []string{c.Label(), cur.Format(spent), status})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", cur.Format(snap.TotalSpent), ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Spent", "Budget"},
		Rows:    rows,
	}))

	// Per-pet breakdown only makes sense without a pet filter.
	monthExpenses := pipeline.FilterByTime(tr.Expenses(), monthStart, monthEnd)
	if petID == "" && len(tr.Pets()) > 1 {
		petTotals := pipeline.AggregatePets(monthExpenses, tr.Pets())
		if len(petTotals) > 0 {
			petRows := make([][]string, 0, len(petTotals))
			for _, pt := range petTotals {
				petRows = append(petRows, []string{
					cli.Truncate(pt.Name, 18),
					cli.FormatNumber(int64(pt.Expenses)),
					cur.Format(pt.Total),
				})
			}
			fmt.Print(cli.RenderTable(cli.Table{
				Headers: []string{"Pet", "Expenses", "Spent"},
				Rows:    petRows,
			}))
		}
	}

	streak := pipeline.ComputeStreak(tr.Expenses(), now)
	xp := pipeline.ComputeTotalXP(tr.Pets(), tr.Expenses(), tr.Budgets(), streak, now)
	lvl := pipeline.ResolveLevel(xp)

	fmt.Printf("\n  Level %d %s · %s XP", lvl.Level, lvl.Title, cli.FormatNumber(int64(lvl.CurrentXP)))
	if streak.CurrentStreak > 0 {
		fmt.Printf(" · %d-day streak", streak.CurrentStreak)
	}
	fmt.Println()

	return nil
}
