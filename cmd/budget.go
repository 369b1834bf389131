package cmd

import (
	"fmt"
	"time"

	"pawtally/internal/cli"
	"pawtally/internal/model"
	"pawtally/internal/pipeline"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var hundred = decimal.NewFromInt(100)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show budget utilization for the current month",
	RunE:  runBudgetList,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <category> <monthly-limit>",
	Short: "Set a monthly budget for one category",
	Long:  "Set a monthly budget for one category of the selected pet. Setting an existing category overwrites its limit.",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetSet,
}

var budgetRmCmd = &cobra.Command{
	Use:   "rm <category>",
	Short: "Remove a category budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetRm,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd, budgetRmCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetList(_ *cobra.Command, _ []string) error {
	tr, closeStore, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	petID, err := resolvePet(tr, cfg, flagPet)
	if err != nil {
		return err
	}

	budgets := pipeline.FilterBudgetsByPet(tr.Budgets(), petID)
	if len(budgets) == 0 {
		fmt.Println("\n  No budgets configured. Set one with `pawtally budget set food 100`.")
		return nil
	}

	now := time.Now()
	monthStart, monthEnd := pipeline.MonthRange(now)
	snap := pipeline.Aggregate(tr.Expenses(), tr.Budgets(), pipeline.Options{
		PetID: petID,
		Since: monthStart,
		Until: monthEnd,
	})

	cur := currencyFor(cfg)
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGETS  %s", now.Format("January 2006"))))
	fmt.Println()

	for _, b := range budgets {
		spent := snap.SpendingByCategory[b.Category]
		pct := 0.0
		if b.MonthlyLimit.IsPositive() {
			pctDec, _ := spent.Div(b.MonthlyLimit).Mul(hundred).Float64()
			pct = pctDec
		} else if spent.IsPositive() {
			pct = 100
		}

		label := b.Category.Label()
		if petID == "" {
			label = fmt.Sprintf("%s · %s", cli.Truncate(tr.PetName(b.PetID), 12), label)
		}
		fmt.Printf("  %-32s %s\n", label, cli.RenderBudgetBar(pct, 24))
		fmt.Printf("  %-32s %s of %s\n\n", "", cur.Format(spent), cur.Format(b.MonthlyLimit))
	}

	// The +100 XP bonus is evaluated over every budget with category
	// spend across all pets, so re-aggregate without the pet filter.
	house := snap
	if petID != "" {
		house = pipeline.Aggregate(tr.Expenses(), tr.Budgets(), pipeline.Options{
			Since: monthStart,
			Until: monthEnd,
		})
	}
	if house.AllUnderBudget {
		fmt.Println(cli.Good("  All categories under budget. +100 XP this month!"))
	} else {
		fmt.Println(cli.Warn("  Over budget in at least one category."))
	}
	return nil
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	tr, closeStore, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	petID, err := mustPet(tr, cfg, flagPet)
	if err != nil {
		return err
	}
	limit, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	category := model.ParseCategory(args[0])
	_, existed := tr.BudgetFor(petID, category)
	b, err := tr.SetBudget(petID, category, limit)
	if err != nil {
		return err
	}

	cur := currencyFor(cfg)
	verb := "Set"
	if existed {
		verb = "Updated"
	}
	fmt.Printf("\n  %s %s budget for %s: %s/month.\n",
		verb, b.Category.Label(), tr.PetName(petID), cur.Format(b.MonthlyLimit))
	return nil
}

func runBudgetRm(_ *cobra.Command, args []string) error {
	tr, closeStore, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	petID, err := mustPet(tr, cfg, flagPet)
	if err != nil {
		return err
	}

	b, ok := tr.BudgetFor(petID, model.ParseCategory(args[0]))
	if !ok {
		fmt.Println("\n  No such budget.")
		return nil
	}
	if err := tr.DeleteBudget(b.ID); err != nil {
		return err
	}

	fmt.Printf("\n  Removed %s budget for %s.\n", b.Category.Label(), tr.PetName(petID))
	return nil
}
