package cmd

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"pawtally/internal/cli"
	"pawtally/internal/model"
	"pawtally/internal/pipeline"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagExpCategory string
	flagExpAmount   string
	flagExpDate     string
	flagExpNotes    string
	flagExpDays     int
	flagExpAll      bool
)

var expensesCmd = &cobra.Command{
	Use:     "expenses",
	Aliases: []string{"exp"},
	Short:   "List and manage expenses",
	RunE:    runExpensesList,
}

var expensesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log an expense",
	RunE:  runExpensesAdd,
}

var expensesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesRm,
}

func init() {
	expensesCmd.Flags().StringVarP(&flagExpCategory, "category", "c", "", "Filter to one category")
	expensesCmd.Flags().IntVarP(&flagExpDays, "days", "n", 30, "Time window in days")
	expensesCmd.Flags().BoolVar(&flagExpAll, "all", false, "Show the full history")

	expensesAddCmd.Flags().StringVarP(&flagExpCategory, "category", "c", "", "Category (food, healthcare, grooming, toys, training, other)")
	expensesAddCmd.Flags().StringVarP(&flagExpAmount, "amount", "a", "", "Amount, e.g. 12.50")
	expensesAddCmd.Flags().StringVar(&flagExpDate, "date", "", "Date (2006-01-02, default today)")
	expensesAddCmd.Flags().StringVar(&flagExpNotes, "notes", "", "Free-form note")

	expensesCmd.AddCommand(expensesAddCmd, expensesRmCmd)
	rootCmd.AddCommand(expensesCmd)
}

func categoryOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(model.Categories))
	for _, c := range model.Categories {
		opts = append(opts, huh.NewOption(c.Label(), string(c)))
	}
	return opts
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative")
	}
	return d, nil
}

func parseDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t.Add(12 * time.Hour), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want 2006-01-02)", s)
	}
	return t, nil
}

func runExpensesList(_ *cobra.Command, _ []string) error {
	tr, closeStore, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	petID, err := resolvePet(tr, cfg, flagPet)
	if err != nil {
		return err
	}

	expenses := pipeline.FilterByPet(tr.Expenses(), petID)
	expenses = pipeline.FilterByCategory(expenses, flagExpCategory)
	if !flagExpAll {
		now := time.Now()
		expenses = pipeline.FilterByTime(expenses, now.AddDate(0, 0, -flagExpDays), now)
	}

	if len(expenses) == 0 {
		fmt.Println("\n  No expenses in the selected window.")
		return nil
	}

	sorted := make([]model.Expense, len(expenses))
	copy(sorted, expenses)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	cur := currencyFor(cfg)
	rows := make([][]string, 0, len(sorted))
	total := decimal.Zero
	for _, e := range sorted {
		rows = append(rows, []string{
			cli.FormatDay(e.Date),
			cli.Truncate(tr.PetName(e.PetID), 14),
			e.Category.Label(),
			cur.Format(e.Amount),
			cli.Truncate(e.Notes, 24),
		})
		total = total.Add(e.Amount)
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", "", "", cur.Format(total), ""})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Pet", "Category", "Amount", "Notes"},
		Rows:    rows,
	}))
	return nil
}

func runExpensesAdd(_ *cobra.Command, _ []string) error {
	tr, closeStore, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	if len(tr.Pets()) == 0 {
		return errors.New("no pets yet: add one first with `pawtally pets add`")
	}

	petArg := flagPet
	category := flagExpCategory
	amountStr := flagExpAmount
	notes := flagExpNotes

	if petArg == "" || category == "" || amountStr == "" {
		petOpts := make([]huh.Option[string], 0, len(tr.Pets()))
		for _, p := range tr.Pets() {
			petOpts = append(petOpts, huh.NewOption(p.Name, p.ID))
		}

		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pet").
				Options(petOpts...).
				Value(&petArg),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&category),
			huh.NewInput().
				Title("Amount").
				Value(&amountStr).
				Validate(func(s string) error {
					_, err := parseAmount(s)
					return err
				}),
			huh.NewInput().
				Title("Notes").
				Value(&notes),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	petID, err := mustPet(tr, cfg, petArg)
	if err != nil {
		return err
	}
	amount, err := parseAmount(amountStr)
	if err != nil {
		return err
	}
	date, err := parseDate(flagExpDate, time.Now())
	if err != nil {
		return err
	}

	e, err := tr.AddExpense(petID, date, model.ParseCategory(category), amount, notes)
	if err != nil {
		return err
	}

	cur := currencyFor(cfg)
	fmt.Printf("\n  Logged %s for %s (%s). +10 XP!\n",
		cur.Format(e.Amount), tr.PetName(e.PetID), e.Category.Label())

	streak := pipeline.ComputeStreak(tr.Expenses(), time.Now())
	if streak.CurrentStreak > 1 {
		fmt.Printf("  %d-day logging streak!\n", streak.CurrentStreak)
	}
	return nil
}

func runExpensesRm(_ *cobra.Command, args []string) error {
	tr, closeStore, _, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	before := len(tr.Expenses())
	if err := tr.DeleteExpense(args[0]); err != nil {
		return err
	}
	if len(tr.Expenses()) == before {
		fmt.Println("\n  No expense with that id.")
		return nil
	}

	fmt.Println("\n  Expense deleted.")
	return nil
}
