package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"pawtally/internal/cli"
	"pawtally/internal/model"
	"pawtally/internal/pipeline"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate a pet's annual cost",
	Long:  "Interactive annual cost calculator: monthly amounts per category plus one-time costs, with the option to save the estimate for later.",
	RunE:  runEstimate,
}

var estimateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved estimates",
	RunE:  runEstimateList,
}

var estimateRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a saved estimate",
	Long:  "Delete a saved estimate by id. A unique id prefix is enough.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEstimateRm,
}

func init() {
	estimateCmd.AddCommand(estimateListCmd, estimateRmCmd)
	rootCmd.AddCommand(estimateCmd)
}

var oneTimeLabels = map[string]string{
	"adoption":     "Adoption / purchase",
	"vaccinations": "Vaccinations",
	"neutering":    "Neutering / spaying",
	"supplies":     "Starter supplies",
}

func runEstimate(_ *cobra.Command, _ []string) error {
	tr, closeStore, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	if len(tr.Pets()) == 0 {
		return errors.New("no pets yet: add one first with `pawtally pets add`")
	}

	petArg := flagPet
	if petArg == "" {
		petArg = cfg.General.DefaultPet
	}

	validateOptional := func(s string) error {
		if s == "" {
			return nil
		}
		_, err := parseAmount(s)
		return err
	}

	groups := make([]*huh.Group, 0, 4)

	if petArg == "" {
		petOpts := make([]huh.Option[string], 0, len(tr.Pets()))
		for _, p := range tr.Pets() {
			petOpts = append(petOpts, huh.NewOption(p.Name, p.ID))
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pet").
				Options(petOpts...).
				Value(&petArg),
		))
	}

	monthlyStr := make([]string, len(model.Categories))
	monthlyFields := make([]huh.Field, 0, len(model.Categories))
	for i, c := range model.Categories {
		monthlyFields = append(monthlyFields, huh.NewInput().
			Title(c.Label()).
			Placeholder("0.00").
			Validate(validateOptional).
			Value(&monthlyStr[i]))
	}
	groups = append(groups, huh.NewGroup(monthlyFields...).
		Title("Monthly costs").
		Description("Leave a line blank to skip it."))

	oneTimeStr := make([]string, len(model.OneTimeCosts))
	oneTimeFields := make([]huh.Field, 0, len(model.OneTimeCosts))
	for i, key := range model.OneTimeCosts {
		oneTimeFields = append(oneTimeFields, huh.NewInput().
			Title(oneTimeLabels[key]).
			Placeholder("0.00").
			Validate(validateOptional).
			Value(&oneTimeStr[i]))
	}
	groups = append(groups, huh.NewGroup(oneTimeFields...).
		Title("One-time costs"))

	var name string
	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Name this estimate").
			Description("Leave blank to skip saving.").
			Value(&name),
	))

	if err := huh.NewForm(groups...).Run(); err != nil {
		return err
	}

	petID, err := mustPet(tr, cfg, petArg)
	if err != nil {
		return err
	}

	monthly := make(map[model.Category]decimal.Decimal)
	for i, c := range model.Categories {
		if monthlyStr[i] == "" {
			continue
		}
		amount, err := parseAmount(monthlyStr[i])
		if err != nil {
			return err
		}
		if amount.IsPositive() {
			monthly[c] = amount
		}
	}
	oneTime := make(map[string]decimal.Decimal)
	for i, key := range model.OneTimeCosts {
		if oneTimeStr[i] == "" {
			continue
		}
		amount, err := parseAmount(oneTimeStr[i])
		if err != nil {
			return err
		}
		if amount.IsPositive() {
			oneTime[key] = amount
		}
	}

	est := model.AnnualEstimate{
		PetID:           petID,
		MonthlyExpenses: monthly,
		OneTimeExpenses: oneTime,
	}
	totals := pipeline.SummarizeEstimate(est)

	cur := currencyFor(cfg)
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ANNUAL COST  %s", tr.PetName(petID))))
	fmt.Println()

	if totals.TotalAnnual.IsZero() {
		fmt.Println("  All lines were blank, nothing to estimate.")
		return nil
	}

	twelve := decimal.NewFromInt(12)
	rows := make([][]string, 0, len(model.Categories)+3)
	for _, c := range model.Categories {
		m, ok := monthly[c]
		if !ok {
			continue
		}
		annual := m.Mul(twelve)
		rows = append(rows, []string{
			c.Label(),
			cur.Format(m),
			cur.Format(annual),
			shareBar(annual, totals.TotalAnnual),
		})
	}
	if totals.OneTime.IsPositive() {
		rows = append(rows, []string{
			"One-time costs",
			"",
			cur.Format(totals.OneTime),
			shareBar(totals.OneTime, totals.TotalAnnual),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", cur.Format(totals.Monthly), cur.Format(totals.TotalAnnual), ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Line", "Monthly", "Annual", ""},
		Rows:    rows,
	}))
	fmt.Printf("\n  Estimated annual cost: %s (%s/month recurring + %s one-time)\n",
		cur.Format(totals.TotalAnnual), cur.Format(totals.Monthly), cur.Format(totals.OneTime))

	if name = strings.TrimSpace(name); name != "" {
		saved, err := tr.SaveEstimate(petID, name, monthly, oneTime)
		if err != nil {
			return err
		}
		fmt.Printf("  Saved as %q (id %s). See `pawtally estimate list`.\n", saved.Name, shortID(saved.ID))
	}
	return nil
}

// shareBar renders a bar scaled to a line's share of the total.
func shareBar(amount, total decimal.Decimal) string {
	const width = 16
	share, _ := amount.Div(total).Float64()
	n := int(share*width + 0.5)
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}

func runEstimateList(_ *cobra.Command, _ []string) error {
	tr, closeStore, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	ests := tr.Estimates()
	if len(ests) == 0 {
		fmt.Println("\n  No saved estimates. Run `pawtally estimate` to create one.")
		return nil
	}

	sorted := make([]model.AnnualEstimate, len(ests))
	copy(sorted, ests)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	cur := currencyFor(cfg)
	rows := make([][]string, 0, len(sorted))
	for _, e := range sorted {
		totals := pipeline.SummarizeEstimate(e)
		rows = append(rows, []string{
			shortID(e.ID),
			cli.Truncate(e.Name, 20),
			cli.Truncate(tr.PetName(e.PetID), 14),
			cur.Format(totals.TotalAnnual),
			cli.FormatDay(e.CreatedAt),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Name", "Pet", "Annual", "Saved"},
		Rows:    rows,
	}))
	return nil
}

func runEstimateRm(_ *cobra.Command, args []string) error {
	tr, closeStore, _, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	var matches []model.AnnualEstimate
	for _, e := range tr.Estimates() {
		if strings.HasPrefix(e.ID, args[0]) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		fmt.Println("\n  No estimate with that id.")
		return nil
	case 1:
		if err := tr.DeleteEstimate(matches[0].ID); err != nil {
			return err
		}
		fmt.Printf("\n  Deleted estimate %q.\n", matches[0].Name)
		return nil
	default:
		return fmt.Errorf("%d estimates match id prefix %q, use more characters", len(matches), args[0])
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
