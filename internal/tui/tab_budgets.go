package tui

import (
	"fmt"
	"strings"
	"time"

	"pawtally/internal/cli"
	"pawtally/internal/pipeline"
	"pawtally/internal/tui/components"
	"pawtally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func (a App) renderBudgetsTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	budgets := pipeline.FilterBudgetsByPet(a.budgets, a.petID)
	if len(budgets) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextDim).Render(
			"No budgets set. Run `pawtally budget set <category> <limit>` to add one.")
		return components.ContentCard("Budgets", hint, cw)
	}

	monthStart, monthEnd := pipeline.MonthRange(time.Now())
	monthExpenses := pipeline.FilterByTime(a.expenses, monthStart, monthEnd)

	innerW := components.CardInnerWidth(cw)
	labelW := 24
	barW := innerW - labelW - 32
	if barW < 10 {
		barW = 10
	}

	var body strings.Builder
	for _, bud := range budgets {
		spent := decimal.Zero
		for _, e := range pipeline.FilterByPet(monthExpenses, bud.PetID) {
			if e.Category == bud.Category {
				spent = spent.Add(e.Amount)
			}
		}

		pct := 0.0
		if bud.MonthlyLimit.IsPositive() {
			pct, _ = spent.Div(bud.MonthlyLimit).Float64()
		}

		label := cli.Truncate(a.petName(bud.PetID)+" · "+bud.Category.Label(), labelW)
		summary := fmt.Sprintf("%s of %s", a.currency.Format(spent), a.currency.Format(bud.MonthlyLimit))
		body.WriteString(components.BudgetBar(label, pct, summary, labelW, barW))
		body.WriteString("\n")
	}

	b.WriteString(components.ContentCard("Monthly Budgets", body.String(), cw))
	b.WriteString("\n")

	// The month bonus is scored against category spend across all pets,
	// over every budget, so the status line evaluates the full household
	// even when the bars above are filtered to one pet.
	house := pipeline.Aggregate(a.expenses, a.budgets, pipeline.Options{Since: monthStart, Until: monthEnd})
	if house.AllUnderBudget {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Green).Render(
			"  All budgets on track — the +100 XP month bonus is yours so far."))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Render(
			"  Over budget this month — the +100 XP month bonus is lost."))
	}

	return b.String()
}
