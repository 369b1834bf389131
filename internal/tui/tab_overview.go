package tui

import (
	"fmt"
	"strings"

	"pawtally/internal/cli"
	"pawtally/internal/model"
	"pawtally/internal/tui/components"
	"pawtally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	// Row 1: Metric cards
	streakHint := "log an expense to start"
	if a.streak.CurrentStreak > 0 {
		streakHint = "last: " + a.streak.LastActivityDate
	}

	levelHint := fmt.Sprintf("%s XP to next", cli.FormatNumber(int64(a.level.XPNeeded)))
	if a.level.IsMaxLevel {
		levelHint = "max level"
	}

	metrics := []components.Metric{
		{Label: "This Month", Value: a.currency.Format(a.month.TotalSpent),
			Hint: fmt.Sprintf("%d active days", len(a.month.ActivityDays))},
		{Label: "Level", Value: fmt.Sprintf("%d · %s", a.level.Level, a.level.Title),
			Hint: levelHint},
		{Label: "Total XP", Value: cli.FormatNumber(int64(a.level.CurrentXP)),
			Hint: cli.FormatPercent(a.level.ProgressPercentage) + " through level"},
		{Label: "Streak", Value: fmt.Sprintf("%d days", a.streak.CurrentStreak),
			Hint: streakHint},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: Level progress
	barW := components.CardInnerWidth(cw) - 6
	if barW < 10 {
		barW = 10
	}
	progress := components.ProgressBar(a.level.ProgressPercentage/100, barW)
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Level %d → %d", a.level.Level, a.level.Level+1),
		progress,
		cw,
	))
	b.WriteString("\n")

	// Row 3: Daily spending chart
	if len(a.days) > 0 {
		chartVals := make([]float64, len(a.days))
		chartLabels := make([]string, len(a.days))
		for i, d := range a.days {
			// a.days is newest-first; the chart draws oldest-left
			j := len(a.days) - 1 - i
			chartVals[j], _ = d.Total.Float64()
			chartLabels[j] = d.Date.Format("Jan 2")
		}
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Daily Spending (%dd)", chartDays),
			components.BarChart(chartVals, chartLabels, t.Blue, components.CardInnerWidth(cw), 8),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 4: Category split + top pets
	halves := components.LayoutRow(cw, 2)
	catCard := components.ContentCard("By Category",
		a.categorySplitBody(components.CardInnerWidth(halves[0])), halves[0])
	petCard := components.ContentCard("By Pet",
		a.petSplitBody(components.CardInnerWidth(halves[1])), halves[1])

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("By Category",
			a.categorySplitBody(components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("By Pet",
			a.petSplitBody(components.CardInnerWidth(cw)), cw))
	} else {
		b.WriteString(components.CardRow([]string{catCard, petCard}))
	}

	return b.String()
}

// categorySplitBody renders one horizontal bar per spending category for
// the current month.
func (a App) categorySplitBody(innerW int) string {
	t := theme.Active

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	barStyle := lipgloss.NewStyle().Foreground(t.Accent)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	maxSpend := decimal.Zero
	for _, c := range model.Categories {
		if a.month.SpendingByCategory[c].GreaterThan(maxSpend) {
			maxSpend = a.month.SpendingByCategory[c]
		}
	}

	nameW := 12
	amountW := 10
	barMaxLen := innerW - nameW - amountW - 2
	if barMaxLen < 1 {
		barMaxLen = 1
	}

	var b strings.Builder
	for _, c := range model.Categories {
		spent := a.month.SpendingByCategory[c]
		barLen := 0
		if maxSpend.IsPositive() {
			ratio, _ := spent.Div(maxSpend).Float64()
			barLen = int(ratio * float64(barMaxLen))
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, c.Label())),
			amountStyle.Render(fmt.Sprintf("%*s", amountW, a.currency.Format(spent))),
			barStyle.Render(strings.Repeat("█", barLen)))
	}
	return b.String()
}

// petSplitBody renders per-pet totals, biggest spender first.
func (a App) petSplitBody(innerW int) string {
	t := theme.Active

	if len(a.petTotals) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("No expenses yet")
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	barStyle := lipgloss.NewStyle().Foreground(t.Magenta)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	limit := len(model.Categories) // keep both split cards the same height
	if len(a.petTotals) < limit {
		limit = len(a.petTotals)
	}

	maxTotal := a.petTotals[0].Total

	nameW := 12
	amountW := 10
	barMaxLen := innerW - nameW - amountW - 2
	if barMaxLen < 1 {
		barMaxLen = 1
	}

	var b strings.Builder
	for _, pt := range a.petTotals[:limit] {
		barLen := 0
		if maxTotal.IsPositive() {
			ratio, _ := pt.Total.Div(maxTotal).Float64()
			barLen = int(ratio * float64(barMaxLen))
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, cli.Truncate(pt.Name, nameW))),
			amountStyle.Render(fmt.Sprintf("%*s", amountW, a.currency.Format(pt.Total))),
			barStyle.Render(strings.Repeat("█", barLen)))
	}
	return b.String()
}
