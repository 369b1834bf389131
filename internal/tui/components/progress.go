package components

import (
	"fmt"
	"strings"

	"pawtally/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a block-character progress bar with a trailing
// percentage. pct is in [0, 1].
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}

	var barColor lipgloss.Color
	switch {
	case pct >= 0.8:
		barColor = t.AccentBright
	default:
		barColor = t.Accent
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Bold(true)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + " " + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForUtilization returns green/orange/red based on how much of a
// budget is spent. pct is in [0, 1]; over 1 means over budget.
func ColorForUtilization(pct float64) string {
	t := theme.Active
	switch {
	case pct > 1:
		return string(t.Red)
	case pct >= 0.8:
		return string(t.Orange)
	default:
		return string(t.Green)
	}
}

// BudgetBar renders a labeled budget utilization bar with percentage
// and a spent/limit summary.
func BudgetBar(label string, pct float64, summary string, labelW, barWidth int) string {
	t := theme.Active

	shown := pct
	if shown < 0 {
		shown = 0
	}
	if shown > 1 {
		shown = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForUtilization(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForUtilization(pct))).Bold(true)
	summaryStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " +
		bar.ViewAs(shown) +
		" " +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100)) +
		"  " +
		summaryStyle.Render(summary)
}
