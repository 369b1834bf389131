package tui

import (
	"fmt"
	"strings"

	"pawtally/internal/cli"
	"pawtally/internal/tui/components"
	"pawtally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderExpensesTab(cw, contentH int) string {
	t := theme.Active

	if len(a.visible) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextDim).Render(
			"No expenses yet. Run `pawtally expenses add` to log one.")
		return components.ContentCard("Expenses", hint, cw)
	}

	innerW := components.CardInnerWidth(cw)

	// Rows visible inside the card: card border + title eat 3 lines.
	visibleRows := contentH - 4
	if visibleRows < 3 {
		visibleRows = 3
	}

	// Scroll window around the cursor
	offset := 0
	if a.expCursor >= visibleRows {
		offset = a.expCursor - visibleRows + 1
	}
	end := offset + visibleRows
	if end > len(a.visible) {
		end = len(a.visible)
	}

	dateW := 10
	petW := 12
	catW := 12
	amountW := 10
	notesW := innerW - dateW - petW - catW - amountW - 6
	if notesW < 6 {
		notesW = 6
	}

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)

	var body strings.Builder
	body.WriteString(headStyle.Render(fmt.Sprintf("%-*s  %-*s  %-*s  %*s  %s",
		dateW, "Date", petW, "Pet", catW, "Category", amountW, "Amount", "Notes")))
	body.WriteString("\n")

	for i := offset; i < end; i++ {
		e := a.visible[i]
		line := fmt.Sprintf("%-*s  %-*s  %-*s  %*s  %s",
			dateW, cli.FormatDay(e.Date),
			petW, cli.Truncate(a.petName(e.PetID), petW),
			catW, e.Category.Label(),
			amountW, a.currency.Format(e.Amount),
			cli.Truncate(e.Notes, notesW))

		if i == a.expCursor {
			body.WriteString(selStyle.Render(line))
		} else {
			body.WriteString(rowStyle.Render(line))
		}
		body.WriteString("\n")
	}

	if end < len(a.visible) {
		body.WriteString(dimStyle.Render(fmt.Sprintf("… %d more", len(a.visible)-end)))
	}

	title := fmt.Sprintf("Expenses (%d)", len(a.visible))
	return components.ContentCard(title, body.String(), cw)
}
