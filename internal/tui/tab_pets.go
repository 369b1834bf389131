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

func (a App) renderPetsTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	pets := a.pets
	if a.petID != "" {
		pets = nil
		for _, p := range a.pets {
			if p.ID == a.petID {
				pets = append(pets, p)
			}
		}
	}

	if len(pets) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextDim).Render(
			"No pets yet. Run `pawtally pets add` to add one.")
		return components.ContentCard("Pets", hint, cw)
	}

	totals := make(map[string]model.PetTotal, len(a.petTotals))
	for _, pt := range a.petTotals {
		totals[pt.PetID] = pt
	}

	dueByPet := make(map[string]int)
	for _, r := range a.recurring {
		if !r.PaidThisMonth {
			dueByPet[r.PetID]++
		}
	}

	innerW := components.CardInnerWidth(cw)
	nameW := 14
	typeW := 10
	addedW := 11
	countW := 8
	dueW := 6
	amountW := innerW - nameW - typeW - addedW - countW - dueW - 10
	if amountW < 10 {
		amountW = 10
	}

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dueStyle := lipgloss.NewStyle().Foreground(t.Orange)
	okStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var body strings.Builder
	body.WriteString(headStyle.Render(fmt.Sprintf("%-*s  %-*s  %-*s  %*s  %*s  %s",
		nameW, "Name", typeW, "Type", addedW, "Added", countW, "Entries", amountW, "Total", "Due")))
	body.WriteString("\n")

	grand := decimal.Zero
	for _, p := range pets {
		pt := totals[p.ID]
		grand = grand.Add(pt.Total)

		due := okStyle.Render("-")
		if n := dueByPet[p.ID]; n > 0 {
			due = dueStyle.Render(fmt.Sprintf("%d", n))
		}

		body.WriteString(rowStyle.Render(fmt.Sprintf("%-*s  %-*s  %-*s  %*d  %*s  ",
			nameW, cli.Truncate(p.Name, nameW),
			typeW, p.Type.Label(),
			addedW, cli.FormatDay(p.DateAdded),
			countW, pt.Expenses,
			amountW, a.currency.Format(pt.Total))))
		body.WriteString(due)
		body.WriteString("\n")
	}

	body.WriteString(headStyle.Render(fmt.Sprintf("%-*s  %-*s  %-*s  %*s  %*s",
		nameW, "Total", typeW, "", addedW, "", countW, "", amountW, a.currency.Format(grand))))

	b.WriteString(components.ContentCard(fmt.Sprintf("Pets (%d)", len(pets)), body.String(), cw))

	// Recurring summary card
	if len(a.recurring) > 0 {
		var rec strings.Builder
		for _, r := range a.recurring {
			status := okStyle.Render("paid")
			if !r.PaidThisMonth {
				status = dueStyle.Render("due")
			}
			rec.WriteString(rowStyle.Render(fmt.Sprintf("%-*s  %-*s  %*s  ",
				nameW, cli.Truncate(a.petName(r.PetID), nameW),
				24, cli.Truncate(r.Description, 24),
				10, a.currency.Format(r.Amount))))
			rec.WriteString(status)
			rec.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Recurring", rec.String(), cw))
	}

	return b.String()
}
