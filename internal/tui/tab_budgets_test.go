package tui

import (
	"strings"
	"testing"
	"time"

	"pawtally/internal/config"
	"pawtally/internal/model"
	"pawtally/internal/pipeline"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
)

// The month bonus status must agree with the XP engine, which checks
// each budget's category spend across all pets. One pet under its own
// budget is not enough when another pet's spend pushes the category
// over the limit.
func TestBudgetsTabBonusStatusSpansAllPets(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	now := time.Now()
	a := App{
		pets: []model.Pet{
			{ID: "p1", Name: "Mochi", Type: model.PetDog},
			{ID: "p2", Name: "Biscuit", Type: model.PetCat},
		},
		budgets: []model.Budget{
			{ID: "b1", PetID: "p1", Category: model.CategoryFood, MonthlyLimit: decimal.NewFromInt(100)},
		},
		expenses: []model.Expense{
			{ID: "e1", PetID: "p1", Date: now, Category: model.CategoryFood, Amount: decimal.NewFromInt(40)},
			{ID: "e2", PetID: "p2", Date: now, Category: model.CategoryFood, Amount: decimal.NewFromInt(90)},
		},
		currency: config.CurrencyByCode("USD"),
	}

	streak := pipeline.ComputeStreak(a.expenses, now)
	xp := pipeline.ComputeTotalXP(a.pets, a.expenses, a.budgets, streak, now)
	base := len(a.expenses)*10 + len(a.pets)*50 + len(a.budgets)*25 +
		len(pipeline.ActivityDays(a.expenses))*15 + streak.CurrentStreak*5
	if xp != base {
		t.Fatalf("engine granted the bonus: XP = %d, want %d", xp, base)
	}

	out := a.renderBudgetsTab(100)
	if strings.Contains(out, "bonus is yours") {
		t.Fatalf("status promises the bonus the engine withholds:\n%s", out)
	}
	if !strings.Contains(out, "bonus is lost") {
		t.Fatalf("missing over-budget status:\n%s", out)
	}

	// Moving the second pet's spend to an unbudgeted category restores
	// the bonus, and the status must follow.
	a.expenses[1].Category = model.CategoryToys
	out = a.renderBudgetsTab(100)
	if !strings.Contains(out, "bonus is yours") {
		t.Fatalf("status withholds a bonus the engine grants:\n%s", out)
	}
}
