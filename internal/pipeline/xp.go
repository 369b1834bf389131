package pipeline

import (
	"time"

	"pawtally/internal/model"
)

// XP weights. These values are part of the stored-score contract; changing
// them re-scores every existing install.
const (
	xpPerExpense   = 10 // per expense logged
	xpPerPet       = 50 // per pet added
	xpPerBudget    = 25 // per budget category configured
	xpPerActiveDay = 15 // per unique day with at least one expense
	xpPerStreakDay = 5  // per day of the current streak

	// One-time monthly bonus for keeping every budgeted category under
	// its limit.
	xpUnderBudgetBonus = 100
)

// ComputeTotalXP scores all logged activity. The under-budget bonus is
// granted once per evaluation when at least one budget exists and every
// budget's category spend for now's calendar month, across all pets, is
// within its limit.
func ComputeTotalXP(pets []model.Pet, expenses []model.Expense, budgets []model.Budget, streak model.StreakInfo, now time.Time) int {
	xp := len(expenses)*xpPerExpense +
		len(pets)*xpPerPet +
		len(budgets)*xpPerBudget +
		len(ActivityDays(expenses))*xpPerActiveDay +
		streak.CurrentStreak*xpPerStreakDay

	if len(budgets) > 0 {
		monthStart, monthEnd := MonthRange(now)
		snap := Aggregate(expenses, budgets, Options{Since: monthStart, Until: monthEnd})
		if snap.AllUnderBudget {
			xp += xpUnderBudgetBonus
		}
	}

	return xp
}
