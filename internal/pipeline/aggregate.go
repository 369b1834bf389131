// Package pipeline derives spend summaries, streaks, XP, and levels from
// the raw pet/expense/budget collections. Every function here is pure:
// same inputs, same outputs, no I/O.
package pipeline

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"pawtally/internal/model"
)

// Options scopes an aggregation pass.
type Options struct {
	PetID string // "" aggregates across all pets
	Since time.Time
	Until time.Time
}

// dayKeyFormat truncates timestamps to local calendar days.
const dayKeyFormat = "2006-01-02"

// DayKey returns the local calendar day an expense falls on.
func DayKey(t time.Time) string {
	return t.Local().Format(dayKeyFormat)
}

// MonthRange returns the first and last instant of now's calendar month.
func MonthRange(now time.Time) (time.Time, time.Time) {
	local := now.Local()
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// Aggregate computes a spend/activity snapshot from expenses and budgets,
// filtered to opts. Activity days are always computed over the full
// expense history, not the filtered period.
func Aggregate(expenses []model.Expense, budgets []model.Budget, opts Options) model.Snapshot {
	filtered := FilterByPet(FilterByTime(expenses, opts.Since, opts.Until), opts.PetID)

	snap := model.Snapshot{
		SpendingByCategory: make(map[model.Category]decimal.Decimal, len(model.Categories)),
		ActivityDays:       ActivityDays(expenses),
	}
	for _, c := range model.Categories {
		snap.SpendingByCategory[c] = decimal.Zero
	}

	for _, e := range filtered {
		snap.SpendingByCategory[e.Category] = snap.SpendingByCategory[e.Category].Add(e.Amount)
		snap.TotalSpent = snap.TotalSpent.Add(e.Amount)
	}

	snap.AllUnderBudget = true
	for _, b := range FilterBudgetsByPet(budgets, opts.PetID) {
		if snap.SpendingByCategory[b.Category].GreaterThan(b.MonthlyLimit) {
			snap.AllUnderBudget = false
			break
		}
	}

	return snap
}

// ActivityDays returns the set of local calendar days with at least one
// expense.
func ActivityDays(expenses []model.Expense) map[string]struct{} {
	days := make(map[string]struct{})
	for _, e := range expenses {
		if e.Date.IsZero() {
			continue
		}
		days[DayKey(e.Date)] = struct{}{}
	}
	return days
}

// AggregatePets computes per-pet spend totals from the given expenses,
// sorted by total descending. Expenses referencing a deleted pet are
// grouped under the name "Unknown".
func AggregatePets(expenses []model.Expense, pets []model.Pet) []model.PetTotal {
	names := make(map[string]string, len(pets))
	for _, p := range pets {
		names[p.ID] = p.Name
	}

	totals := make(map[string]*model.PetTotal)
	for _, e := range expenses {
		pt, ok := totals[e.PetID]
		if !ok {
			name, known := names[e.PetID]
			if !known {
				name = "Unknown"
			}
			pt = &model.PetTotal{PetID: e.PetID, Name: name}
			totals[e.PetID] = pt
		}
		pt.Expenses++
		pt.Total = pt.Total.Add(e.Amount)
	}

	result := make([]model.PetTotal, 0, len(totals))
	for _, pt := range totals {
		result = append(result, *pt)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})
	return result
}

// AggregateDays computes per-day spend within [since, until], including
// zero rows for days without expenses so charts show gaps. Most recent
// day first.
func AggregateDays(expenses []model.Expense, since, until time.Time) []model.DayTotal {
	filtered := FilterByTime(expenses, since, until)

	dayMap := make(map[string]*model.DayTotal)
	for _, e := range filtered {
		key := DayKey(e.Date)
		dt, ok := dayMap[key]
		if !ok {
			t, _ := time.ParseInLocation(dayKeyFormat, key, time.Local)
			dt = &model.DayTotal{Date: t}
			dayMap[key] = dt
		}
		dt.Expenses++
		dt.Total = dt.Total.Add(e.Amount)
	}

	day := time.Date(since.Local().Year(), since.Local().Month(), since.Local().Day(), 0, 0, 0, 0, time.Local)
	end := time.Date(until.Local().Year(), until.Local().Month(), until.Local().Day(), 0, 0, 0, 0, time.Local)
	for !day.After(end) {
		key := day.Format(dayKeyFormat)
		if _, ok := dayMap[key]; !ok {
			dayMap[key] = &model.DayTotal{Date: day}
		}
		day = day.AddDate(0, 0, 1)
	}

	days := make([]model.DayTotal, 0, len(dayMap))
	for _, dt := range dayMap {
		days = append(days, *dt)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}

// FilterByTime returns expenses whose date falls within [since, until].
// Zero bounds are open.
func FilterByTime(expenses []model.Expense, since, until time.Time) []model.Expense {
	if since.IsZero() && until.IsZero() {
		return expenses
	}

	var result []model.Expense
	for _, e := range expenses {
		if !since.IsZero() && e.Date.Before(since) {
			continue
		}
		if !until.IsZero() && e.Date.After(until) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// FilterByPet returns expenses for the given pet; "" matches all.
func FilterByPet(expenses []model.Expense, petID string) []model.Expense {
	if petID == "" {
		return expenses
	}
	var result []model.Expense
	for _, e := range expenses {
		if e.PetID == petID {
			result = append(result, e)
		}
	}
	return result
}

// FilterByCategory returns expenses in the given category; "" matches all.
func FilterByCategory(expenses []model.Expense, category string) []model.Expense {
	if category == "" {
		return expenses
	}
	c := model.Category(category)
	var result []model.Expense
	for _, e := range expenses {
		if e.Category == c {
			result = append(result, e)
		}
	}
	return result
}

// FilterBudgetsByPet returns budgets for the given pet; "" matches all.
func FilterBudgetsByPet(budgets []model.Budget, petID string) []model.Budget {
	if petID == "" {
		return budgets
	}
	var result []model.Budget
	for _, b := range budgets {
		if b.PetID == petID {
			result = append(result, b)
		}
	}
	return result
}
