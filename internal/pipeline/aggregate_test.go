package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pawtally/internal/model"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func localDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d.Add(12 * time.Hour) // midday, away from day boundaries
}

func expense(t *testing.T, petID, day string, cat model.Category, amount string) model.Expense {
	t.Helper()
	return model.Expense{
		ID:       petID + "-" + day + "-" + string(cat),
		PetID:    petID,
		Date:     localDay(t, day),
		Category: cat,
		Amount:   dec(t, amount),
	}
}

func TestAggregate_SeedsAllCategories(t *testing.T) {
	snap := Aggregate(nil, nil, Options{})

	if len(snap.SpendingByCategory) != len(model.Categories) {
		t.Fatalf("category keys = %d, want %d", len(snap.SpendingByCategory), len(model.Categories))
	}
	for _, c := range model.Categories {
		v, ok := snap.SpendingByCategory[c]
		if !ok {
			t.Fatalf("category %q missing from empty snapshot", c)
		}
		if !v.IsZero() {
			t.Fatalf("category %q = %s, want 0", c, v)
		}
	}
	if !snap.TotalSpent.IsZero() {
		t.Fatalf("TotalSpent = %s, want 0", snap.TotalSpent)
	}
	if !snap.AllUnderBudget {
		t.Fatal("AllUnderBudget = false for empty inputs, want true")
	}
}

func TestAggregate_SumInvariant(t *testing.T) {
	expenses := []model.Expense{
		expense(t, "p1", "2026-08-01", model.CategoryFood, "12.50"),
		expense(t, "p1", "2026-08-02", model.CategoryFood, "7.25"),
		expense(t, "p1", "2026-08-02", model.CategoryToys, "30.00"),
		expense(t, "p2", "2026-08-03", model.CategoryHealthcare, "99.99"),
	}

	snap := Aggregate(expenses, nil, Options{})

	sum := decimal.Zero
	for _, c := range model.Categories {
		sum = sum.Add(snap.SpendingByCategory[c])
	}
	if !sum.Equal(snap.TotalSpent) {
		t.Fatalf("category sum %s != TotalSpent %s", sum, snap.TotalSpent)
	}
	if want := dec(t, "149.74"); !snap.TotalSpent.Equal(want) {
		t.Fatalf("TotalSpent = %s, want %s", snap.TotalSpent, want)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	expenses := []model.Expense{
		expense(t, "p1", "2026-08-01", model.CategoryFood, "10.00"),
		expense(t, "p1", "2026-08-05", model.CategoryGrooming, "45.00"),
	}
	opts := Options{Since: localDay(t, "2026-08-01"), Until: localDay(t, "2026-08-31")}

	first := Aggregate(expenses, nil, opts)
	second := Aggregate(expenses, nil, opts)

	if !first.TotalSpent.Equal(second.TotalSpent) {
		t.Fatalf("TotalSpent differs between passes: %s vs %s", first.TotalSpent, second.TotalSpent)
	}
	for _, c := range model.Categories {
		if !first.SpendingByCategory[c].Equal(second.SpendingByCategory[c]) {
			t.Fatalf("category %q differs between passes", c)
		}
	}
	if len(first.ActivityDays) != len(second.ActivityDays) {
		t.Fatal("activity day sets differ between passes")
	}
}

func TestAggregate_PetAndPeriodFilter(t *testing.T) {
	expenses := []model.Expense{
		expense(t, "p1", "2026-08-10", model.CategoryFood, "10.00"),
		expense(t, "p2", "2026-08-10", model.CategoryFood, "20.00"),
		expense(t, "p1", "2026-07-10", model.CategoryFood, "40.00"),
	}

	snap := Aggregate(expenses, nil, Options{
		PetID: "p1",
		Since: localDay(t, "2026-08-01"),
		Until: localDay(t, "2026-08-31"),
	})

	if want := dec(t, "10.00"); !snap.TotalSpent.Equal(want) {
		t.Fatalf("filtered TotalSpent = %s, want %s", snap.TotalSpent, want)
	}

	// Activity days ignore both filters: two distinct days logged.
	if len(snap.ActivityDays) != 2 {
		t.Fatalf("ActivityDays = %d, want 2 (two distinct calendar days)", len(snap.ActivityDays))
	}
}

func TestAggregate_UnderBudgetFlag(t *testing.T) {
	budgets := []model.Budget{
		{ID: "b1", PetID: "p1", Category: model.CategoryFood, MonthlyLimit: dec(t, "100")},
	}
	under := []model.Expense{expense(t, "p1", "2026-08-10", model.CategoryFood, "50.00")}
	over := []model.Expense{expense(t, "p1", "2026-08-10", model.CategoryFood, "150.00")}

	if snap := Aggregate(under, budgets, Options{}); !snap.AllUnderBudget {
		t.Fatal("AllUnderBudget = false with spend 50 against limit 100")
	}
	if snap := Aggregate(over, budgets, Options{}); snap.AllUnderBudget {
		t.Fatal("AllUnderBudget = true with spend 150 against limit 100")
	}

	// Exactly at the limit still counts as under.
	exact := []model.Expense{expense(t, "p1", "2026-08-10", model.CategoryFood, "100.00")}
	if snap := Aggregate(exact, budgets, Options{}); !snap.AllUnderBudget {
		t.Fatal("AllUnderBudget = false with spend exactly at the limit")
	}
}

func TestAggregatePets_UnknownPetDegrades(t *testing.T) {
	pets := []model.Pet{{ID: "p1", Name: "Biscuit", Type: model.PetDog}}
	expenses := []model.Expense{
		expense(t, "p1", "2026-08-01", model.CategoryFood, "10.00"),
		expense(t, "ghost", "2026-08-02", model.CategoryToys, "25.00"),
	}

	totals := AggregatePets(expenses, pets)
	if len(totals) != 2 {
		t.Fatalf("pet totals = %d, want 2", len(totals))
	}

	var foundUnknown bool
	for _, pt := range totals {
		if pt.PetID == "ghost" {
			foundUnknown = true
			if pt.Name != "Unknown" {
				t.Fatalf("orphaned pet name = %q, want Unknown", pt.Name)
			}
		}
	}
	if !foundUnknown {
		t.Fatal("orphaned expense missing from pet totals")
	}
}

func TestAggregateDays_FillsGaps(t *testing.T) {
	expenses := []model.Expense{
		expense(t, "p1", "2026-08-01", model.CategoryFood, "10.00"),
		expense(t, "p1", "2026-08-03", model.CategoryFood, "20.00"),
	}

	days := AggregateDays(expenses, localDay(t, "2026-08-01"), localDay(t, "2026-08-03"))
	if len(days) != 3 {
		t.Fatalf("day rows = %d, want 3 including the empty middle day", len(days))
	}
	// Most recent first.
	if !days[0].Date.After(days[2].Date) {
		t.Fatal("days not sorted most recent first")
	}
	if days[1].Expenses != 0 || !days[1].Total.IsZero() {
		t.Fatalf("gap day has %d expenses, total %s; want empty", days[1].Expenses, days[1].Total)
	}
}
