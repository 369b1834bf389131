package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pawtally/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pawtally.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, err := NewTracker(openTestStore(t))
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	return tr
}

func TestSetBudget_OverwritesInPlace(t *testing.T) {
	tr := newTestTracker(t)

	first, err := tr.SetBudget("p1", model.CategoryFood, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("set budget: %v", err)
	}
	second, err := tr.SetBudget("p1", model.CategoryFood, decimal.NewFromInt(150))
	if err != nil {
		t.Fatalf("set budget again: %v", err)
	}

	if len(tr.Budgets()) != 1 {
		t.Fatalf("budget rows = %d, want 1", len(tr.Budgets()))
	}
	if second.ID != first.ID {
		t.Fatalf("budget id changed on overwrite: %s -> %s", first.ID, second.ID)
	}
	if !second.MonthlyLimit.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("MonthlyLimit = %s, want 150", second.MonthlyLimit)
	}

	// A different category for the same pet is a separate row.
	if _, err := tr.SetBudget("p1", model.CategoryToys, decimal.NewFromInt(30)); err != nil {
		t.Fatalf("set budget other category: %v", err)
	}
	if len(tr.Budgets()) != 2 {
		t.Fatalf("budget rows = %d, want 2", len(tr.Budgets()))
	}
}

func TestUpdatePet_PartialMergeAndAbsentID(t *testing.T) {
	tr := newTestTracker(t)

	p, err := tr.AddPet("Biscuit", model.PetDog, "")
	if err != nil {
		t.Fatalf("add pet: %v", err)
	}

	name := "Waffles"
	if err := tr.UpdatePet(p.ID, PetUpdate{Name: &name}); err != nil {
		t.Fatalf("update pet: %v", err)
	}

	got, ok := tr.PetByID(p.ID)
	if !ok {
		t.Fatal("pet missing after update")
	}
	if got.Name != "Waffles" {
		t.Fatalf("Name = %q, want Waffles", got.Name)
	}
	if got.Type != model.PetDog {
		t.Fatalf("Type = %q changed by partial update", got.Type)
	}

	// Absent id: silently ignored.
	if err := tr.UpdatePet("no-such-id", PetUpdate{Name: &name}); err != nil {
		t.Fatalf("update absent pet: %v", err)
	}
	if len(tr.Pets()) != 1 {
		t.Fatalf("pets = %d after absent-id update, want 1", len(tr.Pets()))
	}
}

func TestDeletePet_NoCascade(t *testing.T) {
	tr := newTestTracker(t)

	p, err := tr.AddPet("Biscuit", model.PetDog, "")
	if err != nil {
		t.Fatalf("add pet: %v", err)
	}
	if _, err := tr.AddExpense(p.ID, time.Now(), model.CategoryFood, decimal.NewFromInt(10), ""); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if _, err := tr.SetBudget(p.ID, model.CategoryFood, decimal.NewFromInt(100)); err != nil {
		t.Fatalf("set budget: %v", err)
	}

	if err := tr.DeletePet(p.ID); err != nil {
		t.Fatalf("delete pet: %v", err)
	}

	if len(tr.Pets()) != 0 {
		t.Fatalf("pets = %d after delete, want 0", len(tr.Pets()))
	}
	if len(tr.Expenses()) != 1 {
		t.Fatalf("expenses = %d after pet delete, want 1 (history preserved)", len(tr.Expenses()))
	}
	if len(tr.Budgets()) != 1 {
		t.Fatalf("budgets = %d after pet delete, want 1 (history preserved)", len(tr.Budgets()))
	}
	if name := tr.PetName(p.ID); name != "Unknown" {
		t.Fatalf("orphaned pet name = %q, want Unknown", name)
	}
}

func TestTracker_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "pawtally.db")

	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	tr, err := NewTracker(s)
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	p, err := tr.AddPet("Biscuit", model.PetDog, "")
	if err != nil {
		t.Fatalf("add pet: %v", err)
	}
	if _, err := tr.AddExpense(p.ID, time.Now(), model.CategoryFood, decimal.RequireFromString("12.34"), "kibble"); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	s2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer func() { _ = s2.Close() }()
	tr2, err := NewTracker(s2)
	if err != nil {
		t.Fatalf("reload tracker: %v", err)
	}

	if len(tr2.Pets()) != 1 || tr2.Pets()[0].Name != "Biscuit" {
		t.Fatalf("pets after reopen = %+v, want Biscuit", tr2.Pets())
	}
	if len(tr2.Expenses()) != 1 {
		t.Fatalf("expenses after reopen = %d, want 1", len(tr2.Expenses()))
	}
	if got := tr2.Expenses()[0].Amount; !got.Equal(decimal.RequireFromString("12.34")) {
		t.Fatalf("amount after reopen = %s, want 12.34", got)
	}
}

func TestLoad_CorruptSnapshotFailsSoft(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.db.Exec(
		"INSERT OR REPLACE INTO collections (key, value, updated_at) VALUES (?, ?, ?)",
		KeyPets, "{definitely not json", "2026-01-01T00:00:00Z",
	); err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	tr, err := NewTracker(s)
	if err != nil {
		t.Fatalf("tracker over corrupt data: %v", err)
	}
	if len(tr.Pets()) != 0 {
		t.Fatalf("pets = %d from corrupt snapshot, want 0", len(tr.Pets()))
	}
}

func TestMarkRecurringPaid_LogsExpense(t *testing.T) {
	tr := newTestTracker(t)

	r, err := tr.AddRecurring("p1", model.CategoryFood, decimal.NewFromInt(40), "monthly kibble", time.Now())
	if err != nil {
		t.Fatalf("add recurring: %v", err)
	}

	now := time.Now()
	e, err := tr.MarkRecurringPaid(r.ID, now)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if e.ID == "" {
		t.Fatal("mark paid returned empty expense")
	}
	if len(tr.Expenses()) != 1 {
		t.Fatalf("expenses = %d after mark paid, want 1", len(tr.Expenses()))
	}
	if !tr.Recurring()[0].PaidThisMonth {
		t.Fatal("recurring entry not flagged paid")
	}

	if err := tr.ResetMonthlyPaid(); err != nil {
		t.Fatalf("reset monthly: %v", err)
	}
	if tr.Recurring()[0].PaidThisMonth {
		t.Fatal("paid flag survived monthly reset")
	}
}

func TestEstimates_SaveReloadDelete(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "pawtally.db")

	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	tr, err := NewTracker(s)
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}

	est, err := tr.SaveEstimate("p1", "First year",
		map[model.Category]decimal.Decimal{model.CategoryFood: decimal.RequireFromString("50")},
		map[string]decimal.Decimal{"adoption": decimal.RequireFromString("200")},
	)
	if err != nil {
		t.Fatalf("save estimate: %v", err)
	}
	if est.ID == "" || est.CreatedAt.IsZero() {
		t.Fatalf("estimate missing id or timestamp: %+v", est)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	s2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer func() { _ = s2.Close() }()
	tr2, err := NewTracker(s2)
	if err != nil {
		t.Fatalf("reload tracker: %v", err)
	}

	if len(tr2.Estimates()) != 1 {
		t.Fatalf("estimates after reopen = %d, want 1", len(tr2.Estimates()))
	}
	got := tr2.Estimates()[0]
	if got.Name != "First year" || !got.MonthlyExpenses[model.CategoryFood].Equal(decimal.RequireFromString("50")) {
		t.Fatalf("estimate after reopen = %+v", got)
	}

	if err := tr2.DeleteEstimate("nope"); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}
	if len(tr2.Estimates()) != 1 {
		t.Fatal("unknown id delete changed the collection")
	}
	if err := tr2.DeleteEstimate(got.ID); err != nil {
		t.Fatalf("delete estimate: %v", err)
	}
	if len(tr2.Estimates()) != 0 {
		t.Fatalf("estimates after delete = %d, want 0", len(tr2.Estimates()))
	}
}
