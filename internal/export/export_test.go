package export

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pawtally/internal/model"
)

func sampleBackup(t *testing.T) Backup {
	t.Helper()
	date, err := time.Parse(time.RFC3339, "2026-08-20T12:00:00Z")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return Backup{
		Pets: []model.Pet{{ID: "p1", Name: "Biscuit", Type: model.PetDog, DateAdded: date}},
		Expenses: []model.Expense{
			{ID: "e1", PetID: "p1", Date: date, Category: model.CategoryFood, Amount: decimal.RequireFromString("12.5"), Notes: `said "woof"`},
			{ID: "e2", PetID: "gone", Date: date, Category: model.CategoryToys, Amount: decimal.NewFromInt(3)},
		},
		Budgets:    []model.Budget{{ID: "b1", PetID: "p1", Category: model.CategoryFood, MonthlyLimit: decimal.NewFromInt(100)}},
		ExportedAt: date,
	}
}

func TestJSONRoundTrip(t *testing.T) {
	b := sampleBackup(t)

	var buf strings.Builder
	if err := WriteJSON(&buf, b); err != nil {
		t.Fatalf("write json: %v", err)
	}

	got, err := ReadBackup(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}

	if len(got.Pets) != 1 || got.Pets[0].Name != "Biscuit" {
		t.Fatalf("pets = %+v, want Biscuit", got.Pets)
	}
	if len(got.Expenses) != 2 {
		t.Fatalf("expenses = %d, want 2", len(got.Expenses))
	}
	if !got.Expenses[0].Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("amount = %s, want 12.5", got.Expenses[0].Amount)
	}
	if got.Recurring == nil {
		t.Fatal("missing recurring field must decode as empty slice")
	}
}

func TestReadBackup_Malformed(t *testing.T) {
	if _, err := ReadBackup(strings.NewReader("{not json")); err == nil {
		t.Fatal("malformed backup parsed without error")
	}
}

func TestWriteCSV(t *testing.T) {
	b := sampleBackup(t)

	var buf strings.Builder
	if err := WriteCSV(&buf, b.Pets, b.Expenses); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv lines = %d, want header + 2 rows", len(lines))
	}
	if lines[0] != `"Date","Pet","Category","Amount","Notes"` {
		t.Fatalf("header = %s", lines[0])
	}
	if !strings.Contains(lines[1], `"Biscuit"`) || !strings.Contains(lines[1], `"12.50"`) {
		t.Fatalf("row = %s, want quoted Biscuit and 12.50", lines[1])
	}
	// Embedded quotes double per CSV rules.
	if !strings.Contains(lines[1], `"said ""woof"""`) {
		t.Fatalf("row = %s, want escaped note quotes", lines[1])
	}
	// Orphaned pet id renders as Unknown.
	if !strings.Contains(lines[2], `"Unknown"`) {
		t.Fatalf("row = %s, want Unknown pet", lines[2])
	}
}
