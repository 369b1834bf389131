// Package export reads and writes pawtally backups: a JSON snapshot of
// every collection, and a flat CSV of the expense log.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"pawtally/internal/model"
)

// Backup is the on-disk JSON snapshot of all collections.
type Backup struct {
	Pets       []model.Pet              `json:"pets"`
	Expenses   []model.Expense          `json:"expenses"`
	Budgets    []model.Budget           `json:"budgets"`
	Recurring  []model.RecurringExpense `json:"recurring"`
	ExportedAt time.Time                `json:"exportedAt"`
}

// WriteJSON writes an indented JSON backup.
func WriteJSON(w io.Writer, b Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	return nil
}

// ReadBackup parses a JSON backup. Nil collection fields come back as
// empty slices so callers can store them directly.
func ReadBackup(r io.Reader) (Backup, error) {
	var b Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Backup{}, fmt.Errorf("parsing backup: %w", err)
	}
	if b.Pets == nil {
		b.Pets = []model.Pet{}
	}
	if b.Expenses == nil {
		b.Expenses = []model.Expense{}
	}
	if b.Budgets == nil {
		b.Budgets = []model.Budget{}
	}
	if b.Recurring == nil {
		b.Recurring = []model.RecurringExpense{}
	}
	return b, nil
}

// csvHeaders are the fixed expense CSV columns.
var csvHeaders = []string{"Date", "Pet", "Category", "Amount", "Notes"}

// WriteCSV writes the expense log as CSV with every value double-quoted.
// Expenses referencing a deleted pet render as "Unknown".
func WriteCSV(w io.Writer, pets []model.Pet, expenses []model.Expense) error {
	names := make(map[string]string, len(pets))
	for _, p := range pets {
		names[p.ID] = p.Name
	}

	if err := writeCSVRow(w, csvHeaders); err != nil {
		return err
	}

	for _, e := range expenses {
		name, ok := names[e.PetID]
		if !ok {
			name = "Unknown"
		}
		row := []string{
			e.Date.Format(time.RFC3339),
			name,
			string(e.Category),
			e.Amount.StringFixed(2),
			e.Notes,
		}
		if err := writeCSVRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVRow quotes every field unconditionally; encoding/csv only
// quotes when forced, and the export format quotes everything.
func writeCSVRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := fmt.Fprintln(w, strings.Join(quoted, ","))
	return err
}
