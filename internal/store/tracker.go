package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pawtally/internal/model"
)

// Tracker holds the raw collections and persists a full snapshot after
// every mutation. Single writer; no locking.
//
// Deleting a pet intentionally leaves its expenses and budgets in place
// so spending history survives; downstream lookups render the missing
// pet as "Unknown".
type Tracker struct {
	store *Store

	pets      []model.Pet
	expenses  []model.Expense
	budgets   []model.Budget
	recurring []model.RecurringExpense
	estimates []model.AnnualEstimate
}

// NewTracker loads all collections from the store. Missing or corrupt
// collections start empty.
func NewTracker(s *Store) (*Tracker, error) {
	t := &Tracker{store: s}
	if err := s.Load(KeyPets, &t.pets); err != nil {
		return nil, err
	}
	if err := s.Load(KeyExpenses, &t.expenses); err != nil {
		return nil, err
	}
	if err := s.Load(KeyBudgets, &t.budgets); err != nil {
		return nil, err
	}
	if err := s.Load(KeyRecurring, &t.recurring); err != nil {
		return nil, err
	}
	if err := s.Load(KeyEstimates, &t.estimates); err != nil {
		return nil, err
	}
	return t, nil
}

// Pets returns the pet collection.
func (t *Tracker) Pets() []model.Pet { return t.pets }

// Expenses returns the expense collection.
func (t *Tracker) Expenses() []model.Expense { return t.expenses }

// Budgets returns the budget collection.
func (t *Tracker) Budgets() []model.Budget { return t.budgets }

// Recurring returns the recurring-expense collection.
func (t *Tracker) Recurring() []model.RecurringExpense { return t.recurring }

// Estimates returns the saved annual-estimate collection.
func (t *Tracker) Estimates() []model.AnnualEstimate { return t.estimates }

// PetByID finds a pet, reporting whether it exists.
func (t *Tracker) PetByID(id string) (model.Pet, bool) {
	for _, p := range t.pets {
		if p.ID == id {
			return p, true
		}
	}
	return model.Pet{}, false
}

// PetName returns the pet's name, or "Unknown" for an orphaned id.
func (t *Tracker) PetName(id string) string {
	if p, ok := t.PetByID(id); ok {
		return p.Name
	}
	return "Unknown"
}

// AddPet appends a new pet with a fresh id and creation timestamp.
func (t *Tracker) AddPet(name string, typ model.PetType, photo string) (model.Pet, error) {
	p := model.Pet{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      typ,
		Photo:     photo,
		DateAdded: time.Now(),
	}
	t.pets = append(t.pets, p)
	return p, t.store.Save(KeyPets, t.pets)
}

// PetUpdate holds the fields UpdatePet may change; nil fields are kept.
type PetUpdate struct {
	Name  *string
	Type  *model.PetType
	Photo *string
}

// UpdatePet merges upd into the pet with the given id. An unknown id is
// a no-op.
func (t *Tracker) UpdatePet(id string, upd PetUpdate) error {
	for i := range t.pets {
		if t.pets[i].ID != id {
			continue
		}
		if upd.Name != nil {
			t.pets[i].Name = *upd.Name
		}
		if upd.Type != nil {
			t.pets[i].Type = *upd.Type
		}
		if upd.Photo != nil {
			t.pets[i].Photo = *upd.Photo
		}
		return t.store.Save(KeyPets, t.pets)
	}
	return nil
}

// DeletePet removes the pet with the given id. No cascade: its expenses
// and budgets stay. Unknown id is a no-op.
func (t *Tracker) DeletePet(id string) error {
	for i := range t.pets {
		if t.pets[i].ID == id {
			t.pets = append(t.pets[:i], t.pets[i+1:]...)
			return t.store.Save(KeyPets, t.pets)
		}
	}
	return nil
}

// AddExpense appends a new expense. The caller supplies the date.
func (t *Tracker) AddExpense(petID string, date time.Time, category model.Category, amount decimal.Decimal, notes string) (model.Expense, error) {
	e := model.Expense{
		ID:       uuid.NewString(),
		PetID:    petID,
		Date:     date,
		Category: category,
		Amount:   amount,
		Notes:    notes,
	}
	t.expenses = append(t.expenses, e)
	return e, t.store.Save(KeyExpenses, t.expenses)
}

// ExpenseUpdate holds the fields UpdateExpense may change.
type ExpenseUpdate struct {
	PetID    *string
	Date     *time.Time
	Category *model.Category
	Amount   *decimal.Decimal
	Notes    *string
}

// UpdateExpense merges upd into the expense with the given id. An
// unknown id is a no-op.
func (t *Tracker) UpdateExpense(id string, upd ExpenseUpdate) error {
	for i := range t.expenses {
		if t.expenses[i].ID != id {
			continue
		}
		if upd.PetID != nil {
			t.expenses[i].PetID = *upd.PetID
		}
		if upd.Date != nil {
			t.expenses[i].Date = *upd.Date
		}
		if upd.Category != nil {
			t.expenses[i].Category = *upd.Category
		}
		if upd.Amount != nil {
			t.expenses[i].Amount = *upd.Amount
		}
		if upd.Notes != nil {
			t.expenses[i].Notes = *upd.Notes
		}
		return t.store.Save(KeyExpenses, t.expenses)
	}
	return nil
}

// DeleteExpense removes the expense with the given id. Unknown id is a
// no-op.
func (t *Tracker) DeleteExpense(id string) error {
	for i := range t.expenses {
		if t.expenses[i].ID == id {
			t.expenses = append(t.expenses[:i], t.expenses[i+1:]...)
			return t.store.Save(KeyExpenses, t.expenses)
		}
	}
	return nil
}

// SetBudget sets the monthly limit for one (pet, category) pair. An
// existing budget for the pair is overwritten in place, keeping its id;
// otherwise a new entry is inserted.
func (t *Tracker) SetBudget(petID string, category model.Category, limit decimal.Decimal) (model.Budget, error) {
	for i := range t.budgets {
		if t.budgets[i].PetID == petID && t.budgets[i].Category == category {
			t.budgets[i].MonthlyLimit = limit
			return t.budgets[i], t.store.Save(KeyBudgets, t.budgets)
		}
	}

	b := model.Budget{
		ID:           uuid.NewString(),
		PetID:        petID,
		Category:     category,
		MonthlyLimit: limit,
	}
	t.budgets = append(t.budgets, b)
	return b, t.store.Save(KeyBudgets, t.budgets)
}

// BudgetFor finds the budget for one (pet, category) pair.
func (t *Tracker) BudgetFor(petID string, category model.Category) (model.Budget, bool) {
	for _, b := range t.budgets {
		if b.PetID == petID && b.Category == category {
			return b, true
		}
	}
	return model.Budget{}, false
}

// DeleteBudget removes the budget with the given id. Unknown id is a
// no-op.
func (t *Tracker) DeleteBudget(id string) error {
	for i := range t.budgets {
		if t.budgets[i].ID == id {
			t.budgets = append(t.budgets[:i], t.budgets[i+1:]...)
			return t.store.Save(KeyBudgets, t.budgets)
		}
	}
	return nil
}

// AddRecurring appends a new recurring-expense template.
func (t *Tracker) AddRecurring(petID string, category model.Category, amount decimal.Decimal, description string, startDate time.Time) (model.RecurringExpense, error) {
	r := model.RecurringExpense{
		ID:          uuid.NewString(),
		PetID:       petID,
		Category:    category,
		Amount:      amount,
		Description: description,
		StartDate:   startDate,
	}
	t.recurring = append(t.recurring, r)
	return r, t.store.Save(KeyRecurring, t.recurring)
}

// MarkRecurringPaid logs a real expense for the recurring entry and
// marks it paid for the month. Returns the created expense.
func (t *Tracker) MarkRecurringPaid(id string, now time.Time) (model.Expense, error) {
	for i := range t.recurring {
		if t.recurring[i].ID != id {
			continue
		}
		t.recurring[i].PaidThisMonth = true
		t.recurring[i].LastPaidDate = now
		if err := t.store.Save(KeyRecurring, t.recurring); err != nil {
			return model.Expense{}, err
		}
		return t.AddExpense(t.recurring[i].PetID, now, t.recurring[i].Category, t.recurring[i].Amount, t.recurring[i].Description)
	}
	return model.Expense{}, nil
}

// ResetMonthlyPaid clears the paid flag on every recurring entry, ready
// for a new month.
func (t *Tracker) ResetMonthlyPaid() error {
	for i := range t.recurring {
		t.recurring[i].PaidThisMonth = false
	}
	return t.store.Save(KeyRecurring, t.recurring)
}

// DeleteRecurring removes the recurring entry with the given id. Unknown
// id is a no-op.
func (t *Tracker) DeleteRecurring(id string) error {
	for i := range t.recurring {
		if t.recurring[i].ID == id {
			t.recurring = append(t.recurring[:i], t.recurring[i+1:]...)
			return t.store.Save(KeyRecurring, t.recurring)
		}
	}
	return nil
}

// SaveEstimate appends a new annual estimate with a fresh id and
// creation timestamp.
func (t *Tracker) SaveEstimate(petID, name string, monthly map[model.Category]decimal.Decimal, oneTime map[string]decimal.Decimal) (model.AnnualEstimate, error) {
	est := model.AnnualEstimate{
		ID:              uuid.NewString(),
		PetID:           petID,
		Name:            name,
		MonthlyExpenses: monthly,
		OneTimeExpenses: oneTime,
		CreatedAt:       time.Now(),
	}
	t.estimates = append(t.estimates, est)
	return est, t.store.Save(KeyEstimates, t.estimates)
}

// DeleteEstimate removes the estimate with the given id. Unknown id is
// a no-op.
func (t *Tracker) DeleteEstimate(id string) error {
	for i := range t.estimates {
		if t.estimates[i].ID == id {
			t.estimates = append(t.estimates[:i], t.estimates[i+1:]...)
			return t.store.Save(KeyEstimates, t.estimates)
		}
	}
	return nil
}

// ReplaceAll swaps in complete collections, persisting each. Used by
// backup import.
func (t *Tracker) ReplaceAll(pets []model.Pet, expenses []model.Expense, budgets []model.Budget, recurring []model.RecurringExpense) error {
	t.pets = pets
	t.expenses = expenses
	t.budgets = budgets
	t.recurring = recurring

	if err := t.store.Save(KeyPets, t.pets); err != nil {
		return err
	}
	if err := t.store.Save(KeyExpenses, t.expenses); err != nil {
		return err
	}
	if err := t.store.Save(KeyBudgets, t.budgets); err != nil {
		return err
	}
	return t.store.Save(KeyRecurring, t.recurring)
}
