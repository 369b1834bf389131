package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget caps monthly spend for one (pet, category) pair.
// At most one budget exists per pair; setting again overwrites in place.
type Budget struct {
	ID           string          `json:"id"`
	PetID        string          `json:"petId"`
	Category     Category        `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
}

// RecurringExpense is a template for a regularly repeating cost, paid
// manually once per month.
type RecurringExpense struct {
	ID            string          `json:"id"`
	PetID         string          `json:"petId"`
	Category      Category        `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	StartDate     time.Time       `json:"startDate"`
	PaidThisMonth bool            `json:"paidThisMonth"`
	LastPaidDate  time.Time       `json:"lastPaidDate,omitzero"`
}
