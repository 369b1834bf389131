package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies an expense into one of six fixed buckets.
type Category string

// Expense categories. The set is fixed; aggregation seeds all six.
const (
	CategoryFood       Category = "food"
	CategoryHealthcare Category = "healthcare"
	CategoryGrooming   Category = "grooming"
	CategoryToys       Category = "toys"
	CategoryTraining   Category = "training"
	CategoryOther      Category = "other"
)

// Categories lists all expense categories in display order.
var Categories = []Category{
	CategoryFood,
	CategoryHealthcare,
	CategoryGrooming,
	CategoryToys,
	CategoryTraining,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryFood:       "Food",
	CategoryHealthcare: "Healthcare",
	CategoryGrooming:   "Grooming",
	CategoryToys:       "Toys & Accessories",
	CategoryTraining:   "Training",
	CategoryOther:      "Other",
}

// Label returns the display name for the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return categoryLabels[CategoryOther]
}

// ParseCategory maps a string to a Category, falling back to CategoryOther.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryOther
}

// Expense is a single logged spend against a pet.
type Expense struct {
	ID       string          `json:"id"`
	PetID    string          `json:"petId"`
	Date     time.Time       `json:"date"`
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Notes    string          `json:"notes,omitempty"`
}
