package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OneTimeCosts lists the one-time line items of the annual cost
// estimator in display order.
var OneTimeCosts = []string{"adoption", "vaccinations", "neutering", "supplies"}

// AnnualEstimate is a saved what-if projection of a pet's yearly cost:
// a monthly amount per category plus a handful of one-time costs.
// Zero-amount lines are omitted from the maps.
type AnnualEstimate struct {
	ID              string                       `json:"id"`
	PetID           string                       `json:"petId"`
	Name            string                       `json:"name"`
	MonthlyExpenses map[Category]decimal.Decimal `json:"monthlyExpenses"`
	OneTimeExpenses map[string]decimal.Decimal   `json:"oneTimeExpenses"`
	CreatedAt       time.Time                    `json:"createdAt"`
}
