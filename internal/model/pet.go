// Package model defines domain types for pawtally pets, expenses, and budgets.
package model

import "time"

// PetType classifies a pet.
type PetType string

// Supported pet types.
const (
	PetDog    PetType = "dog"
	PetCat    PetType = "cat"
	PetBird   PetType = "bird"
	PetFish   PetType = "fish"
	PetRabbit PetType = "rabbit"
	PetOther  PetType = "other"
)

// PetTypes lists all supported pet types in display order.
var PetTypes = []PetType{PetDog, PetCat, PetBird, PetFish, PetRabbit, PetOther}

var petTypeLabels = map[PetType]string{
	PetDog:    "Dog",
	PetCat:    "Cat",
	PetBird:   "Bird",
	PetFish:   "Fish",
	PetRabbit: "Rabbit",
	PetOther:  "Other",
}

// Label returns the human-readable name for the pet type.
func (p PetType) Label() string {
	if l, ok := petTypeLabels[p]; ok {
		return l
	}
	return petTypeLabels[PetOther]
}

// ParsePetType maps a string to a PetType, falling back to PetOther.
func ParsePetType(s string) PetType {
	for _, p := range PetTypes {
		if string(p) == s {
			return p
		}
	}
	return PetOther
}

// Pet is a tracked animal. Expenses and budgets reference it by ID.
type Pet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      PetType   `json:"type"`
	Photo     string    `json:"photo,omitempty"`
	DateAdded time.Time `json:"dateAdded"`
}
