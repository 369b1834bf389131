package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the derived spend/activity summary for one reference period.
type Snapshot struct {
	SpendingByCategory map[Category]decimal.Decimal
	TotalSpent         decimal.Decimal

	// ActivityDays holds every local calendar day (2006-01-02) with at
	// least one expense, across the full history regardless of the
	// period filter. Streak and XP read from it.
	ActivityDays map[string]struct{}

	AllUnderBudget bool
}

// StreakInfo reports the current consecutive-day logging streak.
type StreakInfo struct {
	CurrentStreak    int
	LastActivityDate string // local day key, "" when no expenses exist
}

// LevelInfo maps a total XP value onto the level table.
type LevelInfo struct {
	Level              int
	Title              string
	CurrentXP          int
	XPForCurrentLevel  int
	XPForNextLevel     int
	XPProgress         int
	XPNeeded           int
	ProgressPercentage float64
	IsMaxLevel         bool
}

// PetTotal holds aggregated spend for a single pet.
type PetTotal struct {
	PetID    string
	Name     string
	Expenses int
	Total    decimal.Decimal
}

// DayTotal holds spend for a single calendar day.
type DayTotal struct {
	Date     time.Time
	Expenses int
	Total    decimal.Decimal
}
