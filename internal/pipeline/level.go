package pipeline

import "pawtally/internal/model"

// levelStep is one row of the level table.
type levelStep struct {
	Level int
	Title string
	MinXP int
}

// levelTable maps XP thresholds to levels and titles. Strictly increasing
// in MinXP; level 1 starts at 0 so every score resolves.
var levelTable = []levelStep{
	{1, "Newcomer", 0},
	{2, "Beginner", 100},
	{3, "Rookie", 250},
	{4, "Learner", 500},
	{5, "Explorer", 850},
	{6, "Caretaker", 1300},
	{7, "Companion", 1850},
	{8, "Guardian", 2500},
	{9, "Protector", 3300},
	{10, "Devoted", 4200},
	{11, "Expert", 5300},
	{12, "Master", 6500},
	{13, "Champion", 8000},
	{14, "Legend", 10000},
	{15, "Ultimate", 12500},
}

// MaxLevel is the highest attainable level.
const MaxLevel = 15

// ResolveLevel maps a total XP score to its level, title, and progress
// toward the next threshold.
func ResolveLevel(totalXP int) model.LevelInfo {
	if totalXP < 0 {
		totalXP = 0
	}

	idx := 0
	for i := len(levelTable) - 1; i >= 0; i-- {
		if totalXP >= levelTable[i].MinXP {
			idx = i
			break
		}
	}
	current := levelTable[idx]

	info := model.LevelInfo{
		Level:             current.Level,
		Title:             current.Title,
		CurrentXP:         totalXP,
		XPForCurrentLevel: current.MinXP,
	}

	if idx == len(levelTable)-1 {
		info.IsMaxLevel = true
		info.XPForNextLevel = current.MinXP
		info.XPProgress = totalXP - current.MinXP
		info.ProgressPercentage = 100
		return info
	}

	next := levelTable[idx+1]
	info.XPForNextLevel = next.MinXP
	info.XPProgress = totalXP - current.MinXP
	info.XPNeeded = next.MinXP - totalXP

	levelRange := next.MinXP - current.MinXP
	if levelRange <= 0 {
		// Degenerate table entry; treat as already complete.
		info.ProgressPercentage = 100
		return info
	}

	pct := float64(info.XPProgress) / float64(levelRange) * 100
	if pct > 100 {
		pct = 100
	}
	info.ProgressPercentage = pct
	return info
}
