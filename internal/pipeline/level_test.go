package pipeline

import "testing"

func TestResolveLevel_ZeroXP(t *testing.T) {
	info := ResolveLevel(0)
	if info.Level != 1 || info.Title != "Newcomer" {
		t.Fatalf("level for 0 XP = %d %q, want 1 Newcomer", info.Level, info.Title)
	}
	if info.XPNeeded != 100 {
		t.Fatalf("XPNeeded = %d, want 100", info.XPNeeded)
	}
	if info.ProgressPercentage != 0 {
		t.Fatalf("ProgressPercentage = %.1f, want 0", info.ProgressPercentage)
	}
}

func TestResolveLevel_ExactThreshold(t *testing.T) {
	info := ResolveLevel(100)
	if info.Level != 2 || info.Title != "Beginner" {
		t.Fatalf("level for 100 XP = %d %q, want 2 Beginner", info.Level, info.Title)
	}
	if info.XPProgress != 0 {
		t.Fatalf("XPProgress = %d, want 0 at the threshold", info.XPProgress)
	}
	if info.XPNeeded != 150 {
		t.Fatalf("XPNeeded = %d, want 150", info.XPNeeded)
	}
}

func TestResolveLevel_MidLevel(t *testing.T) {
	// Level 4 spans 500..850; 675 is halfway.
	info := ResolveLevel(675)
	if info.Level != 4 {
		t.Fatalf("level for 675 XP = %d, want 4", info.Level)
	}
	if info.ProgressPercentage != 50 {
		t.Fatalf("ProgressPercentage = %.1f, want 50", info.ProgressPercentage)
	}
	if info.XPNeeded != 175 {
		t.Fatalf("XPNeeded = %d, want 175", info.XPNeeded)
	}
}

func TestResolveLevel_MaxLevel(t *testing.T) {
	for _, xp := range []int{12500, 20000, 1 << 20} {
		info := ResolveLevel(xp)
		if info.Level != MaxLevel || info.Title != "Ultimate" {
			t.Fatalf("level for %d XP = %d %q, want %d Ultimate", xp, info.Level, info.Title, MaxLevel)
		}
		if !info.IsMaxLevel {
			t.Fatalf("IsMaxLevel = false at %d XP", xp)
		}
		if info.XPNeeded != 0 {
			t.Fatalf("XPNeeded = %d at max level, want 0", info.XPNeeded)
		}
		if info.ProgressPercentage != 100 {
			t.Fatalf("ProgressPercentage = %.1f at max level, want 100", info.ProgressPercentage)
		}
	}
}

func TestResolveLevel_NegativeClampsToZero(t *testing.T) {
	info := ResolveLevel(-50)
	if info.Level != 1 || info.CurrentXP != 0 {
		t.Fatalf("level for negative XP = %d (XP %d), want level 1 at 0", info.Level, info.CurrentXP)
	}
}

func TestResolveLevel_MonotonicAndBounded(t *testing.T) {
	prevLevel := 0
	for xp := 0; xp <= 13000; xp += 7 {
		info := ResolveLevel(xp)
		if info.Level < prevLevel {
			t.Fatalf("level decreased at %d XP: %d -> %d", xp, prevLevel, info.Level)
		}
		if info.ProgressPercentage < 0 || info.ProgressPercentage > 100 {
			t.Fatalf("ProgressPercentage = %.2f at %d XP, out of [0,100]", info.ProgressPercentage, xp)
		}
		prevLevel = info.Level
	}
}

func TestLevelTable_StrictlyIncreasing(t *testing.T) {
	for i := 1; i < len(levelTable); i++ {
		if levelTable[i].MinXP <= levelTable[i-1].MinXP {
			t.Fatalf("table entry %d: minXP %d not greater than %d", i, levelTable[i].MinXP, levelTable[i-1].MinXP)
		}
		if levelTable[i].Level != levelTable[i-1].Level+1 {
			t.Fatalf("table entry %d: level %d not consecutive", i, levelTable[i].Level)
		}
	}
	if levelTable[0].MinXP != 0 {
		t.Fatal("table must start at 0 XP so every score resolves")
	}
}
