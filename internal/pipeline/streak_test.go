package pipeline

import (
	"testing"
	"time"

	"pawtally/internal/model"
)

func streakExpenses(t *testing.T, days ...string) []model.Expense {
	t.Helper()
	var out []model.Expense
	for _, d := range days {
		out = append(out, expense(t, "p1", d, model.CategoryFood, "5.00"))
	}
	return out
}

func TestComputeStreak_Empty(t *testing.T) {
	info := ComputeStreak(nil, time.Now())
	if info.CurrentStreak != 0 {
		t.Fatalf("CurrentStreak = %d, want 0", info.CurrentStreak)
	}
	if info.LastActivityDate != "" {
		t.Fatalf("LastActivityDate = %q, want empty", info.LastActivityDate)
	}
}

func TestComputeStreak_ThreeConsecutiveDays(t *testing.T) {
	today := localDay(t, "2026-08-20")
	expenses := streakExpenses(t, "2026-08-20", "2026-08-19", "2026-08-18")

	info := ComputeStreak(expenses, today)
	if info.CurrentStreak != 3 {
		t.Fatalf("CurrentStreak = %d, want 3", info.CurrentStreak)
	}
	if info.LastActivityDate != "2026-08-20" {
		t.Fatalf("LastActivityDate = %q, want 2026-08-20", info.LastActivityDate)
	}
}

func TestComputeStreak_GracePeriod(t *testing.T) {
	// Nothing logged today yet; yesterday's run must survive.
	today := localDay(t, "2026-08-20")
	expenses := streakExpenses(t, "2026-08-19", "2026-08-18", "2026-08-17")

	info := ComputeStreak(expenses, today)
	if info.CurrentStreak != 3 {
		t.Fatalf("CurrentStreak = %d, want 3 (grace period)", info.CurrentStreak)
	}
}

func TestComputeStreak_BrokenWhenOlderThanYesterday(t *testing.T) {
	today := localDay(t, "2026-08-20")
	expenses := streakExpenses(t, "2026-08-18", "2026-08-17")

	info := ComputeStreak(expenses, today)
	if info.CurrentStreak != 0 {
		t.Fatalf("CurrentStreak = %d, want 0 (last activity two days ago)", info.CurrentStreak)
	}
	if info.LastActivityDate != "2026-08-18" {
		t.Fatalf("LastActivityDate = %q, want 2026-08-18", info.LastActivityDate)
	}
}

func TestComputeStreak_GapStopsWalk(t *testing.T) {
	today := localDay(t, "2026-08-20")
	expenses := streakExpenses(t, "2026-08-20", "2026-08-19", "2026-08-16", "2026-08-15")

	info := ComputeStreak(expenses, today)
	if info.CurrentStreak != 2 {
		t.Fatalf("CurrentStreak = %d, want 2 (gap after the 19th)", info.CurrentStreak)
	}
}

func TestComputeStreak_SameDayDeduplicated(t *testing.T) {
	today := localDay(t, "2026-08-20")
	expenses := streakExpenses(t, "2026-08-20", "2026-08-20", "2026-08-20")

	info := ComputeStreak(expenses, today)
	if info.CurrentStreak != 1 {
		t.Fatalf("CurrentStreak = %d, want 1 (three expenses, one day)", info.CurrentStreak)
	}
}
