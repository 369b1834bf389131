package pipeline

import (
	"sort"
	"time"

	"pawtally/internal/model"
)

// ComputeStreak derives the consecutive-day logging streak from the
// expense history. Multiple expenses on one day count once. The streak
// survives a missing entry for today (one-day grace) but breaks once the
// most recent logged day is older than yesterday.
func ComputeStreak(expenses []model.Expense, today time.Time) model.StreakInfo {
	if len(expenses) == 0 {
		return model.StreakInfo{}
	}

	daySet := ActivityDays(expenses)
	days := make([]string, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	if len(days) == 0 {
		return model.StreakInfo{}
	}

	last := days[0]
	todayKey := DayKey(today)
	yesterdayKey := DayKey(today.AddDate(0, 0, -1))
	if last != todayKey && last != yesterdayKey {
		return model.StreakInfo{LastActivityDate: last}
	}

	streak := 1
	for i := 0; i < len(days)-1; i++ {
		cur, err := time.ParseInLocation(dayKeyFormat, days[i], time.Local)
		if err != nil {
			break
		}
		if cur.AddDate(0, 0, -1).Format(dayKeyFormat) != days[i+1] {
			break
		}
		streak++
	}

	return model.StreakInfo{CurrentStreak: streak, LastActivityDate: last}
}
