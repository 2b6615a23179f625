package gamify

import (
	"sort"
	"time"

	"github.com/quench-app/quench/internal/domain"
)

// CurrentStreak computes the consecutive-day streak from activity history.
//
// The walk starts at today's date and steps backwards over the distinct
// calendar dates present in the history. Today itself gets a grace period:
// a contiguous run ending yesterday still counts in full, because the user
// may simply not have logged yet today. The streak is 0 only when the most
// recent activity date is older than yesterday, or there is no activity.
func CurrentStreak(history []domain.ActivityRecord, today time.Time) int {
	if len(history) == 0 {
		return 0
	}

	seen := make(map[time.Time]bool, len(history))
	for _, rec := range history {
		seen[rec.Day()] = true
	}
	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	expected := domain.DateOf(today)

	streak := 0
	for _, d := range dates {
		if d.Equal(expected) {
			streak++
			expected = expected.AddDate(0, 0, -1)
			continue
		}
		// Grace: no log yet today; a run ending yesterday is still alive.
		if streak == 0 && d.Equal(expected.AddDate(0, 0, -1)) {
			streak = 1
			expected = d.AddDate(0, 0, -1)
			continue
		}
		// Strictly earlier than expected: gap found, streak ends here.
		break
	}
	return streak
}
