package gamify_test

import (
	"testing"
	"time"

	"github.com/quench-app/quench/internal/app/gamify"
	"github.com/quench-app/quench/internal/domain"
)

var streakToday = time.Date(2025, 7, 15, 18, 30, 0, 0, time.UTC)

// recOn builds a minimal record daysAgo days before streakToday.
func recOn(daysAgo int) domain.ActivityRecord {
	return domain.ActivityRecord{
		ID:         "r",
		UserID:     "u",
		OccurredAt: streakToday.AddDate(0, 0, -daysAgo),
		Intensity:  5,
	}
}

func TestStreak_Empty(t *testing.T) {
	if got := gamify.CurrentStreak(nil, streakToday); got != 0 {
		t.Errorf("expected 0 for no activity, got %d", got)
	}
}

func TestStreak_ThreeConsecutiveDaysEndingToday(t *testing.T) {
	history := []domain.ActivityRecord{recOn(2), recOn(1), recOn(0)}
	if got := gamify.CurrentStreak(history, streakToday); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestStreak_GapBreaksWalk(t *testing.T) {
	// Activity on today, today-1, today-2, nothing on today-3, more on today-4.
	history := []domain.ActivityRecord{recOn(4), recOn(2), recOn(1), recOn(0)}
	if got := gamify.CurrentStreak(history, streakToday); got != 3 {
		t.Errorf("expected 3 (streak ends at the gap), got %d", got)
	}
}

func TestStreak_TodayGracePeriod(t *testing.T) {
	// No log yet today: a run ending yesterday still counts in full.
	history := []domain.ActivityRecord{recOn(3), recOn(2), recOn(1)}
	if got := gamify.CurrentStreak(history, streakToday); got != 3 {
		t.Errorf("expected 3 via yesterday grace, got %d", got)
	}
}

func TestStreak_OnlyYesterday(t *testing.T) {
	history := []domain.ActivityRecord{recOn(1)}
	if got := gamify.CurrentStreak(history, streakToday); got != 1 {
		t.Errorf("expected 1 via yesterday grace, got %d", got)
	}
}

func TestStreak_RunEndedBeforeYesterday(t *testing.T) {
	history := []domain.ActivityRecord{recOn(4), recOn(3), recOn(2)}
	if got := gamify.CurrentStreak(history, streakToday); got != 0 {
		t.Errorf("expected 0 (run is stale), got %d", got)
	}
}

func TestStreak_SameDayDuplicatesCollapse(t *testing.T) {
	history := []domain.ActivityRecord{recOn(0), recOn(0), recOn(1), recOn(1)}
	if got := gamify.CurrentStreak(history, streakToday); got != 2 {
		t.Errorf("expected 2 (days, not records), got %d", got)
	}
}

func TestStreak_SingleDayToday(t *testing.T) {
	history := []domain.ActivityRecord{recOn(0)}
	if got := gamify.CurrentStreak(history, streakToday); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}
