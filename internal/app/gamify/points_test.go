package gamify_test

import (
	"testing"
	"time"

	"github.com/quench-app/quench/internal/app/gamify"
	"github.com/quench-app/quench/internal/domain"
)

var pointsNow = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

// logs builds n records dated today, the first a of them advice-bearing.
func logs(n, a int) []domain.ActivityRecord {
	var out []domain.ActivityRecord
	for i := 0; i < n; i++ {
		out = append(out, domain.ActivityRecord{
			UserID:     "u",
			OccurredAt: pointsNow.Add(-time.Duration(i) * time.Minute),
			Intensity:  5,
			HasAdvice:  i < a,
		})
	}
	return out
}

// intensityOn builds a record at the given intensity, daysAgo days back.
func intensityOn(daysAgo, intensity int) domain.ActivityRecord {
	return domain.ActivityRecord{
		UserID: "u", OccurredAt: pointsNow.AddDate(0, 0, -daysAgo), Intensity: intensity,
	}
}

func TestPoints_BaseFormula(t *testing.T) {
	// 3 logs, 2 of them advice-bearing: 3×5 + 2×10 = 35. No streak, no
	// improvement baseline, and advice count 2 hits no exact milestone.
	b := gamify.ComputePoints(logs(3, 2), 1, pointsNow)

	if b.Base != 35 {
		t.Errorf("base = %d, want 35", b.Base)
	}
	if b.StreakBonus != 0 || b.ImprovementBonus != 0 || b.MilestoneBonus != 0 {
		t.Errorf("unexpected bonuses: %+v", b)
	}
	if b.Total() != 35 {
		t.Errorf("total = %d, want 35", b.Total())
	}
}

func TestPoints_StreakBonusBrackets(t *testing.T) {
	cases := []struct {
		streak int
		want   int
	}{
		{0, 0}, {6, 0}, {7, 50}, {13, 50}, {14, 100}, {29, 100}, {30, 200}, {90, 200},
	}
	history := logs(1, 0)
	for _, tc := range cases {
		b := gamify.ComputePoints(history, tc.streak, pointsNow)
		if b.StreakBonus != tc.want {
			t.Errorf("streak %d: bonus = %d, want %d", tc.streak, b.StreakBonus, tc.want)
		}
	}
}

func TestPoints_ImprovementBonusBrackets(t *testing.T) {
	cases := []struct {
		name   string
		recent int // intensity in the trailing 7 days
		older  int // intensity in the 7–14-day window
		want   int
	}{
		{"drop of 2 pays 50", 6, 8, 50},
		{"drop of exactly 2 ties to higher bracket", 7, 9, 50},
		{"drop of 1 pays 25", 7, 8, 25},
		{"no drop pays 0", 8, 8, 0},
		{"worsening pays 0", 9, 5, 0},
	}
	for _, tc := range cases {
		history := []domain.ActivityRecord{
			intensityOn(2, tc.recent),
			intensityOn(10, tc.older),
		}
		b := gamify.ComputePoints(history, 0, pointsNow)
		if b.ImprovementBonus != tc.want {
			t.Errorf("%s: bonus = %d, want %d", tc.name, b.ImprovementBonus, tc.want)
		}
	}
}

func TestPoints_ImprovementNeedsBothWindows(t *testing.T) {
	// Only recent records, so no baseline and no bonus.
	recentOnly := []domain.ActivityRecord{intensityOn(1, 2), intensityOn(2, 2)}
	if b := gamify.ComputePoints(recentOnly, 0, pointsNow); b.ImprovementBonus != 0 {
		t.Errorf("recent-only bonus = %d, want 0", b.ImprovementBonus)
	}

	// Only older records.
	olderOnly := []domain.ActivityRecord{intensityOn(10, 9)}
	if b := gamify.ComputePoints(olderOnly, 0, pointsNow); b.ImprovementBonus != 0 {
		t.Errorf("older-only bonus = %d, want 0", b.ImprovementBonus)
	}
}

func TestPoints_AdviceMilestoneExactMatchOnly(t *testing.T) {
	cases := []struct {
		advice int
		want   int
	}{
		{0, 0}, {1, 20}, {2, 0}, {9, 0}, {10, 30}, {11, 0}, {30, 50}, {31, 0},
	}
	for _, tc := range cases {
		b := gamify.ComputePoints(logs(tc.advice+1, tc.advice), 0, pointsNow)
		if b.MilestoneBonus != tc.want {
			t.Errorf("advice count %d: milestone bonus = %d, want %d",
				tc.advice, b.MilestoneBonus, tc.want)
		}
	}
}

func TestPoints_RecomputationIsStable(t *testing.T) {
	history := logs(3, 2)
	first := gamify.ComputePoints(history, 1, pointsNow)
	second := gamify.ComputePoints(history, 1, pointsNow)
	if first.Total() != second.Total() {
		t.Errorf("recomputation drifted: %d then %d", first.Total(), second.Total())
	}
}
