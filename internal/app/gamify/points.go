// Package gamify implements the Quench gamification engine: points, streaks,
// level milestones, and badge awards, all derived from a user's full activity
// history. The engine never patches state incrementally: every recompute
// rebuilds the aggregate from scratch, which makes it idempotent and tolerant
// of out-of-order activity edits.
package gamify

import (
	"time"

	"github.com/quench-app/quench/internal/domain"
)

// Point values for the layered scoring formula.
const (
	pointsPerLog    = 5
	pointsPerAdvice = 10

	streakBonusWeek      = 50  // streak 7-13
	streakBonusFortnight = 100 // streak 14-29
	streakBonusMonth     = 200 // streak 30+

	improvementBonusMajor = 50 // mean intensity dropped ≥ 2
	improvementBonusMinor = 25 // mean intensity dropped ≥ 1
)

// adviceMilestoneBonus pays out on EXACT advice-record counts, not cumulative
// thresholds: a user at 11 consultations gets nothing from the 10-mark.
var adviceMilestoneBonus = map[int]int{
	1:  20,
	10: 30,
	30: 50,
}

// PointsBreakdown itemizes one recompute's derived points.
type PointsBreakdown struct {
	Base             int `json:"base"`
	StreakBonus      int `json:"streak_bonus"`
	ImprovementBonus int `json:"improvement_bonus"`
	MilestoneBonus   int `json:"milestone_bonus"`
}

// Total is the activity-derived point total. It replaces (not accumulates
// onto) the previous total; badge rewards are layered on top by the
// orchestrator from the awarded-badge facts.
func (p PointsBreakdown) Total() int {
	return p.Base + p.StreakBonus + p.ImprovementBonus + p.MilestoneBonus
}

// ComputePoints derives the point breakdown from an activity history
// snapshot. streakDays is the current streak, now anchors the
// improvement windows.
func ComputePoints(history []domain.ActivityRecord, streakDays int, now time.Time) PointsBreakdown {
	var b PointsBreakdown

	advice := 0
	for _, rec := range history {
		if rec.HasAdvice {
			advice++
		}
	}
	b.Base = pointsPerLog*len(history) + pointsPerAdvice*advice

	switch {
	case streakDays >= 30:
		b.StreakBonus = streakBonusMonth
	case streakDays >= 14:
		b.StreakBonus = streakBonusFortnight
	case streakDays >= 7:
		b.StreakBonus = streakBonusWeek
	}

	// Ties resolve to the higher bracket (≥, not >).
	if improvement, ok := IntensityImprovement(history, now); ok {
		switch {
		case improvement >= 2:
			b.ImprovementBonus = improvementBonusMajor
		case improvement >= 1:
			b.ImprovementBonus = improvementBonusMinor
		}
	}

	b.MilestoneBonus = adviceMilestoneBonus[advice]

	return b
}

// IntensityImprovement compares mean intensity of the trailing 7 days against
// the preceding 7–14-day window. A positive value means anger went down.
// ok is false when either window has no records, in which case no
// improvement can be claimed.
func IntensityImprovement(history []domain.ActivityRecord, now time.Time) (improvement float64, ok bool) {
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	var recentSum, olderSum float64
	var recentN, olderN int

	for _, rec := range history {
		t := rec.OccurredAt
		switch {
		case t.After(weekAgo) && !t.After(now):
			recentSum += float64(rec.Intensity)
			recentN++
		case t.After(twoWeeksAgo) && !t.After(weekAgo):
			olderSum += float64(rec.Intensity)
			olderN++
		}
	}

	if recentN == 0 || olderN == 0 {
		return 0, false
	}
	return olderSum/float64(olderN) - recentSum/float64(recentN), true
}
