package gamify

import (
	"time"

	"github.com/quench-app/quench/internal/domain"
)

// applyLevelAchievements appends one achievement record for every level
// strictly above the previous level up to and including the new one.
// Fires only on a level-up; a level that already has an entry is skipped,
// so the one-entry-per-level invariant survives repeated recomputes.
// Returns the records that were newly appended.
func applyLevelAchievements(st *domain.GamificationState, newLevel int, now time.Time) []domain.LevelAchievement {
	if newLevel <= st.CurrentLevel {
		return nil
	}

	var added []domain.LevelAchievement
	for lvl := st.CurrentLevel + 1; lvl <= newLevel; lvl++ {
		if st.HasAchievedLevel(lvl) {
			continue
		}
		a := domain.LevelAchievement{
			Level:          lvl,
			AchievedAt:     now,
			PointsRequired: lvl * domain.PointsPerLevel,
			MilestoneType:  domain.MilestoneTypeForLevel(lvl),
		}
		st.LevelAchievements = append(st.LevelAchievements, a)
		added = append(added, a)
	}
	return added
}

// applyMilestoneFlags raises the one-way boolean flags that follow from the
// current history snapshot. Flags never revert: a broken streak leaves
// consecutive_7_days set.
func applyMilestoneFlags(st *domain.GamificationState, history []domain.ActivityRecord, streakDays int, now time.Time) {
	if len(history) > 0 {
		st.SetFlag(domain.FlagFirstLog)
	}
	for _, rec := range history {
		if rec.HasAdvice {
			st.SetFlag(domain.FlagFirstAIAdvice)
			break
		}
	}
	if streakDays >= 7 {
		st.SetFlag(domain.FlagStreak7)
	}
	if streakDays >= 30 {
		st.SetFlag(domain.FlagStreak30)
	}
	// Same two 7-day windows as the improvement bonus.
	if improvement, ok := IntensityImprovement(history, now); ok && improvement >= 1 {
		st.SetFlag(domain.FlagAngerReduced)
	}
}
