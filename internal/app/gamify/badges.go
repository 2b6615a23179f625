package gamify

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/quench-app/quench/internal/domain"
)

// historyStats holds the history-derived counts badge predicates check.
// Points and level are read live from the state instead, because awards
// applied earlier in the same pass change them.
type historyStats struct {
	adviceCount     int
	emotionLogCount int
	triggerCount    int
	streakDays      int
	improvement     float64 // 0 when either window is empty
}

func collectStats(history []domain.ActivityRecord, streakDays int, now time.Time) historyStats {
	s := historyStats{streakDays: streakDays}
	triggers := make(map[string]bool)
	for _, rec := range history {
		if rec.HasAdvice {
			s.adviceCount++
		}
		if rec.HasEmotionDetail() {
			s.emotionLogCount++
		}
		if rec.Trigger != "" {
			triggers[rec.Trigger] = true
		}
	}
	s.triggerCount = len(triggers)
	if improvement, ok := IntensityImprovement(history, now); ok {
		s.improvement = improvement
	}
	return s
}

// eligible dispatches a badge requirement to its predicate. The switch is
// exhaustive over domain.RequirementKind; anything else is ineligible
// (fail-closed), so a catalog shipped with a newer kind never mis-awards.
func eligible(def domain.BadgeDefinition, st *domain.GamificationState, stats historyStats) bool {
	threshold := def.Requirement.Threshold
	switch def.Requirement.Kind {
	case domain.ReqFirstConsultation, domain.ReqConsultationCount:
		return float64(stats.adviceCount) >= threshold
	case domain.ReqConsecutiveDays:
		return float64(stats.streakDays) >= threshold
	case domain.ReqDetailedEmotionLogs:
		return float64(stats.emotionLogCount) >= threshold
	case domain.ReqAngerImprovement:
		return stats.improvement >= threshold
	case domain.ReqTriggerAnalysis:
		return float64(stats.triggerCount) >= threshold
	case domain.ReqCalmingPoints:
		return float64(st.TotalPoints) >= threshold
	case domain.ReqLevelReached:
		return float64(st.CurrentLevel) >= threshold
	default:
		return false
	}
}

// applyBadgeFlags re-derives the badge milestone flags from the earned-badge
// facts. An award's flags normally land with the state save that follows the
// evaluation pass; if that save fails after the award fact committed, the
// facts are the only durable record. Re-deriving on every recompute heals
// the flags the same way the reward sum heals the points.
func applyBadgeFlags(st *domain.GamificationState, catalog []domain.BadgeDefinition, earned map[string]bool) {
	for _, def := range catalog {
		if !earned[def.ID] {
			continue
		}
		st.SetFlag(domain.BadgeEarnedFlag(def.ID))
		st.SetFlag(domain.FirstBadgeOfTypeFlag(def.Type))
	}
}

// evaluateBadges walks the catalog in stable order and awards every badge
// the user is newly eligible for. Each award commits the earned fact, adds
// the badge's point reward to the state (recomputing level and appending any
// level achievements it causes), and raises the badge milestone flags.
// Already-earned badges are skipped entirely, so re-running evaluation never
// re-awards or duplicates.
//
// The state is mutated in place; the caller persists it afterwards.
func (o *Orchestrator) evaluateBadges(
	catalog []domain.BadgeDefinition,
	st *domain.GamificationState,
	stats historyStats,
	earned map[string]bool,
	now time.Time,
) ([]domain.BadgeDefinition, error) {
	var awarded []domain.BadgeDefinition

	for _, def := range catalog {
		if earned[def.ID] {
			continue
		}
		if !eligible(def, st, stats) {
			continue
		}

		err := o.awards.Insert(st.UserID, def.ID, now)
		if errors.Is(err, domain.ErrDuplicateAward) {
			// Benign race: the badge is already earned, which is the
			// desired end state. Its reward was or will be counted from
			// the awarded-badge facts; raise the flags now so this
			// invocation's save carries them too.
			earned[def.ID] = true
			st.SetFlag(domain.BadgeEarnedFlag(def.ID))
			st.SetFlag(domain.FirstBadgeOfTypeFlag(def.Type))
			continue
		}
		if err != nil {
			return awarded, fmt.Errorf("award badge %s: %w", def.ID, err)
		}
		earned[def.ID] = true

		st.TotalPoints += def.PointsReward
		newLevel := domain.LevelForPoints(st.TotalPoints)
		applyLevelAchievements(st, newLevel, now)
		st.CurrentLevel = newLevel

		st.SetFlag(domain.BadgeEarnedFlag(def.ID))
		if first := o.firstOfType(def.Type, catalog, earned, def.ID); first {
			st.SetFlag(domain.FirstBadgeOfTypeFlag(def.Type))
		}

		awarded = append(awarded, def)
		log.Printf("[gamify] badge awarded: user=%s badge=%s (+%d pts)",
			st.UserID, def.ID, def.PointsReward)
	}

	return awarded, nil
}

// firstOfType reports whether justAwarded is the user's only earned badge of
// the given type.
func (o *Orchestrator) firstOfType(t domain.BadgeType, catalog []domain.BadgeDefinition, earned map[string]bool, justAwarded string) bool {
	for _, def := range catalog {
		if def.ID == justAwarded || def.Type != t {
			continue
		}
		if earned[def.ID] {
			return false
		}
	}
	return true
}
