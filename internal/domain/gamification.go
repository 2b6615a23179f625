package domain

import (
	"fmt"
	"time"
)

// PointsPerLevel is the flat point cost of each level.
// currentLevel == totalPoints/PointsPerLevel + 1, always derived, never set.
const PointsPerLevel = 100

// LevelForPoints derives the level for a point total.
func LevelForPoints(points int) int {
	if points < 0 {
		return 1
	}
	return points/PointsPerLevel + 1
}

// ─── Milestone Types ────────────────────────────────────────────────────────

// MilestoneType tiers level achievements.
type MilestoneType string

const (
	MilestoneBeginner     MilestoneType = "beginner"     // levels 1–5
	MilestoneIntermediate MilestoneType = "intermediate" // levels 6–10
	MilestoneAdvanced     MilestoneType = "advanced"     // levels 11–15
	MilestoneMaster       MilestoneType = "master"       // 16+
)

// MilestoneTypeForLevel returns the tier a level belongs to.
func MilestoneTypeForLevel(level int) MilestoneType {
	switch {
	case level <= 5:
		return MilestoneBeginner
	case level <= 10:
		return MilestoneIntermediate
	case level <= 15:
		return MilestoneAdvanced
	default:
		return MilestoneMaster
	}
}

// LevelAchievement records the moment a level was first reached.
type LevelAchievement struct {
	Level          int           `json:"level"`
	AchievedAt     time.Time     `json:"achieved_at"`
	PointsRequired int           `json:"points_required"` // level × 100
	MilestoneType  MilestoneType `json:"milestone_type"`
}

// ─── Milestone Flags ────────────────────────────────────────────────────────

// One-way boolean achievement markers. Once set, a flag never reverts.
const (
	FlagFirstLog      = "first_log_created"
	FlagFirstAIAdvice = "first_ai_consultation"
	FlagStreak7       = "consecutive_7_days"
	FlagStreak30      = "consecutive_30_days"
	FlagAngerReduced  = "anger_level_reduced"
)

// BadgeEarnedFlag names the per-badge milestone flag.
func BadgeEarnedFlag(badgeID string) string {
	return fmt.Sprintf("badge_%s_earned", badgeID)
}

// FirstBadgeOfTypeFlag names the first-badge-of-a-type milestone flag.
func FirstBadgeOfTypeFlag(t BadgeType) string {
	return fmt.Sprintf("first_%s_badge", t)
}

// ─── Gamification State ─────────────────────────────────────────────────────

// GamificationState is the per-user aggregate the engine recomputes wholesale
// from the full activity history. It is never incrementally patched; that is
// what keeps Recompute idempotent.
type GamificationState struct {
	UserID            string             `json:"user_id"`
	TotalPoints       int                `json:"total_points"`
	CurrentLevel      int                `json:"current_level"` // derived from TotalPoints
	StreakDays        int                `json:"streak_days"`
	LastActionDate    time.Time          `json:"last_action_date"` // zero if no activity yet
	MilestoneFlags    map[string]bool    `json:"milestone_flags"`
	LevelAchievements []LevelAchievement `json:"level_achievements"` // ascending by level
}

// NewGamificationState returns the zero-value state a fresh user starts with.
func NewGamificationState(userID string) *GamificationState {
	return &GamificationState{
		UserID:         userID,
		TotalPoints:    0,
		CurrentLevel:   1,
		StreakDays:     0,
		MilestoneFlags: make(map[string]bool),
	}
}

// SetFlag raises a milestone flag. Raising is monotonic: flags are never
// cleared, so setting an already-set flag is a no-op.
// Returns true if the flag was newly set.
func (g *GamificationState) SetFlag(name string) bool {
	if g.MilestoneFlags == nil {
		g.MilestoneFlags = make(map[string]bool)
	}
	if g.MilestoneFlags[name] {
		return false
	}
	g.MilestoneFlags[name] = true
	return true
}

// HasAchievedLevel reports whether an achievement entry exists for a level.
func (g *GamificationState) HasAchievedLevel(level int) bool {
	for _, a := range g.LevelAchievements {
		if a.Level == level {
			return true
		}
	}
	return false
}

// Validate rejects malformed state before persistence. Out-of-range values
// are never silently clamped.
func (g *GamificationState) Validate() error {
	if g.UserID == "" {
		return fmt.Errorf("%w: state user id is empty", ErrInvalidState)
	}
	if g.TotalPoints < 0 {
		return fmt.Errorf("%w: negative total points %d", ErrInvalidState, g.TotalPoints)
	}
	if g.StreakDays < 0 {
		return fmt.Errorf("%w: negative streak %d", ErrInvalidState, g.StreakDays)
	}
	if want := LevelForPoints(g.TotalPoints); g.CurrentLevel != want {
		return fmt.Errorf("%w: level %d does not match %d points (want %d)",
			ErrInvalidState, g.CurrentLevel, g.TotalPoints, want)
	}
	for i, a := range g.LevelAchievements {
		if i > 0 && a.Level <= g.LevelAchievements[i-1].Level {
			return fmt.Errorf("%w: level achievements not strictly ascending at index %d",
				ErrInvalidState, i)
		}
	}
	return nil
}
