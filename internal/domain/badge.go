package domain

import "time"

// ─── Badge Types ────────────────────────────────────────────────────────────

// BadgeType is the rarity/category of a badge.
type BadgeType string

const (
	BadgeMilestone   BadgeType = "milestone"
	BadgeAchievement BadgeType = "achievement"
	BadgeSpecial     BadgeType = "special"
	BadgeRare        BadgeType = "rare"
)

// RequirementKind selects the eligibility predicate for a badge.
// The badge engine dispatches over this enum with an exhaustive switch;
// kinds it does not recognize are always ineligible (fail-closed), which
// keeps the catalog forward-compatible with newer definitions.
type RequirementKind string

const (
	ReqFirstConsultation   RequirementKind = "first_consultation"    // advice-bearing records ≥ threshold
	ReqConsultationCount   RequirementKind = "consultation_count"    // advice-bearing records ≥ threshold
	ReqConsecutiveDays     RequirementKind = "consecutive_days"      // current streak ≥ threshold
	ReqDetailedEmotionLogs RequirementKind = "detailed_emotion_logs" // records with emotion detail ≥ threshold
	ReqAngerImprovement    RequirementKind = "anger_improvement"     // week-over-week mean drop ≥ threshold
	ReqTriggerAnalysis     RequirementKind = "trigger_analysis"      // distinct triggers ≥ threshold
	ReqCalmingPoints       RequirementKind = "calming_points"        // total points ≥ threshold
	ReqLevelReached        RequirementKind = "level_reached"         // current level ≥ threshold
)

// Requirement is a threshold the user's snapshot is checked against.
type Requirement struct {
	Kind      RequirementKind `json:"kind"`
	Threshold float64         `json:"threshold"`
}

// BadgeDefinition is immutable catalog reference data, loaded at deployment
// time and rarely changed. Catalog order is stable: awards within one
// evaluation pass apply in this order, so later badges see the points
// earlier ones granted.
type BadgeDefinition struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"` // unique
	Description  string      `json:"description,omitempty"`
	Type         BadgeType   `json:"badge_type"`
	PointsReward int         `json:"points_reward"` // 1–999
	Requirement  Requirement `json:"requirement"`
}

// AwardedBadge is the join fact for an earned badge. Unique per
// (userID, badgeID); awarding is a monotonic, non-revocable event.
type AwardedBadge struct {
	UserID   string    `json:"user_id"`
	BadgeID  string    `json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`
}
