package gamify

import "github.com/quench-app/quench/internal/domain"

// ─── Default Badge Catalog ──────────────────────────────────────────────────
// Deployment-time reference data, seeded into the store at startup. Order is
// significant: awards apply in this order within one evaluation pass, so
// point-threshold badges near the end can be unlocked by rewards granted
// higher up.

// DefaultCatalog returns the built-in badge definitions.
func DefaultCatalog() []domain.BadgeDefinition {
	return []domain.BadgeDefinition{
		{
			ID: "first-advice", Name: "First Step",
			Description: "Asked for advice for the first time",
			Type:        domain.BadgeMilestone, PointsReward: 20,
			Requirement: domain.Requirement{Kind: domain.ReqFirstConsultation, Threshold: 1},
		},
		{
			ID: "advice-10", Name: "Good Listener",
			Description: "Received advice on 10 logs",
			Type:        domain.BadgeAchievement, PointsReward: 50,
			Requirement: domain.Requirement{Kind: domain.ReqConsultationCount, Threshold: 10},
		},
		{
			ID: "advice-30", Name: "Counseled",
			Description: "Received advice on 30 logs",
			Type:        domain.BadgeAchievement, PointsReward: 100,
			Requirement: domain.Requirement{Kind: domain.ReqConsultationCount, Threshold: 30},
		},
		{
			ID: "streak-7", Name: "Week of Honesty",
			Description: "Logged 7 days in a row",
			Type:        domain.BadgeMilestone, PointsReward: 30,
			Requirement: domain.Requirement{Kind: domain.ReqConsecutiveDays, Threshold: 7},
		},
		{
			ID: "streak-30", Name: "Monthly Mirror",
			Description: "Logged 30 days in a row",
			Type:        domain.BadgeRare, PointsReward: 150,
			Requirement: domain.Requirement{Kind: domain.ReqConsecutiveDays, Threshold: 30},
		},
		{
			ID: "emotion-explorer", Name: "Emotion Explorer",
			Description: "Recorded detailed emotions on 5 logs",
			Type:        domain.BadgeAchievement, PointsReward: 40,
			Requirement: domain.Requirement{Kind: domain.ReqDetailedEmotionLogs, Threshold: 5},
		},
		{
			ID: "trigger-mapper", Name: "Trigger Mapper",
			Description: "Identified 5 distinct triggers",
			Type:        domain.BadgeAchievement, PointsReward: 40,
			Requirement: domain.Requirement{Kind: domain.ReqTriggerAnalysis, Threshold: 5},
		},
		{
			ID: "cooling-down", Name: "Cooling Down",
			Description: "Average anger dropped by 2 week over week",
			Type:        domain.BadgeSpecial, PointsReward: 80,
			Requirement: domain.Requirement{Kind: domain.ReqAngerImprovement, Threshold: 2},
		},
		{
			ID: "points-500", Name: "Calm Collector",
			Description: "Collected 500 calming points",
			Type:        domain.BadgeAchievement, PointsReward: 60,
			Requirement: domain.Requirement{Kind: domain.ReqCalmingPoints, Threshold: 500},
		},
		{
			ID: "level-5", Name: "Steady Hand",
			Description: "Reached level 5",
			Type:        domain.BadgeMilestone, PointsReward: 50,
			Requirement: domain.Requirement{Kind: domain.ReqLevelReached, Threshold: 5},
		},
		{
			ID: "level-10", Name: "Even Keel",
			Description: "Reached level 10",
			Type:        domain.BadgeRare, PointsReward: 120,
			Requirement: domain.Requirement{Kind: domain.ReqLevelReached, Threshold: 10},
		},
	}
}
