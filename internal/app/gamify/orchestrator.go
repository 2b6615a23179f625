package gamify

import (
	"fmt"
	"sync"
	"time"

	"github.com/quench-app/quench/internal/domain"
	"github.com/quench-app/quench/internal/infra/metrics"
)

// Orchestrator composes the scoring pieces into one atomic recompute,
// invoked whenever a new activity record lands.
//
// Recompute for a given user is serialized against itself: the operation
// reads-then-writes the whole aggregate and is not commutative across
// interleavings. Different users recompute independently.
type Orchestrator struct {
	activities domain.ActivityRepository
	states     domain.GamificationStateStore
	catalog    domain.BadgeCatalog
	awards     domain.AwardedBadgeStore

	now func() time.Time // injectable clock

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

// NewOrchestrator wires the engine against its stores.
func NewOrchestrator(
	activities domain.ActivityRepository,
	states domain.GamificationStateStore,
	catalog domain.BadgeCatalog,
	awards domain.AwardedBadgeStore,
) *Orchestrator {
	return &Orchestrator{
		activities: activities,
		states:     states,
		catalog:    catalog,
		awards:     awards,
		now:        time.Now,
		userLocks:  make(map[string]*sync.Mutex),
	}
}

// SetClock overrides the time source. Intended for tests.
func (o *Orchestrator) SetClock(now func() time.Time) { o.now = now }

// Result reports what one recompute changed.
type Result struct {
	State           *domain.GamificationState `json:"state"`
	Points          PointsBreakdown           `json:"points"`
	NewAchievements []domain.LevelAchievement `json:"new_achievements,omitempty"`
	NewBadges       []domain.BadgeDefinition  `json:"new_badges,omitempty"`
}

// Recompute derives the user's full gamification state from their activity
// history and persists it, then lets the badge engine award anything newly
// earned. Any step failing aborts the whole recompute; nothing is written
// piecemeal.
func (o *Orchestrator) Recompute(userID string) (*Result, error) {
	lock := o.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()
	res, err := o.recompute(userID)
	if err != nil {
		metrics.RecomputeFailures.Inc()
		return nil, err
	}
	metrics.Recomputes.Inc()
	metrics.RecomputeDuration.Observe(time.Since(start).Seconds())
	return res, nil
}

func (o *Orchestrator) recompute(userID string) (*Result, error) {
	now := o.now()

	history, err := o.activities.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load activity history: %w", err)
	}
	st, err := o.states.Load(userID)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	catalog, err := o.catalog.All()
	if err != nil {
		return nil, fmt.Errorf("load badge catalog: %w", err)
	}
	earnedIDs, err := o.awards.ListIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("load earned badges: %w", err)
	}
	earned := make(map[string]bool, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = true
	}

	// Badge rewards are part of the durable record: re-deriving the total
	// without them would erase every reward on the next recompute.
	rewardSum := 0
	for _, def := range catalog {
		if earned[def.ID] {
			rewardSum += def.PointsReward
		}
	}

	streak := CurrentStreak(history, now)
	points := ComputePoints(history, streak, now)
	total := points.Total() + rewardSum
	newLevel := domain.LevelForPoints(total)

	res := &Result{Points: points}
	prevLevel := st.CurrentLevel
	res.NewAchievements = applyLevelAchievements(st, newLevel, now)

	st.TotalPoints = total
	st.CurrentLevel = newLevel
	st.StreakDays = streak
	if len(history) > 0 {
		st.LastActionDate = history[len(history)-1].Day()
	}
	applyMilestoneFlags(st, history, streak, now)
	applyBadgeFlags(st, catalog, earned)

	if err := st.Validate(); err != nil {
		return nil, err
	}
	if err := o.states.Save(st); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}

	// Badge feedback loop: an award adds points, which can unlock further
	// badges. Iterate to a fixed point, hard-capped at catalog size so a
	// misconfigured catalog cannot loop forever.
	stats := collectStats(history, streak, now)
	for pass := 0; pass < len(catalog); pass++ {
		awarded, err := o.evaluateBadges(catalog, st, stats, earned, now)
		if len(awarded) > 0 {
			res.NewBadges = append(res.NewBadges, awarded...)
			for _, def := range awarded {
				metrics.BadgesAwarded.WithLabelValues(string(def.Type)).Inc()
			}
		}
		if err != nil {
			return nil, err
		}
		if len(awarded) == 0 {
			break
		}
		if err := st.Validate(); err != nil {
			return nil, err
		}
		if err := o.states.Save(st); err != nil {
			return nil, fmt.Errorf("save state after awards: %w", err)
		}
	}

	// Levels gained by badge rewards inside the evaluation loop count too,
	// so the delta is taken from the final level, not the pre-badge one.
	if st.CurrentLevel > prevLevel {
		metrics.LevelUps.Add(float64(st.CurrentLevel - prevLevel))
	}

	res.State = st
	return res, nil
}

// userLock returns the mutex serializing recomputes for one user.
func (o *Orchestrator) userLock(userID string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	if l, ok := o.userLocks[userID]; ok {
		return l
	}
	l := &sync.Mutex{}
	o.userLocks[userID] = l
	return l
}
