package domain

import "time"

// Store boundaries the engine depends on. The sqlite package provides the
// real implementations; tests may substitute their own.

// ActivityRepository exposes a user's chronological activity records.
type ActivityRepository interface {
	// ListForUser returns all records for a user ordered by occurrence time.
	ListForUser(userID string) ([]ActivityRecord, error)
}

// GamificationStateStore persists the per-user aggregate with atomic
// read-modify-write semantics per user.
type GamificationStateStore interface {
	// Load returns the user's state, or ErrStateNotFound.
	Load(userID string) (*GamificationState, error)
	// Ensure creates the zero-value state if none exists and returns it.
	Ensure(userID string) (*GamificationState, error)
	// Save writes the full state in a single transaction.
	Save(state *GamificationState) error
}

// BadgeCatalog exposes the deployment-time badge definitions.
type BadgeCatalog interface {
	// All returns every definition in stable catalog order.
	All() ([]BadgeDefinition, error)
	// Get returns one definition by id, or ErrBadgeNotFound.
	Get(id string) (*BadgeDefinition, error)
}

// AwardedBadgeStore persists earned-badge facts.
type AwardedBadgeStore interface {
	// ListIDs returns the ids of every badge the user has earned.
	ListIDs(userID string) ([]string, error)
	// Insert records an award. Fails with ErrDuplicateAward on a duplicate
	// (userID, badgeID) pair, never a silent success.
	Insert(userID, badgeID string, earnedAt time.Time) error
}
