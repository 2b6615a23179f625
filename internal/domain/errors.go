package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure, with no infrastructure dependency.

var (
	// ErrInvalidState marks malformed or out-of-range state (negative points,
	// bad intensity). Rejected before persistence, never silently clamped.
	ErrInvalidState = errors.New("invalid gamification state")

	// ErrStateNotFound means no gamification state exists for the user.
	ErrStateNotFound = errors.New("gamification state not found")

	// ErrBadgeNotFound means a badge id is not in the catalog.
	ErrBadgeNotFound = errors.New("badge not found")

	// ErrActivityNotFound means an activity record id does not exist.
	ErrActivityNotFound = errors.New("activity record not found")

	// ErrDuplicateAward means the (user, badge) pair is already awarded.
	// Callers treat this as benign: the badge being already earned is the
	// desired end state, so a duplicate-award race is swallowed.
	ErrDuplicateAward = errors.New("badge already awarded")
)
