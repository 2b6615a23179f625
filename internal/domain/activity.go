// Package domain holds the core types of the Quench gamification engine.
// Domain types are pure, with no infrastructure dependency.
package domain

import (
	"fmt"
	"time"
)

// Intensity bounds for a logged event (1 = mild irritation, 10 = boiling).
const (
	MinIntensity = 1
	MaxIntensity = 10
)

// ActivityRecord is one logged emotional event. Records are immutable facts:
// created by the journal, never mutated, read-only input to the engine.
type ActivityRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Intensity  int       `json:"intensity"` // 1–10
	HasAdvice  bool      `json:"has_advice"`
	Emotions   []string  `json:"emotions,omitempty"` // structured emotion labels
	Trigger    string    `json:"trigger,omitempty"`  // what set it off
}

// Validate checks record fields before persistence.
func (a ActivityRecord) Validate() error {
	if a.UserID == "" {
		return fmt.Errorf("%w: activity user id is empty", ErrInvalidState)
	}
	if a.OccurredAt.IsZero() {
		return fmt.Errorf("%w: activity timestamp is zero", ErrInvalidState)
	}
	if a.Intensity < MinIntensity || a.Intensity > MaxIntensity {
		return fmt.Errorf("%w: intensity %d out of range [%d,%d]",
			ErrInvalidState, a.Intensity, MinIntensity, MaxIntensity)
	}
	return nil
}

// HasEmotionDetail reports whether the record carries structured emotion data.
func (a ActivityRecord) HasEmotionDetail() bool {
	for _, e := range a.Emotions {
		if e != "" {
			return true
		}
	}
	return false
}

// Day returns the calendar date of the record (UTC midnight).
func (a ActivityRecord) Day() time.Time {
	return DateOf(a.OccurredAt)
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
