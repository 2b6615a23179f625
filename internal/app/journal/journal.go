// Package journal creates activity records and fires the gamification
// recompute that follows every new entry.
package journal

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quench-app/quench/internal/app/gamify"
	"github.com/quench-app/quench/internal/domain"
	"github.com/quench-app/quench/internal/infra/metrics"
	"github.com/quench-app/quench/internal/infra/sqlite"
)

// Service is the journaling entry point.
type Service struct {
	db     *sqlite.DB
	engine *gamify.Orchestrator
	now    func() time.Time
}

// NewService creates a journal service.
func NewService(db *sqlite.DB, engine *gamify.Orchestrator) *Service {
	return &Service{db: db, engine: engine, now: time.Now}
}

// SetClock overrides the time source. Intended for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Entry is the input for one journal log.
type Entry struct {
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at,omitempty"` // defaults to now
	Intensity  int       `json:"intensity"`
	HasAdvice  bool      `json:"has_advice"`
	Emotions   []string  `json:"emotions,omitempty"`
	Trigger    string    `json:"trigger,omitempty"`
}

// Log validates and persists one activity record, then recomputes the
// user's gamification state. The record is durably written before the
// recompute fires; a recompute failure leaves the record in place and is
// repaired by the next recompute.
func (s *Service) Log(e Entry) (*gamify.Result, error) {
	rec := domain.ActivityRecord{
		ID:         uuid.NewString(),
		UserID:     e.UserID,
		OccurredAt: e.OccurredAt,
		Intensity:  e.Intensity,
		HasAdvice:  e.HasAdvice,
		Emotions:   e.Emotions,
		Trigger:    e.Trigger,
	}
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = s.now()
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.db.Ensure(e.UserID); err != nil {
		return nil, err
	}
	if err := s.db.InsertActivity(rec); err != nil {
		return nil, fmt.Errorf("persist activity: %w", err)
	}
	metrics.ActivityLogged.Inc()

	return s.engine.Recompute(e.UserID)
}

// History returns the user's full activity history, oldest first.
func (s *Service) History(userID string) ([]domain.ActivityRecord, error) {
	return s.db.ListForUser(userID)
}
