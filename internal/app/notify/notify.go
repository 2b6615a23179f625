// Package notify keeps a lightweight append-only notification log for
// level-ups and badge awards. Read-only surface: no push, no scheduler.
package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/quench-app/quench/internal/app/gamify"
	"github.com/quench-app/quench/internal/infra/sqlite"
)

// Notification types.
const (
	TypeLevelUp = "level_up"
	TypeBadge   = "badge"
)

// Service records and lists user notifications.
type Service struct {
	db  *sqlite.DB
	now func() time.Time
}

// NewService creates a notification service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// RecordResult turns a recompute result into notification log entries.
// Failures here are logged, not propagated: notifications are best-effort
// and must never abort the recompute path.
func (s *Service) RecordResult(userID string, res *gamify.Result) {
	if res == nil {
		return
	}
	now := s.now()
	for _, a := range res.NewAchievements {
		title := fmt.Sprintf("Level %d reached", a.Level)
		body := fmt.Sprintf("You are now a %s-tier journaler.", a.MilestoneType)
		if err := s.db.InsertNotification(userID, TypeLevelUp, title, body, now); err != nil {
			log.Printf("[notify] record level-up: %v", err)
		}
	}
	for _, b := range res.NewBadges {
		title := fmt.Sprintf("Badge earned: %s", b.Name)
		body := fmt.Sprintf("%s (+%d points)", b.Description, b.PointsReward)
		if err := s.db.InsertNotification(userID, TypeBadge, title, body, now); err != nil {
			log.Printf("[notify] record badge: %v", err)
		}
	}
}

// Recent returns the newest notifications for a user.
func (s *Service) Recent(userID string, limit int) ([]sqlite.NotificationRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.db.ListNotifications(userID, limit)
}

// MarkShown marks one notification as seen.
func (s *Service) MarkShown(id int64) error {
	return s.db.MarkNotificationShown(id)
}
