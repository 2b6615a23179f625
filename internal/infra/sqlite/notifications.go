package sqlite

import (
	"fmt"
	"time"
)

// ─── Notification Log ───────────────────────────────────────────────────────

// NotificationRecord is one row of the user-facing notification log.
type NotificationRecord struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Shown     bool      `json:"shown"`
}

// InsertNotification appends a notification to the log.
func (d *DB) InsertNotification(userID, ntype, title, body string, at time.Time) error {
	_, err := d.db.Exec(
		`INSERT INTO notifications (user_id, type, title, body, created_at, shown)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		userID, ntype, title, body, at.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListNotifications returns the newest notifications for a user, up to limit.
func (d *DB) ListNotifications(userID string, limit int) ([]NotificationRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, type, title, body, created_at, shown
		 FROM notifications WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []NotificationRecord
	for rows.Next() {
		var n NotificationRecord
		var createdAt int64
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &createdAt, &n.Shown); err != nil {
			return nil, err
		}
		n.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkNotificationShown marks one notification as seen.
func (d *DB) MarkNotificationShown(id int64) error {
	_, err := d.db.Exec(`UPDATE notifications SET shown = 1 WHERE id = ?`, id)
	return err
}
