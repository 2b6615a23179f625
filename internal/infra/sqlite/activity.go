package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/quench-app/quench/internal/domain"
)

// ─── Activity Repository ────────────────────────────────────────────────────
// Emotion labels are stored as a comma-joined string; labels themselves are
// plain words, so no escaping is needed.

// InsertActivity stores one immutable activity record.
func (d *DB) InsertActivity(rec domain.ActivityRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO activities (id, user_id, occurred_at, intensity, has_advice, emotions, trigger_label)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.OccurredAt.Unix(), rec.Intensity,
		rec.HasAdvice, strings.Join(rec.Emotions, ","), rec.Trigger,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListForUser returns all of a user's records ordered by occurrence time.
func (d *DB) ListForUser(userID string) ([]domain.ActivityRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, occurred_at, intensity, has_advice, emotions, trigger_label
		 FROM activities WHERE user_id = ? ORDER BY occurred_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var records []domain.ActivityRecord
	for rows.Next() {
		var rec domain.ActivityRecord
		var occurredAt int64
		var emotions string
		if err := rows.Scan(&rec.ID, &rec.UserID, &occurredAt, &rec.Intensity,
			&rec.HasAdvice, &emotions, &rec.Trigger); err != nil {
			return nil, err
		}
		rec.OccurredAt = time.Unix(occurredAt, 0).UTC()
		if emotions != "" {
			rec.Emotions = strings.Split(emotions, ",")
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountForUser returns the number of records a user has logged.
func (d *DB) CountForUser(userID string) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM activities WHERE user_id = ?`, userID,
	).Scan(&count)
	return count, err
}
