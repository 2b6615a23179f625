package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/quench-app/quench/internal/domain"
)

// ─── Badge Catalog ──────────────────────────────────────────────────────────

// All returns every badge definition in stable catalog order.
func (d *DB) All() ([]domain.BadgeDefinition, error) {
	rows, err := d.db.Query(
		`SELECT id, name, description, badge_type, points_reward, requirement_kind, requirement_threshold
		 FROM badges ORDER BY position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	defer rows.Close()

	var defs []domain.BadgeDefinition
	for rows.Next() {
		def, err := scanBadge(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// Get returns one badge definition, or ErrBadgeNotFound.
func (d *DB) Get(id string) (*domain.BadgeDefinition, error) {
	row := d.db.QueryRow(
		`SELECT id, name, description, badge_type, points_reward, requirement_kind, requirement_threshold
		 FROM badges WHERE id = ?`, id,
	)
	def, err := scanBadge(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", domain.ErrBadgeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get badge: %w", err)
	}
	return &def, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBadge(row rowScanner) (domain.BadgeDefinition, error) {
	var def domain.BadgeDefinition
	var badgeType, reqKind string
	err := row.Scan(&def.ID, &def.Name, &def.Description, &badgeType,
		&def.PointsReward, &reqKind, &def.Requirement.Threshold)
	if err != nil {
		return def, err
	}
	def.Type = domain.BadgeType(badgeType)
	def.Requirement.Kind = domain.RequirementKind(reqKind)
	return def, nil
}

// ─── Awarded Badges ─────────────────────────────────────────────────────────

// ListIDs returns the ids of every badge the user has earned.
func (d *DB) ListIDs(userID string) ([]string, error) {
	rows, err := d.db.Query(
		`SELECT badge_id FROM awarded_badges WHERE user_id = ? ORDER BY earned_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list awarded badges: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListAwards returns the user's earned-badge facts.
func (d *DB) ListAwards(userID string) ([]domain.AwardedBadge, error) {
	rows, err := d.db.Query(
		`SELECT user_id, badge_id, earned_at FROM awarded_badges
		 WHERE user_id = ? ORDER BY earned_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	defer rows.Close()

	var awards []domain.AwardedBadge
	for rows.Next() {
		var a domain.AwardedBadge
		var earnedAt int64
		if err := rows.Scan(&a.UserID, &a.BadgeID, &earnedAt); err != nil {
			return nil, err
		}
		a.EarnedAt = time.Unix(earnedAt, 0).UTC()
		awards = append(awards, a)
	}
	return awards, rows.Err()
}

// Insert records an award. A duplicate (user, badge) pair fails with
// ErrDuplicateAward, never a silent success.
func (d *DB) Insert(userID, badgeID string, earnedAt time.Time) error {
	_, err := d.db.Exec(
		`INSERT INTO awarded_badges (user_id, badge_id, earned_at) VALUES (?, ?, ?)`,
		userID, badgeID, earnedAt.Unix(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: user=%s badge=%s", domain.ErrDuplicateAward, userID, badgeID)
	}
	if err != nil {
		return fmt.Errorf("insert award: %w", err)
	}
	return nil
}
