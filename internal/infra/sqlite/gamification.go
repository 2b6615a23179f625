package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/quench-app/quench/internal/domain"
)

// ─── Gamification State Store ───────────────────────────────────────────────

// Load returns the user's full gamification state, or ErrStateNotFound.
func (d *DB) Load(userID string) (*domain.GamificationState, error) {
	st := domain.NewGamificationState(userID)

	var lastAction sql.NullInt64
	err := d.db.QueryRow(
		`SELECT total_points, current_level, streak_days, last_action_date
		 FROM gamification_state WHERE user_id = ?`, userID,
	).Scan(&st.TotalPoints, &st.CurrentLevel, &st.StreakDays, &lastAction)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", domain.ErrStateNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if lastAction.Valid {
		st.LastActionDate = time.Unix(lastAction.Int64, 0).UTC()
	}

	if err := d.loadFlags(st); err != nil {
		return nil, err
	}
	if err := d.loadAchievements(st); err != nil {
		return nil, err
	}
	return st, nil
}

// Ensure creates the zero-value state row if none exists and returns the
// state. Idempotent.
func (d *DB) Ensure(userID string) (*domain.GamificationState, error) {
	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO gamification_state
		 (user_id, total_points, current_level, streak_days, last_action_date, updated_at)
		 VALUES (?, 0, 1, 0, NULL, ?)`,
		userID, time.Now().Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("ensure state: %w", err)
	}
	return d.Load(userID)
}

// Save writes the full state in one transaction. Flags and achievements are
// inserted with OR IGNORE: both are monotonic, the store never removes them.
// Invalid state is rejected before any write.
func (d *DB) Save(st *domain.GamificationState) error {
	if err := st.Validate(); err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	var lastAction any
	if !st.LastActionDate.IsZero() {
		lastAction = st.LastActionDate.Unix()
	}
	_, err = tx.Exec(
		`INSERT INTO gamification_state
		 (user_id, total_points, current_level, streak_days, last_action_date, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			total_points=excluded.total_points,
			current_level=excluded.current_level,
			streak_days=excluded.streak_days,
			last_action_date=excluded.last_action_date,
			updated_at=excluded.updated_at`,
		st.UserID, st.TotalPoints, st.CurrentLevel, st.StreakDays,
		lastAction, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save state row: %w", err)
	}

	now := time.Now().Unix()
	for flag, set := range st.MilestoneFlags {
		if !set {
			continue
		}
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO milestone_flags (user_id, flag, set_at) VALUES (?, ?, ?)`,
			st.UserID, flag, now,
		); err != nil {
			return fmt.Errorf("save flag %s: %w", flag, err)
		}
	}

	for _, a := range st.LevelAchievements {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO level_achievements
			 (user_id, level, achieved_at, points_required, milestone_type)
			 VALUES (?, ?, ?, ?, ?)`,
			st.UserID, a.Level, a.AchievedAt.Unix(), a.PointsRequired, string(a.MilestoneType),
		); err != nil {
			return fmt.Errorf("save achievement level %d: %w", a.Level, err)
		}
	}

	return tx.Commit()
}

func (d *DB) loadFlags(st *domain.GamificationState) error {
	rows, err := d.db.Query(
		`SELECT flag FROM milestone_flags WHERE user_id = ?`, st.UserID,
	)
	if err != nil {
		return fmt.Errorf("load flags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var flag string
		if err := rows.Scan(&flag); err != nil {
			return err
		}
		st.MilestoneFlags[flag] = true
	}
	return rows.Err()
}

func (d *DB) loadAchievements(st *domain.GamificationState) error {
	rows, err := d.db.Query(
		`SELECT level, achieved_at, points_required, milestone_type
		 FROM level_achievements WHERE user_id = ? ORDER BY level ASC`, st.UserID,
	)
	if err != nil {
		return fmt.Errorf("load achievements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.LevelAchievement
		var achievedAt int64
		var mt string
		if err := rows.Scan(&a.Level, &achievedAt, &a.PointsRequired, &mt); err != nil {
			return err
		}
		a.AchievedAt = time.Unix(achievedAt, 0).UTC()
		a.MilestoneType = domain.MilestoneType(mt)
		st.LevelAchievements = append(st.LevelAchievements, a)
	}
	return rows.Err()
}
