// Package sqlite provides SQLite-based persistent storage for Quench.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/quench-app/quench/internal/domain"
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/quench.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "quench.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Journal: immutable activity facts
		`CREATE TABLE IF NOT EXISTS activities (
			id            TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL,
			occurred_at   INTEGER NOT NULL,
			intensity     INTEGER NOT NULL,
			has_advice    BOOLEAN NOT NULL DEFAULT 0,
			emotions      TEXT NOT NULL DEFAULT '',
			trigger_label TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_user ON activities(user_id, occurred_at)`,

		// Gamification aggregate (one row per user)
		`CREATE TABLE IF NOT EXISTS gamification_state (
			user_id          TEXT PRIMARY KEY,
			total_points     INTEGER NOT NULL DEFAULT 0,
			current_level    INTEGER NOT NULL DEFAULT 1,
			streak_days      INTEGER NOT NULL DEFAULT 0,
			last_action_date INTEGER,
			updated_at       INTEGER NOT NULL
		)`,

		// One-way milestone flags
		`CREATE TABLE IF NOT EXISTS milestone_flags (
			user_id TEXT NOT NULL,
			flag    TEXT NOT NULL,
			set_at  INTEGER NOT NULL,
			PRIMARY KEY (user_id, flag)
		)`,

		// Append-only level achievements
		`CREATE TABLE IF NOT EXISTS level_achievements (
			user_id         TEXT NOT NULL,
			level           INTEGER NOT NULL,
			achieved_at     INTEGER NOT NULL,
			points_required INTEGER NOT NULL,
			milestone_type  TEXT NOT NULL,
			PRIMARY KEY (user_id, level)
		)`,

		// Badge catalog (deployment-time reference data)
		`CREATE TABLE IF NOT EXISTS badges (
			id                    TEXT PRIMARY KEY,
			name                  TEXT NOT NULL UNIQUE,
			description           TEXT NOT NULL DEFAULT '',
			badge_type            TEXT NOT NULL,
			points_reward         INTEGER NOT NULL,
			requirement_kind      TEXT NOT NULL,
			requirement_threshold REAL NOT NULL,
			position              INTEGER NOT NULL
		)`,

		// Earned badges: one fact per (user, badge), never revoked
		`CREATE TABLE IF NOT EXISTS awarded_badges (
			user_id   TEXT NOT NULL,
			badge_id  TEXT NOT NULL,
			earned_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, badge_id)
		)`,

		// Notification log (level-ups and badge awards)
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    TEXT NOT NULL,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notif_user ON notifications(user_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// SeedBadges loads badge definitions into the catalog table. Existing rows
// win: the catalog is reference data, not user state.
func (d *DB) SeedBadges(defs []domain.BadgeDefinition) error {
	for i, def := range defs {
		_, err := d.db.Exec(
			`INSERT OR IGNORE INTO badges
			 (id, name, description, badge_type, points_reward, requirement_kind, requirement_threshold, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			def.ID, def.Name, def.Description, string(def.Type),
			def.PointsReward, string(def.Requirement.Kind), def.Requirement.Threshold, i,
		)
		if err != nil {
			return fmt.Errorf("seed badge %s: %w", def.ID, err)
		}
	}
	return nil
}

// isUniqueViolation detects a primary-key or unique-index conflict.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
