package cli

import (
	"fmt"

	"github.com/quench-app/quench/internal/app/gamify"
	"github.com/quench-app/quench/internal/app/journal"
	"github.com/quench-app/quench/internal/app/notify"
	"github.com/quench-app/quench/internal/daemon"
	"github.com/quench-app/quench/internal/infra/sqlite"
)

// services bundles the locally-wired app services for CLI commands that talk
// to the database directly instead of going through the HTTP API.
type services struct {
	cfg     daemon.Config
	db      *sqlite.DB
	engine  *gamify.Orchestrator
	journal *journal.Service
	notify  *notify.Service
}

// openServices loads config, opens the store, and wires the engine.
// Callers must Close().
func openServices() (*services, error) {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return nil, err
	}

	dir := cfg.Storage.Dir
	if dir == "" {
		dir = daemon.QuenchHome()
	}
	db, err := sqlite.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.SeedBadges(gamify.DefaultCatalog()); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed badge catalog: %w", err)
	}

	engine := gamify.NewOrchestrator(db, db, db, db)
	return &services{
		cfg:     cfg,
		db:      db,
		engine:  engine,
		journal: journal.NewService(db, engine),
		notify:  notify.NewService(db),
	}, nil
}

func (s *services) Close() error {
	return s.db.Close()
}

// user returns the profile user the CLI operates on.
func (s *services) user() string {
	if s.cfg.Profile.User != "" {
		return s.cfg.Profile.User
	}
	return "local"
}
