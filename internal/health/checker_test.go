package health

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/quench-app/quench/internal/infra/sqlite"
)

func TestCheckerAllHealthy(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	c := NewChecker(db, dir)
	c.runAll(context.Background())

	if !c.IsHealthy() {
		t.Fatalf("expected healthy, statuses: %+v", c.Statuses())
	}
	statuses := c.Statuses()
	if len(statuses) != 2 {
		t.Fatalf("statuses = %d, want 2", len(statuses))
	}
	for _, s := range statuses {
		if !s.Healthy {
			t.Errorf("check %s unhealthy: %s", s.Name, s.Error)
		}
		if s.CheckedAt.IsZero() {
			t.Errorf("check %s has no timestamp", s.Name)
		}
	}
}

func TestCheckerClosedDatabase(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.Close()

	c := NewChecker(db, dir)
	c.runAll(context.Background())

	if c.IsHealthy() {
		t.Fatal("expected unhealthy after closing the database")
	}
}

func TestCheckerMissingDataDirIsFine(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	c := NewChecker(db, filepath.Join(dir, "does-not-exist-yet"))
	c.runAll(context.Background())

	if !c.IsHealthy() {
		t.Fatalf("missing data dir should not fail health, statuses: %+v", c.Statuses())
	}
}

func TestCheckerNoResultsYet(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	c := NewChecker(db, dir)
	// Before the first run, no check has failed.
	if !c.IsHealthy() {
		t.Fatal("checker with no results should report healthy")
	}
	if len(c.Statuses()) != 0 {
		t.Fatal("expected no statuses before first run")
	}
}
