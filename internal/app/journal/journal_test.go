package journal_test

import (
	"errors"
	"testing"
	"time"

	"github.com/quench-app/quench/internal/app/gamify"
	"github.com/quench-app/quench/internal/app/journal"
	"github.com/quench-app/quench/internal/domain"
	"github.com/quench-app/quench/internal/infra/sqlite"
)

var journalNow = time.Date(2025, 7, 15, 18, 0, 0, 0, time.UTC)

func testService(t *testing.T) (*journal.Service, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	engine := gamify.NewOrchestrator(db, db, db, db)
	engine.SetClock(func() time.Time { return journalNow })
	svc := journal.NewService(db, engine)
	svc.SetClock(func() time.Time { return journalNow })
	return svc, db
}

func TestLogCreatesRecordAndRecomputes(t *testing.T) {
	svc, db := testService(t)

	res, err := svc.Log(journal.Entry{
		UserID:    "alice",
		Intensity: 7,
		Trigger:   "traffic",
		Emotions:  []string{"frustrated"},
	})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if res.State.TotalPoints != 5 {
		t.Errorf("points = %d, want 5", res.State.TotalPoints)
	}

	history, err := svc.History("alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("history = %d records, want 1", len(history))
	}
	rec := history[0]
	if rec.ID == "" {
		t.Error("record id not generated")
	}
	if !rec.OccurredAt.Equal(journalNow) {
		t.Errorf("occurred_at = %v, want clock default %v", rec.OccurredAt, journalNow)
	}
	if rec.Trigger != "traffic" || len(rec.Emotions) != 1 {
		t.Errorf("detail fields lost: %+v", rec)
	}

	// The state row exists without a prior Ensure call.
	if _, err := db.Load("alice"); err != nil {
		t.Errorf("state not created by Log: %v", err)
	}
}

func TestLogHonorsExplicitTimestamp(t *testing.T) {
	svc, _ := testService(t)

	past := journalNow.AddDate(0, 0, -3)
	if _, err := svc.Log(journal.Entry{
		UserID:     "alice",
		OccurredAt: past,
		Intensity:  4,
	}); err != nil {
		t.Fatalf("log: %v", err)
	}

	history, err := svc.History("alice")
	if err != nil {
		t.Fatal(err)
	}
	if !history[0].OccurredAt.Equal(past) {
		t.Errorf("occurred_at = %v, want %v", history[0].OccurredAt, past)
	}
}

func TestLogRejectsInvalidEntry(t *testing.T) {
	svc, db := testService(t)

	cases := []journal.Entry{
		{UserID: "alice", Intensity: 0},
		{UserID: "alice", Intensity: 11},
		{UserID: "", Intensity: 5},
	}
	for _, e := range cases {
		if _, err := svc.Log(e); !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("entry %+v: got %v, want ErrInvalidState", e, err)
		}
	}

	if n, _ := db.CountForUser("alice"); n != 0 {
		t.Errorf("invalid entries persisted: count = %d", n)
	}
}

func TestConsecutiveDaysBuildStreak(t *testing.T) {
	svc, _ := testService(t)

	var last *gamify.Result
	for i := 2; i >= 0; i-- {
		res, err := svc.Log(journal.Entry{
			UserID:     "alice",
			OccurredAt: journalNow.AddDate(0, 0, -i),
			Intensity:  5,
		})
		if err != nil {
			t.Fatalf("log day -%d: %v", i, err)
		}
		last = res
	}

	if last.State.StreakDays != 3 {
		t.Errorf("streak = %d, want 3", last.State.StreakDays)
	}
	if last.State.TotalPoints != 15 {
		t.Errorf("points = %d, want 15", last.State.TotalPoints)
	}
}
