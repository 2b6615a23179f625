package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quench-app/quench/internal/app/gamify"
	"github.com/quench-app/quench/internal/app/journal"
	"github.com/quench-app/quench/internal/app/notify"
	"github.com/quench-app/quench/internal/domain"
	"github.com/quench-app/quench/internal/infra/sqlite"
)

var apiNow = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

// testServer wires the full stack over a temporary database. The badge
// catalog is left empty unless a test seeds one.
func testServer(t *testing.T) (*httptest.Server, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	engine := gamify.NewOrchestrator(db, db, db, db)
	engine.SetClock(func() time.Time { return apiNow })
	j := journal.NewService(db, engine)
	j.SetClock(func() time.Time { return apiNow })
	n := notify.NewService(db)

	srv := NewServer(j, engine, n, db)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, db
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestCreateActivity(t *testing.T) {
	ts, _ := testServer(t)

	resp := postJSON(t, ts.URL+"/api/users/alice/activities", map[string]any{
		"intensity":  6,
		"has_advice": true,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var res gamify.Result
	decode(t, resp, &res)
	// One advice-bearing log: 5 base + 10 advice + 20 first-advice milestone.
	if res.State.TotalPoints != 35 {
		t.Errorf("total points = %d, want 35", res.State.TotalPoints)
	}
	if res.State.StreakDays != 1 {
		t.Errorf("streak = %d, want 1", res.State.StreakDays)
	}
	if !res.State.MilestoneFlags[domain.FlagFirstLog] {
		t.Error("first_log_created flag not set")
	}
	if !res.State.MilestoneFlags[domain.FlagFirstAIAdvice] {
		t.Error("first_ai_consultation flag not set")
	}
}

func TestCreateActivityRejectsBadIntensity(t *testing.T) {
	ts, _ := testServer(t)

	resp := postJSON(t, ts.URL+"/api/users/alice/activities", map[string]any{
		"intensity": 11,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetStateUnknownUser(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/api/users/nobody/gamification")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetStateAfterLogging(t *testing.T) {
	ts, _ := testServer(t)

	for i := 0; i < 3; i++ {
		resp := postJSON(t, ts.URL+"/api/users/alice/activities", map[string]any{
			"intensity": 5,
		})
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/api/users/alice/gamification")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var st domain.GamificationState
	decode(t, resp, &st)
	if st.TotalPoints != 15 {
		t.Errorf("total points = %d, want 15", st.TotalPoints)
	}
}

func TestRecomputeEndpoint(t *testing.T) {
	ts, _ := testServer(t)

	resp := postJSON(t, ts.URL+"/api/users/alice/activities", map[string]any{"intensity": 5})
	resp.Body.Close()

	resp, err := http.Post(ts.URL+"/api/users/alice/gamification/recompute", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var res gamify.Result
	decode(t, resp, &res)
	if res.State.TotalPoints != 5 {
		t.Errorf("total points = %d, want 5", res.State.TotalPoints)
	}
	if len(res.NewBadges) != 0 || len(res.NewAchievements) != 0 {
		t.Errorf("recompute without new activity awarded: %+v", res)
	}
}

func TestListBadges(t *testing.T) {
	ts, db := testServer(t)
	if err := db.SeedBadges(gamify.DefaultCatalog()); err != nil {
		t.Fatal(err)
	}

	// Earn the first-advice badge.
	resp := postJSON(t, ts.URL+"/api/users/alice/activities", map[string]any{
		"intensity":  5,
		"has_advice": true,
	})
	resp.Body.Close()

	resp, err := http.Get(ts.URL + "/api/users/alice/badges")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Badges []struct {
			ID     string `json:"id"`
			Earned bool   `json:"earned"`
		} `json:"badges"`
		Earned int `json:"earned"`
		Total  int `json:"total"`
	}
	decode(t, resp, &body)

	if body.Total != len(gamify.DefaultCatalog()) {
		t.Errorf("total = %d, want full catalog", body.Total)
	}
	if body.Earned != 1 {
		t.Errorf("earned = %d, want 1", body.Earned)
	}
	found := false
	for _, b := range body.Badges {
		if b.ID == "first-advice" && b.Earned {
			found = true
		}
	}
	if !found {
		t.Error("first-advice not marked earned in listing")
	}
}

func TestNotificationsFlow(t *testing.T) {
	ts, db := testServer(t)
	if err := db.SeedBadges(gamify.DefaultCatalog()); err != nil {
		t.Fatal(err)
	}

	resp := postJSON(t, ts.URL+"/api/users/alice/activities", map[string]any{
		"intensity":  5,
		"has_advice": true,
	})
	resp.Body.Close()

	resp, err := http.Get(ts.URL + "/api/users/alice/notifications")
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		Notifications []sqlite.NotificationRecord `json:"notifications"`
	}
	decode(t, resp, &body)
	if len(body.Notifications) == 0 {
		t.Fatal("badge award produced no notification")
	}

	url := fmt.Sprintf("%s/api/users/alice/notifications/%d/shown", ts.URL, body.Notifications[0].ID)
	resp, err = http.Post(url, "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("mark shown status = %d, want 200", resp.StatusCode)
	}
}

func TestHealthWithoutChecker(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
