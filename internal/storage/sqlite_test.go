package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("platformer", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.SaveScore("other", 500)

	scores, err := store.TopScores("platformer", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	top, _ := store.TopScores("platformer", 2)
	if len(top) != 2 {
		t.Errorf("Expected 2 scores with limit, got %d", len(top))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("platformer")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("platformer", 100)
	store.SaveScore("platformer", 300)
	store.SaveScore("platformer", 200)

	high, err = store.HighScore("platformer")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("platformer", 100)
	store.SaveScore("other", 300)

	if err := store.ClearScores("platformer"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("platformer", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Error("Other game's scores should not be affected")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("platformer")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore("platformer", 10)
	store.SaveScore("platformer", 30)

	stats, err := store.GetGameStats("platformer")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.AvgScore != 20 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestStoreSessions(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)

	sessions := []Session{
		{Phase: "focus", PlannedSecs: 1500, Completed: true, CreatedAt: yesterday},
		{Phase: "short break", PlannedSecs: 300, Completed: true, CreatedAt: yesterday.Add(time.Hour)},
		{Phase: "focus", PlannedSecs: 1500, Completed: true, CreatedAt: now.Add(-2 * time.Hour)},
		{Phase: "focus", PlannedSecs: 1500, Completed: false, CreatedAt: now.Add(-time.Hour)},
		{Phase: "focus", PlannedSecs: 3000, Completed: true, CreatedAt: now},
	}
	for _, sess := range sessions {
		if _, err := store.SaveSession(sess); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	recent, err := store.RecentSessions(3)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(recent))
	}
	if recent[0].PlannedSecs != 3000 || recent[1].Completed {
		t.Errorf("sessions not newest first: %+v", recent)
	}
	if !recent[0].CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", recent[0].CreatedAt, now)
	}

	stats, err := store.FocusStats(StartOfDay(now))
	if err != nil {
		t.Fatalf("FocusStats() failed: %v", err)
	}
	want := FocusStats{Completed: 3, Skipped: 1, TotalMinutes: 100, Today: 2}
	if stats != want {
		t.Errorf("FocusStats() = %+v, want %+v", stats, want)
	}
}

func TestStoreSessionDefaultTimestamp(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveSession(Session{Phase: "focus", PlannedSecs: 60, Completed: true}); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	recent, err := store.RecentSessions(0)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 1 || recent[0].CreatedAt.IsZero() {
		t.Errorf("recent = %+v", recent)
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("test", 3*3600)
	got := StartOfDay(time.Date(2026, 5, 1, 23, 59, 0, 0, loc))
	if !got.Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("StartOfDay() = %v", got)
	}
}
