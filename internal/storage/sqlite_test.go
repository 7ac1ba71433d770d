package storage

import (
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestScoresRoundTrip(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("runner", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	// Different mode; must not leak into runner queries.
	store.SaveScore("zen", 500)

	scores, err := store.TopScores("runner", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("TopScores() returned %d entries, expected 3", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("scores not ordered descending: %v, %v, %v",
			scores[0].Score, scores[1].Score, scores[2].Score)
	}

	high, err := store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 200 {
		t.Errorf("HighScore() = %d, expected 200", high)
	}
}

func TestHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() on empty table = %d, expected 0", high)
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("runner", 10)
	store.SaveScore("zen", 20)

	if err := store.ClearScores("runner"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("runner", 10)
	if len(scores) != 0 {
		t.Errorf("runner scores not cleared: %d left", len(scores))
	}
	others, _ := store.TopScores("zen", 10)
	if len(others) != 1 {
		t.Error("clearing one mode must not touch another")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.GetSetting("accessibility"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v, expected absent without error", ok, err)
	}

	if err := store.PutSetting("accessibility", `{"enabled":true}`); err != nil {
		t.Fatalf("PutSetting() failed: %v", err)
	}

	value, ok, err := store.GetSetting("accessibility")
	if err != nil || !ok {
		t.Fatalf("GetSetting() failed: ok=%v err=%v", ok, err)
	}
	if value != `{"enabled":true}` {
		t.Errorf("GetSetting() = %q", value)
	}

	// Upsert replaces.
	store.PutSetting("accessibility", `{"enabled":false}`)
	value, _, _ = store.GetSetting("accessibility")
	if value != `{"enabled":false}` {
		t.Errorf("PutSetting() did not replace: %q", value)
	}

	if err := store.DeleteSetting("accessibility"); err != nil {
		t.Fatalf("DeleteSetting() failed: %v", err)
	}
	if _, ok, _ := store.GetSetting("accessibility"); ok {
		t.Error("setting still present after delete")
	}
	if err := store.DeleteSetting("accessibility"); err != nil {
		t.Errorf("deleting a missing key should not error: %v", err)
	}
}

func TestBenchRunsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	runs := []BenchRun{
		{Scenario: "pillar-field", Iterations: 100, Completed: 100, TotalNs: 5_000_000, PerOpNs: 50_000},
		{Scenario: "pillar-field", Iterations: 100, Completed: 40, TotalNs: 2_000_000, PerOpNs: 50_000, Partial: true},
		{Scenario: "glyph-fill", Iterations: 50, Completed: 50, TotalNs: 1_000_000, PerOpNs: 20_000},
	}
	for _, r := range runs {
		if _, err := store.SaveBenchRun(r); err != nil {
			t.Fatalf("SaveBenchRun() failed: %v", err)
		}
	}

	got, err := store.RecentBenchRuns("pillar-field", 10)
	if err != nil {
		t.Fatalf("RecentBenchRuns() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("RecentBenchRuns() returned %d, expected 2", len(got))
	}
	// Newest first.
	if !got[0].Partial || got[1].Partial {
		t.Errorf("runs not ordered newest first: %+v", got)
	}

	all, err := store.RecentBenchRuns("", 10)
	if err != nil {
		t.Fatalf("RecentBenchRuns(all) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all-scenario query returned %d, expected 3", len(all))
	}
}

func TestGetGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("runner", 10)
	store.SaveScore("runner", 30)

	stats, err := store.GetGameStats("runner")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.AvgScore != 20 || stats.TotalScore != 40 {
		t.Errorf("stats = %+v", stats)
	}
}
