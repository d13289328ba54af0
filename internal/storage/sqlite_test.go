package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}

	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}

func TestSaveAndRetrieveScores(t *testing.T) {
	store := openTemp(t)

	runs := []ScoreEntry{
		{LevelID: "keep", Score: 100, Ticks: 900, Outcome: "gameover"},
		{LevelID: "keep", Score: 250, Ticks: 2400, Outcome: "cleared", ReplayID: 7},
		{LevelID: "keep", Score: 50, Ticks: 300, Outcome: "gameover"},
		{LevelID: "citadel", Score: 999, Ticks: 5000, Outcome: "cleared"},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r); err != nil {
			t.Fatalf("SaveScore(%+v) failed: %v", r, err)
		}
	}

	scores, err := store.TopScores("keep", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}

	expected := []int{250, 100, 50}
	for i, s := range scores {
		if s.Score != expected[i] {
			t.Errorf("score[%d] = %d, expected %d", i, s.Score, expected[i])
		}
		if s.LevelID != "keep" {
			t.Errorf("score[%d].LevelID = %s, expected keep", i, s.LevelID)
		}
	}

	top := scores[0]
	if top.Ticks != 2400 || top.Outcome != "cleared" || top.ReplayID != 7 {
		t.Errorf("top entry lost columns: %+v", top)
	}
	if scores[1].ReplayID != 0 {
		t.Errorf("entry without replay should report 0, got %d", scores[1].ReplayID)
	}
}

func TestTopScoresLimit(t *testing.T) {
	store := openTemp(t)

	for i := range 20 {
		if _, err := store.SaveScore(ScoreEntry{LevelID: "keep", Score: i * 10}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	tests := []struct {
		limit int
		want  int
	}{
		{5, 5},
		{0, 10},
		{-1, 10},
		{50, 20},
	}
	for _, tc := range tests {
		scores, err := store.TopScores("keep", tc.limit)
		if err != nil {
			t.Fatalf("TopScores(%d) failed: %v", tc.limit, err)
		}
		if len(scores) != tc.want {
			t.Errorf("TopScores(%d) returned %d, expected %d", tc.limit, len(scores), tc.want)
		}
	}

	scores, _ := store.TopScores("keep", 1)
	if scores[0].Score != 190 {
		t.Errorf("top score = %d, expected 190", scores[0].Score)
	}
}

func TestHighScore(t *testing.T) {
	store := openTemp(t)

	high, err := store.HighScore("keep")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("expected 0 for empty level, got %d", high)
	}

	for _, s := range []int{100, 500, 200} {
		store.SaveScore(ScoreEntry{LevelID: "keep", Score: s})
	}

	high, err = store.HighScore("keep")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 500 {
		t.Errorf("expected 500, got %d", high)
	}
}

func TestClearScores(t *testing.T) {
	store := openTemp(t)

	store.SaveScore(ScoreEntry{LevelID: "keep", Score: 100})
	store.SaveScore(ScoreEntry{LevelID: "citadel", Score: 200})

	if err := store.ClearScores("keep"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.AllScores("keep")
	if len(scores) != 0 {
		t.Errorf("expected 0 scores after clear, got %d", len(scores))
	}

	scores, _ = store.AllScores("citadel")
	if len(scores) != 1 {
		t.Errorf("expected citadel scores to survive, got %d", len(scores))
	}
}

func TestAllScores(t *testing.T) {
	store := openTemp(t)

	for i := range 25 {
		store.SaveScore(ScoreEntry{LevelID: "keep", Score: i})
	}

	scores, err := store.AllScores("keep")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 25 {
		t.Errorf("expected 25 scores, got %d", len(scores))
	}
}

func TestLevelStats(t *testing.T) {
	store := openTemp(t)

	store.SaveScore(ScoreEntry{LevelID: "keep", Score: 100, Outcome: "gameover"})
	store.SaveScore(ScoreEntry{LevelID: "keep", Score: 300, Outcome: "cleared"})
	store.SaveScore(ScoreEntry{LevelID: "motte", Score: 40, Outcome: "gameover"})

	stats, err := store.GetLevelStats("keep")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.RunsCount != 2 || stats.Clears != 1 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("unexpected stats %+v", stats)
	}

	empty, err := store.GetLevelStats("ruins")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if empty.RunsCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unplayed level should have zero stats, got %+v", empty)
	}

	all, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}
	if len(all) != 2 || all["motte"] == nil || all["motte"].HighScore != 40 {
		t.Errorf("unexpected all-level stats %+v", all)
	}
}

func TestSaveAndLoadReplay(t *testing.T) {
	store := openTemp(t)

	data := []byte{0x85, 0x01, 0x02, 0x03}
	id, err := store.SaveReplay(ReplayRecord{LevelID: "citadel", Score: 120, Ticks: 4000, Data: data})
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected a positive ID, got %d", id)
	}

	got, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if got.LevelID != "citadel" || got.Score != 120 || got.Ticks != 4000 {
		t.Errorf("unexpected record %+v", got)
	}
	if string(got.Data) != string(data) {
		t.Errorf("data = %x, expected %x", got.Data, data)
	}
}

func TestReplayErrors(t *testing.T) {
	store := openTemp(t)

	if _, err := store.SaveReplay(ReplayRecord{LevelID: "keep"}); err == nil {
		t.Error("saving a replay without data should fail")
	}

	_, err := store.Replay(42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecentReplays(t *testing.T) {
	store := openTemp(t)

	for i, lvl := range []string{"keep", "citadel", "keep", "motte"} {
		if _, err := store.SaveReplay(ReplayRecord{LevelID: lvl, Score: i, Data: []byte{byte(i + 1)}}); err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}

	all, err := store.RecentReplays("", 0)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(all) != 4 || all[0].LevelID != "motte" {
		t.Errorf("expected newest first over all levels, got %+v", all)
	}
	if all[0].Data != nil {
		t.Error("listing should not load replay data")
	}

	keep, err := store.RecentReplays("keep", 1)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(keep) != 1 || keep[0].Score != 2 {
		t.Errorf("expected the latest keep replay, got %+v", keep)
	}
}

func TestExpandHomePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot get home directory")
	}

	testDir := filepath.Join(home, ".comet-test-"+t.Name())
	defer os.RemoveAll(testDir)

	store, err := Open("~/.comet-test-" + t.Name() + "/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	store.Close()

	if _, err := os.Stat(filepath.Join(testDir, "test.db")); os.IsNotExist(err) {
		t.Error("database was not created at expanded path")
	}
}
