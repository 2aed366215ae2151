package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// openTestStore opens a fresh database in a temp dir.
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
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	// Reopening runs the migration again on an existing schema.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	store.Close()
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("gems", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("gems-endless", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("gems", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %v", scores)
	}
	if scores[0].GameID != "gems" {
		t.Errorf("GameID = %q", scores[0].GameID)
	}

	endless, err := store.TopScores("gems-endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endless))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore("gems", (i+1)*100)
	}

	scores, err := store.TopScores("gems", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10.
	scores, err = store.TopScores("gems", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("gems")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("gems", 100)
	store.SaveScore("gems", 300)
	store.SaveScore("gems", 200)

	high, err = store.HighScore("gems")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("gems", 100)
	store.SaveScore("gems", 200)
	store.SaveScore("gems-endless", 300)

	if err := store.ClearScores("gems"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("gems", 10); len(scores) != 0 {
		t.Errorf("Expected 0 campaign scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("gems-endless", 10); len(scores) != 1 {
		t.Error("Endless scores should not be affected by clearing campaign")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		store.SaveScore("gems", i*10)
	}

	scores, err := store.AllScores("gems")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("gems")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore("gems", 100)
	store.SaveScore("gems", 300)
	store.SaveScore("gems-endless", 40)

	stats, err := store.GetGameStats("gems")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 || stats.AvgScore != 200 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["gems-endless"].HighScore != 40 {
		t.Errorf("all stats = %+v", all)
	}
}

func TestStoreReplays(t *testing.T) {
	store := openTestStore(t)

	first := Replay{
		GameID: "gems", Seed: 42, StartLevel: 1, Width: 8, Height: 8, Kinds: 6,
		Moves:     `[{"kind":"shuffle"}]`,
		MoveCount: 1, Score: 0,
	}
	id1, err := store.SaveReplay(first)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	id2, err := store.SaveReplay(Replay{GameID: "gems-endless", Seed: 7, Width: 6, Height: 6, Kinds: 5, Moves: `[]`, Score: 900})
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	got, err := store.ReplayByID(id1)
	if err != nil {
		t.Fatalf("ReplayByID() failed: %v", err)
	}
	if got.Seed != 42 || got.StartLevel != 1 || got.Moves != first.Moves || got.Kinds != 6 {
		t.Errorf("replay = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	if _, err := store.ReplayByID(id2 + 100); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	recent, err := store.RecentReplays("", 10)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != id2 {
		t.Errorf("recent = %+v", recent)
	}

	campaign, err := store.RecentReplays("gems", 0)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(campaign) != 1 || campaign[0].ID != id1 {
		t.Errorf("campaign replays = %+v", campaign)
	}
}
