package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/magmahydro/internal/multiplayer"
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

func TestStoreBestClearsOrder(t *testing.T) {
	store := openTestStore(t)

	clears := []struct {
		level         string
		ticks, deaths int
	}{
		{"01-first-steps", 900, 2},
		{"01-first-steps", 600, 5},
		{"01-first-steps", 600, 1},
		{"01-first-steps", 1200, 0},
		{"02-gatehouse", 300, 0},
	}
	for _, c := range clears {
		if _, err := store.SaveClear(c.level, c.ticks, c.deaths, multiplayer.MatchModeLocal); err != nil {
			t.Fatalf("SaveClear() failed: %v", err)
		}
	}

	best, err := store.BestClears("01-first-steps", 10)
	if err != nil {
		t.Fatalf("BestClears() failed: %v", err)
	}
	if len(best) != 4 {
		t.Fatalf("Expected 4 clears, got %d", len(best))
	}

	// Ties on time are broken by deaths
	expected := []struct{ ticks, deaths int }{{600, 1}, {600, 5}, {900, 2}, {1200, 0}}
	for i, e := range expected {
		if best[i].Ticks != e.ticks || best[i].Deaths != e.deaths {
			t.Errorf("clear %d = %d ticks %d deaths, expected %d/%d", i, best[i].Ticks, best[i].Deaths, e.ticks, e.deaths)
		}
		if best[i].Mode != "local" {
			t.Errorf("clear %d mode = %q", i, best[i].Mode)
		}
	}

	limited, err := store.BestClears("01-first-steps", 2)
	if err != nil {
		t.Fatalf("BestClears() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 clears with limit, got %d", len(limited))
	}

	all, err := store.AllClears("01-first-steps")
	if err != nil || len(all) != 4 {
		t.Errorf("AllClears() = %d entries, err %v", len(all), err)
	}
}

func TestStoreBestClear(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestClear("03-staircase")
	if err != nil {
		t.Fatalf("BestClear() failed: %v", err)
	}
	if best != nil {
		t.Errorf("Expected no clear for an unplayed level, got %+v", best)
	}

	store.SaveClear("03-staircase", 1500, 3, multiplayer.MatchModeLocal)
	store.SaveClear("03-staircase", 1100, 4, multiplayer.MatchModeOnline)

	best, err = store.BestClear("03-staircase")
	if err != nil || best == nil {
		t.Fatalf("BestClear() = %v, %v", best, err)
	}
	if best.Ticks != 1100 || best.Mode != "online" {
		t.Errorf("BestClear() = %+v", best)
	}
}

func TestStoreClearRecords(t *testing.T) {
	store := openTestStore(t)

	store.SaveClear("01-first-steps", 100, 0, multiplayer.MatchModeLocal)
	store.SaveClear("02-gatehouse", 200, 0, multiplayer.MatchModeLocal)

	if err := store.ClearRecords("01-first-steps"); err != nil {
		t.Fatalf("ClearRecords() failed: %v", err)
	}

	if best, _ := store.BestClear("01-first-steps"); best != nil {
		t.Error("Expected no clears after ClearRecords()")
	}
	if best, _ := store.BestClear("02-gatehouse"); best == nil {
		t.Error("Other levels should keep their clears")
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetLevelStats("05-goo-gauntlet")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if empty.Clears != 0 || !empty.LastCleared.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveClear("05-goo-gauntlet", 600, 4, multiplayer.MatchModeLocal)
	store.SaveClear("05-goo-gauntlet", 1000, 1, multiplayer.MatchModeLocal)
	store.SaveClear("04-crossing", 700, 0, multiplayer.MatchModeLocal)

	stats, err := store.GetLevelStats("05-goo-gauntlet")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Clears != 2 || stats.BestTicks != 600 || stats.FewestDeaths != 1 || stats.AvgTicks != 800 {
		t.Errorf("unexpected stats %+v", stats)
	}

	all, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(all) != 2 || all["04-crossing"] == nil || all["04-crossing"].Clears != 1 {
		t.Errorf("unexpected AllLevelStats %+v", all)
	}
}

func TestStoreSaveMatchResult(t *testing.T) {
	store := openTestStore(t)

	results := []multiplayer.MatchResultData{
		{
			MatchID: "match-A", LevelID: "02-gatehouse",
			HostSession: "alice", JoinerSession: "bob",
			Completed: true, Ticks: 2400, Deaths: 3,
			EndReason: "Level complete", DurationSecs: 40,
		},
		{
			MatchID: "match-B", LevelID: "02-gatehouse",
			HostSession: "carol", JoinerSession: "alice",
			Completed: false, Ticks: 500, Deaths: 0,
			EndReason: "Partner disconnected", DurationSecs: 8,
		},
	}
	for _, r := range results {
		if err := store.SaveMatchResult(r); err != nil {
			t.Fatalf("SaveMatchResult() failed: %v", err)
		}
	}

	run, err := store.CoopRunByID("match-A")
	if err != nil || run == nil {
		t.Fatalf("CoopRunByID() = %v, %v", run, err)
	}
	if !run.Completed || run.Ticks != 2400 || run.HostSession != "alice" {
		t.Errorf("unexpected run %+v", run)
	}
	if missing, err := store.CoopRunByID("nope"); err != nil || missing != nil {
		t.Errorf("CoopRunByID(nope) = %v, %v", missing, err)
	}

	// Only the completed match counts as a clear
	clears, err := store.AllClears("02-gatehouse")
	if err != nil {
		t.Fatalf("AllClears() failed: %v", err)
	}
	if len(clears) != 1 || clears[0].Mode != "online" {
		t.Errorf("expected one online clear, got %+v", clears)
	}

	history, err := store.SessionRuns("alice", 10)
	if err != nil {
		t.Fatalf("SessionRuns() failed: %v", err)
	}
	if len(history) != 2 || history[0].MatchID != "match-B" {
		t.Errorf("expected both runs newest first, got %+v", history)
	}

	recent, err := store.RecentCoopRuns(1)
	if err != nil || len(recent) != 1 {
		t.Errorf("RecentCoopRuns(1) = %d runs, err %v", len(recent), err)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
