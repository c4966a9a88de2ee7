// Package storage provides SQLite-based records of finished level runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/magmahydro/internal/multiplayer"
)

// Store manages the SQLite database connection for run records.
type Store struct {
	db *sql.DB
}

// ClearEntry is one completed level run.
type ClearEntry struct {
	ID        int64
	LevelID   string
	Ticks     int
	Deaths    int
	Mode      string // "local" or "online"
	CreatedAt time.Time
}

// CoopRun is the outcome of an online co-op match, completed or not.
type CoopRun struct {
	ID            int64
	MatchID       string
	LevelID       string
	HostSession   string
	JoinerSession string
	Completed     bool
	Ticks         int
	Deaths        int
	EndReason     string
	Duration      int // seconds
	CreatedAt     time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS level_clears (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			deaths INTEGER NOT NULL DEFAULT 0,
			mode TEXT NOT NULL DEFAULT 'local',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_clears_best ON level_clears(level_id, ticks ASC, deaths ASC);

		CREATE TABLE IF NOT EXISTS co_op_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			level_id TEXT NOT NULL,
			host_session TEXT NOT NULL,
			joiner_session TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			deaths INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_co_op_runs_level ON co_op_runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_co_op_runs_host ON co_op_runs(host_session);
		CREATE INDEX IF NOT EXISTS idx_co_op_runs_joiner ON co_op_runs(joiner_session);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveClear records a completed run of a level.
// Returns the ID of the inserted record.
func (s *Store) SaveClear(levelID string, ticks, deaths int, mode multiplayer.MatchMode) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO level_clears (level_id, ticks, deaths, mode) VALUES (?, ?, ?, ?)",
		levelID, ticks, deaths, mode.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save clear: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const clearColumns = `id, level_id, ticks, deaths, mode, created_at`

// clearOrder ranks faster runs first, then fewer deaths, then older runs.
const clearOrder = `ORDER BY ticks ASC, deaths ASC, id ASC`

// BestClears retrieves the fastest N clears of a level.
func (s *Store) BestClears(levelID string, limit int) ([]ClearEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryClears(
		`SELECT `+clearColumns+` FROM level_clears WHERE level_id = ? `+clearOrder+` LIMIT ?`,
		levelID, limit,
	)
}

// AllClears retrieves every clear of a level, fastest first.
func (s *Store) AllClears(levelID string) ([]ClearEntry, error) {
	return s.queryClears(
		`SELECT `+clearColumns+` FROM level_clears WHERE level_id = ? `+clearOrder,
		levelID,
	)
}

// BestClear returns the fastest clear of a level, or nil if it was never
// cleared.
func (s *Store) BestClear(levelID string) (*ClearEntry, error) {
	clears, err := s.BestClears(levelID, 1)
	if err != nil {
		return nil, err
	}
	if len(clears) == 0 {
		return nil, nil
	}
	return &clears[0], nil
}

func (s *Store) queryClears(query string, args ...any) ([]ClearEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clears: %w", err)
	}
	defer rows.Close()

	var entries []ClearEntry
	for rows.Next() {
		var e ClearEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Ticks, &e.Deaths, &e.Mode, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = scanTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// ClearRecords deletes every clear of a level.
func (s *Store) ClearRecords(levelID string) error {
	_, err := s.db.Exec("DELETE FROM level_clears WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear records: %w", err)
	}
	return nil
}

// SaveCoopRun records the outcome of an online match.
// Returns the ID of the inserted record.
func (s *Store) SaveCoopRun(run CoopRun) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO co_op_runs
		 (match_id, level_id, host_session, joiner_session, completed, ticks, deaths, end_reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.MatchID,
		run.LevelID,
		run.HostSession,
		run.JoinerSession,
		run.Completed,
		run.Ticks,
		run.Deaths,
		run.EndReason,
		run.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save co-op run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, match_id, level_id, host_session, joiner_session,
		        completed, ticks, deaths, end_reason, duration_secs, created_at`

// CoopRunByID retrieves an online run by its match ID, or nil.
func (s *Store) CoopRunByID(matchID string) (*CoopRun, error) {
	runs, err := s.queryRuns(
		`SELECT `+runColumns+` FROM co_op_runs WHERE match_id = ?`,
		matchID,
	)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// RecentCoopRuns retrieves the most recent online runs.
func (s *Store) RecentCoopRuns(limit int) ([]CoopRun, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM co_op_runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// SessionRuns retrieves the online runs a session took part in.
func (s *Store) SessionRuns(sessionID string, limit int) ([]CoopRun, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM co_op_runs
		 WHERE host_session = ? OR joiner_session = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sessionID, sessionID, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]CoopRun, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query co-op runs: %w", err)
	}
	defer rows.Close()

	var runs []CoopRun
	for rows.Next() {
		var r CoopRun
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.MatchID,
			&r.LevelID,
			&r.HostSession,
			&r.JoinerSession,
			&r.Completed,
			&r.Ticks,
			&r.Deaths,
			&r.EndReason,
			&r.Duration,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = scanTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver. A completed
// match also counts as an online clear of its level.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	_, err := s.SaveCoopRun(CoopRun{
		MatchID:       data.MatchID,
		LevelID:       data.LevelID,
		HostSession:   data.HostSession,
		JoinerSession: data.JoinerSession,
		Completed:     data.Completed,
		Ticks:         data.Ticks,
		Deaths:        data.Deaths,
		EndReason:     data.EndReason,
		Duration:      data.DurationSecs,
	})
	if err != nil || !data.Completed {
		return err
	}
	_, err = s.SaveClear(data.LevelID, data.Ticks, data.Deaths, multiplayer.MatchModeOnline)
	return err
}

var _ multiplayer.MatchResultSaver = (*Store)(nil)

// LevelStats contains aggregated clears of one level.
type LevelStats struct {
	LevelID      string
	Clears       int
	BestTicks    int
	FewestDeaths int
	AvgTicks     float64
	LastCleared  time.Time
}

// GetLevelStats retrieves aggregated statistics for a level. A level that
// was never cleared has zero Clears.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var lastCleared any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(ticks), 0), COALESCE(MIN(deaths), 0), COALESCE(AVG(ticks), 0), MAX(created_at)
		 FROM level_clears WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Clears, &stats.BestTicks, &stats.FewestDeaths, &stats.AvgTicks, &lastCleared)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastCleared = scanTime(lastCleared)

	return stats, nil
}

// AllLevelStats retrieves statistics for every level cleared at least once.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MIN(ticks), MIN(deaths), AVG(ticks), MAX(created_at)
		 FROM level_clears
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastCleared any
		if err := rows.Scan(&ls.LevelID, &ls.Clears, &ls.BestTicks, &ls.FewestDeaths, &ls.AvgTicks, &lastCleared); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastCleared = scanTime(lastCleared)
		stats[ls.LevelID] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// scanTime handles both time.Time and string datetimes from the driver.
func scanTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
