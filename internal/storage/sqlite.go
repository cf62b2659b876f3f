// Package storage provides SQLite-based persistence for level completions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/zyedidia/generic/mapset"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for completion records.
type Store struct {
	db *sqlx.DB
}

// Completion is a single solved level.
type Completion struct {
	ID         int64  `db:"id"`
	SessionID  string `db:"session_id"`
	LevelID    string `db:"level_id"`
	Moves      int    `db:"moves"`
	DurationMS int64  `db:"duration_ms"`
	CreatedAt  int64  `db:"created_at"` // unix seconds
}

// Duration returns the solve time.
func (c Completion) Duration() time.Duration {
	return time.Duration(c.DurationMS) * time.Millisecond
}

// Time returns when the level was solved.
func (c Completion) Time() time.Time {
	return time.Unix(c.CreatedAt, 0)
}

// LevelRecord aggregates every completion of one level.
type LevelRecord struct {
	LevelID     string `db:"level_id"`
	Completions int    `db:"completions"`
	BestMoves   int    `db:"best_moves"`
	BestMS      int64  `db:"best_ms"`
	LastPlayed  int64  `db:"last_played"`
}

// BestTime returns the fastest solve.
func (r LevelRecord) BestTime() time.Duration {
	return time.Duration(r.BestMS) * time.Millisecond
}

// LastTime returns the most recent solve.
func (r LevelRecord) LastTime() time.Time {
	return time.Unix(r.LastPlayed, 0)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
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

	db, err := sqlx.Open("sqlite", dbPath)
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			moves INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_completions_level ON completions(level_id, moves);
		CREATE INDEX IF NOT EXISTS idx_completions_session ON completions(session_id);

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
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

// SaveCompletion records a solved level. A zero CreatedAt is set to now.
// Returns the ID of the inserted record.
func (s *Store) SaveCompletion(c Completion) (int64, error) {
	if c.LevelID == "" {
		return 0, errors.New("storage: completion without level id")
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().Unix()
	}

	result, err := s.db.NamedExec(
		`INSERT INTO completions (session_id, level_id, moves, duration_ms, created_at)
		 VALUES (:session_id, :level_id, :moves, :duration_ms, :created_at)`,
		c,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestMoves returns the lowest move count for the level.
// ok is false if the level was never solved.
func (s *Store) BestMoves(levelID string) (moves int, ok bool, err error) {
	var best sql.NullInt64
	if err := s.db.Get(&best, "SELECT MIN(moves) FROM completions WHERE level_id = ?", levelID); err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best moves: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// BestTime returns the fastest solve of the level.
// ok is false if the level was never solved.
func (s *Store) BestTime(levelID string) (d time.Duration, ok bool, err error) {
	var best sql.NullInt64
	if err := s.db.Get(&best, "SELECT MIN(duration_ms) FROM completions WHERE level_id = ?", levelID); err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return time.Duration(best.Int64) * time.Millisecond, true, nil
}

// Completions retrieves the best N completions of the level,
// ordered by moves then duration.
func (s *Store) Completions(levelID string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 10
	}

	var entries []Completion
	err := s.db.Select(&entries,
		`SELECT id, session_id, level_id, moves, duration_ms, created_at
		 FROM completions
		 WHERE level_id = ?
		 ORDER BY moves ASC, duration_ms ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	return entries, nil
}

// SessionCompletions retrieves every completion of a play session in order.
func (s *Store) SessionCompletions(sessionID string) ([]Completion, error) {
	var entries []Completion
	err := s.db.Select(&entries,
		`SELECT id, session_id, level_id, moves, duration_ms, created_at
		 FROM completions
		 WHERE session_id = ?
		 ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return entries, nil
}

// Records returns one aggregated record per solved level, sorted by level ID.
func (s *Store) Records() ([]LevelRecord, error) {
	var records []LevelRecord
	err := s.db.Select(&records,
		`SELECT level_id,
		        COUNT(*) AS completions,
		        MIN(moves) AS best_moves,
		        MIN(duration_ms) AS best_ms,
		        MAX(created_at) AS last_played
		 FROM completions
		 GROUP BY level_id
		 ORDER BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	return records, nil
}

// Solved returns the IDs of every level with at least one completion.
func (s *Store) Solved() (mapset.Set[string], error) {
	solved := mapset.New[string]()
	var ids []string
	if err := s.db.Select(&ids, "SELECT DISTINCT level_id FROM completions"); err != nil {
		return solved, fmt.Errorf("storage: cannot query solved levels: %w", err)
	}
	for _, id := range ids {
		solved.Put(id)
	}
	return solved, nil
}

// ClearLevel deletes all completions of the given level.
func (s *Store) ClearLevel(levelID string) error {
	_, err := s.db.Exec("DELETE FROM completions WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear level: %w", err)
	}
	return nil
}

const progressKey = "campaign_progress"

// SaveProgress stores the index of the highest campaign level completed.
// Lower values than the stored one are ignored.
func (s *Store) SaveProgress(index int) error {
	current, err := s.Progress()
	if err != nil {
		return err
	}
	if index <= current {
		return nil
	}
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		progressKey, strconv.Itoa(index),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// Progress returns the highest completed campaign index, or -1 if none.
func (s *Store) Progress() (int, error) {
	var value string
	err := s.db.Get(&value, "SELECT value FROM meta WHERE key = ?", progressKey)
	if errors.Is(err, sql.ErrNoRows) {
		return -1, nil
	}
	if err != nil {
		return -1, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	index, err := strconv.Atoi(value)
	if err != nil {
		return -1, fmt.Errorf("storage: corrupt progress value %q: %w", value, err)
	}
	return index, nil
}
