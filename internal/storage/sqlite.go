// Package storage provides SQLite-based persistence for finished sessions.
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
)

// Outcome is how a session ended.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
	OutcomeQuit Outcome = "quit"
)

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeWon, OutcomeLost, OutcomeQuit:
		return true
	}
	return false
}

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// Result is one finished session.
type Result struct {
	ID           int64
	LetterID     string
	Mode         string
	Outcome      Outcome
	BlocksPlaced int
	CellsRemoved int
	Moves        int
	Duration     time.Duration
	Score        int
	CreatedAt    time.Time
}

const sqliteTimeLayout = "2006-01-02 15:04:05"

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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			letter_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			outcome TEXT NOT NULL,
			blocks_placed INTEGER NOT NULL DEFAULT 0,
			cells_removed INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_letter ON results(letter_id, mode);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(mode, score DESC);
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

// SaveResult records a finished session and returns its ID.
func (s *Store) SaveResult(r Result) (int64, error) {
	if !r.Outcome.Valid() {
		return 0, fmt.Errorf("storage: invalid outcome %q", r.Outcome)
	}
	res, err := s.db.Exec(
		`INSERT INTO results
		 (letter_id, mode, outcome, blocks_placed, cells_removed, moves, duration_ms, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.LetterID, r.Mode, string(r.Outcome),
		r.BlocksPlaced, r.CellsRemoved, r.Moves,
		r.Duration.Milliseconds(), r.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const resultColumns = `id, letter_id, mode, outcome, blocks_placed, cells_removed,
	moves, duration_ms, score, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (Result, error) {
	var r Result
	var outcome string
	var durationMS int64
	var createdAt any
	if err := row.Scan(&r.ID, &r.LetterID, &r.Mode, &outcome, &r.BlocksPlaced,
		&r.CellsRemoved, &r.Moves, &durationMS, &r.Score, &createdAt); err != nil {
		return Result{}, err
	}
	r.Outcome = Outcome(outcome)
	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and the textual form SQLite stores.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// TopResults returns the best results of a mode, highest score first.
// An empty letterID matches every letter.
func (s *Store) TopResults(mode, letterID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE mode = ? AND (? = '' OR letter_id = ?)
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, letterID, letterID, limit,
	)
}

// RecentResults returns the latest results across all modes.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// BestWin returns the win on a letter that took the fewest moves, or nil
// when the letter has never been won in that mode.
func (s *Store) BestWin(mode, letterID string) (*Result, error) {
	row := s.db.QueryRow(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE mode = ? AND letter_id = ? AND outcome = ?
		 ORDER BY moves ASC, duration_ms ASC, id ASC
		 LIMIT 1`,
		mode, letterID, string(OutcomeWon),
	)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best win: %w", err)
	}
	return &r, nil
}

// ClearResults deletes all results of a mode.
func (s *Store) ClearResults(mode string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// LetterStats contains aggregated results for one letter in one mode.
type LetterStats struct {
	LetterID   string
	Mode       string
	Played     int
	Won        int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// WinRate returns the share of sessions won, or 0 when nothing was played.
func (ls LetterStats) WinRate() float64 {
	if ls.Played == 0 {
		return 0
	}
	return float64(ls.Won) / float64(ls.Played)
}

// Stats retrieves aggregated statistics per letter for a mode, ordered by
// letter ID.
func (s *Store) Stats(mode string) ([]LetterStats, error) {
	rows, err := s.db.Query(
		`SELECT letter_id, COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM results
		 WHERE mode = ?
		 GROUP BY letter_id
		 ORDER BY letter_id`,
		string(OutcomeWon), mode,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	var out []LetterStats
	for rows.Next() {
		ls := LetterStats{Mode: mode}
		var lastPlayed any
		if err := rows.Scan(&ls.LetterID, &ls.Played, &ls.Won, &ls.HighScore, &ls.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		out = append(out, ls)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
