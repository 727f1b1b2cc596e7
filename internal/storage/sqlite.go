// Package storage provides SQLite-based persistence for game replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/tetris/machine"
)

// ErrReplayNotFound is returned when no replay has the requested ID.
var ErrReplayNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for the replay journal.
type Store struct {
	db *sql.DB
}

// ReplaySummary describes a stored game without its event log.
type ReplaySummary struct {
	ID         int64
	Seed       int64
	Generator  string
	Score      int
	Level      int
	Lines      int
	EventCount int
	Duration   time.Duration
	CreatedAt  time.Time
}

// Replay is everything needed to re-simulate a game and check the result.
type Replay struct {
	ReplaySummary
	Config     config.TetrisConfig
	Events     []machine.Event
	FinalField string // Field.String() at the end of the game
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			generator TEXT NOT NULL,
			config TEXT NOT NULL,
			events TEXT NOT NULL,
			event_count INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			lines INTEGER NOT NULL DEFAULT 0,
			final_field TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
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

// SaveReplay records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveReplay(r Replay) (int64, error) {
	cfg, err := yaml.Marshal(r.Config)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode config: %w", err)
	}
	events, err := yaml.Marshal(r.Events)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode events: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO replays
		 (seed, generator, config, events, event_count, score, level, lines, final_field, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Seed, r.Generator, string(cfg), string(events), len(r.Events),
		r.Score, r.Level, r.Lines, r.FinalField, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Replay loads a replay with its full event log.
func (s *Store) Replay(id int64) (*Replay, error) {
	var r Replay
	var cfg, events string
	var durationMs int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, seed, generator, config, events, event_count, score, level, lines,
		        final_field, duration_ms, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(
		&r.ID, &r.Seed, &r.Generator, &cfg, &events, &r.EventCount,
		&r.Score, &r.Level, &r.Lines, &r.FinalField, &durationMs, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReplayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	if err := yaml.Unmarshal([]byte(cfg), &r.Config); err != nil {
		return nil, fmt.Errorf("storage: cannot decode config of replay %d: %w", id, err)
	}
	if err := yaml.Unmarshal([]byte(events), &r.Events); err != nil {
		return nil, fmt.Errorf("storage: cannot decode events of replay %d: %w", id, err)
	}
	r.Duration = time.Duration(durationMs) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)

	return &r, nil
}

// RecentReplays retrieves summaries of the most recent games, newest first.
func (s *Store) RecentReplays(limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, generator, event_count, score, level, lines, duration_ms, created_at
		 FROM replays
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplaySummary
	for rows.Next() {
		var e ReplaySummary
		var durationMs int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Seed, &e.Generator, &e.EventCount,
			&e.Score, &e.Level, &e.Lines, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteReplay removes a replay.
func (s *Store) DeleteReplay(id int64) error {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrReplayNotFound
	}
	return nil
}

// CountReplays returns the number of stored replays.
func (s *Store) CountReplays() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM replays").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count replays: %w", err)
	}
	return n, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
