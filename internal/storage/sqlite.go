// Package storage provides SQLite-based persistence for final coin totals.
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

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished session on a map.
type ScoreEntry struct {
	ID        int64
	MapID     string
	Coins     int
	Player    string
	CreatedAt time.Time
}

// MapStats contains aggregated statistics for one map.
type MapStats struct {
	MapID      string
	Sessions   int
	BestCoins  int
	AvgCoins   float64
	LastPlayed time.Time
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			map_id TEXT NOT NULL,
			coins INTEGER NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_map_id ON scores(map_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(map_id, coins DESC);
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

// SaveScore records the coins collected in a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(mapID, player string, coins int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (map_id, coins, player) VALUES (?, ?, ?)",
		mapID, coins, player,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N results for the given map.
// Results are ordered by coins descending, earlier sessions first on ties.
func (s *Store) TopScores(mapID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, map_id, coins, player, created_at
		 FROM scores
		 WHERE map_id = ?
		 ORDER BY coins DESC, id ASC
		 LIMIT ?`,
		mapID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.MapID, &e.Coins, &e.Player, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the most coins collected on the given map.
// Returns 0 if no sessions were recorded.
func (s *Store) HighScore(mapID string) (int, error) {
	var coins sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(coins) FROM scores WHERE map_id = ?",
		mapID,
	).Scan(&coins)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !coins.Valid {
		return 0, nil
	}

	return int(coins.Int64), nil
}

// ClearScores deletes all results for the given map.
func (s *Store) ClearScores(mapID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE map_id = ?", mapID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for a map.
func (s *Store) Stats(mapID string) (*MapStats, error) {
	stats := &MapStats{MapID: mapID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(coins), 0), COALESCE(AVG(coins), 0)
		 FROM scores WHERE map_id = ?`,
		mapID,
	).Scan(&stats.Sessions, &stats.BestCoins, &stats.AvgCoins)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get map stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE map_id = ? ORDER BY id DESC LIMIT 1`,
		mapID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// PlayedMaps returns the IDs of all maps with at least one recorded session.
func (s *Store) PlayedMaps() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT map_id FROM scores ORDER BY map_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list maps: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ids, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
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
