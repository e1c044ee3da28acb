// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/battleship/internal/dispatch"
	"github.com/vovakirdan/battleship/internal/match"
)

// Store manages the SQLite database connection for match persistence.
type Store struct {
	db *sql.DB
}

// MatchRecord represents one finished match.
type MatchRecord struct {
	ID          int64
	MatchID     string
	Winner      string
	Loser       string
	WinnerShots int
	LoserShots  int
	Duration    int // Duration in seconds
	CreatedAt   time.Time
}

// PlayerStats contains aggregated statistics for one player.
type PlayerStats struct {
	Player     string
	Wins       int
	Losses     int
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			winner TEXT NOT NULL,
			loser TEXT NOT NULL,
			winner_shots INTEGER NOT NULL DEFAULT 0,
			loser_shots INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_winner ON matches(winner);
		CREATE INDEX IF NOT EXISTS idx_matches_loser ON matches(loser);
		CREATE INDEX IF NOT EXISTS idx_matches_recent ON matches(created_at DESC);
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

// SaveMatch records a finished match. Returns the ID of the inserted record.
func (s *Store) SaveMatch(rec MatchRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, winner, loser, winner_shots, loser_shots, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.MatchID,
		rec.Winner,
		rec.Loser,
		rec.WinnerShots,
		rec.LoserShots,
		rec.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// MatchByID retrieves a match by its match ID. Returns nil if not found.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	var rec MatchRecord
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, match_id, winner, loser, winner_shots, loser_shots, duration_secs, created_at
		 FROM matches
		 WHERE match_id = ?`,
		matchID,
	).Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.Winner,
		&rec.Loser,
		&rec.WinnerShots,
		&rec.LoserShots,
		&rec.Duration,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}

	rec.CreatedAt = parseTimestamp(createdAt)
	return &rec, nil
}

// RecentMatches retrieves the most recently finished matches.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, winner, loser, winner_shots, loser_shots, duration_secs, created_at
		 FROM matches
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// PlayerMatches retrieves match history for a specific player.
func (s *Store) PlayerMatches(player string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, winner, loser, winner_shots, loser_shots, duration_secs, created_at
		 FROM matches
		 WHERE winner = ? OR loser = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// StatsFor retrieves aggregated win/loss statistics for one player.
func (s *Store) StatsFor(player string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: player}

	err := s.db.QueryRow(
		`SELECT
		   COUNT(CASE WHEN winner = ? THEN 1 END),
		   COUNT(CASE WHEN loser = ? THEN 1 END)
		 FROM matches WHERE winner = ? OR loser = ?`,
		player, player, player, player,
	).Scan(&stats.Wins, &stats.Losses)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM matches
		 WHERE winner = ? OR loser = ?
		 ORDER BY created_at DESC LIMIT 1`,
		player, player,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// Leaderboard retrieves players ordered by win count.
func (s *Store) Leaderboard(limit int) ([]PlayerStats, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT player,
		        SUM(win) AS wins,
		        SUM(1 - win) AS losses,
		        MAX(created_at) AS last_played
		 FROM (
		   SELECT winner AS player, 1 AS win, created_at FROM matches
		   UNION ALL
		   SELECT loser AS player, 0 AS win, created_at FROM matches
		 )
		 GROUP BY player
		 ORDER BY wins DESC, losses ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var stats []PlayerStats
	for rows.Next() {
		var st PlayerStats
		var lastPlayed any
		if err := rows.Scan(&st.Player, &st.Wins, &st.Losses, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTimestamp(lastPlayed)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// SaveMatchResult implements dispatch.ResultSaver.
// This adapter lets the dispatcher save match results without a direct
// storage dependency.
func (s *Store) SaveMatchResult(res match.Result) error {
	rec := MatchRecord{
		MatchID:     string(res.MatchID),
		Winner:      string(res.Winner),
		Loser:       string(res.Loser),
		WinnerShots: res.Shots[res.Winner],
		LoserShots:  res.Shots[res.Loser],
		Duration:    int(res.Duration.Seconds()),
	}
	_, err := s.SaveMatch(rec)
	return err
}

// Ensure Store implements ResultSaver
var _ dispatch.ResultSaver = (*Store)(nil)

func scanMatches(rows *sql.Rows) ([]MatchRecord, error) {
	var recs []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		var createdAt any
		if err := rows.Scan(
			&rec.ID,
			&rec.MatchID,
			&rec.Winner,
			&rec.Loser,
			&rec.WinnerShots,
			&rec.LoserShots,
			&rec.Duration,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTimestamp(createdAt)
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return recs, nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
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
