// Package storage provides SQLite-based persistence for high scores and round history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-cannon/internal/cannon"
	"github.com/vovakirdan/tui-cannon/internal/highscore"
)

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RoundRecord is one finished round in the history table.
type RoundRecord struct {
	ID         int64
	RoundID    string
	Level      int
	Outcome    string // "win" or "lose"
	Score      int
	ShotsFired int
	Elapsed    time.Duration
	CreatedAt  time.Time
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
		CREATE TABLE IF NOT EXISTS high_scores (
			rank INTEGER PRIMARY KEY,
			score INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_id TEXT NOT NULL UNIQUE,
			level INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL,
			shots_fired INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_created_at ON rounds(created_at);
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

// LoadHighScores returns the five ranked scores. Ranks with no row read as 0.
func (s *Store) LoadHighScores(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT rank, score FROM high_scores WHERE rank BETWEEN 1 AND ? ORDER BY rank",
		highscore.Size,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer rows.Close()

	scores := make([]int, highscore.Size)
	for rows.Next() {
		var rank, score int
		if err := rows.Scan(&rank, &score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		scores[rank-1] = score
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return scores, nil
}

// SaveHighScores replaces the ranked list in one transaction.
// Only the first five entries are stored.
func (s *Store) SaveHighScores(ctx context.Context, scores []int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM high_scores"); err != nil {
		return fmt.Errorf("storage: cannot clear high scores: %w", err)
	}
	for i, score := range scores[:min(len(scores), highscore.Size)] {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO high_scores (rank, score) VALUES (?, ?)",
			i+1, score,
		); err != nil {
			return fmt.Errorf("storage: cannot save high score %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit high scores: %w", err)
	}
	return nil
}

// ClearHighScores deletes the ranked list.
func (s *Store) ClearHighScores(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM high_scores")
	if err != nil {
		return fmt.Errorf("storage: cannot clear high scores: %w", err)
	}
	return nil
}

// SaveRound records a finished round.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(ctx context.Context, r RoundRecord) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (round_id, level, outcome, score, shots_fired, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.RoundID, r.Level, r.Outcome, r.Score, r.ShotsFired, r.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordRound implements scheduler.RoundRecorder.
// This adapter lets the scheduler report outcomes without a storage dependency.
func (s *Store) RecordRound(ctx context.Context, out cannon.Outcome) error {
	_, err := s.SaveRound(ctx, RoundRecord{
		RoundID:    out.RoundID,
		Level:      out.Level,
		Outcome:    out.Kind.String(),
		Score:      out.Score,
		ShotsFired: out.ShotsFired,
		Elapsed:    out.Elapsed,
	})
	return err
}

// RoundByID retrieves a round by its round ID. Returns nil if there is none.
func (s *Store) RoundByID(ctx context.Context, roundID string) (*RoundRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, round_id, level, outcome, score, shots_fired, elapsed_ms, created_at
		 FROM rounds
		 WHERE round_id = ?`,
		roundID,
	)

	r, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round: %w", err)
	}
	return &r, nil
}

// RecentRounds retrieves the most recent rounds, newest first.
func (s *Store) RecentRounds(ctx context.Context, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, round_id, level, outcome, score, shots_fired, elapsed_ms, created_at
		 FROM rounds
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RoundStats contains aggregated statistics over the round history.
type RoundStats struct {
	Rounds     int
	Wins       int
	BestScore  int
	BestLevel  int
	AvgScore   float64
	TotalShots int64
	LastPlayed time.Time
}

// Stats aggregates the round history.
func (s *Store) Stats(ctx context.Context) (*RoundStats, error) {
	stats := &RoundStats{}

	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(MAX(level), 0),
		        COALESCE(AVG(score), 0),
		        COALESCE(SUM(shots_fired), 0),
		        MAX(created_at)
		 FROM rounds`,
	).Scan(&stats.Rounds, &stats.Wins, &stats.BestScore, &stats.BestLevel,
		&stats.AvgScore, &stats.TotalShots, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get round stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(row scanner) (RoundRecord, error) {
	var (
		r         RoundRecord
		elapsedMS int64
		createdAt any
	)
	if err := row.Scan(
		&r.ID,
		&r.RoundID,
		&r.Level,
		&r.Outcome,
		&r.Score,
		&r.ShotsFired,
		&elapsedMS,
		&createdAt,
	); err != nil {
		return RoundRecord{}, err
	}
	r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

var _ highscore.Persistence = (*Store)(nil)
