// Package scores persists finished rounds in a local SQLite database.
package scores

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Result is one finished round.
type Result struct {
	ID         int64
	Level      int
	Score      int
	FinalScore int
	Shapes     int
	PlayedAt   time.Time
}

// Store provides SQLite-backed persistence for round results.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) a score database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Record stores r and returns its row id.
func (s *Store) Record(ctx context.Context, r Result) (int64, error) {
	if r.PlayedAt.IsZero() {
		r.PlayedAt = time.Now()
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO rounds (level, score, final_score, shapes, played_at) VALUES (?, ?, ?, ?, ?)`,
		r.Level, r.Score, r.FinalScore, r.Shapes, r.PlayedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert round: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("round id: %w", err)
	}
	return id, nil
}

// Best returns the highest final score recorded for level, or 0 when no
// round at that level exists.
func (s *Store) Best(ctx context.Context, level int) (int, error) {
	var best sql.NullInt64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT MAX(final_score) FROM rounds WHERE level = ?`, level,
	).Scan(&best)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("query best: %w", err)
	}
	return int(best.Int64), nil
}

// Recent returns up to limit rounds, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, level, score, final_score, shapes, played_at
		   FROM rounds ORDER BY played_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r        Result
			playedAt int64
		)
		if err := rows.Scan(&r.ID, &r.Level, &r.Score, &r.FinalScore, &r.Shapes, &playedAt); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		r.PlayedAt = time.UnixMilli(playedAt).UTC()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rounds: %w", err)
	}
	return out, nil
}
