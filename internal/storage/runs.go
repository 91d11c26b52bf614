package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunRecord is one finished game with its resolution statistics.
type RunRecord struct {
	ID         string // UUID, assigned by SaveRun when empty
	GameID     string
	Difficulty string
	Seed       int64
	Score      int
	Swaps      int
	Cascades   int
	BestChain  int
	Stalemate  bool
	CreatedAt  time.Time
}

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r RunRecord) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	} else if _, err := uuid.Parse(r.ID); err != nil {
		return "", fmt.Errorf("storage: invalid run id %q: %w", r.ID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, game_id, difficulty, seed, score, swaps, cascades, best_chain, stalemate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.GameID,
		r.Difficulty,
		r.Seed,
		r.Score,
		r.Swaps,
		r.Cascades,
		r.BestChain,
		r.Stalemate,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

// TopRuns retrieves the best runs for a game, highest score first.
func (s *Store) TopRuns(gameID string, limit int) ([]RunRecord, error) {
	return s.queryRuns(
		`WHERE game_id = ? ORDER BY score DESC, best_chain DESC LIMIT ?`,
		gameID, normalizeLimit(limit),
	)
}

// RecentRuns retrieves the latest runs for a game.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	return s.queryRuns(
		`WHERE game_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		gameID, normalizeLimit(limit),
	)
}

// RunByID retrieves a single run. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*RunRecord, error) {
	runs, err := s.queryRuns(`WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (s *Store) queryRuns(where string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, difficulty, seed, score, swaps, cascades, best_chain, stalemate, created_at
		 FROM runs `+where,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.Difficulty,
			&r.Seed,
			&r.Score,
			&r.Swaps,
			&r.Cascades,
			&r.BestChain,
			&r.Stalemate,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	return limit
}
