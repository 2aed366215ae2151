package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Replay is a stored game: enough to rebuild it move by move.
type Replay struct {
	ID         int64
	GameID     string
	Seed       int64
	StartLevel int
	Width      int
	Height     int
	Kinds      int
	Moves      string // JSON move list
	MoveCount  int
	Score      int
	CreatedAt  time.Time
}

const replayColumns = `id, game_id, seed, start_level, width, height, kinds, moves, move_count, score, created_at`

// SaveReplay stores a finished game and returns its ID.
func (s *Store) SaveReplay(r Replay) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO replays (game_id, seed, start_level, width, height, kinds, moves, move_count, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Seed, r.StartLevel, r.Width, r.Height, r.Kinds, r.Moves, r.MoveCount, r.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// ReplayByID loads one replay. Returns ErrNotFound for unknown IDs.
func (s *Store) ReplayByID(id int64) (*Replay, error) {
	row := s.db.QueryRow(`SELECT `+replayColumns+` FROM replays WHERE id = ?`, id)
	r, err := scanReplay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: replay %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	return r, nil
}

// RecentReplays lists the newest replays, optionally for one game only.
// A non-positive limit means 20.
func (s *Store) RecentReplays(gameID string, limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + replayColumns + ` FROM replays`
	args := []any{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var replays []Replay
	for rows.Next() {
		r, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		replays = append(replays, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return replays, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(sc scanner) (*Replay, error) {
	var r Replay
	var createdAt any
	err := sc.Scan(&r.ID, &r.GameID, &r.Seed, &r.StartLevel, &r.Width, &r.Height,
		&r.Kinds, &r.Moves, &r.MoveCount, &r.Score, &createdAt)
	if err != nil {
		return nil, err
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}
