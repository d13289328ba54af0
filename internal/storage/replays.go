package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// ReplayRecord is an encoded run with its summary columns.
type ReplayRecord struct {
	ID        int64
	LevelID   string
	Score     int
	Ticks     uint64
	Data      []byte // Encoded run, see package replay
	CreatedAt time.Time
}

// SaveReplay stores an encoded run. Returns the ID of the inserted record.
func (s *Store) SaveReplay(r ReplayRecord) (int64, error) {
	if len(r.Data) == 0 {
		return 0, fmt.Errorf("storage: cannot save empty replay")
	}

	result, err := s.db.Exec(
		"INSERT INTO replays (level_id, score, ticks, data) VALUES (?, ?, ?, ?)",
		r.LevelID, r.Score, int64(r.Ticks), r.Data, //#nosec G115 -- tick counts fit in int64
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

// Replay loads one replay including its data.
func (s *Store) Replay(id int64) (ReplayRecord, error) {
	var (
		r         ReplayRecord
		ticks     int64
		createdAt any
	)
	err := s.db.QueryRow(
		"SELECT id, level_id, score, ticks, data, created_at FROM replays WHERE id = ?",
		id,
	).Scan(&r.ID, &r.LevelID, &r.Score, &ticks, &r.Data, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ReplayRecord{}, fmt.Errorf("%w: replay %d", ErrNotFound, id)
	}
	if err != nil {
		return ReplayRecord{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	r.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// RecentReplays lists the most recent replays without their data.
// An empty levelID lists all levels.
func (s *Store) RecentReplays(levelID string, limit int) ([]ReplayRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, score, ticks, created_at
		 FROM replays
		 WHERE ? = '' OR level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var out []ReplayRecord
	for rows.Next() {
		var (
			r         ReplayRecord
			ticks     int64
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Score, &ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
