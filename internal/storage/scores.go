package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ScoreEntry represents a single finished run on a level.
type ScoreEntry struct {
	ID        int64
	LevelID   string
	Score     int
	Ticks     uint64
	Outcome   string // "gameover" or "cleared"
	ReplayID  int64  // 0 when no replay was kept
	CreatedAt time.Time
}

// SaveScore records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	var replayID sql.NullInt64
	if e.ReplayID > 0 {
		replayID = sql.NullInt64{Int64: e.ReplayID, Valid: true}
	}

	result, err := s.db.Exec(
		"INSERT INTO scores (level_id, score, ticks, outcome, replay_id) VALUES (?, ?, ?, ?, ?)",
		e.LevelID, e.Score, int64(e.Ticks), e.Outcome, replayID, //#nosec G115 -- tick counts fit in int64
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

const scoreColumns = "id, level_id, score, ticks, outcome, replay_id, created_at"

// TopScores retrieves the top N scores for the given level.
// Results are ordered by score descending.
func (s *Store) TopScores(levelID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+scoreColumns+`
		 FROM scores
		 WHERE level_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// AllScores retrieves all scores for the given level (no limit).
func (s *Store) AllScores(levelID string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+scoreColumns+`
		 FROM scores
		 WHERE level_id = ?
		 ORDER BY score DESC, id ASC`,
		levelID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var (
			e         ScoreEntry
			ticks     int64
			replayID  sql.NullInt64
			createdAt any
		)
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Score, &ticks, &e.Outcome, &replayID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
		if replayID.Valid {
			e.ReplayID = replayID.Int64
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given level.
// Returns 0 if no scores exist.
func (s *Store) HighScore(levelID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE level_id = ?",
		levelID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given level.
func (s *Store) ClearScores(levelID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	RunsCount  int
	Clears     int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'cleared' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM scores WHERE level_id = ?`,
		levelID,
	).Scan(&stats.RunsCount, &stats.Clears, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllLevelStats retrieves statistics for every level that has been played.
func (s *Store) GetAllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*),
		        SUM(CASE WHEN outcome = 'cleared' THEN 1 ELSE 0 END),
		        MAX(score), AVG(score), MAX(created_at)
		 FROM scores
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.LevelID, &ls.RunsCount, &ls.Clears, &ls.HighScore, &ls.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.LevelID] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
