package store

import (
	"database/sql"
	"fmt"
	"time"
)

// AttemptRecord is the local record of one graded quiz attempt.
type AttemptRecord struct {
	ID        string // client-generated UUID
	QuizID    int
	QuizTitle string
	Score     float64
	Answered  int
	Total     int
	CreatedAt time.Time
}

// AttemptRepo keeps the local quiz attempt history. The server owns the
// authoritative attempt record; this log exists for offline review.
type AttemptRepo struct {
	db *sql.DB
}

// Append stores one attempt record.
func (r *AttemptRepo) Append(rec AttemptRecord) error {
	_, err := r.db.Exec(
		`INSERT INTO attempts (id, quiz_id, quiz_title, score, answered, total)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.QuizID, rec.QuizTitle, rec.Score, rec.Answered, rec.Total,
	)
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	return nil
}

// Recent returns the most recent attempts, newest first.
func (r *AttemptRepo) Recent(limit int) ([]AttemptRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(
		`SELECT id, quiz_id, quiz_title, score, answered, total, created_at
		 FROM attempts ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var recs []AttemptRecord
	for rows.Next() {
		var rec AttemptRecord
		if err := rows.Scan(&rec.ID, &rec.QuizID, &rec.QuizTitle, &rec.Score,
			&rec.Answered, &rec.Total, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
