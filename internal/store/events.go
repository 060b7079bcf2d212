package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/edusuite/internal/api"
)

// RequestEventRow is one recorded gateway call.
type RequestEventRow struct {
	ID           int
	Timestamp    time.Time
	Method       string
	Path         string
	Status       int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo records and queries gateway request events. It implements
// api.Recorder.
type EventRepo struct {
	db *sql.DB
}

// RecordRequest appends one request event.
func (r *EventRepo) RecordRequest(ev api.RequestEvent) error {
	_, err := r.db.Exec(
		`INSERT INTO request_events (method, path, status, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.Method, ev.Path, ev.Status, ev.LatencyMs, ev.Success, ev.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("record request event: %w", err)
	}
	return nil
}

// Recent returns the most recent events, newest first.
func (r *EventRepo) Recent(limit int) ([]RequestEventRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(
		`SELECT id, timestamp, method, path, status, latency_ms, success, error_message
		 FROM request_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query request events: %w", err)
	}
	defer rows.Close()

	var events []RequestEventRow
	for rows.Next() {
		var ev RequestEventRow
		if err := rows.Scan(&ev.ID, &ev.Timestamp, &ev.Method, &ev.Path, &ev.Status,
			&ev.LatencyMs, &ev.Success, &ev.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan request event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Get returns one event by id, or nil when it does not exist.
func (r *EventRepo) Get(id int) (*RequestEventRow, error) {
	var ev RequestEventRow
	err := r.db.QueryRow(
		`SELECT id, timestamp, method, path, status, latency_ms, success, error_message
		 FROM request_events WHERE id = ?`, id,
	).Scan(&ev.ID, &ev.Timestamp, &ev.Method, &ev.Path, &ev.Status,
		&ev.LatencyMs, &ev.Success, &ev.ErrorMessage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get request event: %w", err)
	}
	return &ev, nil
}
