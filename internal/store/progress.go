package store

import (
	"fmt"
	"time"

	"github.com/sadopc/fitlog/internal/stats"
)

func (s *Store) AddProgressLog(date time.Time, weightKg float64) (*stats.ProgressLogEntry, error) {
	if weightKg <= 0 {
		return nil, fmt.Errorf("add progress log: weight must be positive, got %v", weightKg)
	}
	res, err := s.db.Exec(
		`INSERT INTO progress_logs (date, weight) VALUES (?, ?)`,
		formatDate(date), weightKg,
	)
	if err != nil {
		return nil, fmt.Errorf("add progress log: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetProgressLog(id)
}

func (s *Store) GetProgressLog(id int64) (*stats.ProgressLogEntry, error) {
	l := &stats.ProgressLogEntry{}
	var date string
	err := s.db.QueryRow(
		`SELECT id, date, weight FROM progress_logs WHERE id = ?`, id,
	).Scan(&l.ID, &date, &l.WeightKg)
	if err != nil {
		return nil, fmt.Errorf("get progress log %d: %w", id, err)
	}
	l.Date = parseDate(date)
	return l, nil
}

// ListProgressLogs returns every log in insertion order. Callers sort
// through stats.SummarizeProgress.
func (s *Store) ListProgressLogs() ([]stats.ProgressLogEntry, error) {
	rows, err := s.db.Query(`SELECT id, date, weight FROM progress_logs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list progress logs: %w", err)
	}
	defer rows.Close()

	var logs []stats.ProgressLogEntry
	for rows.Next() {
		var l stats.ProgressLogEntry
		var date string
		if err := rows.Scan(&l.ID, &date, &l.WeightKg); err != nil {
			return nil, err
		}
		l.Date = parseDate(date)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *Store) DeleteProgressLog(id int64) error {
	_, err := s.db.Exec(`DELETE FROM progress_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete progress log %d: %w", id, err)
	}
	return nil
}
