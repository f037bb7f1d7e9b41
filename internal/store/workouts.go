package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/fitlog/internal/stats"
	"github.com/sirupsen/logrus"
)

func (s *Store) CreateWorkout(in WorkoutInput) (*stats.WorkoutRecord, error) {
	var id int64
	err := s.withTx(func(tx *sql.Tx) error {
		now := time.Now().UTC().Format(time.RFC3339)
		res, err := tx.Exec(
			`INSERT INTO workouts (date, duration, notes, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			formatDate(in.Date), max(in.DurationMinutes, 0), strings.TrimSpace(in.Notes), now, now,
		)
		if err != nil {
			return fmt.Errorf("insert workout: %w", err)
		}
		id, _ = res.LastInsertId()
		return insertDetails(tx, id, in.Details)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"workout_id": id, "details": len(in.Details)}).Debug("workout created")
	return s.GetWorkout(id)
}

// UpdateWorkout overwrites a workout and replaces all of its details.
func (s *Store) UpdateWorkout(id int64, in WorkoutInput) (*stats.WorkoutRecord, error) {
	err := s.withTx(func(tx *sql.Tx) error {
		now := time.Now().UTC().Format(time.RFC3339)
		res, err := tx.Exec(
			`UPDATE workouts SET date = ?, duration = ?, notes = ?, updated_at = ? WHERE id = ?`,
			formatDate(in.Date), max(in.DurationMinutes, 0), strings.TrimSpace(in.Notes), now, id,
		)
		if err != nil {
			return fmt.Errorf("update workout %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("update workout %d: %w", id, sql.ErrNoRows)
		}
		if _, err := tx.Exec(`DELETE FROM workout_details WHERE workout_id = ?`, id); err != nil {
			return fmt.Errorf("clear details of workout %d: %w", id, err)
		}
		return insertDetails(tx, id, in.Details)
	})
	if err != nil {
		return nil, err
	}
	return s.GetWorkout(id)
}

func insertDetails(tx *sql.Tx, workoutID int64, details []DetailInput) error {
	for i, d := range details {
		_, err := tx.Exec(
			`INSERT INTO workout_details (workout_id, exercise_id, position, sets, reps, weight) VALUES (?, ?, ?, ?, ?, ?)`,
			workoutID, d.ExerciseID, i, d.Sets, d.Reps, d.WeightKg,
		)
		if err != nil {
			return fmt.Errorf("insert detail %d of workout %d: %w", i, workoutID, err)
		}
	}
	return nil
}

func (s *Store) DeleteWorkout(id int64) error {
	res, err := s.db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete workout %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete workout %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (s *Store) GetWorkout(id int64) (*stats.WorkoutRecord, error) {
	w := &stats.WorkoutRecord{}
	var date string
	err := s.db.QueryRow(
		`SELECT id, date, duration, notes FROM workouts WHERE id = ?`, id,
	).Scan(&w.ID, &date, &w.DurationMinutes, &w.Notes)
	if err != nil {
		return nil, fmt.Errorf("get workout %d: %w", id, err)
	}
	w.Date = parseDate(date)

	details, err := s.loadDetails(`WHERE d.workout_id = ?`, id)
	if err != nil {
		return nil, err
	}
	w.Details = details[id]
	return w, nil
}

// ListWorkouts returns workouts newest first, each with its details in
// entry order.
func (s *Store) ListWorkouts(f WorkoutFilter) ([]stats.WorkoutRecord, error) {
	where := ` WHERE 1=1`
	var args []any
	if f.From != nil {
		where += ` AND date >= ?`
		args = append(args, formatDate(*f.From))
	}
	if f.To != nil {
		where += ` AND date <= ?`
		args = append(args, formatDate(*f.To))
	}

	query := `SELECT id, date, duration, notes FROM workouts` + where + ` ORDER BY date DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	var workouts []stats.WorkoutRecord
	for rows.Next() {
		var w stats.WorkoutRecord
		var date string
		if err := rows.Scan(&w.ID, &date, &w.DurationMinutes, &w.Notes); err != nil {
			rows.Close()
			return nil, err
		}
		w.Date = parseDate(date)
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(workouts) == 0 {
		return workouts, nil
	}

	ids := make([]any, len(workouts))
	for i, w := range workouts {
		ids[i] = w.ID
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	details, err := s.loadDetails(`WHERE d.workout_id IN (`+placeholders+`)`, ids...)
	if err != nil {
		return nil, err
	}
	for i := range workouts {
		workouts[i].Details = details[workouts[i].ID]
	}
	return workouts, nil
}

// loadDetails reads workout details matching clause, grouped by workout.
// A detail whose exercise was deleted comes back with a nil Exercise.
func (s *Store) loadDetails(clause string, args ...any) (map[int64][]stats.SetDetail, error) {
	rows, err := s.db.Query(`
		SELECT d.workout_id, d.exercise_id,
		       COALESCE(e.name, ''), COALESCE(e.body_part, ''), COALESCE(c.name, ''),
		       COALESCE(d.sets, 0), COALESCE(d.reps, 0), COALESCE(d.weight, 0)
		FROM workout_details d
		LEFT JOIN exercises e ON e.id = d.exercise_id
		LEFT JOIN categories c ON c.id = e.category_id
		`+clause+`
		ORDER BY d.workout_id, d.position, d.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("load workout details: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]stats.SetDetail)
	for rows.Next() {
		var (
			workoutID                int64
			exerciseID               sql.NullInt64
			name, bodyPart, category string
			d                        stats.SetDetail
		)
		if err := rows.Scan(&workoutID, &exerciseID, &name, &bodyPart, &category, &d.Sets, &d.Reps, &d.WeightKg); err != nil {
			return nil, err
		}
		if exerciseID.Valid {
			d.Exercise = &stats.ExerciseRef{
				ID:       exerciseID.Int64,
				Name:     name,
				BodyPart: bodyPart,
				Category: category,
			}
		}
		out[workoutID] = append(out[workoutID], d)
	}
	return out, rows.Err()
}

// CountWorkouts returns how many workouts are stored.
func (s *Store) CountWorkouts() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM workouts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count workouts: %w", err)
	}
	return n, nil
}
