// Package stats derives dashboard and analytics figures from workout and
// progress snapshots. Every function is pure: inputs are never modified and
// nil slices are treated like empty ones.
package stats

import (
	"math"
	"slices"
	"time"
)

// NoData is the placeholder returned when nothing can be ranked.
const NoData = "No data"

// OtherLabel is used for details without a known body part.
const OtherLabel = "Other"

// ExerciseRef is the catalog entry a detail points at.
type ExerciseRef struct {
	ID       int64
	Name     string
	BodyPart string
	Category string
}

// SetDetail is one exercise performance inside a workout.
type SetDetail struct {
	Exercise *ExerciseRef // nil when the exercise was deleted from the catalog
	Sets     int
	Reps     int
	WeightKg float64
}

// Volume returns sets*reps*weight. Negative factors count as zero.
func (d SetDetail) Volume() float64 {
	if d.Sets <= 0 || d.Reps <= 0 || d.WeightKg <= 0 {
		return 0
	}
	return float64(d.Sets) * float64(d.Reps) * d.WeightKg
}

// WorkoutRecord is one logged training session.
type WorkoutRecord struct {
	ID              int64
	Date            time.Time // calendar date; time of day is ignored
	DurationMinutes int
	Notes           string
	Details         []SetDetail
}

func (w WorkoutRecord) minutes() int {
	if w.DurationMinutes < 0 {
		return 0
	}
	return w.DurationMinutes
}

// ProgressLogEntry is a single body-weight measurement.
type ProgressLogEntry struct {
	ID       int64
	Date     time.Time
	WeightKg float64
}

// DayKey formats t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Chronological returns a copy of records sorted oldest first. Records on
// the same date keep their relative order.
func Chronological(records []WorkoutRecord) []WorkoutRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b WorkoutRecord) int {
		return a.Date.Compare(b.Date)
	})
	return sorted
}

// roundTenth rounds half up on the binary value: a quotient landing on
// 24.85 becomes 24.9 while 24.84375 stays at 24.8.
func roundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
