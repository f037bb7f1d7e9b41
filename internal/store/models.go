package store

import "time"

type Category struct {
	ID   int64
	Name string
}

// DetailInput is one exercise row of a workout being saved. Nil numbers
// are stored as NULL and read back as zero.
type DetailInput struct {
	ExerciseID *int64
	Sets       *int
	Reps       *int
	WeightKg   *float64
}

type WorkoutInput struct {
	Date            time.Time
	DurationMinutes int
	Notes           string
	Details         []DetailInput
}

// WorkoutFilter is used to filter workouts in queries. From and To are
// inclusive calendar dates.
type WorkoutFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// Profile is the per-user body data edited on the profile screen.
type Profile struct {
	HeightCm float64 `json:"height,omitempty"`
	WeightKg float64 `json:"weight,omitempty"`
	Age      int     `json:"age,omitempty"`
	Gender   string  `json:"gender,omitempty"`
}

type Setting struct {
	Key   string
	Value string
}

const dateLayout = time.DateOnly

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// parseDate reads a stored calendar date as local midnight.
func parseDate(s string) time.Time {
	t, _ := time.ParseInLocation(dateLayout, s, time.Local)
	return t
}
