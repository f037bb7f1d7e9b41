package stats

import "time"

// VolumePoint is the lifted volume of a single workout.
type VolumePoint struct {
	WorkoutID int64
	Date      time.Time
	Label     string
	Tonnes    float64
}

// RecentVolumes returns the volume of the last n workouts in date order.
func RecentVolumes(records []WorkoutRecord, n int, label LabelFunc) []VolumePoint {
	if label == nil {
		label = ShortDateLabel
	}
	if n <= 0 || len(records) == 0 {
		return []VolumePoint{}
	}

	sorted := Chronological(records)
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}

	out := make([]VolumePoint, 0, len(sorted))
	for _, w := range sorted {
		var kg float64
		for _, d := range w.Details {
			kg += d.Volume()
		}
		out = append(out, VolumePoint{
			WorkoutID: w.ID,
			Date:      w.Date,
			Label:     label(w.Date),
			Tonnes:    roundTenth(kg / 1000),
		})
	}
	return out
}
