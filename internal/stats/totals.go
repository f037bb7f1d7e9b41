package stats

// Totals is the headline summary of a workout snapshot.
type Totals struct {
	Count           int
	DurationMinutes int
	VolumeKg        float64
}

// ComputeTotals sums duration and lifted volume over records.
func ComputeTotals(records []WorkoutRecord) Totals {
	t := Totals{Count: len(records)}
	for _, w := range records {
		t.DurationMinutes += w.minutes()
		for _, d := range w.Details {
			t.VolumeKg += d.Volume()
		}
	}
	return t
}

// VolumeTonnes returns the volume in tonnes rounded to one decimal.
func (t Totals) VolumeTonnes() float64 {
	return roundTenth(t.VolumeKg / 1000)
}
