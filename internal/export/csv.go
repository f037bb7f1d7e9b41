package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/fitlog/internal/stats"
)

var csvHeader = []string{
	"Workout ID", "Date", "Duration (min)", "Exercise", "Body Part", "Sets", "Reps", "Weight (kg)", "Volume (kg)", "Notes",
}

// ToCSV writes one row per exercise detail. Workouts without details get a
// single row with empty exercise columns.
func ToCSV(workouts []stats.WorkoutRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, wo := range workouts {
		base := []string{
			strconv.FormatInt(wo.ID, 10),
			stats.DayKey(wo.Date),
			strconv.Itoa(wo.DurationMinutes),
		}
		if len(wo.Details) == 0 {
			row := append(base, "", "", "", "", "", "", wo.Notes)
			if err := w.Write(row); err != nil {
				return err
			}
			continue
		}
		for _, d := range wo.Details {
			name, part := exerciseLabels(d)
			row := append(append([]string{}, base...),
				name,
				part,
				strconv.Itoa(d.Sets),
				strconv.Itoa(d.Reps),
				formatKg(d.WeightKg),
				formatKg(d.Volume()),
				wo.Notes,
			)
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func exerciseLabels(d stats.SetDetail) (name, bodyPart string) {
	if d.Exercise == nil {
		return "Unknown", ""
	}
	return d.Exercise.Name, d.Exercise.BodyPart
}

func formatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
