package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/fitlog/internal/stats"
)

type Format int

const (
	FormatCSV Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "JSON"
	}
	return "CSV"
}

func (f Format) ext() string {
	if f == FormatJSON {
		return "json"
	}
	return "csv"
}

// Path returns dir/fitlog-export-YYYY-MM-DD.<ext> for the given day.
func Path(dir string, f Format, on time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("fitlog-export-%s.%s", on.Format("2006-01-02"), f.ext()))
}

type jsonExport struct {
	ExportedAt string         `json:"exported_at"`
	Summary    jsonSummary    `json:"summary"`
	Workouts   []jsonWorkout  `json:"workouts"`
	Progress   []jsonProgress `json:"progress,omitempty"`
}

type jsonSummary struct {
	Count           int     `json:"count"`
	DurationMinutes int     `json:"duration_minutes"`
	VolumeKg        float64 `json:"volume_kg"`
	Favorite        string  `json:"favorite_exercise"`
}

type jsonWorkout struct {
	ID              int64        `json:"id"`
	Date            string       `json:"date"`
	DurationMinutes int          `json:"duration_minutes"`
	Notes           string       `json:"notes,omitempty"`
	Details         []jsonDetail `json:"details"`
}

type jsonDetail struct {
	ExerciseID *int64  `json:"exercise_id,omitempty"`
	Exercise   string  `json:"exercise"`
	BodyPart   string  `json:"body_part,omitempty"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	WeightKg   float64 `json:"weight_kg"`
}

type jsonProgress struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
}

// ToJSON writes workouts, their summary and the progress logs to path.
func ToJSON(workouts []stats.WorkoutRecord, logs []stats.ProgressLogEntry, path string) error {
	totals := stats.ComputeTotals(workouts)
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Summary: jsonSummary{
			Count:           totals.Count,
			DurationMinutes: totals.DurationMinutes,
			VolumeKg:        totals.VolumeKg,
			Favorite:        stats.FavoriteExercise(stats.FlattenDetails(stats.Chronological(workouts))),
		},
		Workouts: make([]jsonWorkout, 0, len(workouts)),
	}

	for _, w := range workouts {
		jw := jsonWorkout{
			ID:              w.ID,
			Date:            stats.DayKey(w.Date),
			DurationMinutes: w.DurationMinutes,
			Notes:           w.Notes,
			Details:         make([]jsonDetail, 0, len(w.Details)),
		}
		for _, d := range w.Details {
			jd := jsonDetail{Sets: d.Sets, Reps: d.Reps, WeightKg: d.WeightKg}
			jd.Exercise, jd.BodyPart = exerciseLabels(d)
			if d.Exercise != nil {
				id := d.Exercise.ID
				jd.ExerciseID = &id
			}
			jw.Details = append(jw.Details, jd)
		}
		export.Workouts = append(export.Workouts, jw)
	}

	if sum, ok := stats.SummarizeProgress(logs); ok {
		for _, l := range sum.Logs {
			export.Progress = append(export.Progress, jsonProgress{Date: stats.DayKey(l.Date), WeightKg: l.WeightKg})
		}
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
