package stats

import "slices"

// ProgressSummary describes the body-weight trend of a set of logs.
type ProgressSummary struct {
	Logs      []ProgressLogEntry // oldest first
	StartKg   float64
	CurrentKg float64
	ChangeKg  float64
}

// SummarizeProgress sorts a copy of logs by date and reports the first and
// last weights. ok is false when there are no logs.
func SummarizeProgress(logs []ProgressLogEntry) (ProgressSummary, bool) {
	if len(logs) == 0 {
		return ProgressSummary{Logs: []ProgressLogEntry{}}, false
	}
	sorted := sortedLogs(logs)
	first, last := sorted[0], sorted[len(sorted)-1]
	return ProgressSummary{
		Logs:      sorted,
		StartKg:   first.WeightKg,
		CurrentKg: last.WeightKg,
		ChangeKg:  roundTenth(last.WeightKg - first.WeightKg),
	}, true
}

// LatestWeight returns the weight of the most recent log. When several logs
// share the latest date the first one in input order wins.
func LatestWeight(logs []ProgressLogEntry) (float64, bool) {
	if len(logs) == 0 {
		return 0, false
	}
	latest := logs[0]
	for _, l := range logs[1:] {
		if l.Date.After(latest.Date) {
			latest = l
		}
	}
	return latest.WeightKg, true
}

func sortedLogs(logs []ProgressLogEntry) []ProgressLogEntry {
	out := slices.Clone(logs)
	slices.SortStableFunc(out, func(a, b ProgressLogEntry) int {
		return a.Date.Compare(b.Date)
	})
	return out
}
