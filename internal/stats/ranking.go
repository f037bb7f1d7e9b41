package stats

import (
	"slices"
	"strings"
)

// ExerciseCount is how often one exercise was performed.
type ExerciseCount struct {
	Name  string
	Count int
}

// RankExercises counts details per exercise name, most frequent first.
// Equal counts keep the order of first appearance. Details without a
// resolvable name are left out.
func RankExercises(details []SetDetail) []ExerciseCount {
	out := []ExerciseCount{}
	index := make(map[string]int)
	for _, d := range details {
		if d.Exercise == nil {
			continue
		}
		name := strings.TrimSpace(d.Exercise.Name)
		if name == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, ExerciseCount{Name: name})
		}
		out[i].Count++
	}

	slices.SortStableFunc(out, func(a, b ExerciseCount) int {
		return b.Count - a.Count
	})
	return out
}

// FavoriteExercise returns the most performed exercise or NoData. Ties go
// to the exercise seen first, so callers pass details in date order.
func FavoriteExercise(details []SetDetail) string {
	ranked := RankExercises(details)
	if len(ranked) == 0 {
		return NoData
	}
	return ranked[0].Name
}
