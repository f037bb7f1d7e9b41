package stats

import "strings"

// Slice is one labelled share of a distribution.
type Slice struct {
	Label string
	Count int
}

// FlattenDetails concatenates the details of every record in input order.
func FlattenDetails(records []WorkoutRecord) []SetDetail {
	var n int
	for _, w := range records {
		n += len(w.Details)
	}
	out := make([]SetDetail, 0, n)
	for _, w := range records {
		out = append(out, w.Details...)
	}
	return out
}

// BodyPartDistribution counts details per body part. Labels are upper-cased
// and listed in first-seen order. Details with a blank body part or no
// exercise at all are counted as OTHER, so the counts always sum to
// len(details).
func BodyPartDistribution(details []SetDetail) []Slice {
	out := []Slice{}
	index := make(map[string]int)
	for _, d := range details {
		var part string
		if d.Exercise != nil {
			part = strings.TrimSpace(d.Exercise.BodyPart)
		}
		if part == "" {
			part = OtherLabel
		}
		label := strings.ToUpper(part)

		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, Slice{Label: label})
		}
		out[i].Count++
	}
	return out
}
