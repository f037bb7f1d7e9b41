package stats

import "time"

// DayBucket is one point of a duration series.
type DayBucket struct {
	Date            time.Time
	Label           string
	DurationMinutes int
}

// LabelFunc turns a calendar date into a chart label.
type LabelFunc func(time.Time) string

// WeekdayLabel renders labels like "Mon 02".
func WeekdayLabel(t time.Time) string { return t.Format("Mon 02") }

// ShortDateLabel renders labels like "2 Jan". It carries no year.
func ShortDateLabel(t time.Time) string { return t.Format("2 Jan") }

// TrailingWindow returns exactly days buckets ending at today, oldest first.
// Days without workouts are present with a zero duration. A record belongs
// to a bucket when its calendar date equals the bucket's date.
func TrailingWindow(records []WorkoutRecord, today time.Time, days int) []DayBucket {
	if days <= 0 {
		return []DayBucket{}
	}
	y, m, d := today.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, today.Location())

	buckets := make([]DayBucket, days)
	for i := range buckets {
		day := end.AddDate(0, 0, i-days+1)
		buckets[i] = DayBucket{Date: day, Label: WeekdayLabel(day)}
	}

	for _, w := range records {
		for i := range buckets {
			if sameDay(w.Date, buckets[i].Date) {
				buckets[i].DurationMinutes += w.minutes()
				break
			}
		}
	}
	return buckets
}

// ObservedTrend groups every record by label(date) in chronological
// first-seen order, sums duration per group and keeps the last groups
// entries. Gaps between active days are not filled; the window is counted
// in groups, not calendar days. A nil label uses ShortDateLabel.
func ObservedTrend(records []WorkoutRecord, groups int, label LabelFunc) []DayBucket {
	if label == nil {
		label = ShortDateLabel
	}
	if groups <= 0 || len(records) == 0 {
		return []DayBucket{}
	}

	sorted := Chronological(records)

	var series []DayBucket
	index := make(map[string]int)
	for _, w := range sorted {
		key := label(w.Date)
		i, ok := index[key]
		if !ok {
			i = len(series)
			index[key] = i
			series = append(series, DayBucket{Date: w.Date, Label: key})
		}
		series[i].DurationMinutes += w.minutes()
	}

	if len(series) > groups {
		series = series[len(series)-groups:]
	}
	return series
}
