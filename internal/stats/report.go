package stats

const (
	DefaultTrendGroups   = 10
	DefaultRecentVolumes = 5
)

// ReportOptions controls the windows used by Analyze. Zero values fall back
// to the defaults.
type ReportOptions struct {
	TrendGroups   int
	RecentVolumes int
	Label         LabelFunc
}

// Report bundles everything the analytics view renders.
type Report struct {
	Totals       Totals
	Trend        []DayBucket
	Distribution []Slice
	Ranking      []ExerciseCount
	Favorite     string
	Volumes      []VolumePoint
}

// Analyze computes a full Report from one snapshot of records in any order.
// Ranking ties are settled in date order, oldest first.
func Analyze(records []WorkoutRecord, opts ReportOptions) Report {
	if opts.TrendGroups <= 0 {
		opts.TrendGroups = DefaultTrendGroups
	}
	if opts.RecentVolumes <= 0 {
		opts.RecentVolumes = DefaultRecentVolumes
	}

	ordered := Chronological(records)
	details := FlattenDetails(ordered)
	ranking := RankExercises(details)
	favorite := NoData
	if len(ranking) > 0 {
		favorite = ranking[0].Name
	}

	return Report{
		Totals:       ComputeTotals(records),
		Trend:        ObservedTrend(ordered, opts.TrendGroups, opts.Label),
		Distribution: BodyPartDistribution(details),
		Ranking:      ranking,
		Favorite:     favorite,
		Volumes:      RecentVolumes(ordered, opts.RecentVolumes, opts.Label),
	}
}
