package stats

import "math"

// Band is the BMI classification shown next to the index.
type Band string

const (
	Underweight Band = "Underweight"
	Normal      Band = "Normal"
	Overweight  Band = "Overweight"
	Obese       Band = "Obese"
)

// Lower bounds of each band. 24.9 and 29.9 already count as the upper band.
const (
	normalFrom     = 18.5
	overweightFrom = 24.9
	obeseFrom      = 29.9
)

type BodyMetrics struct {
	BMI  float64
	Band Band
}

// ComputeBMI returns the body mass index rounded to one decimal and its
// band. ok is false when height or weight is missing or not positive, in
// which case the metric should be hidden.
func ComputeBMI(heightCm, weightKg float64) (BodyMetrics, bool) {
	if !(heightCm > 0) || !(weightKg > 0) || math.IsInf(heightCm, 0) || math.IsInf(weightKg, 0) {
		return BodyMetrics{}, false
	}
	m := heightCm / 100
	bmi := roundTenth(weightKg / (m * m))
	return BodyMetrics{BMI: bmi, Band: Classify(bmi)}, true
}

// Classify maps an already rounded BMI onto its band.
func Classify(bmi float64) Band {
	switch {
	case bmi < normalFrom:
		return Underweight
	case bmi < overweightFrom:
		return Normal
	case bmi < obeseFrom:
		return Overweight
	default:
		return Obese
	}
}
