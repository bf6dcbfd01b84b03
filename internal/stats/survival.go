package stats

import (
	"math"
	"sort"
)

// SurvivalPoint is one step of a cohort survival series.
type SurvivalPoint struct {
	Age      float64 `json:"age"`
	Survival float64 `json:"survival"`
}

// SurvivalCurve returns the fraction of the cohort still alive at each
// whole year from 0 through the longest observed lifespan. A life
// counts as surviving an age when its lifespan reaches it.
func SurvivalCurve(lifespans []float64) []SurvivalPoint {
	n := len(lifespans)
	if n == 0 {
		return nil
	}

	sorted := append([]float64(nil), lifespans...)
	sort.Float64s(sorted)

	maxAge := int(math.Ceil(sorted[n-1]))
	points := make([]SurvivalPoint, 0, maxAge+1)
	died := 0
	for age := 0; age <= maxAge; age++ {
		for died < n && sorted[died] < float64(age) {
			died++
		}
		points = append(points, SurvivalPoint{
			Age:      float64(age),
			Survival: float64(n-died) / float64(n),
		})
	}
	return points
}

// HistogramBin counts values in [Low, High); the last bin includes its
// upper bound.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram buckets values into equal width bins aligned to multiples
// of the bin width. Empty input or a non-positive width yields nil.
func Histogram(values []float64, binWidth float64) []HistogramBin {
	if len(values) == 0 || binWidth <= 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	start := math.Floor(lo/binWidth) * binWidth
	binCount := int((hi-start)/binWidth) + 1
	bins := make([]HistogramBin, binCount)
	for i := range bins {
		bins[i].Low = start + float64(i)*binWidth
		bins[i].High = bins[i].Low + binWidth
	}
	for _, v := range values {
		i := int((v - start) / binWidth)
		if i >= binCount {
			i = binCount - 1
		}
		bins[i].Count++
	}
	return bins
}
