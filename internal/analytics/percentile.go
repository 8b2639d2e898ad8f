package analytics

import (
	"sort"
)

// MinSampleSize is the hard floor for publishing percentile stats.
// Distributions with fewer observations are statistically meaningless
// and must not be published.
const MinSampleSize = 5

// Percentiles holds the published distribution thresholds.
type Percentiles struct {
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// CalculatePercentiles computes the 25th/50th/75th/90th percentiles of
// a value distribution. Returns nil when the sample is below the floor.
// The input is not mutated; computation runs on a sorted copy with
// linear interpolation between order statistics at rank p/100*(n-1),
// so identical input always yields identical thresholds across runs.
func CalculatePercentiles(values []float64) *Percentiles {
	if len(values) < MinSampleSize {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return &Percentiles{
		P25: percentileAt(sorted, 25),
		P50: percentileAt(sorted, 50),
		P75: percentileAt(sorted, 75),
		P90: percentileAt(sorted, 90),
	}
}

// percentileAt interpolates linearly between the order statistics
// bracketing rank p/100*(n-1). Expects a sorted, non-empty slice.
func percentileAt(sorted []float64, p float64) float64 {
	rank := p / 100 * float64(len(sorted)-1)
	lower := int(rank)
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}

	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// CompanyPercentile maps a company's value to an approximate
// percentile rank against precomputed thresholds. It locates the
// bracket the value falls into and interpolates linearly within it:
// values below P25 interpolate up from 0, values above P90 interpolate
// toward 100 using the P75-P90 span as the tail scale, capped at the
// theoretical bound. This is an approximation against four thresholds,
// not an exact empirical-CDF lookup.
func CompanyPercentile(value float64, p Percentiles) float64 {
	switch {
	case value <= p.P25:
		// Interpolate from 0 toward the 25th threshold. Without a lower
		// threshold the origin stands in for the distribution floor.
		if p.P25 <= 0 {
			return 0
		}
		rank := value / p.P25 * 25
		return clampRank(rank, 0, 25)

	case value <= p.P50:
		return interpolateRank(value, p.P25, p.P50, 25, 50)

	case value <= p.P75:
		return interpolateRank(value, p.P50, p.P75, 50, 75)

	case value <= p.P90:
		return interpolateRank(value, p.P75, p.P90, 75, 90)

	default:
		span := p.P90 - p.P75
		if span <= 0 {
			return 100
		}
		rank := 90 + (value-p.P90)/span*10
		return clampRank(rank, 90, 100)
	}
}

// interpolateRank maps value from [lo, hi] onto [rankLo, rankHi].
// Degenerate brackets (hi == lo) return the bracket's lower rank.
func interpolateRank(value, lo, hi, rankLo, rankHi float64) float64 {
	if hi == lo {
		return rankLo
	}
	rank := rankLo + (value-lo)/(hi-lo)*(rankHi-rankLo)
	return clampRank(rank, rankLo, rankHi)
}

func clampRank(rank, lo, hi float64) float64 {
	if rank < lo {
		return lo
	}
	if rank > hi {
		return hi
	}
	return rank
}
