package analytics

// GrowthRate computes period-over-period percentage growth:
// (current - previous) / |previous| * 100. Returns nil when previous
// is zero; division by zero is an expected edge, not ±Inf.
func GrowthRate(current, previous float64) *float64 {
	if previous == 0 {
		return nil
	}

	abs := previous
	if abs < 0 {
		abs = -abs
	}

	rate := (current - previous) / abs * 100
	return &rate
}

// NormalizeToIndex rebases a value against a base period (base = 100).
// Returns 0 when base is zero. That sentinel is kept for compatibility
// with published reports even though it is indistinguishable from a
// legitimately zero index; see DESIGN.md.
func NormalizeToIndex(current, base float64) float64 {
	if base == 0 {
		return 0
	}
	return current / base * 100
}

// WeightedAverage computes sum(value*weight)/sum(weight). Returns 0
// when total weight is zero or the slices differ in length.
func WeightedAverage(values, weights []float64) float64 {
	if len(values) != len(weights) {
		return 0
	}

	var weightedSum, totalWeight float64
	for i, v := range values {
		weightedSum += v * weights[i]
		totalWeight += weights[i]
	}

	if totalWeight == 0 {
		return 0
	}

	return weightedSum / totalWeight
}
