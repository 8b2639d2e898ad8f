package analytics

// Temporality is the binding decision for how a metric rolls up over
// time: flow quantities sum across periods, point-in-time quantities
// keep the latest value.
type Temporality string

const (
	TemporalitySum    Temporality = "sum"
	TemporalityLatest Temporality = "latest"
)

// Confidence is an advisory tier attached to a classification. It is
// UI metadata only; the aggregation decision never depends on it.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Classification carries the advisory result.
type Classification struct {
	Temporality Temporality `json:"temporality"`
	Confidence  Confidence  `json:"confidence"`
	Reason      string      `json:"reason"`
}

// Classify returns the binding temporal classification for a metric.
// Exact case-insensitive match against the flow catalog means sum;
// everything else is latest. Unknown metrics deliberately default to
// latest: silently summing an unrecognized rate-like metric would be
// a worse failure than treating it as a snapshot.
func Classify(catalog *Catalog, metricName string) Temporality {
	if catalog.IsFlow(metricName) {
		return TemporalitySum
	}
	return TemporalityLatest
}

// ClassifyWithConfidence returns the same decision as Classify plus an
// advisory confidence tier and a human-readable justification. The
// regex heuristics only ever influence the tier and reason, never the
// temporality the aggregation uses.
func ClassifyWithConfidence(catalog *Catalog, metricName string) Classification {
	if catalog.IsFlow(metricName) {
		return Classification{
			Temporality: TemporalitySum,
			Confidence:  ConfidenceHigh,
			Reason:      "exact match in flow-metric catalog",
		}
	}

	if catalog.IsPointInTime(metricName) {
		return Classification{
			Temporality: TemporalityLatest,
			Confidence:  ConfidenceHigh,
			Reason:      "exact match in point-in-time catalog",
		}
	}

	name := canonical(metricName)
	for _, h := range catalog.heuristics {
		if h.pattern.MatchString(name) {
			return Classification{
				Temporality: h.temporality,
				Confidence:  ConfidenceMedium,
				Reason:      h.reason,
			}
		}
	}

	return Classification{
		Temporality: TemporalityLatest,
		Confidence:  ConfidenceLow,
		Reason:      "unrecognized metric, defaulting to point-in-time",
	}
}
