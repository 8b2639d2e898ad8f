package contracts

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAggregatedMetric_NilSumMarshalsAsNull(t *testing.T) {
	m := AggregatedMetric{
		Sum:     nil,
		Average: 12.5,
		Median:  12.0,
		Min:     10.0,
		Max:     15.0,
		Count:   4,
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if !strings.Contains(string(data), `"sum":null`) {
		t.Errorf("expected sum to marshal as null, got %s", data)
	}

	// And it must round-trip back to nil, not zero
	var decoded AggregatedMetric
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Sum != nil {
		t.Errorf("Sum = %v, want nil", *decoded.Sum)
	}
}

func TestAggregatedMetric_SumMarshalsWhenSet(t *testing.T) {
	sum := 600.0
	m := AggregatedMetric{Sum: &sum, Average: 200, Median: 200, Min: 100, Max: 300, Count: 3}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if !strings.Contains(string(data), `"sum":600`) {
		t.Errorf("expected sum 600 in output, got %s", data)
	}
}

func TestPeriodType_Valid(t *testing.T) {
	for _, p := range []PeriodType{PeriodMonthly, PeriodQuarterly, PeriodAnnual} {
		if !p.Valid() {
			t.Errorf("%s should be valid", p)
		}
	}

	if PeriodType("weekly").Valid() {
		t.Error("weekly should not be valid")
	}
}

func TestBenchmarkRow_GroupKey(t *testing.T) {
	industry := "fintech"
	stage := "series-a"

	full := &BenchmarkRow{MetricName: "arr", PeriodType: PeriodQuarterly, Industry: &industry, Stage: &stage}
	overall := &BenchmarkRow{MetricName: "arr", PeriodType: PeriodQuarterly}

	if full.GroupKey() == overall.GroupKey() {
		t.Error("specific and overall rows must have distinct group keys")
	}

	if overall.GroupKey() != "arr|quarterly||" {
		t.Errorf("overall key = %q", overall.GroupKey())
	}
}
