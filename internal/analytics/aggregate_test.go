package analytics

import (
	"reflect"
	"testing"
)

func TestAggregate_Revenue(t *testing.T) {
	catalog := DefaultCatalog()

	agg := Aggregate(catalog, "revenue", []float64{100, 200, 300})

	if agg.Sum == nil {
		t.Fatal("revenue is summable, Sum should be set")
	}
	if *agg.Sum != 600 {
		t.Errorf("Sum = %v, want 600", *agg.Sum)
	}
	if agg.Average != 200 {
		t.Errorf("Average = %v, want 200", agg.Average)
	}
	if agg.Median != 200 {
		t.Errorf("Median = %v, want 200", agg.Median)
	}
	if agg.Min != 100 || agg.Max != 300 {
		t.Errorf("Min/Max = %v/%v, want 100/300", agg.Min, agg.Max)
	}
	if agg.Count != 3 {
		t.Errorf("Count = %d, want 3", agg.Count)
	}
}

func TestAggregate_NonSummableMetric(t *testing.T) {
	catalog := DefaultCatalog()

	// All values numeric, yet a margin never sums across companies
	agg := Aggregate(catalog, "gross margin", []float64{0.6, 0.7, 0.8})

	if agg.Sum != nil {
		t.Errorf("Sum = %v, want nil for non-summable metric", *agg.Sum)
	}
	if agg.Count != 3 {
		t.Errorf("Count = %d, want 3", agg.Count)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	agg := Aggregate(DefaultCatalog(), "revenue", nil)

	if agg.Sum != nil {
		t.Errorf("Sum = %v, want nil on empty input", *agg.Sum)
	}
	if agg.Count != 0 {
		t.Errorf("Count = %d, want 0", agg.Count)
	}
	if agg.Average != 0 || agg.Median != 0 || agg.Min != 0 || agg.Max != 0 {
		t.Errorf("expected zeroed structure, got %+v", agg)
	}
}

func TestAggregate_MedianEvenCount(t *testing.T) {
	agg := Aggregate(DefaultCatalog(), "headcount", []float64{10, 20, 30, 40})

	if agg.Median != 25 {
		t.Errorf("Median = %v, want 25", agg.Median)
	}
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	values := []float64{300, 100, 200}
	Aggregate(DefaultCatalog(), "revenue", values)

	if !reflect.DeepEqual(values, []float64{300, 100, 200}) {
		t.Errorf("input order mutated: %v", values)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	catalog := DefaultCatalog()
	values := []float64{42.5, 17.25, 99.125, 3.0625}

	first := Aggregate(catalog, "arr", values)
	second := Aggregate(catalog, "arr", values)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-running aggregation changed output: %+v vs %+v", first, second)
	}
}

func TestAggregate_SingleValue(t *testing.T) {
	agg := Aggregate(DefaultCatalog(), "mrr", []float64{5000})

	if agg.Sum == nil || *agg.Sum != 5000 {
		t.Errorf("Sum = %v, want 5000", agg.Sum)
	}
	if agg.Median != 5000 || agg.Min != 5000 || agg.Max != 5000 {
		t.Errorf("single-value stats wrong: %+v", agg)
	}
}
