package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/fundlens/backend/internal/contracts"
)

func testInvestments() []*contracts.Investment {
	return []*contracts.Investment{
		{InvestedAmount: 1000, CurrentValue: 1500, RealizedValue: 0},
		{InvestedAmount: 2000, CurrentValue: 1000, RealizedValue: 2500},
		{InvestedAmount: 500, CurrentValue: 0, RealizedValue: 800},
	}
}

func TestFundMultiples(t *testing.T) {
	investments := testInvestments()
	// invested=3500, current=2500, realized=3300

	tvpi := TVPI(investments)
	if tvpi == nil {
		t.Fatal("TVPI should compute")
	}
	if want := 5800.0 / 3500.0; math.Abs(*tvpi-want) > 1e-12 {
		t.Errorf("TVPI = %v, want %v", *tvpi, want)
	}

	dpi := DPI(investments)
	if dpi == nil || math.Abs(*dpi-3300.0/3500.0) > 1e-12 {
		t.Errorf("DPI = %v, want %v", dpi, 3300.0/3500.0)
	}

	rvpi := RVPI(investments)
	if rvpi == nil || math.Abs(*rvpi-2500.0/3500.0) > 1e-12 {
		t.Errorf("RVPI = %v, want %v", rvpi, 2500.0/3500.0)
	}

	moic := MOIC(investments)
	if moic == nil || *moic != *tvpi {
		t.Errorf("MOIC = %v, want %v under current model", moic, *tvpi)
	}
}

func TestFundMultiples_TVPIEqualsDPIPlusRVPI(t *testing.T) {
	investments := testInvestments()

	tvpi := TVPI(investments)
	dpi := DPI(investments)
	rvpi := RVPI(investments)

	if math.Abs(*tvpi-(*dpi+*rvpi)) > 1e-9 {
		t.Errorf("TVPI %v != DPI %v + RVPI %v", *tvpi, *dpi, *rvpi)
	}
}

func TestFundMultiples_NilOnEmptyAndZeroCapital(t *testing.T) {
	if TVPI(nil) != nil {
		t.Error("TVPI on empty set should be nil")
	}

	zeroCapital := []*contracts.Investment{
		{InvestedAmount: 0, CurrentValue: 100, RealizedValue: 50},
	}
	if TVPI(zeroCapital) != nil || DPI(zeroCapital) != nil || RVPI(zeroCapital) != nil || MOIC(zeroCapital) != nil {
		t.Error("all multiples should be nil with zero paid-in capital")
	}
}

func TestIRR_RecoversKnownRate(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	oneYear := t0.Add(time.Duration(365.25 * 24 * float64(time.Hour)))

	flows := []*contracts.CashFlow{
		{Date: t0, Amount: -1000},
		{Date: oneYear, Amount: 1100},
	}

	irr := IRR(flows)
	if irr == nil {
		t.Fatal("IRR should converge")
	}
	if math.Abs(*irr-0.10) > 1e-4 {
		t.Errorf("IRR = %v, want ~0.10", *irr)
	}
}

func TestIRR_MultiFlow(t *testing.T) {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	flows := []*contracts.CashFlow{
		{Date: t0, Amount: -1000},
		{Date: t0.AddDate(1, 0, 0), Amount: -500},
		{Date: t0.AddDate(2, 0, 0), Amount: 300},
		{Date: t0.AddDate(3, 0, 0), Amount: 600},
		{Date: t0.AddDate(4, 0, 0), Amount: 1200},
	}

	irr := IRR(flows)
	if irr == nil {
		t.Fatal("IRR should converge")
	}

	// The recovered rate must zero out the NPV
	earliest := t0
	var npv float64
	for _, f := range flows {
		tYears := YearFraction(earliest, f.Date)
		npv += f.Amount / math.Pow(1+*irr, tYears)
	}
	if math.Abs(npv) > 1e-4 {
		t.Errorf("NPV at IRR %v = %v, want ~0", *irr, npv)
	}
}

func TestIRR_PreconditionRejection(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		flows []*contracts.CashFlow
	}{
		{"empty", nil},
		{"single flow", []*contracts.CashFlow{{Date: t0, Amount: -1000}}},
		{"only negative", []*contracts.CashFlow{
			{Date: t0, Amount: -1000},
			{Date: t0.AddDate(1, 0, 0), Amount: -500},
		}},
		{"only positive", []*contracts.CashFlow{
			{Date: t0, Amount: 1000},
			{Date: t0.AddDate(1, 0, 0), Amount: 500},
		}},
		{"zeros and one negative", []*contracts.CashFlow{
			{Date: t0, Amount: -1000},
			{Date: t0.AddDate(1, 0, 0), Amount: 0},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IRR(tt.flows); got != nil {
				t.Errorf("IRR = %v, want nil without iterating", *got)
			}
		})
	}
}

func TestIRR_TotalLossRejectedByBounds(t *testing.T) {
	// -100% is the lower sanity bound; a total loss drives the rate to
	// the boundary or past it and must not be reported as converged.
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	flows := []*contracts.CashFlow{
		{Date: t0, Amount: -1000},
		{Date: t0.AddDate(1, 0, 0), Amount: 0.0000001},
	}

	if got := IRR(flows); got != nil && (*got < -1 || *got > 100) {
		t.Errorf("IRR = %v escapes sanity bounds", *got)
	}
}

func TestIRR_UnorderedFlows(t *testing.T) {
	// The earliest date anchors year fractions regardless of input order
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	oneYear := t0.Add(time.Duration(365.25 * 24 * float64(time.Hour)))

	flows := []*contracts.CashFlow{
		{Date: oneYear, Amount: 1100},
		{Date: t0, Amount: -1000},
	}

	irr := IRR(flows)
	if irr == nil {
		t.Fatal("IRR should converge")
	}
	if math.Abs(*irr-0.10) > 1e-4 {
		t.Errorf("IRR = %v, want ~0.10", *irr)
	}
}

func TestYearFraction(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(time.Duration(365.25 * 24 * float64(time.Hour)))

	if got := YearFraction(from, to); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("YearFraction = %v, want 1.0", got)
	}
}
