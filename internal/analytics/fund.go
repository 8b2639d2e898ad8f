package analytics

import (
	"math"
	"time"

	"github.com/fundlens/backend/internal/contracts"
)

// =============================================================================
// Fund multiples
// =============================================================================

// TVPI computes Total Value to Paid-In:
// (sum current value + sum realized value) / sum invested.
// Returns nil when the set is empty or paid-in capital is zero.
func TVPI(investments []*contracts.Investment) *float64 {
	invested, current, realized, ok := investmentTotals(investments)
	if !ok {
		return nil
	}
	ratio := (current + realized) / invested
	return &ratio
}

// DPI computes Distributed to Paid-In: sum realized / sum invested.
func DPI(investments []*contracts.Investment) *float64 {
	invested, _, realized, ok := investmentTotals(investments)
	if !ok {
		return nil
	}
	ratio := realized / invested
	return &ratio
}

// RVPI computes Residual Value to Paid-In: sum current / sum invested.
func RVPI(investments []*contracts.Investment) *float64 {
	invested, current, _, ok := investmentTotals(investments)
	if !ok {
		return nil
	}
	ratio := current / invested
	return &ratio
}

// MOIC computes Multiple on Invested Capital. Under the current model
// it equals TVPI, but it stays a distinct operation: the two diverge
// once "value" and "multiple" bases separate (e.g. fee treatment).
func MOIC(investments []*contracts.Investment) *float64 {
	invested, current, realized, ok := investmentTotals(investments)
	if !ok {
		return nil
	}
	ratio := (current + realized) / invested
	return &ratio
}

// investmentTotals sums the ratio bases. ok is false when the ratios
// are undefined: empty set or zero paid-in capital.
func investmentTotals(investments []*contracts.Investment) (invested, current, realized float64, ok bool) {
	if len(investments) == 0 {
		return 0, 0, 0, false
	}

	for _, inv := range investments {
		invested += inv.InvestedAmount
		current += inv.CurrentValue
		realized += inv.RealizedValue
	}

	if invested == 0 {
		return 0, 0, 0, false
	}

	return invested, current, realized, true
}

// =============================================================================
// IRR (Newton-Raphson)
// =============================================================================

const (
	irrInitialGuess    = 0.10
	irrMaxIterations   = 100
	irrTolerance       = 1e-8
	irrDerivativeFloor = 1e-14

	// Converged rates outside [-100%, +10,000%] are rejected as
	// non-physical rather than reported.
	irrLowerBound = -1.0
	irrUpperBound = 100.0

	// Year length for date-to-year-fraction conversion.
	daysPerYear = 365.25
)

// IRR computes the Internal Rate of Return of a series of dated, signed
// cash flows: the rate at which NPV(r) = sum amount_i / (1+r)^t_i is
// zero, with t_i the year fraction since the earliest flow.
//
// Returns nil without iterating unless there are at least two flows
// with at least one negative and one positive amount. Also returns nil
// on divergence (non-finite rate), non-convergence within the iteration
// budget, or a converged rate outside the sanity bounds. Never a
// best-effort partial answer.
func IRR(flows []*contracts.CashFlow) *float64 {
	if len(flows) < 2 {
		return nil
	}

	hasNegative, hasPositive := false, false
	for _, f := range flows {
		if f.Amount < 0 {
			hasNegative = true
		}
		if f.Amount > 0 {
			hasPositive = true
		}
	}
	if !hasNegative || !hasPositive {
		return nil
	}

	earliest := flows[0].Date
	for _, f := range flows[1:] {
		if f.Date.Before(earliest) {
			earliest = f.Date
		}
	}

	amounts := make([]float64, len(flows))
	years := make([]float64, len(flows))
	for i, f := range flows {
		amounts[i] = f.Amount
		years[i] = f.Date.Sub(earliest).Hours() / (24 * daysPerYear)
	}

	rate := irrInitialGuess
	for i := 0; i < irrMaxIterations; i++ {
		npv, derivative := npvWithDerivative(amounts, years, rate)

		// A flat derivative would blow up the Newton step; nudge the
		// rate and keep going. Pragmatic guard, not a proven-convergent
		// fallback.
		if math.Abs(derivative) < irrDerivativeFloor {
			rate += 0.1
			continue
		}

		next := rate - npv/derivative
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return nil
		}

		if math.Abs(next-rate) < irrTolerance {
			if next < irrLowerBound || next > irrUpperBound {
				return nil
			}
			return &next
		}

		rate = next
	}

	return nil
}

// npvWithDerivative evaluates NPV(r) and dNPV/dr in one pass.
func npvWithDerivative(amounts, years []float64, rate float64) (npv, derivative float64) {
	for i, amount := range amounts {
		t := years[i]
		discount := math.Pow(1+rate, t)
		npv += amount / discount
		derivative += -t * amount / math.Pow(1+rate, t+1)
	}
	return npv, derivative
}

// YearFraction converts a date offset into 365.25-day years. Exposed
// for callers that want to inspect cash-flow timing the way the solver
// sees it.
func YearFraction(from, to time.Time) float64 {
	return to.Sub(from).Hours() / (24 * daysPerYear)
}
