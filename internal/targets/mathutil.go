package targets

import "math"

const (
	quartersPerYear = 4
	monthsPerYear   = 12
	weeksPerYear    = 52
	daysPerYear     = 365
)

// MaxPolicyCount caps every policy count so it fits any int
const MaxPolicyCount = math.MaxInt32

// nonNegative maps NaN, infinities and negative values to zero
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// resolve returns the first usable candidate, or 0 when none is set
func resolve(candidates ...*float64) float64 {
	for _, c := range candidates {
		if c == nil || math.IsNaN(*c) || math.IsInf(*c, 0) {
			continue
		}
		return nonNegative(*c)
	}
	return 0
}

// safeDiv returns n/d, or 0 when d is not positive
func safeDiv(n, d float64) float64 {
	if d <= 0 {
		return 0
	}
	return nonNegative(n / d)
}

// ceilDiv divides and rounds up to a whole count, saturating at MaxPolicyCount
func ceilDiv(n, d float64) int {
	if math.IsNaN(n) || math.IsNaN(d) || n <= 0 || d <= 0 {
		return 0
	}
	q := n / d
	if q >= MaxPolicyCount {
		return MaxPolicyCount
	}
	return int(math.Ceil(q))
}

// splitPolicies derives period counts from an annual policy count.
// The daily figure never drops to zero while any annual target exists.
func splitPolicies(annual int) (quarterly, monthly, weekly, daily int) {
	if annual <= 0 {
		return 0, 0, 0, 0
	}
	a := float64(annual)
	daily = ceilDiv(a, daysPerYear)
	if daily < 1 {
		daily = 1
	}
	return ceilDiv(a, quartersPerYear), ceilDiv(a, monthsPerYear), ceilDiv(a, weeksPerYear), daily
}
