package targets

import (
	"math"
	"sort"

	"github.com/Dan9191/commission-tracker/internal/models"
)

// DefaultPresetRates are the persistency rates every projection includes
var DefaultPresetRates = []float64{95, 90, 85, 80}

const (
	// MinPersistencyRate is the smallest rate a projection accepts
	MinPersistencyRate = 0.01
	maxPersistencyRate = 100
)

// CalculateScenario projects the written volume needed to keep baseAnnualPolicies
// on the books when only ratePercent of them persist.
func CalculateScenario(baseAnnualPolicies int, avgPolicyPremium, ratePercent float64) models.PersistencyScenario {
	rate := nonNegative(ratePercent)
	if rate > maxPersistencyRate {
		rate = maxPersistencyRate
	}
	sc := models.PersistencyScenario{PersistencyRate: rate}
	if baseAnnualPolicies <= 0 || rate == 0 {
		return sc
	}

	if baseAnnualPolicies > MaxPolicyCount {
		baseAnnualPolicies = MaxPolicyCount
	}
	base := float64(baseAnnualPolicies)
	// base / (rate/100), kept in this form so exact quotients stay exact
	needed := ceilDiv(base*100, rate)
	_, monthly, weekly, daily := splitPolicies(needed)

	sc.AnnualPoliciesNeeded = needed
	sc.MonthlyPoliciesNeeded = monthly
	sc.WeeklyPoliciesNeeded = weekly
	sc.DailyPoliciesNeeded = daily
	sc.ExtraPoliciesForChurn = needed - baseAnnualPolicies
	sc.PercentIncrease = float64(needed-baseAnnualPolicies) / base * 100
	sc.GrossPremiumNeeded = float64(needed) * nonNegative(avgPolicyPremium)
	return sc
}

// ProjectScenarios evaluates each valid rate once, highest rate first
func ProjectScenarios(baseAnnualPolicies int, avgPolicyPremium float64, rates []float64) []models.PersistencyScenario {
	seen := make(map[float64]struct{}, len(rates))
	valid := make([]float64, 0, len(rates))
	for _, r := range rates {
		if !ValidRate(r) {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		valid = append(valid, r)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(valid)))

	scenarios := make([]models.PersistencyScenario, 0, len(valid))
	for _, r := range valid {
		scenarios = append(scenarios, CalculateScenario(baseAnnualPolicies, avgPolicyPremium, r))
	}
	return scenarios
}

// ValidRate reports whether r is a usable persistency percentage in [0.01,100]
func ValidRate(r float64) bool {
	return !math.IsNaN(r) && r >= MinPersistencyRate && r <= maxPersistencyRate
}
