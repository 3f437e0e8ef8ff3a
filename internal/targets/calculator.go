// Package targets derives sales targets from an annual net-income goal and
// models how policy lapse rates change the volume an agent has to write.
//
// Every function in this package is pure: no I/O, no shared state.
package targets

import "github.com/Dan9191/commission-tracker/internal/models"

const (
	highConfidencePoints   = 12
	mediumConfidencePoints = 6
	// Months credited when any policy history exists
	historyDataPoints = 12
)

// Input holds the arguments of a target calculation
type Input struct {
	AnnualIncomeTarget float64
	Averages           *models.HistoricalAverages
	Overrides          *models.CalculationOverrides
}

// CalculateTargets derives the full target hierarchy for a net income goal.
// Missing averages or overrides resolve to zero and lower the confidence.
func CalculateTargets(in Input) models.CalculatedTargets {
	avg := in.Averages
	if avg == nil {
		avg = &models.HistoricalAverages{}
	}
	ov := in.Overrides
	if ov == nil {
		ov = &models.CalculationOverrides{}
	}

	rate := resolve(ov.AvgCommissionRate, &avg.AvgCommissionRate)
	premium := resolve(ov.AvgPolicyPremium, &avg.AvgPolicyPremium)
	monthlyExpenses := resolve(ov.MonthlyExpenseTarget, &avg.AvgExpensesPerMonth)
	annualExpenses := resolve(ov.ProjectedAnnualExpenses, &avg.ProjectedAnnualExpenses)

	income := nonNegative(in.AnnualIncomeTarget)
	// Expenses are paid out of commission, so they are added back before grossing up
	gross := income + annualExpenses

	totalPremium := safeDiv(gross, rate)
	annualPolicies := ceilDiv(totalPremium, premium)
	quarterly, monthly, weekly, daily := splitPolicies(annualPolicies)

	dataPoints := 0
	if avg.AvgPoliciesPerMonth > 0 {
		dataPoints = historyDataPoints
	}
	method := models.MethodDefault
	if avg.HasData {
		method = models.MethodHistorical
	}

	return models.CalculatedTargets{
		AnnualIncomeTarget:    income,
		QuarterlyIncomeTarget: income / quartersPerYear,
		MonthlyIncomeTarget:   income / monthsPerYear,
		WeeklyIncomeTarget:    income / weeksPerYear,
		DailyIncomeTarget:     income / daysPerYear,

		TotalPremiumNeeded: totalPremium,

		AnnualPoliciesTarget:    annualPolicies,
		QuarterlyPoliciesTarget: quarterly,
		MonthlyPoliciesTarget:   monthly,
		WeeklyPoliciesTarget:    weekly,
		DailyPoliciesTarget:     daily,

		AvgCommissionRate: rate,
		AvgPolicyPremium:  premium,

		Persistency13MonthTarget: nonNegative(avg.Persistency13Month),
		Persistency25MonthTarget: nonNegative(avg.Persistency25Month),

		MonthlyExpenseTarget: monthlyExpenses,
		AnnualExpenses:       annualExpenses,
		ExpenseRatio:         safeDiv(annualExpenses, gross),

		CalculationMethod: method,
		Confidence:        confidence(dataPoints),
		DataPoints:        dataPoints,
	}
}

func confidence(dataPoints int) string {
	switch {
	case dataPoints >= highConfidencePoints:
		return models.ConfidenceHigh
	case dataPoints >= mediumConfidencePoints:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
