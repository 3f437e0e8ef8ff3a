package targets

import (
	"fmt"

	"github.com/Dan9191/commission-tracker/internal/models"
)

// maxExpenseRatio is the share of gross commission expenses may take before a warning
const maxExpenseRatio = 0.5

// ValidateTargets checks calculated targets against the agent's track record
func ValidateTargets(t models.CalculatedTargets, avg *models.HistoricalAverages) models.ValidationResult {
	if avg == nil || !avg.HasData {
		return models.ValidationResult{
			IsAchievable:    true,
			Warnings:        []string{"No historical data available. Targets are based on default values."},
			Recommendations: []string{"Start tracking your policies, commissions and expenses to get personalized targets."},
		}
	}

	res := models.ValidationResult{Warnings: []string{}, Recommendations: []string{}}

	if float64(t.MonthlyPoliciesTarget) > 2*avg.AvgPoliciesPerMonth {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Monthly policy target (%d) is more than double your historical average (%.1f policies/month).",
			t.MonthlyPoliciesTarget, avg.AvgPoliciesPerMonth,
		))
		res.Recommendations = append(res.Recommendations,
			"Consider lowering your income target or focusing on higher-premium policies.")
	}

	if t.ExpenseRatio > maxExpenseRatio {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Expenses are %.1f%% of the gross commission you need to earn.", t.ExpenseRatio*100,
		))
		res.Recommendations = append(res.Recommendations,
			"Reduce business expenses or raise your income target to keep expenses under half of gross commission.")
	}

	res.IsAchievable = len(res.Warnings) == 0
	return res
}
