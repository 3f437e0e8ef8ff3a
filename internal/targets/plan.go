package targets

import "github.com/Dan9191/commission-tracker/internal/models"

// Plan calculates targets for in, checks them against the averages and
// projects the policy volume at each persistency rate.
func Plan(in Input, rates []float64) models.CalculationResult {
	var avg models.HistoricalAverages
	if in.Averages != nil {
		avg = *in.Averages
	}
	calculated := CalculateTargets(in)
	return models.CalculationResult{
		Targets:    calculated,
		Averages:   avg,
		Validation: ValidateTargets(calculated, &avg),
		Scenarios:  ProjectScenarios(calculated.AnnualPoliciesTarget, calculated.AvgPolicyPremium, rates),
	}
}
