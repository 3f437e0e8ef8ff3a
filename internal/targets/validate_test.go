package targets

import (
	"testing"

	"github.com/Dan9191/commission-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTargets_NoHistory(t *testing.T) {
	for _, avg := range []*models.HistoricalAverages{nil, {HasData: false, AvgPoliciesPerMonth: 3}} {
		res := ValidateTargets(models.CalculatedTargets{MonthlyPoliciesTarget: 50, ExpenseRatio: 0.9}, avg)

		assert.True(t, res.IsAchievable)
		require.Len(t, res.Warnings, 1)
		require.Len(t, res.Recommendations, 1)
		assert.Contains(t, res.Warnings[0], "default values")
		assert.Contains(t, res.Recommendations[0], "Start tracking")
	}
}

func TestValidateTargets_Rules(t *testing.T) {
	avg := &models.HistoricalAverages{HasData: true, AvgPoliciesPerMonth: 2}
	tests := []struct {
		name         string
		targets      models.CalculatedTargets
		wantWarnings []string
	}{
		{
			name:    "within history",
			targets: models.CalculatedTargets{MonthlyPoliciesTarget: 4, ExpenseRatio: 0.2},
		},
		{
			name:         "policy target above double the average",
			targets:      models.CalculatedTargets{MonthlyPoliciesTarget: 5},
			wantWarnings: []string{"Monthly policy target (5)"},
		},
		{
			name:    "expense ratio exactly at limit",
			targets: models.CalculatedTargets{ExpenseRatio: 0.5},
		},
		{
			name:         "expense ratio above limit",
			targets:      models.CalculatedTargets{ExpenseRatio: 0.51},
			wantWarnings: []string{"51.0%"},
		},
		{
			name:         "both rules fire in order",
			targets:      models.CalculatedTargets{MonthlyPoliciesTarget: 9, ExpenseRatio: 0.75},
			wantWarnings: []string{"(2.0 policies/month)", "75.0%"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateTargets(tt.targets, avg)

			require.Len(t, res.Warnings, len(tt.wantWarnings))
			assert.Len(t, res.Recommendations, len(tt.wantWarnings))
			for i, w := range tt.wantWarnings {
				assert.Contains(t, res.Warnings[i], w)
			}
			assert.Equal(t, len(tt.wantWarnings) == 0, res.IsAchievable)
		})
	}
}
