package targets

import (
	"testing"

	"github.com/Dan9191/commission-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan(t *testing.T) {
	in := Input{AnnualIncomeTarget: 100000, Averages: agentAverages()}

	got := Plan(in, []float64{80, 95, 80})

	assert.Equal(t, CalculateTargets(in), got.Targets)
	assert.Equal(t, *agentAverages(), got.Averages)
	assert.Equal(t, ValidateTargets(got.Targets, agentAverages()), got.Validation)
	require.Len(t, got.Scenarios, 2)
	assert.Equal(t, 95.0, got.Scenarios[0].PersistencyRate)
	assert.Equal(t, 20, got.Scenarios[1].AnnualPoliciesNeeded)
}

func TestPlan_NoAverages(t *testing.T) {
	got := Plan(Input{AnnualIncomeTarget: 50000}, DefaultPresetRates)

	assert.Equal(t, models.HistoricalAverages{}, got.Averages)
	assert.Equal(t, models.MethodDefault, got.Targets.CalculationMethod)
	assert.Len(t, got.Validation.Warnings, 1)
	assert.Len(t, got.Scenarios, 4)
}
