package targets

import (
	"testing"
	"time"

	"github.com/Dan9191/commission-tracker/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTargetProgress_Status(t *testing.T) {
	tests := []struct {
		name   string
		actual float64
		want   string
	}{
		{"ahead", 70, models.StatusAhead},
		{"on track", 50, models.StatusOnTrack},
		{"lower edge of on track", 40, models.StatusOnTrack},
		{"behind", 30, models.StatusBehind},
		{"critical", 20, models.StatusCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTargetProgress(100, tt.actual, 50, 100)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestCalculateTargetProgress_Pace(t *testing.T) {
	got := CalculateTargetProgress(100, 50, 50, 100)

	assert.Equal(t, 50.0, got.Percentage)
	assert.Equal(t, 50.0, got.Remaining)
	assert.Equal(t, 50, got.DaysRemaining)
	assert.Equal(t, 1.0, got.Pace.DailyRequired)
	assert.Equal(t, 7.0, got.Pace.WeeklyRequired)
	assert.Equal(t, 30.0, got.Pace.MonthlyRequired)
	assert.Equal(t, 100.0, got.ProjectedEnd)
}

func TestCalculateTargetProgress_NotTimeBased(t *testing.T) {
	got := CalculateTargetProgress(1500, 1650, 0, 1)

	assert.InDelta(t, 110.0, got.Percentage, 1e-9)
	assert.Equal(t, 0.0, got.Remaining)
	assert.Equal(t, models.PaceMetrics{}, got.Pace)
	assert.Equal(t, 1650.0, got.ProjectedEnd)
	assert.Equal(t, models.StatusAhead, got.Status)
}

func TestCalculateTargetProgress_ZeroTarget(t *testing.T) {
	got := CalculateTargetProgress(0, 10, 0, 1)

	assert.Equal(t, 0.0, got.Percentage)
	assert.Equal(t, 0.0, got.Remaining)
	assert.Equal(t, models.StatusCritical, got.Status)
}

func storedTargets() *models.UserTargets {
	return &models.UserTargets{
		AnnualIncomeTarget:       120000,
		MonthlyIncomeTarget:      10000,
		QuarterlyIncomeTarget:    30000,
		AnnualPoliciesTarget:     100,
		MonthlyPoliciesTarget:    9,
		AvgPremiumTarget:         1500,
		Persistency13MonthTarget: 0.85,
		Persistency25MonthTarget: 0.75,
		MonthlyExpenseTarget:     5000,
		ExpenseRatioTarget:       0.3,
	}
}

func TestCalculateAllProgress_Windows(t *testing.T) {
	now := time.Date(2025, time.February, 15, 12, 0, 0, 0, time.UTC)
	got := CalculateAllProgress(storedTargets(), models.ActualMetrics{YTDIncome: 60000}, now)

	assert.Equal(t, 320, got.AnnualIncome.DaysRemaining)
	assert.Equal(t, 45, got.QuarterlyIncome.DaysRemaining)
	assert.Equal(t, 14, got.MonthlyIncome.DaysRemaining)
	assert.Equal(t, 14, got.MonthlyExpense.DaysRemaining)
	assert.Equal(t, 0, got.AvgPremium.DaysRemaining)
	assert.Equal(t, 50.0, got.AnnualIncome.Percentage)
	assert.Equal(t, models.StatusAhead, got.AnnualIncome.Status)
}

func TestCalculateAllProgress_LeapYearEnd(t *testing.T) {
	now := time.Date(2024, time.December, 31, 8, 0, 0, 0, time.UTC)
	got := CalculateAllProgress(storedTargets(), models.ActualMetrics{}, now)

	assert.Equal(t, 1, got.AnnualIncome.DaysRemaining)
	assert.Equal(t, 1, got.QuarterlyIncome.DaysRemaining)
	assert.Equal(t, 1, got.MonthlyIncome.DaysRemaining)
}

func TestCalculateAllProgress_AllTargetsMet(t *testing.T) {
	now := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	actuals := models.ActualMetrics{
		YTDIncome:          130000,
		MTDIncome:          12000,
		QTDIncome:          31000,
		YTDPolicies:        101,
		MTDPolicies:        10,
		AvgPremium:         1600,
		Persistency13Month: 0.9,
		Persistency25Month: 0.8,
	}
	got := CalculateAllProgress(storedTargets(), actuals, now)

	assert.Equal(t, 100, got.HealthScore)
}

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name     string
		progress models.AllTargetsProgress
		want     int
	}{
		{"empty", models.AllTargetsProgress{}, 0},
		{"half annual income rounds up", models.AllTargetsProgress{AnnualIncome: models.TargetProgress{Percentage: 50}}, 13},
		{"overachievement is capped", models.AllTargetsProgress{AnnualIncome: models.TargetProgress{Percentage: 400}}, 25},
		{"expenses do not count", models.AllTargetsProgress{ExpenseRatio: models.TargetProgress{Percentage: 100}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HealthScore(tt.progress))
		})
	}
}
