package targets

import (
	"math"
	"time"

	"github.com/Dan9191/commission-tracker/internal/models"
)

const (
	daysPerWeek  = 7
	daysPerMonth = 30

	aheadMargin  = 10
	onTrackBand  = 10
	behindBand   = 25
	maxComponent = 100
)

// Health score weights, summing to 1
const (
	weightAnnualIncome    = 0.25
	weightMonthlyIncome   = 0.15
	weightAnnualPolicies  = 0.20
	weightMonthlyPolicies = 0.10
	weightAvgPremium      = 0.10
	weightPersistency13   = 0.10
	weightPersistency25   = 0.10
)

// CalculateTargetProgress measures actual against target over a period of daysTotal days.
// Targets that are not time based are measured with daysRemaining 0 and daysTotal 1.
func CalculateTargetProgress(target, actual float64, daysRemaining, daysTotal int) models.TargetProgress {
	if daysRemaining < 0 {
		daysRemaining = 0
	}
	p := models.TargetProgress{
		Target:        target,
		Actual:        actual,
		Percentage:    safeDiv(actual*100, target),
		Remaining:     math.Max(0, target-actual),
		DaysRemaining: daysRemaining,
	}

	if daysRemaining > 0 {
		daily := p.Remaining / float64(daysRemaining)
		p.Pace = models.PaceMetrics{
			DailyRequired:   daily,
			WeeklyRequired:  daily * daysPerWeek,
			MonthlyRequired: daily * daysPerMonth,
		}
	}

	elapsed := daysTotal - daysRemaining
	if elapsed > 0 {
		p.ProjectedEnd = actual / float64(elapsed) * float64(daysTotal)
	}

	expected := 0.0
	if daysTotal > 0 {
		expected = float64(elapsed) / float64(daysTotal) * 100
	}
	switch {
	case p.Percentage >= expected+aheadMargin:
		p.Status = models.StatusAhead
	case p.Percentage >= expected-onTrackBand:
		p.Status = models.StatusOnTrack
	case p.Percentage >= expected-behindBand:
		p.Status = models.StatusBehind
	default:
		p.Status = models.StatusCritical
	}
	return p
}

// CalculateAllProgress measures every stored target against the actuals as of now.
// Income and policy targets use calendar year, quarter and month windows.
func CalculateAllProgress(t *models.UserTargets, a models.ActualMetrics, now time.Time) models.AllTargetsProgress {
	y, m, d := now.Date()
	today := date(y, m, d)
	yearTotal, yearLeft := window(date(y, 1, 1), date(y+1, 1, 1), today)
	q := time.Month((int(m)-1)/3*3 + 1)
	quarterTotal, quarterLeft := window(date(y, q, 1), date(y, q+3, 1), today)
	monthTotal, monthLeft := window(date(y, m, 1), date(y, m+1, 1), today)

	p := models.AllTargetsProgress{
		AnnualIncome:    CalculateTargetProgress(t.AnnualIncomeTarget, a.YTDIncome, yearLeft, yearTotal),
		MonthlyIncome:   CalculateTargetProgress(t.MonthlyIncomeTarget, a.MTDIncome, monthLeft, monthTotal),
		QuarterlyIncome: CalculateTargetProgress(t.QuarterlyIncomeTarget, a.QTDIncome, quarterLeft, quarterTotal),
		AnnualPolicies:  CalculateTargetProgress(float64(t.AnnualPoliciesTarget), float64(a.YTDPolicies), yearLeft, yearTotal),
		MonthlyPolicies: CalculateTargetProgress(float64(t.MonthlyPoliciesTarget), float64(a.MTDPolicies), monthLeft, monthTotal),
		AvgPremium:      CalculateTargetProgress(t.AvgPremiumTarget, a.AvgPremium, 0, 1),
		Persistency13:   CalculateTargetProgress(t.Persistency13MonthTarget, a.Persistency13Month, 0, 1),
		Persistency25:   CalculateTargetProgress(t.Persistency25MonthTarget, a.Persistency25Month, 0, 1),
		MonthlyExpense:  CalculateTargetProgress(t.MonthlyExpenseTarget, a.MTDExpenses, monthLeft, monthTotal),
		ExpenseRatio:    CalculateTargetProgress(t.ExpenseRatioTarget, a.ExpenseRatio, 0, 1),
	}
	p.HealthScore = HealthScore(p)
	return p
}

// HealthScore combines capped progress percentages into a 0-100 score
func HealthScore(p models.AllTargetsProgress) int {
	total := capped(p.AnnualIncome)*weightAnnualIncome +
		capped(p.MonthlyIncome)*weightMonthlyIncome +
		capped(p.AnnualPolicies)*weightAnnualPolicies +
		capped(p.MonthlyPolicies)*weightMonthlyPolicies +
		capped(p.AvgPremium)*weightAvgPremium +
		capped(p.Persistency13)*weightPersistency13 +
		capped(p.Persistency25)*weightPersistency25
	return int(math.Round(total))
}

func capped(p models.TargetProgress) float64 {
	return math.Min(maxComponent, nonNegative(p.Percentage))
}

// window returns the length of [start, end) in days and the days left counting today
func window(start, end, today time.Time) (total, remaining int) {
	total = daysBetween(start, end)
	remaining = total - daysBetween(start, today)
	if remaining < 0 {
		remaining = 0
	}
	return total, remaining
}

// date builds a UTC calendar date so day arithmetic ignores DST shifts
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
