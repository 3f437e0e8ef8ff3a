package models

// Progress statuses
const (
	StatusAhead    = "ahead"
	StatusOnTrack  = "on-track"
	StatusBehind   = "behind"
	StatusCritical = "critical"
)

// ActualMetrics represents an agent's recorded results for the current periods
type ActualMetrics struct {
	YTDIncome          float64 `json:"ytd_income"`
	MTDIncome          float64 `json:"mtd_income"`
	QTDIncome          float64 `json:"qtd_income"`
	YTDPolicies        int     `json:"ytd_policies"`
	MTDPolicies        int     `json:"mtd_policies"`
	AvgPremium         float64 `json:"avg_premium"`
	Persistency13Month float64 `json:"persistency_13_month"` // Fraction, same scale as the stored target
	Persistency25Month float64 `json:"persistency_25_month"`
	MTDExpenses        float64 `json:"mtd_expenses"`
	ExpenseRatio       float64 `json:"expense_ratio"`
}

// PaceMetrics represents the rate needed to close the remaining gap
type PaceMetrics struct {
	DailyRequired   float64 `json:"daily_required"`
	WeeklyRequired  float64 `json:"weekly_required"`
	MonthlyRequired float64 `json:"monthly_required"`
}

// TargetProgress represents progress against a single target
type TargetProgress struct {
	Target        float64     `json:"target"`
	Actual        float64     `json:"actual"`
	Percentage    float64     `json:"percentage"`
	Remaining     float64     `json:"remaining"`
	DaysRemaining int         `json:"days_remaining"`
	Status        string      `json:"status"`
	ProjectedEnd  float64     `json:"projected_end"`
	Pace          PaceMetrics `json:"pace"`
}

// AllTargetsProgress represents progress against every stored target
type AllTargetsProgress struct {
	AnnualIncome    TargetProgress `json:"annual_income"`
	MonthlyIncome   TargetProgress `json:"monthly_income"`
	QuarterlyIncome TargetProgress `json:"quarterly_income"`
	AnnualPolicies  TargetProgress `json:"annual_policies"`
	MonthlyPolicies TargetProgress `json:"monthly_policies"`
	AvgPremium      TargetProgress `json:"avg_premium"`
	Persistency13   TargetProgress `json:"persistency_13"`
	Persistency25   TargetProgress `json:"persistency_25"`
	MonthlyExpense  TargetProgress `json:"monthly_expense"`
	ExpenseRatio    TargetProgress `json:"expense_ratio"`
	HealthScore     int            `json:"health_score"`
}
