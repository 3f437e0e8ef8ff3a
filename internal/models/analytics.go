package models

// Calculation methods
const (
	MethodHistorical = "historical"
	MethodDefault    = "default"
)

// Confidence levels
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// CalculatedTargets represents the target hierarchy derived from an annual income goal
type CalculatedTargets struct {
	AnnualIncomeTarget    float64 `json:"annual_income_target"`
	QuarterlyIncomeTarget float64 `json:"quarterly_income_target"`
	MonthlyIncomeTarget   float64 `json:"monthly_income_target"`
	WeeklyIncomeTarget    float64 `json:"weekly_income_target"`
	DailyIncomeTarget     float64 `json:"daily_income_target"`

	TotalPremiumNeeded float64 `json:"total_premium_needed"`

	AnnualPoliciesTarget    int `json:"annual_policies_target"`
	QuarterlyPoliciesTarget int `json:"quarterly_policies_target"`
	MonthlyPoliciesTarget   int `json:"monthly_policies_target"`
	WeeklyPoliciesTarget    int `json:"weekly_policies_target"`
	DailyPoliciesTarget     int `json:"daily_policies_target"`

	AvgCommissionRate float64 `json:"avg_commission_rate"`
	AvgPolicyPremium  float64 `json:"avg_policy_premium"`

	Persistency13MonthTarget float64 `json:"persistency_13_month_target"`
	Persistency25MonthTarget float64 `json:"persistency_25_month_target"`

	MonthlyExpenseTarget float64 `json:"monthly_expense_target"`
	AnnualExpenses       float64 `json:"annual_expenses"`
	ExpenseRatio         float64 `json:"expense_ratio"` // AnnualExpenses / gross commission needed

	CalculationMethod string `json:"calculation_method"`
	Confidence        string `json:"confidence"`
	DataPoints        int    `json:"data_points"`
}

// PersistencyScenario represents sales volume required at a given retention rate
type PersistencyScenario struct {
	PersistencyRate       float64 `json:"persistency_rate"` // Percent, 0-100
	AnnualPoliciesNeeded  int     `json:"annual_policies_needed"`
	MonthlyPoliciesNeeded int     `json:"monthly_policies_needed"`
	WeeklyPoliciesNeeded  int     `json:"weekly_policies_needed"`
	DailyPoliciesNeeded   int     `json:"daily_policies_needed"`
	ExtraPoliciesForChurn int     `json:"extra_policies_for_churn"`
	PercentIncrease       float64 `json:"percent_increase"`
	GrossPremiumNeeded    float64 `json:"gross_premium_needed"`
}

// ValidationResult represents the feasibility check of calculated targets
type ValidationResult struct {
	IsAchievable    bool     `json:"is_achievable"`
	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`
}

// CalculationResult bundles targets with their validation and persistency projections
type CalculationResult struct {
	Targets    CalculatedTargets     `json:"targets"`
	Averages   HistoricalAverages    `json:"averages"`
	Validation ValidationResult      `json:"validation"`
	Scenarios  []PersistencyScenario `json:"scenarios"`
}
