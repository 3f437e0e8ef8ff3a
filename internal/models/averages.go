package models

// HistoricalAverages represents an agent's historical performance figures
type HistoricalAverages struct {
	AvgCommissionRate       float64 `json:"avg_commission_rate"`   // Fraction in [0,1], 0 when unknown
	AvgPolicyPremium        float64 `json:"avg_policy_premium"`
	AvgPoliciesPerMonth     float64 `json:"avg_policies_per_month"`
	AvgExpensesPerMonth     float64 `json:"avg_expenses_per_month"`
	ProjectedAnnualExpenses float64 `json:"projected_annual_expenses"` // Recorded expenses for the year, not annualized
	Persistency13Month      float64 `json:"persistency_13_month"`
	Persistency25Month      float64 `json:"persistency_25_month"`
	HasData                 bool    `json:"has_data"`
}

// CalculationOverrides represents user-supplied values that take precedence over historical averages
type CalculationOverrides struct {
	AvgCommissionRate       *float64 `json:"avg_commission_rate,omitempty"`
	AvgPolicyPremium        *float64 `json:"avg_policy_premium,omitempty"`
	MonthlyExpenseTarget    *float64 `json:"monthly_expense_target,omitempty"`
	ProjectedAnnualExpenses *float64 `json:"projected_annual_expenses,omitempty"`
}
