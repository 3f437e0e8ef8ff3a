package models

import "time"

// Achievement types
const (
	AchievementIncome      = "income"
	AchievementPolicies    = "policies"
	AchievementPersistency = "persistency"
)

// Achievement levels
const (
	LevelBronze = "bronze"
	LevelSilver = "silver"
	LevelGold   = "gold"
)

// Achievement represents an earned milestone
type Achievement struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Level       string    `json:"level"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EarnedDate  time.Time `json:"earned_date"`
	Value       float64   `json:"value"`
}

// UserTargets represents targets stored for an agent
type UserTargets struct {
	ID                       string        `json:"id"`
	UserID                   string        `json:"user_id"`
	AnnualIncomeTarget       float64       `json:"annual_income_target"`
	MonthlyIncomeTarget      float64       `json:"monthly_income_target"`
	QuarterlyIncomeTarget    float64       `json:"quarterly_income_target"`
	AnnualPoliciesTarget     int           `json:"annual_policies_target"`
	MonthlyPoliciesTarget    int           `json:"monthly_policies_target"`
	AvgPremiumTarget         float64       `json:"avg_premium_target"`
	Persistency13MonthTarget float64       `json:"persistency_13_month_target"`
	Persistency25MonthTarget float64       `json:"persistency_25_month_target"`
	MonthlyExpenseTarget     float64       `json:"monthly_expense_target"`
	ExpenseRatioTarget       float64       `json:"expense_ratio_target"`
	Achievements             []Achievement `json:"achievements"`
	LastMilestoneDate        *time.Time    `json:"last_milestone_date,omitempty"`
	CreatedAt                time.Time     `json:"created_at"`
	UpdatedAt                time.Time     `json:"updated_at"`
}

// MilestoneCheck represents the outcome of a milestone evaluation
type MilestoneCheck struct {
	NewAchievements  []Achievement `json:"new_achievements"`
	HasNewMilestones bool          `json:"has_new_milestones"`
}
