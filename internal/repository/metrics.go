package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/commission-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// PolicyAggregates holds raw figures from which historical averages are derived
type PolicyAggregates struct {
	PolicyCount          int
	RecentPolicyCount    int // Policies effective in the trailing 12 months
	AvgCommissionPercent float64
	AvgAnnualPremium     float64
	YTDExpenses          decimal.Decimal
	Cohort13Total        int
	Cohort13Active       int
	Cohort25Total        int
	Cohort25Active       int
}

// GetPolicyAggregates summarizes a user's policy book and expenses as of asOf
func (r *Repository) GetPolicyAggregates(ctx context.Context, userID string, asOf time.Time) (*PolicyAggregates, error) {
	yearStart := time.Date(asOf.Year(), 1, 1, 0, 0, 0, 0, asOf.Location())
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE effective_date > $2::date - INTERVAL '12 months' AND effective_date <= $2),
			COALESCE(AVG(commission_percentage) FILTER (WHERE commission_percentage > 0), 0),
			COALESCE(AVG(annual_premium) FILTER (WHERE annual_premium > 0), 0),
			(SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1 AND date >= $3 AND date <= $2),
			COUNT(*) FILTER (WHERE effective_date <= $2::date - INTERVAL '13 months'),
			COUNT(*) FILTER (WHERE effective_date <= $2::date - INTERVAL '13 months' AND status = 'active'),
			COUNT(*) FILTER (WHERE effective_date <= $2::date - INTERVAL '25 months'),
			COUNT(*) FILTER (WHERE effective_date <= $2::date - INTERVAL '25 months' AND status = 'active')
		FROM policies
		WHERE user_id = $1`
	agg := &PolicyAggregates{}
	err := r.db.QueryRowContext(ctx, query, userID, asOf, yearStart).Scan(
		&agg.PolicyCount, &agg.RecentPolicyCount, &agg.AvgCommissionPercent, &agg.AvgAnnualPremium,
		&agg.YTDExpenses, &agg.Cohort13Total, &agg.Cohort13Active, &agg.Cohort25Total, &agg.Cohort25Active,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get policy aggregates: %w", err)
	}
	return agg, nil
}

// GetActualMetrics returns a user's year, quarter and month to date results as of asOf
func (r *Repository) GetActualMetrics(ctx context.Context, userID string, asOf time.Time) (*models.ActualMetrics, error) {
	loc := asOf.Location()
	y, m, _ := asOf.Date()
	yearStart := time.Date(y, 1, 1, 0, 0, 0, 0, loc)
	quarterStart := time.Date(y, time.Month((int(m)-1)/3*3+1), 1, 0, 0, 0, 0, loc)
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, loc)

	query := `
		SELECT
			(SELECT COALESCE(SUM(amount), 0) FROM commissions
				WHERE user_id = $1 AND status = 'paid' AND payment_date >= $2 AND payment_date <= $5),
			(SELECT COALESCE(SUM(amount), 0) FROM commissions
				WHERE user_id = $1 AND status = 'paid' AND payment_date >= $3 AND payment_date <= $5),
			(SELECT COALESCE(SUM(amount), 0) FROM commissions
				WHERE user_id = $1 AND status = 'paid' AND payment_date >= $4 AND payment_date <= $5),
			(SELECT COUNT(*) FROM policies WHERE user_id = $1 AND effective_date >= $2 AND effective_date <= $5),
			(SELECT COUNT(*) FROM policies WHERE user_id = $1 AND effective_date >= $4 AND effective_date <= $5),
			(SELECT COALESCE(AVG(annual_premium), 0) FROM policies
				WHERE user_id = $1 AND annual_premium > 0 AND effective_date >= $2 AND effective_date <= $5),
			(SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1 AND date >= $4 AND date <= $5),
			(SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1 AND date >= $2 AND date <= $5)`
	var (
		ytdIncome, qtdIncome, mtdIncome decimal.Decimal
		mtdExpenses, ytdExpenses        decimal.Decimal
		actuals                         models.ActualMetrics
	)
	err := r.db.QueryRowContext(ctx, query, userID, yearStart, quarterStart, monthStart, asOf).Scan(
		&ytdIncome, &qtdIncome, &mtdIncome, &actuals.YTDPolicies, &actuals.MTDPolicies,
		&actuals.AvgPremium, &mtdExpenses, &ytdExpenses,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get actual metrics: %w", err)
	}

	actuals.YTDIncome = ytdIncome.InexactFloat64()
	actuals.QTDIncome = qtdIncome.InexactFloat64()
	actuals.MTDIncome = mtdIncome.InexactFloat64()
	actuals.MTDExpenses = mtdExpenses.InexactFloat64()
	if ytdIncome.IsPositive() {
		actuals.ExpenseRatio = ytdExpenses.Div(ytdIncome).InexactFloat64()
	}
	return &actuals, nil
}
