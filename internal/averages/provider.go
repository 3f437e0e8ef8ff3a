// Package averages supplies the historical figures the target engine resolves against.
package averages

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/commission-tracker/internal/models"
	"github.com/Dan9191/commission-tracker/internal/repository"
)

// Provider supplies historical averages for a user
type Provider interface {
	GetHistoricalAverages(ctx context.Context, userID string) (*models.HistoricalAverages, error)
}

// AggregateStore is the data access StoreProvider needs
type AggregateStore interface {
	GetPolicyAggregates(ctx context.Context, userID string, asOf time.Time) (*repository.PolicyAggregates, error)
}

// StoreProvider computes averages from the policy and expense tables
type StoreProvider struct {
	store AggregateStore
	now   func() time.Time
}

// NewStoreProvider creates a provider reading from store
func NewStoreProvider(store AggregateStore) *StoreProvider {
	return &StoreProvider{store: store, now: time.Now}
}

func (p *StoreProvider) GetHistoricalAverages(ctx context.Context, userID string) (*models.HistoricalAverages, error) {
	asOf := p.now()
	agg, err := p.store.GetPolicyAggregates(ctx, userID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load historical averages: %w", err)
	}
	return FromAggregates(agg, asOf), nil
}

// FromAggregates converts raw aggregates into averages as of asOf
func FromAggregates(agg *repository.PolicyAggregates, asOf time.Time) *models.HistoricalAverages {
	ytdExpenses := agg.YTDExpenses.InexactFloat64()
	return &models.HistoricalAverages{
		// commission_percentage is stored as a percentage
		AvgCommissionRate:       agg.AvgCommissionPercent / 100,
		AvgPolicyPremium:        agg.AvgAnnualPremium,
		AvgPoliciesPerMonth:     float64(agg.RecentPolicyCount) / 12,
		AvgExpensesPerMonth:     ytdExpenses / float64(asOf.Month()),
		ProjectedAnnualExpenses: ytdExpenses,
		Persistency13Month:      ratio(agg.Cohort13Active, agg.Cohort13Total),
		Persistency25Month:      ratio(agg.Cohort25Active, agg.Cohort25Total),
		HasData:                 agg.PolicyCount > 0,
	}
}

func ratio(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total)
}
