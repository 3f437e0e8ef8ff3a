package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Dan9191/commission-tracker/internal/averages"
	"github.com/Dan9191/commission-tracker/internal/config"
	"github.com/Dan9191/commission-tracker/internal/models"
	"github.com/Dan9191/commission-tracker/internal/repository"
	"github.com/Dan9191/commission-tracker/internal/targets"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrInvalidInput is returned when a request fails validation
var ErrInvalidInput = errors.New("invalid input")

// MaxAnnualIncomeTarget bounds the income goal a calculation accepts
const MaxAnnualIncomeTarget = 1e12

// Store is the persistence the service depends on
type Store interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserTargets(ctx context.Context, userID string) (*models.UserTargets, error)
	UpsertUserTargets(ctx context.Context, t *models.UserTargets) error
	SaveAchievements(ctx context.Context, userID string, achievements []models.Achievement, at time.Time) error
	ListUserIDsWithTargets(ctx context.Context) ([]string, error)
	GetActualMetrics(ctx context.Context, userID string, asOf time.Time) (*models.ActualMetrics, error)
}

// Notifier delivers milestone notifications
type Notifier interface {
	SendMilestoneNotification(to, name string, achievements []models.Achievement) error
}

type invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// CalculateRequest holds the inputs of a target calculation
type CalculateRequest struct {
	AnnualIncomeTarget float64                      `json:"annual_income_target"`
	Overrides          *models.CalculationOverrides `json:"overrides,omitempty"`
	CustomRate         *float64                     `json:"custom_rate,omitempty"`
}

// Service handles business logic
type Service struct {
	repo     Store
	averages averages.Provider
	notifier Notifier
	settings config.EngineSettings
	log      *logrus.Logger
	now      func() time.Time
	newID    targets.IDGenerator
}

// NewService initializes a new service. notifier may be nil.
func NewService(repo Store, provider averages.Provider, notifier Notifier, settings config.EngineSettings, log *logrus.Logger) *Service {
	return &Service{
		repo:     repo,
		averages: provider,
		notifier: notifier,
		settings: settings,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Validate checks a calculation request
func (r CalculateRequest) Validate() error {
	if math.IsNaN(r.AnnualIncomeTarget) || math.IsInf(r.AnnualIncomeTarget, 0) || r.AnnualIncomeTarget <= 0 {
		return fmt.Errorf("%w: annual income target must be greater than zero", ErrInvalidInput)
	}
	if r.AnnualIncomeTarget > MaxAnnualIncomeTarget {
		return fmt.Errorf("%w: annual income target must not exceed %.0f", ErrInvalidInput, MaxAnnualIncomeTarget)
	}
	if r.CustomRate != nil && !targets.ValidRate(*r.CustomRate) {
		return fmt.Errorf("%w: custom rate must be within [0.01,100]", ErrInvalidInput)
	}
	return nil
}

// Rates returns the configured persistency rates plus the request's custom rate
func (r CalculateRequest) Rates(settings config.EngineSettings) []float64 {
	rates := settings.Rates()
	if r.CustomRate != nil {
		rates = append(rates, *r.CustomRate)
	}
	return rates
}

// GetAverages returns the historical averages of a user
func (s *Service) GetAverages(ctx context.Context, userID string) (*models.HistoricalAverages, error) {
	return s.averages.GetHistoricalAverages(ctx, userID)
}

// RefreshAverages drops cached averages so the next lookup recomputes them
func (s *Service) RefreshAverages(ctx context.Context, userID string) error {
	inv, ok := s.averages.(invalidator)
	if !ok {
		return nil
	}
	if err := inv.Invalidate(ctx, userID); err != nil {
		return fmt.Errorf("failed to refresh averages: %w", err)
	}
	return nil
}

// Calculate derives targets, validation and persistency scenarios for an income goal
func (s *Service) Calculate(ctx context.Context, userID string, req CalculateRequest) (*models.CalculationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	avg, err := s.averages.GetHistoricalAverages(ctx, userID)
	if err != nil {
		return nil, err
	}
	if avg == nil {
		avg = &models.HistoricalAverages{}
	}

	result := targets.Plan(targets.Input{
		AnnualIncomeTarget: req.AnnualIncomeTarget,
		Averages:           avg,
		Overrides:          req.Overrides,
	}, req.Rates(s.settings))
	calculated := result.Targets
	s.log.WithFields(logrus.Fields{
		"user_id":         userID,
		"method":          calculated.CalculationMethod,
		"confidence":      calculated.Confidence,
		"annual_policies": calculated.AnnualPoliciesTarget,
	}).Info("Targets calculated")
	return &result, nil
}

// Projections evaluates persistency scenarios for an explicit policy base.
// Without rates the configured presets are used.
func (s *Service) Projections(baseAnnualPolicies int, avgPolicyPremium float64, rates []float64) ([]models.PersistencyScenario, error) {
	if baseAnnualPolicies < 0 {
		return nil, fmt.Errorf("%w: base annual policies must not be negative", ErrInvalidInput)
	}
	if avgPolicyPremium < 0 || math.IsNaN(avgPolicyPremium) {
		return nil, fmt.Errorf("%w: average policy premium must not be negative", ErrInvalidInput)
	}
	for _, r := range rates {
		if !targets.ValidRate(r) {
			return nil, fmt.Errorf("%w: persistency rate %v is outside [0.01,100]", ErrInvalidInput, r)
		}
	}
	if len(rates) == 0 {
		rates = s.settings.Rates()
	}
	return targets.ProjectScenarios(baseAnnualPolicies, avgPolicyPremium, rates), nil
}

// SaveTargets calculates targets for an income goal and stores them
func (s *Service) SaveTargets(ctx context.Context, userID string, req CalculateRequest) (*models.UserTargets, error) {
	result, err := s.Calculate(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	t := result.Targets
	stored := &models.UserTargets{
		UserID:                   userID,
		AnnualIncomeTarget:       t.AnnualIncomeTarget,
		MonthlyIncomeTarget:      t.MonthlyIncomeTarget,
		QuarterlyIncomeTarget:    t.QuarterlyIncomeTarget,
		AnnualPoliciesTarget:     t.AnnualPoliciesTarget,
		MonthlyPoliciesTarget:    t.MonthlyPoliciesTarget,
		AvgPremiumTarget:         t.AvgPolicyPremium,
		Persistency13MonthTarget: t.Persistency13MonthTarget,
		Persistency25MonthTarget: t.Persistency25MonthTarget,
		MonthlyExpenseTarget:     t.MonthlyExpenseTarget,
		ExpenseRatioTarget:       t.ExpenseRatio,
	}
	if err := s.repo.UpsertUserTargets(ctx, stored); err != nil {
		return nil, err
	}
	s.log.Infof("Targets saved for user %s: %.2f annual income", userID, t.AnnualIncomeTarget)
	return stored, nil
}

// GetTargets returns the stored targets of a user, or zero targets when none are stored
func (s *Service) GetTargets(ctx context.Context, userID string) (*models.UserTargets, error) {
	t, err := s.repo.GetUserTargets(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &models.UserTargets{UserID: userID, Achievements: []models.Achievement{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Progress measures a user's results against stored targets
func (s *Service) Progress(ctx context.Context, userID string) (*models.AllTargetsProgress, error) {
	t, err := s.repo.GetUserTargets(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress, err := s.progress(ctx, t)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (s *Service) progress(ctx context.Context, t *models.UserTargets) (models.AllTargetsProgress, error) {
	now := s.now()
	actuals, err := s.repo.GetActualMetrics(ctx, t.UserID, now)
	if err != nil {
		return models.AllTargetsProgress{}, err
	}
	avg, err := s.averages.GetHistoricalAverages(ctx, t.UserID)
	if err != nil {
		return models.AllTargetsProgress{}, err
	}
	actuals.Persistency13Month = avg.Persistency13Month
	actuals.Persistency25Month = avg.Persistency25Month
	return targets.CalculateAllProgress(t, *actuals, now), nil
}

// CheckMilestones awards achievements earned since the last check and notifies the user
func (s *Service) CheckMilestones(ctx context.Context, userID string) (*models.MilestoneCheck, error) {
	t, err := s.repo.GetUserTargets(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress, err := s.progress(ctx, t)
	if err != nil {
		return nil, err
	}

	now := s.now()
	earned := targets.CheckMilestones(t.Achievements, progress, now, s.newID)
	check := &models.MilestoneCheck{NewAchievements: earned, HasNewMilestones: len(earned) > 0}
	if !check.HasNewMilestones {
		check.NewAchievements = []models.Achievement{}
		return check, nil
	}

	all := append(append([]models.Achievement{}, t.Achievements...), earned...)
	if err := s.repo.SaveAchievements(ctx, userID, all, now); err != nil {
		return nil, err
	}
	s.log.Infof("User %s earned %d new achievement(s)", userID, len(earned))
	s.notify(ctx, userID, earned)
	return check, nil
}

func (s *Service) notify(ctx context.Context, userID string, earned []models.Achievement) {
	if s.notifier == nil {
		return
	}
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		s.log.Errorf("Failed to load user %s for milestone notification: %v", userID, err)
		return
	}
	if err := s.notifier.SendMilestoneNotification(user.Email, user.DisplayName(), earned); err != nil {
		s.log.Errorf("Failed to notify user %s about milestones: %v", userID, err)
	}
}

// SweepMilestones checks milestones for every user with stored targets.
// It returns the number of users who earned something; per-user failures are logged.
func (s *Service) SweepMilestones(ctx context.Context) (int, error) {
	ids, err := s.repo.ListUserIDsWithTargets(ctx)
	if err != nil {
		return 0, err
	}
	awarded := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return awarded, err
		}
		if err := s.RefreshAverages(ctx, id); err != nil {
			s.log.Warnf("Milestone sweep: %v", err)
		}
		check, err := s.CheckMilestones(ctx, id)
		if err != nil {
			s.log.Errorf("Milestone sweep failed for user %s: %v", id, err)
			continue
		}
		if check.HasNewMilestones {
			awarded++
		}
	}
	s.log.Infof("Milestone sweep finished: %d of %d users earned achievements", awarded, len(ids))
	return awarded, nil
}
