package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/commission-tracker/internal/models"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FindUserByID retrieves an agent profile
func (r *Repository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, COALESCE(first_name, ''), COALESCE(last_name, '')
		FROM user_profiles
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

const userTargetsColumns = `id, user_id, annual_income_target, monthly_income_target, quarterly_income_target,
		annual_policies_target, monthly_policies_target, avg_premium_target,
		persistency_13_month_target, persistency_25_month_target, monthly_expense_target,
		expense_ratio_target, achievements, last_milestone_date, created_at, updated_at`

// GetUserTargets retrieves the stored targets of a user
func (r *Repository) GetUserTargets(ctx context.Context, userID string) (*models.UserTargets, error) {
	query := `SELECT ` + userTargetsColumns + `
		FROM user_targets
		WHERE user_id = $1`
	t, err := scanUserTargets(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("targets for user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user targets: %w", err)
	}
	return t, nil
}

// UpsertUserTargets creates or replaces the targets of t.UserID.
// Achievements already stored are kept when t carries none.
func (r *Repository) UpsertUserTargets(ctx context.Context, t *models.UserTargets) error {
	achievements, err := json.Marshal(nonNilAchievements(t.Achievements))
	if err != nil {
		return fmt.Errorf("failed to encode achievements: %w", err)
	}
	query := `
		INSERT INTO user_targets (user_id, annual_income_target, monthly_income_target, quarterly_income_target,
			annual_policies_target, monthly_policies_target, avg_premium_target,
			persistency_13_month_target, persistency_25_month_target, monthly_expense_target,
			expense_ratio_target, achievements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE SET
			annual_income_target = EXCLUDED.annual_income_target,
			monthly_income_target = EXCLUDED.monthly_income_target,
			quarterly_income_target = EXCLUDED.quarterly_income_target,
			annual_policies_target = EXCLUDED.annual_policies_target,
			monthly_policies_target = EXCLUDED.monthly_policies_target,
			avg_premium_target = EXCLUDED.avg_premium_target,
			persistency_13_month_target = EXCLUDED.persistency_13_month_target,
			persistency_25_month_target = EXCLUDED.persistency_25_month_target,
			monthly_expense_target = EXCLUDED.monthly_expense_target,
			expense_ratio_target = EXCLUDED.expense_ratio_target,
			achievements = CASE WHEN jsonb_array_length(EXCLUDED.achievements) = 0
				THEN user_targets.achievements ELSE EXCLUDED.achievements END,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query,
		t.UserID, t.AnnualIncomeTarget, t.MonthlyIncomeTarget, t.QuarterlyIncomeTarget,
		t.AnnualPoliciesTarget, t.MonthlyPoliciesTarget, t.AvgPremiumTarget,
		t.Persistency13MonthTarget, t.Persistency25MonthTarget, t.MonthlyExpenseTarget,
		t.ExpenseRatioTarget, string(achievements),
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert user targets: %w", err)
	}
	return nil
}

// SaveAchievements replaces the achievement list of a user and stamps the milestone date
func (r *Repository) SaveAchievements(ctx context.Context, userID string, achievements []models.Achievement, at time.Time) error {
	payload, err := json.Marshal(nonNilAchievements(achievements))
	if err != nil {
		return fmt.Errorf("failed to encode achievements: %w", err)
	}
	query := `
		UPDATE user_targets
		SET achievements = $2::jsonb, last_milestone_date = $3, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, string(payload), at)
	if err != nil {
		return fmt.Errorf("failed to save achievements: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save achievements: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("targets for user %s: %w", userID, ErrNotFound)
	}
	return nil
}

// ListUserIDsWithTargets returns every user that has stored targets
func (r *Repository) ListUserIDsWithTargets(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM user_targets ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with targets: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users with targets: %w", err)
	}
	return ids, nil
}

func scanUserTargets(row *sql.Row) (*models.UserTargets, error) {
	t := &models.UserTargets{}
	var (
		achievements  []byte
		lastMilestone sql.NullTime
	)
	err := row.Scan(&t.ID, &t.UserID, &t.AnnualIncomeTarget, &t.MonthlyIncomeTarget, &t.QuarterlyIncomeTarget,
		&t.AnnualPoliciesTarget, &t.MonthlyPoliciesTarget, &t.AvgPremiumTarget,
		&t.Persistency13MonthTarget, &t.Persistency25MonthTarget, &t.MonthlyExpenseTarget,
		&t.ExpenseRatioTarget, &achievements, &lastMilestone, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Achievements = []models.Achievement{}
	if len(achievements) > 0 {
		if err := json.Unmarshal(achievements, &t.Achievements); err != nil {
			return nil, fmt.Errorf("failed to decode achievements: %w", err)
		}
	}
	if lastMilestone.Valid {
		t.LastMilestoneDate = &lastMilestone.Time
	}
	return t, nil
}

func nonNilAchievements(a []models.Achievement) []models.Achievement {
	if a == nil {
		return []models.Achievement{}
	}
	return a
}
