package targets

import (
	"time"

	"github.com/Dan9191/commission-tracker/internal/models"
)

// IDGenerator returns a fresh achievement identifier
type IDGenerator func() string

type milestone struct {
	kind, level       string
	threshold         float64
	name, description string
}

// Income levels are checked highest first and at most one is awarded per check
var incomeMilestones = []milestone{
	{models.AchievementIncome, models.LevelGold, 100, "Annual Income Goal Achieved", "Reached your annual income target!"},
	{models.AchievementIncome, models.LevelSilver, 75, "75% Income Progress", "Reached 75% of your annual income target!"},
	{models.AchievementIncome, models.LevelBronze, 50, "Halfway There!", "Reached 50% of your annual income target!"},
}

var (
	policiesMilestone    = milestone{models.AchievementPolicies, models.LevelGold, 100, "Policy Goal Achieved", "Reached your annual policy target!"}
	persistencyMilestone = milestone{models.AchievementPersistency, models.LevelGold, 100, "Persistency Champion", "Exceeded your 13-month persistency target!"}
)

// CheckMilestones returns the achievements earned by progress that are not already in existing
func CheckMilestones(existing []models.Achievement, progress models.AllTargetsProgress, now time.Time, newID IDGenerator) []models.Achievement {
	var earned []models.Achievement
	award := func(m milestone, p models.TargetProgress) {
		earned = append(earned, models.Achievement{
			ID:          newID(),
			Type:        m.kind,
			Level:       m.level,
			Name:        m.name,
			Description: m.description,
			EarnedDate:  now,
			Value:       p.Actual,
		})
	}

	for _, m := range incomeMilestones {
		if progress.AnnualIncome.Percentage >= m.threshold && !hasAchievement(existing, m.kind, m.level) {
			award(m, progress.AnnualIncome)
			break
		}
	}
	if progress.AnnualPolicies.Percentage >= policiesMilestone.threshold &&
		!hasAchievement(existing, policiesMilestone.kind, policiesMilestone.level) {
		award(policiesMilestone, progress.AnnualPolicies)
	}
	if progress.Persistency13.Percentage >= persistencyMilestone.threshold &&
		!hasAchievement(existing, persistencyMilestone.kind, persistencyMilestone.level) {
		award(persistencyMilestone, progress.Persistency13)
	}
	return earned
}

func hasAchievement(achievements []models.Achievement, kind, level string) bool {
	for _, a := range achievements {
		if a.Type == kind && a.Level == level {
			return true
		}
	}
	return false
}
