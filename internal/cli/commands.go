package cli

import (
	"fmt"

	"github.com/Dan9191/commission-tracker/internal/config"
	"github.com/Dan9191/commission-tracker/internal/models"
	"github.com/Dan9191/commission-tracker/internal/service"
	"github.com/Dan9191/commission-tracker/internal/targets"
	"github.com/spf13/cobra"
)

type settingsFunc func() (config.EngineSettings, error)

type CalculateCmd struct {
	income           float64
	averages         models.HistoricalAverages
	overrideRate     float64
	overridePremium  float64
	overrideExpenses float64
	overrideMonthly  float64
	customRate       float64
	asJSON           bool
	settings         settingsFunc
	reporter         *Reporter
}

func NewCalculateCmd(settings settingsFunc, reporter *Reporter) *cobra.Command {
	cc := &CalculateCmd{settings: settings, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Derive sales targets from an annual net income goal",
		RunE:  cc.run,
	}

	f := cmd.Flags()
	f.Float64Var(&cc.income, "income", 0, "Annual net income target")
	f.Float64Var(&cc.averages.AvgCommissionRate, "commission-rate", 0, "Historical average commission rate (0-1)")
	f.Float64Var(&cc.averages.AvgPolicyPremium, "premium", 0, "Historical average annual premium per policy")
	f.Float64Var(&cc.averages.AvgPoliciesPerMonth, "policies-per-month", 0, "Historical average policies written per month")
	f.Float64Var(&cc.averages.AvgExpensesPerMonth, "monthly-expenses", 0, "Historical average expenses per month")
	f.Float64Var(&cc.averages.ProjectedAnnualExpenses, "annual-expenses", 0, "Expenses recorded for the year")
	f.Float64Var(&cc.averages.Persistency13Month, "persistency-13", 0, "13-month persistency (0-1)")
	f.Float64Var(&cc.averages.Persistency25Month, "persistency-25", 0, "25-month persistency (0-1)")
	f.BoolVar(&cc.averages.HasData, "has-data", false, "Treat the averages as recorded history")
	f.Float64Var(&cc.overrideRate, "override-commission-rate", 0, "Commission rate to use instead of the historical one")
	f.Float64Var(&cc.overridePremium, "override-premium", 0, "Policy premium to use instead of the historical one")
	f.Float64Var(&cc.overrideExpenses, "override-annual-expenses", 0, "Annual expenses to use instead of the recorded ones")
	f.Float64Var(&cc.overrideMonthly, "override-monthly-expenses", 0, "Monthly expense target to use instead of the historical average")
	f.Float64Var(&cc.customRate, "custom-rate", 0, "Extra persistency rate to project, in percent")
	f.BoolVar(&cc.asJSON, "json", false, "Print JSON instead of a table")

	_ = cmd.MarkFlagRequired("income")

	return cmd
}

func (cc *CalculateCmd) run(cmd *cobra.Command, args []string) error {
	req := service.CalculateRequest{AnnualIncomeTarget: cc.income}
	if cmd.Flags().Changed("custom-rate") {
		req.CustomRate = &cc.customRate
	}
	if err := req.Validate(); err != nil {
		return err
	}
	settings, err := cc.settings()
	if err != nil {
		return err
	}

	overrides := &models.CalculationOverrides{}
	if cmd.Flags().Changed("override-commission-rate") {
		overrides.AvgCommissionRate = &cc.overrideRate
	}
	if cmd.Flags().Changed("override-premium") {
		overrides.AvgPolicyPremium = &cc.overridePremium
	}
	if cmd.Flags().Changed("override-annual-expenses") {
		overrides.ProjectedAnnualExpenses = &cc.overrideExpenses
	}
	if cmd.Flags().Changed("override-monthly-expenses") {
		overrides.MonthlyExpenseTarget = &cc.overrideMonthly
	}

	avg := cc.averages
	result := targets.Plan(targets.Input{
		AnnualIncomeTarget: req.AnnualIncomeTarget,
		Averages:           &avg,
		Overrides:          overrides,
	}, req.Rates(settings))

	if cc.asJSON {
		return cc.reporter.JSON(result)
	}
	return cc.reporter.Calculation(&result)
}

type ScenariosCmd struct {
	base     int
	premium  float64
	rates    []float64
	asJSON   bool
	settings settingsFunc
	reporter *Reporter
}

func NewScenariosCmd(settings settingsFunc, reporter *Reporter) *cobra.Command {
	sc := &ScenariosCmd{settings: settings, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Project policy volume needed at different persistency rates",
		RunE:  sc.run,
	}

	cmd.Flags().IntVar(&sc.base, "base", 0, "Annual policies needed with no lapses")
	cmd.Flags().Float64Var(&sc.premium, "premium", 0, "Average annual premium per policy")
	cmd.Flags().Float64SliceVar(&sc.rates, "rates", nil, "Persistency rates in percent (default: configured presets)")
	cmd.Flags().BoolVar(&sc.asJSON, "json", false, "Print JSON instead of a table")

	_ = cmd.MarkFlagRequired("base")

	return cmd
}

func (sc *ScenariosCmd) run(cmd *cobra.Command, args []string) error {
	if sc.base < 0 {
		return fmt.Errorf("base must not be negative")
	}
	rates := sc.rates
	if len(rates) == 0 {
		settings, err := sc.settings()
		if err != nil {
			return err
		}
		rates = settings.Rates()
	}
	for _, r := range rates {
		if !targets.ValidRate(r) {
			return fmt.Errorf("persistency rate %v is outside [0.01,100]", r)
		}
	}

	scenarios := targets.ProjectScenarios(sc.base, sc.premium, rates)
	if sc.asJSON {
		return sc.reporter.JSON(scenarios)
	}
	return sc.reporter.Scenarios(sc.base, scenarios)
}
