package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/Dan9191/commission-tracker/internal/models"
)

type TableConfig struct {
	RateWidth  int
	CountWidth int
	MoneyWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		RateWidth:  12,
		CountWidth: 10,
		MoneyWidth: 16,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const calculationTemplate = `
Targets for {{money .Targets.AnnualIncomeTarget}} net income ({{.Targets.CalculationMethod}}, {{.Targets.Confidence}} confidence)

Income      quarterly {{money .Targets.QuarterlyIncomeTarget}}  monthly {{money .Targets.MonthlyIncomeTarget}}  weekly {{money .Targets.WeeklyIncomeTarget}}  daily {{money .Targets.DailyIncomeTarget}}
Premium     {{money .Targets.TotalPremiumNeeded}} at {{percent .Targets.AvgCommissionRate}} commission
Policies    annual {{.Targets.AnnualPoliciesTarget}}  quarterly {{.Targets.QuarterlyPoliciesTarget}}  monthly {{.Targets.MonthlyPoliciesTarget}}  weekly {{.Targets.WeeklyPoliciesTarget}}  daily {{.Targets.DailyPoliciesTarget}}
Expenses    {{money .Targets.AnnualExpenses}} per year, {{money .Targets.MonthlyExpenseTarget}} per month, ratio {{percent .Targets.ExpenseRatio}}
{{if .Validation.Warnings}}
Warnings
{{range .Validation.Warnings}}  ! {{.}}
{{end}}{{range .Validation.Recommendations}}  > {{.}}
{{end}}{{end}}
{{scenarioTable .Scenarios}}`

const scenariosTemplate = `
Persistency scenarios for {{.Base}} policies

{{scenarioTable .Scenarios}}`

func (r *Reporter) funcMap() template.FuncMap {
	c := r.config
	return template.FuncMap{
		"money":   func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
		"scenarioTable": func(scenarios []models.PersistencyScenario) string {
			sep := fmt.Sprintf("+%s+%s+%s+%s+%s+\n",
				strings.Repeat("-", c.RateWidth+2),
				strings.Repeat("-", c.CountWidth+2),
				strings.Repeat("-", c.CountWidth+2),
				strings.Repeat("-", c.CountWidth+2),
				strings.Repeat("-", c.MoneyWidth+2))
			var b strings.Builder
			b.WriteString(sep)
			fmt.Fprintf(&b, "| %-*s | %*s | %*s | %*s | %*s |\n",
				c.RateWidth, "Persistency", c.CountWidth, "Annual", c.CountWidth, "Monthly",
				c.CountWidth, "Extra", c.MoneyWidth, "Gross premium")
			b.WriteString(sep)
			for _, s := range scenarios {
				fmt.Fprintf(&b, "| %-*s | %*d | %*d | %*s | %*.2f |\n",
					c.RateWidth, fmt.Sprintf("%.1f%%", s.PersistencyRate),
					c.CountWidth, s.AnnualPoliciesNeeded,
					c.CountWidth, s.MonthlyPoliciesNeeded,
					c.CountWidth, fmt.Sprintf("+%d (%.1f%%)", s.ExtraPoliciesForChurn, s.PercentIncrease),
					c.MoneyWidth, s.GrossPremiumNeeded)
			}
			b.WriteString(sep)
			return b.String()
		},
	}
}

func (r *Reporter) render(name, tmpl string, data interface{}) error {
	t, err := template.New(name).Funcs(r.funcMap()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, data)
}

// Calculation prints targets, warnings and persistency scenarios
func (r *Reporter) Calculation(res *models.CalculationResult) error {
	return r.render("calculation", calculationTemplate, res)
}

// Scenarios prints a persistency table for a policy base
func (r *Reporter) Scenarios(base int, scenarios []models.PersistencyScenario) error {
	return r.render("scenarios", scenariosTemplate, struct {
		Base      int
		Scenarios []models.PersistencyScenario
	}{base, scenarios})
}

// JSON prints v as indented JSON
func (r *Reporter) JSON(v interface{}) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
