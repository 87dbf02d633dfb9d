package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finpulse-dev/finpulse/internal/model"
)

// FileName is the workspace configuration file.
const FileName = "finpulse.yaml"

// Config represents the top-level finpulse.yaml configuration.
type Config struct {
	Profile  ProfileConfig  `yaml:"profile"`
	Fiscal   FiscalConfig   `yaml:"fiscal"`
	Planning PlanningConfig `yaml:"planning"`
	Budget   BudgetConfig   `yaml:"budget"`
	Tax      TaxConfig      `yaml:"tax"`
}

// ProfileConfig identifies whose finances the workspace tracks.
type ProfileConfig struct {
	Name       string `yaml:"name"`
	Occupation string `yaml:"occupation,omitempty"`
}

// FiscalConfig defines the fiscal year boundary.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "04-01"
}

// PlanningConfig holds goal-planning and forecasting defaults.
type PlanningConfig struct {
	HorizonMonths  int `yaml:"horizon_months"`
	AttentionLimit int `yaml:"attention_limit"`
	Dependents     int `yaml:"dependents"`
}

// BudgetConfig sets the monthly targets overlaid on reports. Zero
// means no target line.
type BudgetConfig struct {
	MonthlyExpense decimal.Decimal `yaml:"monthly_expense"`
	MonthlySavings decimal.Decimal `yaml:"monthly_savings"`
}

// TaxConfig holds the preferred regime and planned deductions.
type TaxConfig struct {
	Regime     model.TaxRegime `yaml:"regime"`
	Deductions decimal.Decimal `yaml:"deductions"`
}

// Load reads a finpulse.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
// The fiscal year starts in April, matching the Indian tax calendar
// the estimators assume.
func Default(name, occupation string) *Config {
	return &Config{
		Profile: ProfileConfig{
			Name:       name,
			Occupation: occupation,
		},
		Fiscal: FiscalConfig{
			YearStart: "04-01",
		},
		Planning: PlanningConfig{
			HorizonMonths:  12,
			AttentionLimit: 3,
			Dependents:     0,
		},
		Budget: BudgetConfig{
			MonthlyExpense: decimal.Zero,
			MonthlySavings: decimal.Zero,
		},
		Tax: TaxConfig{
			Regime:     model.RegimeNew,
			Deductions: decimal.Zero,
		},
	}
}
