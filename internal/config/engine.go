package config

import (
	"fmt"

	"github.com/Dan9191/commission-tracker/internal/targets"
	"github.com/spf13/viper"
)

// EngineSettings tunes the persistency projections
type EngineSettings struct {
	PresetRates []float64 `mapstructure:"preset_rates"`
	CustomRate  float64   `mapstructure:"custom_rate"`
}

// DefaultEngineSettings returns the settings used when no file is configured
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		PresetRates: []float64{95, 90, 85, 80},
		CustomRate:  75,
	}
}

// LoadEngineSettings reads engine settings from a YAML, JSON or TOML file.
// Keys missing from the file keep their defaults; an empty path returns the defaults.
func LoadEngineSettings(path string) (EngineSettings, error) {
	settings := DefaultEngineSettings()
	if path == "" {
		return settings, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("preset_rates", settings.PresetRates)
	v.SetDefault("custom_rate", settings.CustomRate)

	if err := v.ReadInConfig(); err != nil {
		return EngineSettings{}, fmt.Errorf("failed to read engine config: %w", err)
	}
	if err := v.Unmarshal(&settings); err != nil {
		return EngineSettings{}, fmt.Errorf("failed to parse engine config: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return EngineSettings{}, err
	}
	return settings, nil
}

// Validate checks that every rate is a percentage in [0.01,100]. A zero custom rate means none.
func (s EngineSettings) Validate() error {
	if len(s.PresetRates) == 0 {
		return fmt.Errorf("preset_rates must not be empty")
	}
	for _, r := range s.PresetRates {
		if !targets.ValidRate(r) {
			return fmt.Errorf("preset rate %v is outside [0.01,100]", r)
		}
	}
	if s.CustomRate != 0 && !targets.ValidRate(s.CustomRate) {
		return fmt.Errorf("custom_rate %v is outside [0.01,100]", s.CustomRate)
	}
	return nil
}

// Rates returns the preset rates followed by the custom rate, when one is set
func (s EngineSettings) Rates() []float64 {
	rates := append([]float64{}, s.PresetRates...)
	if s.CustomRate > 0 {
		rates = append(rates, s.CustomRate)
	}
	return rates
}
