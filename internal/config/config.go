package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// AppConfig holds application-wide configuration for the loot generator tool.
type AppConfig struct {
	Data       DataConfig       `yaml:"data"`
	Generation GenerationConfig `yaml:"generation"`
}

// DataConfig holds file path settings.
type DataConfig struct {
	// LootPath is the path to the loot configuration YAML file.
	LootPath string `yaml:"loot_path"`

	// LoggingPath is the path to the logging configuration YAML file.
	LoggingPath string `yaml:"logging_path"`
}

// GenerationConfig holds the default generation parameters. Command-line
// flags override these per invocation.
type GenerationConfig struct {
	// Count is the default number of items per request.
	Count int `yaml:"count"`

	// BaseLevel is the default center of the item level range.
	BaseLevel float64 `yaml:"base_level"`

	// LevelVariance widens the level range to base +/- variance.
	LevelVariance float64 `yaml:"level_variance"`

	// AffixChance is the default per-slot affix probability (0.0-1.0).
	AffixChance float64 `yaml:"affix_chance"`

	// Exponential selects exponential attribute scaling instead of linear.
	Exponential bool `yaml:"exponential"`

	// ScalingFactor is the default global attribute scaling factor.
	ScalingFactor float64 `yaml:"scaling_factor"`
}

// DefaultConfig returns an AppConfig with sensible defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Data: DataConfig{
			LootPath:    "data/loot.yaml",
			LoggingPath: "data/logging.yaml",
		},
		Generation: GenerationConfig{
			Count:         1,
			BaseLevel:     1.0,
			LevelVariance: 1.0,
			AffixChance:   0.25,
			Exponential:   false,
			ScalingFactor: 1.0,
		},
	}
}

// LoadConfig loads application configuration from a YAML file.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (*AppConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Use defaults if file doesn't exist
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}
