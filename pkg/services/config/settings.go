// Package config loads analysis settings from a YAML file.
package config

import (
	"fmt"
	"time"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/spf13/viper"
)

type tagAnalysisConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	RequiredTags     []string `mapstructure:"required_tags"`
	InvalidTagValues []string `mapstructure:"invalid_tag_values"`
}

type costAnalysisConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type aiAnalysisConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	Endpoint    string        `mapstructure:"endpoint"`
	Deployment  string        `mapstructure:"deployment"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type pillarsConfig struct {
	CostTagRatioThreshold       float64 `mapstructure:"cost_tag_ratio_threshold"`
	OperationsTagRatioThreshold float64 `mapstructure:"operations_tag_ratio_threshold"`
	HighScoreMinStrengths       int     `mapstructure:"high_score_min_strengths"`
	LowScoreWeaknessMultiplier  int     `mapstructure:"low_score_weakness_multiplier"`
}

type settingsFile struct {
	TagAnalysis  tagAnalysisConfig  `mapstructure:"tag_analysis"`
	CostAnalysis costAnalysisConfig `mapstructure:"cost_analysis"`
	AIAnalysis   aiAnalysisConfig   `mapstructure:"ai_analysis"`
	Pillars      pillarsConfig      `mapstructure:"pillars"`
}

// LoadSettings reads a settings file. An empty path returns the defaults.
// Pillar thresholds left out of the file keep their default values.
func LoadSettings(path string) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if path == "" {
		return settings, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	var cfg settingsFile
	if err := v.Unmarshal(&cfg); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}

	settings.TagAnalysis = domain.TagAnalysisSettings{
		Enabled:          cfg.TagAnalysis.Enabled,
		RequiredTags:     cfg.TagAnalysis.RequiredTags,
		InvalidTagValues: cfg.TagAnalysis.InvalidTagValues,
	}
	settings.CostAnalysis = domain.CostAnalysisSettings{
		Enabled: cfg.CostAnalysis.Enabled,
	}

	ai := settings.AIAnalysis
	ai.Enabled = cfg.AIAnalysis.Enabled
	ai.Endpoint = cfg.AIAnalysis.Endpoint
	ai.Deployment = cfg.AIAnalysis.Deployment
	if cfg.AIAnalysis.Model != "" {
		ai.Model = cfg.AIAnalysis.Model
	}
	if cfg.AIAnalysis.Temperature > 0 {
		ai.Temperature = cfg.AIAnalysis.Temperature
	}
	if cfg.AIAnalysis.Timeout > 0 {
		ai.Timeout = cfg.AIAnalysis.Timeout
	}
	settings.AIAnalysis = ai

	pillars := settings.Pillars
	if cfg.Pillars.CostTagRatioThreshold > 0 {
		pillars.CostTagRatioThreshold = cfg.Pillars.CostTagRatioThreshold
	}
	if cfg.Pillars.OperationsTagRatioThreshold > 0 {
		pillars.OperationsTagRatioThreshold = cfg.Pillars.OperationsTagRatioThreshold
	}
	if cfg.Pillars.HighScoreMinStrengths > 0 {
		pillars.HighScoreMinStrengths = cfg.Pillars.HighScoreMinStrengths
	}
	if cfg.Pillars.LowScoreWeaknessMultiplier > 0 {
		pillars.LowScoreWeaknessMultiplier = cfg.Pillars.LowScoreWeaknessMultiplier
	}
	settings.Pillars = pillars

	return settings, nil
}
