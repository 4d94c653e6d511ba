package domain

import "time"

// TagAnalysisSettings controls the tag compliance evaluator. Enabled gates
// whether the evaluator runs at all; when disabled the result carries no
// tag compliance section and no tag findings.
type TagAnalysisSettings struct {
	Enabled          bool
	RequiredTags     []string
	InvalidTagValues []string
}

type CostAnalysisSettings struct {
	Enabled bool
}

// AIAnalysisSettings configures the optional narrative collaborator.
// Endpoint and Deployment select Azure OpenAI; otherwise the public
// OpenAI API is used. API keys come from the environment, never from here.
type AIAnalysisSettings struct {
	Enabled     bool
	Model       string
	Temperature float64
	Endpoint    string
	Deployment  string
	Timeout     time.Duration
}

// PillarSettings contains the configurable thresholds shared by the pillar
// evaluators, so pillar tuning does not require recompilation.
type PillarSettings struct {
	// CostTagRatioThreshold is the minimum ratio of resources carrying cost
	// allocation tags for the Cost Optimization pillar (default: 0.7).
	CostTagRatioThreshold float64
	// OperationsTagRatioThreshold is the minimum ratio of resources carrying
	// operational tags for the Operational Excellence pillar (default: 0.8).
	OperationsTagRatioThreshold float64
	// HighScoreMinStrengths is the strength count a pillar must exceed, in
	// addition to outnumbering weaknesses, to score High (default: 2).
	HighScoreMinStrengths int
	// LowScoreWeaknessMultiplier scores a pillar Low when weaknesses exceed
	// this multiple of its strengths (default: 2).
	LowScoreWeaknessMultiplier int
}

// DefaultPillarSettings returns the default pillar thresholds.
func DefaultPillarSettings() PillarSettings {
	return PillarSettings{
		CostTagRatioThreshold:       0.7,
		OperationsTagRatioThreshold: 0.8,
		HighScoreMinStrengths:       2,
		LowScoreWeaknessMultiplier:  2,
	}
}

type Settings struct {
	TagAnalysis  TagAnalysisSettings
	CostAnalysis CostAnalysisSettings
	AIAnalysis   AIAnalysisSettings
	Pillars      PillarSettings
}

// DefaultSettings mirrors the defaults shipped with the settings file:
// cost heuristics on, tag governance and AI narrative opt-in.
func DefaultSettings() Settings {
	return Settings{
		CostAnalysis: CostAnalysisSettings{Enabled: true},
		AIAnalysis:   AIAnalysisSettings{Model: "gpt-4", Temperature: 0.3, Timeout: 2 * time.Minute},
		Pillars:      DefaultPillarSettings(),
	}
}
