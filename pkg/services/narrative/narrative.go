// Package narrative defines the optional AI collaborator that turns raw
// analysis output into prose summaries and additional findings.
package narrative

import (
	"context"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

// Input carries everything a generator may draw on: the raw inventory plus
// the deterministic evaluators' output, when those evaluators ran.
type Input struct {
	Resources     []domain.Resource
	Settings      domain.AIAnalysisSettings
	TagCompliance *domain.TagComplianceResult
	CostAnalysis  *domain.CostAnalysisResult
}

// Output is what a generator contributes to the report. PillarSummaries,
// when non-empty, replace the deterministic pillar assessment. Findings are
// merged ahead of the deterministic ones.
type Output struct {
	Summary         string
	PillarSummaries []domain.PillarSummary
	Findings        []domain.Finding
}

type Generator interface {
	Generate(ctx context.Context, input Input) (*Output, error)
}
