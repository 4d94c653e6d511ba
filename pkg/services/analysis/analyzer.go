package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/narrative"
	"golang.org/x/sync/errgroup"
)

// ErrNarrative marks failures of the AI collaborator. Callers that treat the
// narrative as optional match on it and retry with AI analysis disabled.
var ErrNarrative = errors.New("narrative generation failed")

// ValidationError reports an inventory entry the engine refuses to analyze.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid resource at index %d: %s", e.Index, e.Reason)
}

// Analyzer runs the evaluators over an inventory and aggregates their output
// into a single result. The narrative generator is optional; a nil generator
// simply skips the narrative even when settings enable it.
type Analyzer struct {
	narrative narrative.Generator
}

func NewAnalyzer(gen narrative.Generator) *Analyzer {
	return &Analyzer{narrative: gen}
}

// Analyze validates the inventory, runs the enabled evaluators, and merges
// their findings in narrative, tag, cost order. Priorities are assigned once,
// after the merge, so they are dense and monotonic across categories.
func (a *Analyzer) Analyze(
	ctx context.Context,
	resources []domain.Resource,
	settings domain.Settings,
) (*domain.AnalysisResult, error) {
	for i, r := range resources {
		if r.Id == "" {
			return nil, &ValidationError{Index: i, Reason: "missing id"}
		}
		if r.Type == "" {
			return nil, &ValidationError{Index: i, Reason: "missing type"}
		}
	}

	pillarSettings := settings.Pillars
	if pillarSettings == (domain.PillarSettings{}) {
		pillarSettings = domain.DefaultPillarSettings()
	}

	var (
		tagResult   *domain.TagComplianceResult
		tagFindings []domain.Finding
		costResult  *domain.CostAnalysisResult
		pillars     []domain.PillarSummary
	)

	g, _ := errgroup.WithContext(ctx)
	if settings.TagAnalysis.Enabled {
		g.Go(func() error {
			result, findings := EvaluateTagCompliance(resources, settings.TagAnalysis)
			tagResult = &result
			tagFindings = findings
			return nil
		})
	}
	if settings.CostAnalysis.Enabled {
		g.Go(func() error {
			result := EvaluateCosts(resources)
			costResult = &result
			return nil
		})
	}
	g.Go(func() error {
		pillars = EvaluatePillars(resources, pillarSettings)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &domain.AnalysisResult{
		PillarSummaries: pillars,
		TagCompliance:   tagResult,
		CostAnalysis:    costResult,
	}

	var narrativeFindings []domain.Finding
	if settings.AIAnalysis.Enabled && a.narrative != nil {
		output, err := a.narrative.Generate(ctx, narrative.Input{
			Resources:     resources,
			Settings:      settings.AIAnalysis,
			TagCompliance: tagResult,
			CostAnalysis:  costResult,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNarrative, err)
		}
		result.ExecutiveSummary = output.Summary
		if len(output.PillarSummaries) > 0 {
			result.PillarSummaries = output.PillarSummaries
		}
		narrativeFindings = output.Findings
	}

	merged := make([]domain.Finding, 0, len(narrativeFindings)+len(tagFindings))
	merged = append(merged, narrativeFindings...)
	merged = append(merged, tagFindings...)
	if costResult != nil {
		merged = append(merged, costResult.Findings...)
	}
	for i := range merged {
		merged[i].Priority = i + 1
	}
	result.Findings = merged
	result.Statistics = computeStatistics(resources, merged)

	// The cost sub-result embeds copies of its findings; sync their
	// priorities so a finding never reports two different ones.
	if costResult != nil {
		priorities := make(map[string]int, len(merged))
		for _, f := range merged {
			priorities[f.Id] = f.Priority
		}
		for i := range costResult.Findings {
			costResult.Findings[i].Priority = priorities[costResult.Findings[i].Id]
		}
	}

	return result, nil
}

// computeStatistics derives the headline numbers from the merged findings
// list rather than from per-evaluator counters, so they stay consistent with
// what the report actually shows.
func computeStatistics(resources []domain.Resource, findings []domain.Finding) map[string]int {
	types := make(map[string]struct{})
	for _, r := range resources {
		types[r.Type] = struct{}{}
	}

	stats := map[string]int{
		domain.StatTotalResources: len(resources),
		domain.StatResourceTypes:  len(types),
		domain.StatTotalFindings:  len(findings),
	}
	for _, f := range findings {
		switch f.Severity {
		case domain.SeverityCritical:
			stats[domain.StatCriticalFindings]++
		case domain.SeverityHigh:
			stats[domain.StatHighFindings]++
		}
	}
	if _, ok := stats[domain.StatCriticalFindings]; !ok {
		stats[domain.StatCriticalFindings] = 0
	}
	if _, ok := stats[domain.StatHighFindings]; !ok {
		stats[domain.StatHighFindings] = 0
	}
	return stats
}
