package adapters

import (
	"github.com/de-tools/cloud-atlas/pkg/models/api"
	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

func MapFindingDomainToApi(f domain.Finding) api.Finding {
	return api.Finding{
		Id:              f.Id,
		ResourceName:    f.ResourceName,
		Category:        f.Category,
		Severity:        string(f.Severity),
		Issue:           f.Issue,
		Recommendation:  f.Recommendation,
		EstimatedEffort: f.EstimatedEffort,
		Priority:        f.Priority,
	}
}

func MapPillarSummaryDomainToApi(p domain.PillarSummary) api.PillarSummary {
	return api.PillarSummary{
		Name:            p.Name,
		Overview:        p.Overview,
		CurrentState:    p.CurrentState,
		Strengths:       p.Strengths,
		Weaknesses:      p.Weaknesses,
		Recommendations: p.Recommendations,
		Score:           string(p.Score),
	}
}

func MapTagComplianceDomainToApi(c *domain.TagComplianceResult) *api.TagCompliance {
	if c == nil {
		return nil
	}
	result := &api.TagCompliance{
		TotalResources:    c.TotalResources,
		ResourcesWithTags: c.ResourcesWithTags,
		ComplianceRate:    c.ComplianceRate,
		RequiredTags:      c.RequiredTags,
		ResourceGroups:    make([]api.ResourceGroupCompliance, 0, len(c.ResourceGroups)),
	}
	for _, group := range c.ResourceGroups {
		result.ResourceGroups = append(result.ResourceGroups, api.ResourceGroupCompliance{
			Name:                  group.Name,
			TotalResources:        group.TotalResources,
			NonCompliantResources: group.NonCompliantResources,
			ComplianceRate:        group.ComplianceRate,
		})
	}
	return result
}

func MapCostAnalysisDomainToApi(c *domain.CostAnalysisResult) *api.CostAnalysis {
	if c == nil {
		return nil
	}
	result := &api.CostAnalysis{
		TotalResourcesAnalyzed: c.TotalResourcesAnalyzed,
		TotalFindings:          c.TotalFindings,
		ImmediateActions:       c.ImmediateActions,
		ReviewsNeeded:          c.ReviewsNeeded,
		Findings:               make([]api.Finding, 0, len(c.Findings)),
	}
	for _, f := range c.Findings {
		result.Findings = append(result.Findings, MapFindingDomainToApi(f))
	}
	return result
}

func MapAnalysisResultDomainToApi(r *domain.AnalysisResult) api.AnalysisReport {
	report := api.AnalysisReport{
		ExecutiveSummary: r.ExecutiveSummary,
		Findings:         make([]api.Finding, 0, len(r.Findings)),
		Statistics:       r.Statistics,
		TagCompliance:    MapTagComplianceDomainToApi(r.TagCompliance),
		CostAnalysis:     MapCostAnalysisDomainToApi(r.CostAnalysis),
	}
	for _, p := range r.PillarSummaries {
		report.PillarSummaries = append(report.PillarSummaries, MapPillarSummaryDomainToApi(p))
	}
	for _, f := range r.Findings {
		report.Findings = append(report.Findings, MapFindingDomainToApi(f))
	}
	return report
}
