package analysis

import (
	"fmt"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/google/uuid"
)

const categoryCostOptimization = "Cost Optimization"

// costAllocationTag is the tag a virtual machine must carry for its spend to
// be attributable to a cost center.
const costAllocationTag = "CostCenter"

// consolidationThreshold is the per-type resource count from which a
// consolidation review is suggested.
const consolidationThreshold = 10

// costRule inspects the inventory and returns zero or more findings. Rules
// are pure and independent of each other.
type costRule func(resources []domain.Resource) []domain.Finding

var defaultCostRules = []costRule{
	vmCostAllocationRule,
	managedDiskReviewRule,
	publicIPReviewRule,
	consolidationRule,
}

// EvaluateCosts runs the cost heuristics over the inventory and aggregates
// their findings. ImmediateActions and ReviewsNeeded count Critical and High
// findings produced here; findings from other evaluators do not contribute.
func EvaluateCosts(resources []domain.Resource) domain.CostAnalysisResult {
	var findings []domain.Finding
	for _, rule := range defaultCostRules {
		findings = append(findings, rule(resources)...)
	}

	result := domain.CostAnalysisResult{
		TotalResourcesAnalyzed: len(resources),
		TotalFindings:          len(findings),
		Findings:               findings,
	}
	for _, f := range findings {
		switch f.Severity {
		case domain.SeverityCritical:
			result.ImmediateActions++
		case domain.SeverityHigh:
			result.ReviewsNeeded++
		}
	}
	return result
}

func vmCostAllocationRule(resources []domain.Resource) []domain.Finding {
	var findings []domain.Finding
	for _, r := range resources {
		if !r.IsVirtualMachine() || r.HasTag(costAllocationTag) {
			continue
		}
		findings = append(findings, domain.Finding{
			Id:              uuid.NewString(),
			ResourceName:    r.Name,
			Category:        categoryCostOptimization,
			Severity:        domain.SeverityMedium,
			Issue:           "VM missing cost allocation tags",
			Recommendation:  fmt.Sprintf("Add a %s tag so compute spend can be attributed", costAllocationTag),
			EstimatedEffort: "Low",
		})
	}
	return findings
}

func managedDiskReviewRule(resources []domain.Resource) []domain.Finding {
	var findings []domain.Finding
	for _, r := range resources {
		if !r.IsManagedDisk() {
			continue
		}
		findings = append(findings, domain.Finding{
			Id:              uuid.NewString(),
			ResourceName:    r.Name,
			Category:        categoryCostOptimization,
			Severity:        domain.SeverityMedium,
			Issue:           "Managed disk should be reviewed for attachment",
			Recommendation:  "Verify the disk is attached to a running workload and delete it if orphaned",
			EstimatedEffort: "Low",
		})
	}
	return findings
}

func publicIPReviewRule(resources []domain.Resource) []domain.Finding {
	var findings []domain.Finding
	for _, r := range resources {
		if !r.IsPublicIP() {
			continue
		}
		findings = append(findings, domain.Finding{
			Id:              uuid.NewString(),
			ResourceName:    r.Name,
			Category:        categoryCostOptimization,
			Severity:        domain.SeverityLow,
			Issue:           "Public IP address should be reviewed for association",
			Recommendation:  "Release the address if it is not associated with a running service",
			EstimatedEffort: "Low",
		})
	}
	return findings
}

// consolidationRule flags resource types that appear often enough that
// consolidation or reserved capacity is worth a look.
func consolidationRule(resources []domain.Resource) []domain.Finding {
	counts := make(map[string]int)
	for _, r := range resources {
		counts[r.Type]++
	}

	var findings []domain.Finding
	for _, r := range resources {
		if counts[r.Type] < consolidationThreshold {
			continue
		}
		count := counts[r.Type]
		delete(counts, r.Type)
		findings = append(findings, domain.Finding{
			Id:              uuid.NewString(),
			ResourceName:    r.Type,
			Category:        categoryCostOptimization,
			Severity:        domain.SeverityLow,
			Issue:           fmt.Sprintf("%d resources of type %s", count, r.Type),
			Recommendation:  "Consider consolidation or reserved capacity for this resource type",
			EstimatedEffort: "Medium",
		})
	}
	return findings
}
