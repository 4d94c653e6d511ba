package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/google/uuid"
)

const categoryTagCompliance = "Tag Compliance"

// groupRateHighThreshold is the group compliance rate below which a
// non-compliant resource group yields a High finding instead of Medium.
const groupRateHighThreshold = 50

// EvaluateTagCompliance checks every resource against the required-tag and
// banned-value policies and partitions the inventory by resource group.
//
// A resource is compliant when it misses no required tag and none of its tag
// values is banned (values matched case-insensitively). The group-level check
// intentionally considers missing tags only: a resource whose only violation
// is a banned value counts as compliant within its group.
func EvaluateTagCompliance(
	resources []domain.Resource,
	settings domain.TagAnalysisSettings,
) (domain.TagComplianceResult, []domain.Finding) {
	invalidValues := make(map[string]struct{}, len(settings.InvalidTagValues))
	for _, v := range settings.InvalidTagValues {
		invalidValues[strings.ToLower(v)] = struct{}{}
	}

	result := domain.TagComplianceResult{
		TotalResources: len(resources),
		RequiredTags:   settings.RequiredTags,
	}

	type groupStats struct {
		total        int
		nonCompliant int
	}
	groups := make(map[string]*groupStats)

	compliant := 0
	for _, r := range resources {
		if len(r.Tags) > 0 {
			result.ResourcesWithTags++
		}

		missing := missingRequiredTags(r, settings.RequiredTags)
		if len(missing) == 0 && !hasInvalidTagValue(r, invalidValues) {
			compliant++
		}

		g, ok := groups[r.ResourceGroup]
		if !ok {
			g = &groupStats{}
			groups[r.ResourceGroup] = g
		}
		g.total++
		if len(missing) > 0 {
			g.nonCompliant++
		}
	}

	result.ComplianceRate = complianceRate(compliant, len(resources))

	groupNames := make([]string, 0, len(groups))
	for name := range groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	var findings []domain.Finding
	for _, name := range groupNames {
		g := groups[name]
		rate := complianceRate(g.total-g.nonCompliant, g.total)
		result.ResourceGroups = append(result.ResourceGroups, domain.ResourceGroupCompliance{
			Name:                  name,
			TotalResources:        g.total,
			NonCompliantResources: g.nonCompliant,
			ComplianceRate:        rate,
		})

		if g.nonCompliant == 0 {
			continue
		}

		severity := domain.SeverityMedium
		if rate < groupRateHighThreshold {
			severity = domain.SeverityHigh
		}
		findings = append(findings, domain.Finding{
			Id:           uuid.NewString(),
			ResourceName: name,
			Category:     categoryTagCompliance,
			Severity:     severity,
			Issue: fmt.Sprintf(
				"%d of %d resources are missing one or more required tags",
				g.nonCompliant, g.total,
			),
			Recommendation: fmt.Sprintf(
				"Apply the required tags to all resources in resource group %q",
				name,
			),
			EstimatedEffort: "Low",
		})
	}

	return result, findings
}

func missingRequiredTags(r domain.Resource, required []string) []string {
	var missing []string
	for _, tag := range required {
		if !r.HasTag(tag) {
			missing = append(missing, tag)
		}
	}
	return missing
}

func hasInvalidTagValue(r domain.Resource, invalidValues map[string]struct{}) bool {
	for _, v := range r.Tags {
		if _, banned := invalidValues[strings.ToLower(v)]; banned {
			return true
		}
	}
	return false
}

// complianceRate returns the integer percentage of compliant resources,
// truncated rather than rounded. An empty set is vacuously compliant.
func complianceRate(compliant, total int) int {
	if total == 0 {
		return 100
	}
	return compliant * 100 / total
}
