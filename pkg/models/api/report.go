// Package api holds the wire representation of reports. It mirrors the
// domain models with stable camelCase JSON names.
package api

type Finding struct {
	Id              string `json:"id"`
	ResourceName    string `json:"resourceName"`
	Category        string `json:"category"`
	Severity        string `json:"severity"`
	Issue           string `json:"issue"`
	Recommendation  string `json:"recommendation"`
	EstimatedEffort string `json:"estimatedEffort"`
	Priority        int    `json:"priority"`
}

type PillarSummary struct {
	Name            string   `json:"name"`
	Overview        string   `json:"overview"`
	CurrentState    string   `json:"currentState"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	Score           string   `json:"score"`
}

type ResourceGroupCompliance struct {
	Name                  string `json:"name"`
	TotalResources        int    `json:"totalResources"`
	NonCompliantResources int    `json:"nonCompliantResources"`
	ComplianceRate        int    `json:"complianceRate"`
}

type TagCompliance struct {
	TotalResources    int                       `json:"totalResources"`
	ResourcesWithTags int                       `json:"resourcesWithTags"`
	ComplianceRate    int                       `json:"complianceRate"`
	RequiredTags      []string                  `json:"requiredTags"`
	ResourceGroups    []ResourceGroupCompliance `json:"resourceGroups"`
}

type CostAnalysis struct {
	TotalResourcesAnalyzed int       `json:"totalResourcesAnalyzed"`
	TotalFindings          int       `json:"totalFindings"`
	ImmediateActions       int       `json:"immediateActions"`
	ReviewsNeeded          int       `json:"reviewsNeeded"`
	Findings               []Finding `json:"findings"`
}

type AnalysisReport struct {
	ExecutiveSummary string          `json:"executiveSummary,omitempty"`
	PillarSummaries  []PillarSummary `json:"pillarSummaries,omitempty"`
	Findings         []Finding       `json:"findings"`
	Statistics       map[string]int  `json:"statistics"`
	TagCompliance    *TagCompliance  `json:"tagCompliance,omitempty"`
	CostAnalysis     *CostAnalysis   `json:"costAnalysis,omitempty"`
}

type ProvidersResponse struct {
	Providers []string `json:"providers"`
}

type ReportRequest struct {
	Provider string `json:"provider"`
	Profile  string `json:"profile"`
}
