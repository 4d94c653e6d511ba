package domain

import "time"

// Severity is the closed set of finding severities.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// Score is the qualitative pillar score.
type Score string

const (
	ScoreLow    Score = "Low"
	ScoreMedium Score = "Medium"
	ScoreHigh   Score = "High"
)

// Finding is a single actionable observation tied to one resource or one
// resource group. Ids are generated per analysis run and are not stable
// across runs. Priority is assigned by the aggregator after the final merge;
// evaluators leave it zero.
type Finding struct {
	Id              string
	ResourceName    string
	Category        string
	Severity        Severity
	Issue           string
	Recommendation  string
	EstimatedEffort string
	Priority        int
}

// PillarSummary is the narrative outcome of one best-practice pillar.
type PillarSummary struct {
	Name            string
	Overview        string
	CurrentState    string
	Strengths       []string
	Weaknesses      []string
	Recommendations []string
	Score           Score
}

// ResourceGroupCompliance holds tag compliance for one resource group.
// The group-level check considers missing required tags only; banned tag
// values count against a resource but not against its group.
type ResourceGroupCompliance struct {
	Name                  string
	TotalResources        int
	NonCompliantResources int
	ComplianceRate        int
}

type TagComplianceResult struct {
	TotalResources    int
	ResourcesWithTags int
	ComplianceRate    int
	RequiredTags      []string
	ResourceGroups    []ResourceGroupCompliance
}

type CostAnalysisResult struct {
	TotalResourcesAnalyzed int
	TotalFindings          int
	ImmediateActions       int
	ReviewsNeeded          int
	Findings               []Finding
}

// Statistics keys recomputed by the aggregator from the merged findings list.
const (
	StatTotalResources   = "TotalResources"
	StatResourceTypes    = "ResourceTypes"
	StatTotalFindings    = "TotalFindings"
	StatCriticalFindings = "CriticalFindings"
	StatHighFindings     = "HighFindings"
)

// AnalysisResult is the complete outcome of one analysis call. Optional
// sections are nil (or empty for ExecutiveSummary) when the producing
// evaluator or collaborator did not run.
type AnalysisResult struct {
	ExecutiveSummary string
	PillarSummaries  []PillarSummary
	Findings         []Finding
	Statistics       map[string]int
	TagCompliance    *TagComplianceResult
	CostAnalysis     *CostAnalysisResult
}

// SpendRecord is one line of observed spend from a provider cost API,
// attached to reports as an appendix.
type SpendRecord struct {
	Service  string
	Region   string
	Amount   float64
	Currency string
	From     time.Time
	To       time.Time
}
