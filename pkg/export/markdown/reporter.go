// Package markdown renders an analysis result as a GitHub-flavored markdown
// report.
package markdown

import (
	"io"
	"sort"
	"strconv"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/nao1215/markdown"
)

type Reporter struct {
	output io.Writer
}

func NewReporter(output io.Writer) *Reporter {
	return &Reporter{output: output}
}

// Write renders the report. Sections whose producing evaluator did not run
// are omitted entirely. Spend may be nil.
func (r *Reporter) Write(result *domain.AnalysisResult, spend []domain.SpendRecord) error {
	md := markdown.NewMarkdown(r.output)

	md.H1("Cloud Governance Report")
	md.PlainText("")

	if result.ExecutiveSummary != "" {
		md.H2("Executive Summary")
		md.PlainText("")
		md.PlainText(result.ExecutiveSummary)
		md.PlainText("")
	}

	writeStatistics(md, result.Statistics)
	if result.TagCompliance != nil {
		writeTagCompliance(md, result.TagCompliance)
	}
	if result.CostAnalysis != nil {
		writeCostAnalysis(md, result.CostAnalysis)
	}
	writePillars(md, result.PillarSummaries)
	writeFindings(md, result.Findings)
	if len(spend) > 0 {
		writeSpend(md, spend)
	}

	return md.Build()
}

func writeStatistics(md *markdown.Markdown, statistics map[string]int) {
	if len(statistics) == 0 {
		return
	}

	keys := make([]string, 0, len(statistics))
	for key := range statistics {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, strconv.Itoa(statistics[key])})
	}

	md.H2("Statistics")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeTagCompliance(md *markdown.Markdown, compliance *domain.TagComplianceResult) {
	md.H2("Tag Compliance")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Resources", strconv.Itoa(compliance.TotalResources)},
			{"Resources With Tags", strconv.Itoa(compliance.ResourcesWithTags)},
			{"Compliance Rate", strconv.Itoa(compliance.ComplianceRate) + "%"},
		},
	})
	md.PlainText("")

	if len(compliance.RequiredTags) > 0 {
		md.PlainText("Required tags:")
		md.BulletList(compliance.RequiredTags...)
		md.PlainText("")
	}

	if len(compliance.ResourceGroups) > 0 {
		rows := make([][]string, 0, len(compliance.ResourceGroups))
		for _, group := range compliance.ResourceGroups {
			name := group.Name
			if name == "" {
				name = "(none)"
			}
			rows = append(rows, []string{
				name,
				strconv.Itoa(group.TotalResources),
				strconv.Itoa(group.NonCompliantResources),
				strconv.Itoa(group.ComplianceRate) + "%",
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Resource Group", "Resources", "Non-Compliant", "Compliance Rate"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

func writeCostAnalysis(md *markdown.Markdown, cost *domain.CostAnalysisResult) {
	md.H2("Cost Analysis")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Resources Analyzed", strconv.Itoa(cost.TotalResourcesAnalyzed)},
			{"Findings", strconv.Itoa(cost.TotalFindings)},
			{"Immediate Actions", strconv.Itoa(cost.ImmediateActions)},
			{"Reviews Needed", strconv.Itoa(cost.ReviewsNeeded)},
		},
	})
	md.PlainText("")
}

func writePillars(md *markdown.Markdown, pillars []domain.PillarSummary) {
	if len(pillars) == 0 {
		return
	}

	md.H2("Best Practice Pillars")
	md.PlainText("")
	for _, pillar := range pillars {
		md.H3(pillar.Name + " (" + string(pillar.Score) + ")")
		md.PlainText("")
		if pillar.Overview != "" {
			md.PlainText(pillar.Overview)
			md.PlainText("")
		}
		if pillar.CurrentState != "" {
			md.PlainText(pillar.CurrentState)
			md.PlainText("")
		}
		if len(pillar.Strengths) > 0 {
			md.PlainText("Strengths:")
			md.BulletList(pillar.Strengths...)
			md.PlainText("")
		}
		if len(pillar.Weaknesses) > 0 {
			md.PlainText("Weaknesses:")
			md.BulletList(pillar.Weaknesses...)
			md.PlainText("")
		}
		if len(pillar.Recommendations) > 0 {
			md.PlainText("Recommendations:")
			md.BulletList(pillar.Recommendations...)
			md.PlainText("")
		}
	}
}

func writeFindings(md *markdown.Markdown, findings []domain.Finding) {
	md.H2("Findings")
	md.PlainText("")

	if len(findings) == 0 {
		md.PlainText("No findings.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, []string{
			strconv.Itoa(f.Priority),
			string(f.Severity),
			f.Category,
			f.ResourceName,
			f.Issue,
			f.Recommendation,
			f.EstimatedEffort,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Priority", "Severity", "Category", "Resource", "Issue", "Recommendation", "Effort"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeSpend(md *markdown.Markdown, spend []domain.SpendRecord) {
	md.H2("Observed Spend")
	md.PlainText("")

	rows := make([][]string, 0, len(spend))
	for _, record := range spend {
		rows = append(rows, []string{
			record.From.Format("2006-01-02"),
			record.Service,
			record.Region,
			strconv.FormatFloat(record.Amount, 'f', 2, 64),
			record.Currency,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Date", "Service", "Region", "Amount", "Currency"},
		Rows:   rows,
	})
	md.PlainText("")
}
