package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/de-tools/cloud-atlas/pkg/models/api"
	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/costdata"
	"github.com/de-tools/cloud-atlas/pkg/services/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticExplorer struct {
	resources []domain.Resource
}

func (s *staticExplorer) ListResources(_ context.Context) ([]domain.Resource, error) {
	return s.resources, nil
}

type staticCollector struct {
	records []domain.SpendRecord
}

func (s *staticCollector) Collect(_ context.Context, _ int) ([]domain.SpendRecord, error) {
	return s.records, nil
}

func testRegistry() *inventory.Registry {
	registry := inventory.NewRegistry()
	registry.Register("azure", func(_ context.Context, _ string) (inventory.Explorer, error) {
		return &staticExplorer{resources: []domain.Resource{
			{Id: "vm1", Name: "vm1", Type: "Microsoft.Compute/virtualMachines", ResourceGroup: "rg-a"},
		}}, nil
	})
	return registry
}

func TestProvidersCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewProvidersCmd(testRegistry(), &buf)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "azure\n", buf.String())
}

func TestAnalyzeCmd(t *testing.T) {
	t.Run("json format emits the wire report", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := NewAnalyzeCmd(AnalyzeDeps{Registry: testRegistry(), Output: &buf})
		cmd.SetArgs([]string{"--provider", "azure", "--format", "json"})

		require.NoError(t, cmd.Execute())

		var report api.AnalysisReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
		require.NotNil(t, report.CostAnalysis)
		require.Len(t, report.Findings, 1)
		assert.Equal(t, "VM missing cost allocation tags", report.Findings[0].Issue)
		assert.Equal(t, 1, report.Findings[0].Priority)
	})

	t.Run("markdown format renders a report with spend", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := NewAnalyzeCmd(AnalyzeDeps{
			Registry: testRegistry(),
			SpendCollectors: map[string]costdata.CollectorFactory{
				"azure": func(_ context.Context, _ string) (costdata.Collector, error) {
					return &staticCollector{records: []domain.SpendRecord{
						{Service: "Virtual Machines", Region: "westeurope", Amount: 10, Currency: "USD"},
					}}, nil
				},
			},
			Output: &buf,
		})
		cmd.SetArgs([]string{"--provider", "azure", "--spend-days", "7"})

		require.NoError(t, cmd.Execute())

		output := buf.String()
		assert.Contains(t, output, "# Cloud Governance Report")
		assert.Contains(t, output, "## Observed Spend")
		assert.Contains(t, output, "Virtual Machines")
	})

	t.Run("missing provider flag fails", func(t *testing.T) {
		cmd := NewAnalyzeCmd(AnalyzeDeps{Registry: testRegistry(), Output: &bytes.Buffer{}})
		cmd.SetArgs([]string{})
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true

		assert.Error(t, cmd.Execute())
	})

	t.Run("unsupported format fails", func(t *testing.T) {
		cmd := NewAnalyzeCmd(AnalyzeDeps{Registry: testRegistry(), Output: &bytes.Buffer{}})
		cmd.SetArgs([]string{"--provider", "azure", "--format", "xml"})
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})
}
