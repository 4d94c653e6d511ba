package analysis

import (
	"testing"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorePillar(t *testing.T) {
	settings := domain.DefaultPillarSettings()

	tests := []struct {
		name       string
		strengths  int
		weaknesses int
		expected   domain.Score
	}{
		{name: "no evidence", strengths: 0, weaknesses: 0, expected: domain.ScoreMedium},
		{name: "strong majority", strengths: 3, weaknesses: 1, expected: domain.ScoreHigh},
		{name: "majority but too few strengths", strengths: 2, weaknesses: 1, expected: domain.ScoreMedium},
		{name: "weaknesses dominate", strengths: 1, weaknesses: 3, expected: domain.ScoreLow},
		{name: "weaknesses at the multiplier boundary", strengths: 1, weaknesses: 2, expected: domain.ScoreMedium},
		{name: "only weaknesses", strengths: 0, weaknesses: 1, expected: domain.ScoreLow},
		{name: "balanced", strengths: 4, weaknesses: 4, expected: domain.ScoreMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scorePillar(tt.strengths, tt.weaknesses, settings))
		})
	}
}

func TestEvaluatePillars(t *testing.T) {
	settings := domain.DefaultPillarSettings()

	t.Run("always returns all five pillars in order", func(t *testing.T) {
		summaries := EvaluatePillars(nil, settings)

		require.Len(t, summaries, 5)
		names := make([]string, 0, len(summaries))
		for _, s := range summaries {
			names = append(names, s.Name)
		}
		assert.Equal(t, []string{
			PillarSecurity,
			PillarCostOptimization,
			PillarOperationalExcellence,
			PillarReliability,
			PillarPerformanceEfficiency,
		}, names)
	})

	t.Run("empty inventory scores Medium with empty evidence", func(t *testing.T) {
		summaries := EvaluatePillars(nil, settings)

		for _, s := range summaries {
			assert.Equal(t, domain.ScoreMedium, s.Score, s.Name)
			assert.Empty(t, s.Strengths, s.Name)
			assert.Empty(t, s.Weaknesses, s.Name)
			assert.NotEmpty(t, s.Overview, s.Name)
			assert.NotEmpty(t, s.CurrentState, s.Name)
		}
	})

	t.Run("exposed compute drags security down", func(t *testing.T) {
		resources := []domain.Resource{
			{Id: "vm1", Type: "Microsoft.Compute/virtualMachines", Location: "westeurope"},
			{Id: "pip1", Type: "Microsoft.Network/publicIPAddresses", Location: "westeurope"},
		}

		summaries := EvaluatePillars(resources, settings)

		security := summaries[0]
		assert.Equal(t, domain.ScoreLow, security.Score)
		assert.Empty(t, security.Strengths)
		assert.NotEmpty(t, security.Recommendations)
	})

	t.Run("well governed estate scores high on cost", func(t *testing.T) {
		tags := map[string]string{"CostCenter": "eng", "Owner": "platform"}
		resources := []domain.Resource{
			{Id: "vm1", Type: "Microsoft.Compute/virtualMachines", Location: "westeurope", Tags: tags},
			{Id: "vm2", Type: "Microsoft.Compute/virtualMachines", Location: "northeurope", Tags: tags},
			{Id: "sa1", Type: "Microsoft.Storage/storageAccounts", Location: "westeurope", Tags: tags},
		}

		summaries := EvaluatePillars(resources, settings)

		cost := summaries[1]
		assert.Equal(t, domain.ScoreHigh, cost.Score)
		assert.Empty(t, cost.Weaknesses)
	})

	t.Run("thresholds are injectable", func(t *testing.T) {
		strict := settings
		strict.CostTagRatioThreshold = 1.0

		resources := []domain.Resource{
			{Id: "vm1", Type: "Microsoft.Compute/virtualMachines", Tags: map[string]string{"CostCenter": "eng"}},
			{Id: "vm2", Type: "Microsoft.Compute/virtualMachines"},
		}

		relaxed := settings
		relaxed.CostTagRatioThreshold = 0.5

		strictCost := EvaluatePillars(resources, strict)[1]
		relaxedCost := EvaluatePillars(resources, relaxed)[1]

		assert.NotEmpty(t, strictCost.Weaknesses)
		assert.NotEmpty(t, relaxedCost.Strengths)
	})
}
