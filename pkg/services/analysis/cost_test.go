package analysis

import (
	"fmt"
	"testing"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCosts(t *testing.T) {
	t.Run("empty inventory yields no findings", func(t *testing.T) {
		result := EvaluateCosts(nil)

		assert.Equal(t, 0, result.TotalResourcesAnalyzed)
		assert.Equal(t, 0, result.TotalFindings)
		assert.Empty(t, result.Findings)
	})

	t.Run("single untagged VM yields exactly one finding", func(t *testing.T) {
		resources := []domain.Resource{
			{
				Id:   "/sub/1/vm1",
				Name: "vm1",
				Type: "Microsoft.Compute/virtualMachines",
				Tags: map[string]string{"Environment": "prod"},
			},
		}

		result := EvaluateCosts(resources)

		require.Len(t, result.Findings, 1)
		f := result.Findings[0]
		assert.Equal(t, "vm1", f.ResourceName)
		assert.Equal(t, "Cost Optimization", f.Category)
		assert.Equal(t, domain.SeverityMedium, f.Severity)
		assert.Equal(t, "VM missing cost allocation tags", f.Issue)
		assert.Equal(t, 0, result.ImmediateActions)
		assert.Equal(t, 0, result.ReviewsNeeded)
	})

	t.Run("VM with cost allocation tag passes", func(t *testing.T) {
		resources := []domain.Resource{
			{
				Id:   "i-0abc",
				Name: "worker-1",
				Type: "AWS::EC2::Instance",
				Tags: map[string]string{"CostCenter": "eng-1234"},
			},
		}

		result := EvaluateCosts(resources)

		assert.Empty(t, result.Findings)
	})

	t.Run("disks and public IPs get review findings", func(t *testing.T) {
		resources := []domain.Resource{
			{Id: "d1", Name: "disk-1", Type: "Microsoft.Compute/disks"},
			{Id: "p1", Name: "pip-1", Type: "Microsoft.Network/publicIPAddresses"},
		}

		result := EvaluateCosts(resources)

		require.Len(t, result.Findings, 2)
		assert.Equal(t, domain.SeverityMedium, result.Findings[0].Severity)
		assert.Equal(t, domain.SeverityLow, result.Findings[1].Severity)
	})

	t.Run("consolidation suggested from ten resources of one type", func(t *testing.T) {
		var resources []domain.Resource
		for i := 0; i < 10; i++ {
			resources = append(resources, domain.Resource{
				Id:   fmt.Sprintf("sa%d", i),
				Name: fmt.Sprintf("storage-%d", i),
				Type: "Microsoft.Storage/storageAccounts",
			})
		}

		result := EvaluateCosts(resources)

		require.Len(t, result.Findings, 1)
		assert.Equal(t, "Microsoft.Storage/storageAccounts", result.Findings[0].ResourceName)
		assert.Equal(t, domain.SeverityLow, result.Findings[0].Severity)
		assert.Contains(t, result.Findings[0].Issue, "10 resources")
	})

	t.Run("nine resources of one type stay below the threshold", func(t *testing.T) {
		var resources []domain.Resource
		for i := 0; i < 9; i++ {
			resources = append(resources, domain.Resource{
				Id:   fmt.Sprintf("sa%d", i),
				Type: "Microsoft.Storage/storageAccounts",
			})
		}

		result := EvaluateCosts(resources)

		assert.Empty(t, result.Findings)
	})
}
