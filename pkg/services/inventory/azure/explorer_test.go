package azure

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestResourceGroupFromID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected string
	}{
		{
			name:     "standard resource id",
			id:       "/subscriptions/sub-1/resourceGroups/rg-prod/providers/Microsoft.Compute/virtualMachines/vm1",
			expected: "rg-prod",
		},
		{
			name:     "case-insensitive segment",
			id:       "/subscriptions/sub-1/resourcegroups/rg-prod/providers/Microsoft.Storage/storageAccounts/sa1",
			expected: "rg-prod",
		},
		{
			name:     "subscription-scoped resource",
			id:       "/subscriptions/sub-1/providers/Microsoft.Consumption/budgets/b1",
			expected: "",
		},
		{
			name:     "empty id",
			id:       "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resourceGroupFromID(tt.id))
		})
	}
}

func TestMapResource(t *testing.T) {
	t.Run("maps fields and tags", func(t *testing.T) {
		item := &armresources.GenericResourceExpanded{
			ID:       strPtr("/subscriptions/sub-1/resourceGroups/rg-a/providers/Microsoft.Compute/virtualMachines/vm1"),
			Name:     strPtr("vm1"),
			Type:     strPtr("Microsoft.Compute/virtualMachines"),
			Location: strPtr("westeurope"),
			Tags: map[string]*string{
				"Environment": strPtr("prod"),
				"Empty":       nil,
			},
		}

		r := mapResource(item)

		assert.Equal(t, "vm1", r.Name)
		assert.Equal(t, "rg-a", r.ResourceGroup)
		assert.Equal(t, "westeurope", r.Location)
		assert.Equal(t, "prod", r.Tags["Environment"])
		assert.Equal(t, "", r.Tags["Empty"])
		assert.True(t, r.IsVirtualMachine())
	})

	t.Run("nil fields map to empty strings", func(t *testing.T) {
		r := mapResource(&armresources.GenericResourceExpanded{})

		assert.Empty(t, r.Id)
		assert.Empty(t, r.Name)
		assert.Empty(t, r.Tags)
	})
}
