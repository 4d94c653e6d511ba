package inventory

import (
	"context"
	"testing"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticExplorer struct {
	resources []domain.Resource
}

func (s *staticExplorer) ListResources(_ context.Context) ([]domain.Resource, error) {
	return s.resources, nil
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("create resolves registered factories", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register("azure", func(_ context.Context, profile string) (Explorer, error) {
			return &staticExplorer{resources: []domain.Resource{{Id: profile, Type: "t"}}}, nil
		})

		explorer, err := registry.Create(ctx, "azure", "dev")
		require.NoError(t, err)

		resources, err := explorer.ListResources(ctx)
		require.NoError(t, err)
		require.Len(t, resources, 1)
		assert.Equal(t, "dev", resources[0].Id)
	})

	t.Run("unknown provider fails", func(t *testing.T) {
		registry := NewRegistry()

		_, err := registry.Create(ctx, "gcp", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported provider")
	})

	t.Run("providers are listed sorted", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register("azure", nil)
		registry.Register("aws", nil)

		assert.Equal(t, []string{"aws", "azure"}, registry.ListProviders())
	})
}
