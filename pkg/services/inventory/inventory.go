// Package inventory defines the provider-neutral resource explorer contract
// and the registry the CLI and web server resolve providers through.
package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

// Explorer lists the resources of one provider account or profile as a
// normalized inventory.
type Explorer interface {
	ListResources(ctx context.Context) ([]domain.Resource, error)
}

// ExplorerFactory builds an explorer for the named credentials profile.
// An empty profile selects the provider's default credentials.
type ExplorerFactory func(ctx context.Context, profile string) (Explorer, error)

type Registry struct {
	mu        sync.RWMutex
	factories map[string]ExplorerFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ExplorerFactory)}
}

func (r *Registry) Register(provider string, factory ExplorerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[provider] = factory
}

func (r *Registry) Create(ctx context.Context, provider, profile string) (Explorer, error) {
	r.mu.RLock()
	factory, ok := r.factories[provider]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
	return factory(ctx, profile)
}

func (r *Registry) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]string, 0, len(r.factories))
	for name := range r.factories {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}
