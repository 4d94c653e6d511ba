// Package azure lists Azure resources through the Resource Manager API,
// authenticated via the Azure CLI profile.
package azure

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/inventory"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Explorer struct {
	credential    azcore.TokenCredential
	subscriptions []string
}

// NewExplorer builds an explorer from a named ~/.azure/config profile.
func NewExplorer(_ context.Context, profile string) (inventory.Explorer, error) {
	cfg, err := LoadConfig(profile)
	if err != nil {
		return nil, err
	}
	return &Explorer{
		credential:    cfg.Credentials,
		subscriptions: cfg.Subscriptions,
	}, nil
}

// ListResources walks every configured subscription in parallel. A
// subscription that cannot be listed is logged and skipped so one revoked
// scope does not sink the whole inventory.
func (e *Explorer) ListResources(ctx context.Context) ([]domain.Resource, error) {
	var (
		mu        sync.Mutex
		resources []domain.Resource
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, subscription := range e.subscriptions {
		g.Go(func() error {
			subResources, err := e.listSubscription(ctx, subscription)
			if err != nil {
				zerolog.Ctx(ctx).Warn().
					Err(err).
					Str("subscription", subscription).
					Msg("skipping subscription")
				return nil
			}
			mu.Lock()
			resources = append(resources, subResources...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resources, nil
}

func (e *Explorer) listSubscription(ctx context.Context, subscription string) ([]domain.Resource, error) {
	client, err := armresources.NewClient(subscription, e.credential, nil)
	if err != nil {
		return nil, fmt.Errorf("create resources client: %w", err)
	}

	var resources []domain.Resource
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list resources: %w", err)
		}
		for _, item := range page.Value {
			resources = append(resources, mapResource(item))
		}
	}
	return resources, nil
}

func mapResource(item *armresources.GenericResourceExpanded) domain.Resource {
	r := domain.Resource{
		Id:       deref(item.ID),
		Name:     deref(item.Name),
		Type:     deref(item.Type),
		Location: deref(item.Location),
	}
	r.ResourceGroup = resourceGroupFromID(r.Id)
	if len(item.Tags) > 0 {
		r.Tags = make(map[string]string, len(item.Tags))
		for k, v := range item.Tags {
			r.Tags[k] = deref(v)
		}
	}
	return r
}

// resourceGroupFromID extracts the resource group segment of an ARM resource
// ID. Subscription-scoped resources yield an empty group.
func resourceGroupFromID(id string) string {
	segments := strings.Split(id, "/")
	for i := 0; i < len(segments)-1; i++ {
		if strings.EqualFold(segments[i], "resourceGroups") {
			return segments[i+1]
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
