// Package costdata defines the collector contract for observed spend, which
// reports attach as an appendix next to the heuristic cost findings.
package costdata

import (
	"context"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

// Collector fetches the actual spend of the last days from a provider
// billing API, grouped by service.
type Collector interface {
	Collect(ctx context.Context, days int) ([]domain.SpendRecord, error)
}

// CollectorFactory builds a collector for the named credentials profile.
type CollectorFactory func(ctx context.Context, profile string) (Collector, error)
