// Package report orchestrates a full analysis run: resolve the provider,
// list its resources and hand them to the analysis engine.
package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/analysis"
	"github.com/de-tools/cloud-atlas/pkg/services/inventory"
	"github.com/rs/zerolog"
)

// Analyzer is the slice of the analysis engine the service needs.
type Analyzer interface {
	Analyze(ctx context.Context, resources []domain.Resource, settings domain.Settings) (*domain.AnalysisResult, error)
}

type Controller struct {
	registry *inventory.Registry
	analyzer Analyzer
	settings domain.Settings
}

func NewController(registry *inventory.Registry, analyzer Analyzer, settings domain.Settings) *Controller {
	return &Controller{
		registry: registry,
		analyzer: analyzer,
		settings: settings,
	}
}

func (c *Controller) Providers() []string {
	return c.registry.ListProviders()
}

// Generate lists the inventory of the given provider profile and analyzes
// it. The narrative is treated as optional here: when it fails or exceeds
// its timeout, the run is repeated without it and the report ships with the
// deterministic sections only.
func (c *Controller) Generate(ctx context.Context, provider, profile string) (*domain.AnalysisResult, error) {
	explorer, err := c.registry.Create(ctx, provider, profile)
	if err != nil {
		return nil, err
	}

	resources, err := explorer.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s resources: %w", provider, err)
	}

	result, err := c.analyze(ctx, resources, c.settings)
	if err != nil && errors.Is(err, analysis.ErrNarrative) {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("narrative generation failed, continuing without it")

		degraded := c.settings
		degraded.AIAnalysis.Enabled = false
		result, err = c.analyzer.Analyze(ctx, resources, degraded)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Controller) analyze(ctx context.Context, resources []domain.Resource, settings domain.Settings) (*domain.AnalysisResult, error) {
	if settings.AIAnalysis.Enabled && settings.AIAnalysis.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.AIAnalysis.Timeout)
		defer cancel()
	}
	return c.analyzer.Analyze(ctx, resources, settings)
}
