package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/cloud-atlas/pkg/adapters"
	"github.com/de-tools/cloud-atlas/pkg/export/markdown"
	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/analysis"
	"github.com/de-tools/cloud-atlas/pkg/services/config"
	"github.com/de-tools/cloud-atlas/pkg/services/costdata"
	"github.com/de-tools/cloud-atlas/pkg/services/inventory"
	"github.com/de-tools/cloud-atlas/pkg/services/narrative/openai"
	"github.com/de-tools/cloud-atlas/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type AnalyzeDeps struct {
	Registry        *inventory.Registry
	SpendCollectors map[string]costdata.CollectorFactory
	Output          io.Writer
}

// NewAnalyzeCmd builds the analyze command: list a provider's resources, run
// the analysis and render the report.
func NewAnalyzeCmd(deps AnalyzeDeps) *cobra.Command {
	var (
		provider     string
		profile      string
		settingsPath string
		format       string
		outputPath   string
		spendDays    int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a cloud estate and produce a governance report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return err
			}

			generator, err := openai.FromSettings(settings.AIAnalysis)
			if err != nil {
				return err
			}
			if settings.AIAnalysis.Enabled && generator == nil {
				zerolog.Ctx(ctx).Warn().Msg("AI analysis enabled but no API key found, skipping narrative")
				settings.AIAnalysis.Enabled = false
			}

			controller := report.NewController(deps.Registry, analysis.NewAnalyzer(generator), settings)
			result, err := controller.Generate(ctx, provider, profile)
			if err != nil {
				return err
			}

			var spend []domain.SpendRecord
			if spendDays > 0 {
				spend = collectSpend(cmd, deps.SpendCollectors, provider, profile, spendDays)
			}

			output := deps.Output
			if outputPath != "" {
				file, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer file.Close()
				output = file
			}

			switch format {
			case "markdown":
				return markdown.NewReporter(output).Write(result, spend)
			case "json":
				encoder := json.NewEncoder(output)
				encoder.SetIndent("", "  ")
				return encoder.Encode(adapters.MapAnalysisResultDomainToApi(result))
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "cloud provider (azure, aws)")
	cmd.Flags().StringVar(&profile, "profile", "", "credentials profile")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "path to a settings file")
	cmd.Flags().StringVar(&format, "format", "markdown", "output format (markdown, json)")
	cmd.Flags().StringVar(&outputPath, "output", "", "write the report to a file instead of stdout")
	cmd.Flags().IntVar(&spendDays, "spend-days", 0, "attach actual spend of the last N days")
	_ = cmd.MarkFlagRequired("provider")

	return cmd
}

// collectSpend fetches the spend appendix. Spend is decoration on top of the
// report, so failures downgrade to a warning.
func collectSpend(
	cmd *cobra.Command,
	factories map[string]costdata.CollectorFactory,
	provider, profile string,
	days int,
) []domain.SpendRecord {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	factory, ok := factories[provider]
	if !ok {
		logger.Warn().Str("provider", provider).Msg("no spend collector for provider, skipping spend")
		return nil
	}

	collector, err := factory(ctx, profile)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to create spend collector, skipping spend")
		return nil
	}

	records, err := collector.Collect(ctx, days)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to collect spend, skipping spend")
		return nil
	}
	return records
}
