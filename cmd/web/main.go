package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/de-tools/cloud-atlas/pkg/server"
	"github.com/de-tools/cloud-atlas/pkg/services/analysis"
	"github.com/de-tools/cloud-atlas/pkg/services/config"
	"github.com/de-tools/cloud-atlas/pkg/services/inventory"
	"github.com/de-tools/cloud-atlas/pkg/services/inventory/aws"
	"github.com/de-tools/cloud-atlas/pkg/services/inventory/azure"
	"github.com/de-tools/cloud-atlas/pkg/services/narrative/openai"
	"github.com/de-tools/cloud-atlas/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	settingsPath string
	addr         string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Cloud Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", "",
		"Path to a settings file (defaults apply when omitted)")
	rootCmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides SERVER_HOST/SERVER_PORT)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	generator, err := openai.FromSettings(settings.AIAnalysis)
	if err != nil {
		return fmt.Errorf("failed to configure narrative generator: %w", err)
	}
	if settings.AIAnalysis.Enabled && generator == nil {
		logger.Warn().Msg("AI analysis enabled but no API key found, narrative disabled")
		settings.AIAnalysis.Enabled = false
	}

	registry := inventory.NewRegistry()
	registry.Register("azure", azure.NewExplorer)
	registry.Register("aws", aws.NewExplorer)

	controller := report.NewController(registry, analysis.NewAnalyzer(generator), settings)

	if addr == "" {
		host := os.Getenv("SERVER_HOST")
		port := os.Getenv("SERVER_PORT")
		if host == "" || port == "" {
			return fmt.Errorf("missing server configuration: set --addr or SERVER_HOST and SERVER_PORT")
		}
		addr = net.JoinHostPort(host, port)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies:    server.Dependencies{Reports: controller},
	})
	return api.Start()
}
