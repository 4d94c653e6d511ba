package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/cloud-atlas/pkg/runtime/terminal"
	"github.com/de-tools/cloud-atlas/pkg/services/costdata"
	costdataaws "github.com/de-tools/cloud-atlas/pkg/services/costdata/aws"
	costdataazure "github.com/de-tools/cloud-atlas/pkg/services/costdata/azure"
	"github.com/de-tools/cloud-atlas/pkg/services/inventory"
	"github.com/de-tools/cloud-atlas/pkg/services/inventory/aws"
	"github.com/de-tools/cloud-atlas/pkg/services/inventory/azure"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	registry := inventory.NewRegistry()
	registry.Register("azure", azure.NewExplorer)
	registry.Register("aws", aws.NewExplorer)

	cli := terminal.NewCLI(terminal.Options{
		Registry: registry,
		SpendCollectors: map[string]costdata.CollectorFactory{
			"azure": costdataazure.NewCollector,
			"aws":   costdataaws.NewCollector,
		},
		Output: os.Stdout,
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
