package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/cloud-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/cloud-atlas/pkg/services/costdata"
	"github.com/de-tools/cloud-atlas/pkg/services/inventory"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry        *inventory.Registry
	SpendCollectors map[string]costdata.CollectorFactory
	Output          io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	rootCmd := &cobra.Command{
		Use:   "cloud-atlas",
		Short: "Cloud compliance and cost analysis tool",
	}
	rootCmd.AddCommand(commands.NewAnalyzeCmd(commands.AnalyzeDeps{
		Registry:        opts.Registry,
		SpendCollectors: opts.SpendCollectors,
		Output:          opts.Output,
	}))
	rootCmd.AddCommand(commands.NewProvidersCmd(opts.Registry, opts.Output))

	return &CLI{rootCmd: rootCmd}
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// ExecuteContext runs the CLI with the given context, so commands inherit
// the process logger and cancellation.
func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}
