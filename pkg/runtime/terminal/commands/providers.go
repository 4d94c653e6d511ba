package commands

import (
	"fmt"
	"io"

	"github.com/de-tools/cloud-atlas/pkg/services/inventory"
	"github.com/spf13/cobra"
)

// NewProvidersCmd lists the registered cloud providers.
func NewProvidersCmd(registry *inventory.Registry, output io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported cloud providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, provider := range registry.ListProviders() {
				if _, err := fmt.Fprintln(output, provider); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
