package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metalpath/metalpath/internal/factors"
)

// MetalsParams holds the parameters for the metals command execution.
// Exported for testing.
type MetalsParams struct {
	Output string
}

// NewMetalsCmd creates the metals command for browsing the supported metal
// catalog and its physical properties.
func NewMetalsCmd() *cobra.Command {
	var params MetalsParams

	cmd := &cobra.Command{
		Use:   "metals [metal]",
		Short: "Browse the supported metal catalog",
		Long: `List the metals the estimator supports, or show the full property
sheet for one metal: density, melting point, recycling characteristics,
conductivity, and common forms.`,
		Example: `  # List all supported metals
  metalpath metals

  # Show the aluminum property sheet
  metalpath metals aluminum

  # Property sheet as JSON
  metalpath metals copper -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeMetals(cmd, args, params)
		},
	}

	cmd.Flags().StringVarP(&params.Output, "output", "o", outputFormatTable, "output format: table, json, or ndjson")

	return cmd
}

// executeMetals renders the catalog listing or one metal's property sheet.
func executeMetals(cmd *cobra.Command, args []string, params MetalsParams) error {
	if err := validateOutputFormat(params.Output); err != nil {
		return err
	}

	if len(args) == 0 {
		return renderMetalList(cmd.OutOrStdout(), params.Output, factors.Catalog())
	}

	metal, ok := factors.ParseMetal(args[0])
	if !ok {
		return fmt.Errorf("unsupported metal type: %s (supported: %s)", args[0], supportedMetalNames())
	}
	props, ok := factors.Properties(metal)
	if !ok {
		return fmt.Errorf("no property sheet for metal type: %s", metal)
	}

	return renderMetalDetail(cmd.OutOrStdout(), params.Output, props)
}

// supportedMetalNames joins the catalog keys for error messages.
func supportedMetalNames() string {
	names := ""
	for i, m := range factors.SupportedMetals() {
		if i > 0 {
			names += ", "
		}
		names += string(m)
	}
	return names
}
