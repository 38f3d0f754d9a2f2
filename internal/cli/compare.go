package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/metalpath/metalpath/internal/logging"
	"github.com/metalpath/metalpath/internal/report"
)

// CompareParams holds the parameters for the compare command execution.
// Exported for testing.
type CompareParams struct {
	Output string
}

// NewCompareCmd creates the compare command for analyzing pathway
// alternatives side by side.
func NewCompareCmd() *cobra.Command {
	var params CompareParams

	cmd := &cobra.Command{
		Use:   "compare <pathway-file> <pathway-file>...",
		Short: "Compare the environmental impact of pathway alternatives",
		Long: `Assess two or more production pathways and rank them.

Each argument is a YAML or JSON pathway file. All pathways are assessed
with the same engine configuration, then the lowest-carbon and
highest-sustainability performers are called out.`,
		Example: `  # Compare primary and recycled aluminum
  metalpath compare primary.yaml recycled.yaml

  # Compare three routes and emit machine-readable output
  metalpath compare primary.yaml mixed.yaml recycled.yaml -o json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeCompare(cmd, args, params)
		},
	}

	cmd.Flags().StringVarP(&params.Output, "output", "o", outputFormatTable, "output format: table, json, or ndjson")

	return cmd
}

// executeCompare assesses every pathway file and renders the comparison.
func executeCompare(cmd *cobra.Command, paths []string, params CompareParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	if err := validateOutputFormat(params.Output); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	raws := make([]map[string]any, 0, len(paths))
	for _, path := range paths {
		raw, err := loadPathwayFile(path)
		if err != nil {
			return err
		}
		raws = append(raws, raw)
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	log.Debug().Ctx(ctx).
		Str("operation", "compare").
		Int("pathway_count", len(raws)).
		Msg("starting comparison")

	insights, err := eng.Compare(ctx, raws)
	if err != nil {
		return fmt.Errorf("comparing pathways: %w", err)
	}

	if err := renderComparison(cmd.OutOrStdout(), params.Output, report.BuildComparison(insights, time.Now())); err != nil {
		return err
	}

	log.Info().Ctx(ctx).
		Str("operation", "compare").
		Int("pathway_count", len(raws)).
		Dur("duration_ms", time.Since(start)).
		Msg("comparison complete")

	return nil
}
