package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/metalpath/metalpath/internal/config"
	"github.com/metalpath/metalpath/internal/engine"
	"github.com/metalpath/metalpath/internal/logging"
	"github.com/metalpath/metalpath/internal/report"
	"github.com/metalpath/metalpath/internal/tui"
)

const keyValueParts = 2

// Limits on --set overrides to prevent resource exhaustion from
// adversarial command lines.
const (
	maxSetOverrides = 100
	maxSetKeyLen    = 128
	maxSetValueLen  = 10 * 1024
)

// AssessParams holds the parameters for the assess command execution.
// Exported for testing.
type AssessParams struct {
	Metal           string
	Route           string
	Quantity        float64
	RecycledContent float64
	EnergySource    string
	TransportKm     float64
	EndOfLife       string
	Efficiency      float64
	InputPath       string
	Set             []string
	Output          string
	Interactive     bool
	Save            bool
	User            string
}

// NewAssessCmd creates the assess command for estimating the environmental
// impact of a single production pathway.
func NewAssessCmd() *cobra.Command {
	var params AssessParams

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Estimate the environmental impact of a production pathway",
		Long: `Estimate the environmental impact of one metal production pathway.

The pathway is described by flags, an input file, or both (flags win).
The engine normalizes the input, estimates physical metrics (carbon,
energy, water, waste), and derives composite circularity and
sustainability scores.`,
		Example: `  # Minimal pathway
  metalpath assess --metal aluminum --route primary --quantity 1000

  # Full pathway with renewable power and transport
  metalpath assess --metal copper --route recycled --quantity 500 \
    --recycled-content 0.8 --energy-source renewable --transport 300

  # From a file, overriding one field
  metalpath assess --input pathway.yaml --set process_temperature=950

  # Save to history and print JSON
  metalpath assess --metal steel --route mixed --quantity 2000 --save -o json

  # Explore what-if scenarios interactively
  metalpath assess --metal aluminum --route primary --quantity 1000 --interactive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeAssess(cmd, params)
		},
	}

	// Pathway fields. Unset flags are omitted from the request so file
	// values survive and missing-field errors name the right field.
	cmd.Flags().StringVar(&params.Metal, "metal", "", "metal type (aluminum, copper, steel, lithium, zinc, nickel)")
	cmd.Flags().StringVar(&params.Route, "route", "", "production route (primary, recycled, mixed)")
	cmd.Flags().Float64Var(&params.Quantity, "quantity", 0, "production quantity in kg")
	cmd.Flags().Float64Var(&params.RecycledContent, "recycled-content", 0, "recycled material fraction (0-1)")
	cmd.Flags().StringVar(&params.EnergySource, "energy-source", "", "electricity source (coal, natural_gas, grid_mix, renewable, nuclear, hydroelectric)")
	cmd.Flags().Float64Var(&params.TransportKm, "transport", 0, "transport distance in km")
	cmd.Flags().StringVar(&params.EndOfLife, "end-of-life", "", "end-of-life scenario (recycling, landfill, incineration, reuse)")
	cmd.Flags().Float64Var(&params.Efficiency, "efficiency", 0, "process efficiency (0.1-1.0)")

	// Input, persistence, and output controls.
	cmd.Flags().StringVarP(&params.InputPath, "input", "i", "", "pathway description file (YAML or JSON)")
	cmd.Flags().StringArrayVar(&params.Set, "set", nil, "raw request field as key=value (repeatable)")
	cmd.Flags().StringVarP(&params.Output, "output", "o", outputFormatTable, "output format: table, json, or ndjson")
	cmd.Flags().BoolVar(&params.Interactive, "interactive", false, "explore what-if scenarios in a TUI")
	cmd.Flags().BoolVar(&params.Save, "save", false, "persist the result to the assessment database")
	cmd.Flags().StringVar(&params.User, "user", "", "user id owning the saved assessment")

	return cmd
}

// ValidateAssessFlags checks assess flag combinations before any work runs.
// Exported for testing.
func ValidateAssessFlags(params AssessParams) error {
	if err := validateOutputFormat(params.Output); err != nil {
		return err
	}
	if params.InputPath == "" && params.Metal == "" && len(params.Set) == 0 {
		return errors.New("a pathway is required: set --metal and friends, or --input <file>")
	}
	return nil
}

// ParseSetOverrides parses repeated --set key=value pairs into raw request
// fields. Values stay strings: the engine coerces numerics during
// normalization. Exported for testing.
func ParseSetOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) > maxSetOverrides {
		return nil, fmt.Errorf("too many --set overrides: %d (max %d)", len(pairs), maxSetOverrides)
	}

	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", keyValueParts)
		if len(parts) != keyValueParts {
			return nil, fmt.Errorf("invalid --set format %q: expected key=value", pair)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			return nil, fmt.Errorf("invalid --set format %q: empty key", pair)
		}
		if len(key) > maxSetKeyLen {
			return nil, fmt.Errorf("--set key too long: %d characters (max %d)", len(key), maxSetKeyLen)
		}
		if len(value) > maxSetValueLen {
			return nil, fmt.Errorf("--set value too long: %d bytes (max %d)", len(value), maxSetValueLen)
		}

		overrides[key] = value
	}

	return overrides, nil
}

// buildRawInput assembles the raw assessment request from the input file,
// explicitly set flags, and --set overrides, in that precedence order.
func buildRawInput(cmd *cobra.Command, params AssessParams) (map[string]any, error) {
	raw := map[string]any{}

	if params.InputPath != "" {
		fileRaw, err := loadPathwayFile(params.InputPath)
		if err != nil {
			return nil, err
		}
		raw = fileRaw
	}

	flags := cmd.Flags()
	if flags.Changed("metal") {
		raw["metal_type"] = params.Metal
	}
	if flags.Changed("route") {
		raw["production_route"] = params.Route
	}
	if flags.Changed("quantity") {
		raw["quantity"] = params.Quantity
	}
	if flags.Changed("recycled-content") {
		raw["recycled_content"] = params.RecycledContent
	}
	if flags.Changed("energy-source") {
		raw["electricity_source"] = params.EnergySource
	}
	if flags.Changed("transport") {
		raw["transport_distance"] = params.TransportKm
	}
	if flags.Changed("end-of-life") {
		raw["end_of_life_scenario"] = params.EndOfLife
	}
	if flags.Changed("efficiency") {
		raw["process_efficiency"] = params.Efficiency
	}

	overrides, err := ParseSetOverrides(params.Set)
	if err != nil {
		return nil, err
	}
	for key, value := range overrides {
		raw[key] = value
	}

	return raw, nil
}

// persistResult saves the assessment under the given user, falling back to
// the configured default user.
func persistResult(cmd *cobra.Command, cfg *config.Config, result engine.AssessmentResult, user string) error {
	ctx := cmd.Context()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	if user == "" {
		user = cfg.Dashboard.DefaultUser
	}
	saved, err := st.SaveAssessment(ctx, result, user)
	if err != nil {
		return fmt.Errorf("saving assessment: %w", err)
	}

	cmd.Printf("Saved assessment %s\n", saved.ID)
	return nil
}

// executeAssess runs the assessment workflow: validate, estimate, optionally
// persist, and render.
func executeAssess(cmd *cobra.Command, params AssessParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	if err := ValidateAssessFlags(params); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	raw, err := buildRawInput(cmd, params)
	if err != nil {
		return err
	}
	if err := engine.ValidateRequest(raw); err != nil {
		return err
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	log.Debug().Ctx(ctx).
		Str("operation", "assess").
		Bool("interactive", params.Interactive).
		Bool("save", params.Save).
		Msg("starting assessment")

	if params.Interactive {
		return executeInteractiveAssess(cmd, params, cfg, eng, raw)
	}

	result, err := eng.EstimateAll(ctx, raw)
	if err != nil {
		return fmt.Errorf("estimating impact: %w", err)
	}

	if params.Save {
		if err := persistResult(cmd, cfg, result, params.User); err != nil {
			return err
		}
	}

	if err := renderAssessment(cmd.OutOrStdout(), params.Output, report.Build(result, time.Now())); err != nil {
		return err
	}

	log.Info().Ctx(ctx).
		Str("operation", "assess").
		Dur("duration_ms", time.Since(start)).
		Msg("assessment complete")

	return nil
}

// executeInteractiveAssess launches the what-if pathway explorer TUI and
// renders the final explored result on exit.
func executeInteractiveAssess(cmd *cobra.Command, params AssessParams, cfg *config.Config, eng *engine.Engine, raw map[string]any) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if !isTerminal(os.Stdin) {
		return errors.New("interactive mode requires a terminal")
	}

	baseline, err := eng.EstimateAll(ctx, raw)
	if err != nil {
		return fmt.Errorf("estimating impact: %w", err)
	}

	recalculate := func(recalcCtx context.Context, edited map[string]any) (engine.AssessmentResult, error) {
		if err := engine.ValidateRequest(edited); err != nil {
			return engine.AssessmentResult{}, err
		}
		return eng.EstimateAll(recalcCtx, edited)
	}

	log.Debug().Ctx(ctx).
		Str("operation", "assess_interactive").
		Msg("launching pathway explorer")

	model := tui.NewExplorerModelWithCallback(ctx, raw, baseline, recalculate)
	program := tea.NewProgram(model)

	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("running interactive explorer: %w", err)
	}

	explorer, ok := finalModel.(*tui.ExplorerModel)
	if !ok {
		return fmt.Errorf("unexpected model type: %T, expected *tui.ExplorerModel", finalModel)
	}

	result := explorer.GetResult()

	if params.Save {
		if err := persistResult(cmd, cfg, result, params.User); err != nil {
			return err
		}
	}

	cmd.Println("\nFinal Assessment:")
	return renderAssessment(cmd.OutOrStdout(), params.Output, report.Build(result, time.Now()))
}
