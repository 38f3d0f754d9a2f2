package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metalpath/metalpath/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating
// the resolved configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the resolved configuration for syntax and semantic correctness.

This includes:
- YAML syntax validation
- Logging level and format validation
- Engine bound ordering and range validation
- Server address and shutdown timeout validation
- Factor pack loading (if configured)`,
		Example: `  # Validate current configuration
  metalpath config validate

  # Validate and show the resolved values
  metalpath config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show resolved configuration details")

	return cmd
}

// executeConfigValidate loads the layered configuration and reports the
// result. Loading already validates, so a successful load means valid.
func executeConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	// A configured factor pack only fails at engine construction, so load
	// it here to surface broken packs before an assessment does.
	if cfg.Engine.FactorPack != "" {
		if _, err := cfg.Engine.Tables(); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printConfigDetails(cmd, cfg)
	}

	return nil
}

// printConfigDetails prints the resolved configuration values.
func printConfigDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Logging level:   %s\n", cfg.Logging.Level)
	cmd.Printf("  Logging format:  %s\n", cfg.Logging.Format)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file:        %s\n", cfg.Logging.File)
	}
	cmd.Printf("  Server address:  %s\n", cfg.Server.Addr)
	if path, err := cfg.DatabasePath(); err == nil {
		cmd.Printf("  Database path:   %s\n", path)
	}
	cmd.Printf("  Quantity bounds: %.0f-%.0f kg\n", cfg.Engine.MinQuantityKg, cfg.Engine.MaxQuantityKg)
	cmd.Printf("  Max transport:   %.0f km\n", cfg.Engine.MaxTransportKm)
	if cfg.Engine.NoiseEnabled {
		cmd.Printf("  Variance model:  enabled (seed %d)\n", cfg.Engine.NoiseSeed)
	} else {
		cmd.Printf("  Variance model:  disabled\n")
	}
	if cfg.Engine.FactorPack != "" {
		cmd.Printf("  Factor pack:     %s\n", cfg.Engine.FactorPack)
	}
	cmd.Printf("  Default user:    %s\n", cfg.Dashboard.DefaultUser)
	cmd.Printf("  Recent limit:    %d\n", cfg.Dashboard.RecentLimit)
}
