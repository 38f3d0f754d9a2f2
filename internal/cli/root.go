package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/metalpath/metalpath/internal/logging"
)

const rootCmdExample = `  # Assess a production pathway
  metalpath assess --metal aluminum --route primary --quantity 1000

  # Assess from a pathway file and save the result
  metalpath assess --input pathway.yaml --save --user alice

  # Explore what-if scenarios interactively
  metalpath assess --metal copper --route recycled --quantity 500 --interactive

  # Compare pathway alternatives
  metalpath compare primary.yaml recycled.yaml

  # Browse the supported metal catalog
  metalpath metals aluminum

  # Review saved assessments
  metalpath history --user alice --limit 10

  # Run the HTTP API
  metalpath serve --addr :5000`

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd(version string) *cobra.Command {
	return NewRootCmdWithEnv(version, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit environment
// lookup so tests can inject METALPATH_* overrides without mutating the
// process environment.
func NewRootCmdWithEnv(version string, lookupEnv func(string) (string, bool)) *cobra.Command {
	// Captured by PersistentPreRunE, closed by PersistentPostRunE.
	var logResult *logging.LogPathResult

	rootCmd := &cobra.Command{
		Use:     "metalpath",
		Short:   "Environmental impact assessment for metal production pathways",
		Long: `MetalPath estimates the environmental footprint of metal production:
carbon emissions, energy demand, water use, waste, and circularity.

Describe a production pathway (metal, route, quantity, energy mix) and
metalpath computes physical impact metrics, composite scores, and a
sustainability rating, with optional persistence and an HTTP API.`,
		Example:       rootCmdExample,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Logging setup never fails the command: a broken config file
			// still has to let `config init --force` repair it.
			result := setupLogging(cmd, lookupEnv)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging to the console")
	rootCmd.PersistentFlags().String("config", "", "path to config file (default: $METALPATH_HOME/config.yaml)")

	rootCmd.AddCommand(
		NewAssessCmd(),
		NewCompareCmd(),
		NewMetalsCmd(),
		NewHistoryCmd(),
		NewServeCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

// newConfigCmd groups the configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage metalpath configuration",
	}

	cmd.AddCommand(
		NewConfigInitCmd(),
		NewConfigValidateCmd(),
	)

	return cmd
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
