package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metalpath/metalpath/internal/config"
)

// NewConfigInitCmd creates the config init command for writing a default
// configuration file at $METALPATH_HOME/config.yaml (or ~/.metalpath).
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

The file lands at $METALPATH_HOME/config.yaml, or ~/.metalpath/config.yaml
when METALPATH_HOME is unset. Existing files are preserved unless --force
is given.`,
		Example: `  # Create the default configuration
  metalpath config init

  # Overwrite an existing configuration
  metalpath config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

// executeConfigInit writes the default configuration, refusing to clobber an
// existing file without --force.
func executeConfigInit(cmd *cobra.Command, force bool) error {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)

	return nil
}
