package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/metalpath/metalpath/internal/config"
	"github.com/metalpath/metalpath/internal/engine"
	"github.com/metalpath/metalpath/internal/logging"
	"github.com/metalpath/metalpath/internal/store"
)

// maxPathwayFileSize bounds pathway file reads. Pathway descriptions are a
// handful of scalar fields, so anything larger is malformed input.
const maxPathwayFileSize = 1 << 20

// loadConfig resolves the layered configuration, honoring --config when set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault()
}

// newEngine builds the estimation engine from the configured factor tables
// and normalization bounds.
func newEngine(cfg *config.Config) (*engine.Engine, error) {
	tables, err := cfg.Engine.Tables()
	if err != nil {
		return nil, fmt.Errorf("loading factor tables: %w", err)
	}
	return engine.New(tables, cfg.Engine.Options()...), nil
}

// openStore opens the assessment database and applies pending migrations.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	log := logging.FromContext(ctx)

	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, fmt.Errorf("resolving database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	st := store.New(db)
	if err := st.AutoMigrate(ctx); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	log.Debug().Ctx(ctx).Str("db_path", path).Msg("database ready")

	return st, nil
}

// loadPathwayFile reads a YAML or JSON pathway description into the raw
// request shape the engine validates.
func loadPathwayFile(path string) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading pathway file %s: %w", path, err)
	}
	if info.Size() > maxPathwayFileSize {
		return nil, fmt.Errorf("pathway file %s exceeds %d bytes", path, maxPathwayFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pathway file %s: %w", path, err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing pathway file %s: %w", path, err)
	}

	return raw, nil
}
