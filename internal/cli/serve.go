package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/metalpath/metalpath/internal/logging"
	"github.com/metalpath/metalpath/internal/server"
)

// ServeParams holds the parameters for the serve command execution.
// Exported for testing.
type ServeParams struct {
	Addr string
}

// NewServeCmd creates the serve command for running the HTTP API.
func NewServeCmd() *cobra.Command {
	var params ServeParams

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the assessment HTTP API",
		Long: `Serve the assessment engine over HTTP.

Endpoints cover single-pathway assessment, multi-pathway comparison,
the metal catalog, saved-assessment history, and dashboard statistics.
The server drains connections gracefully on SIGINT or SIGTERM.`,
		Example: `  # Serve on the configured address
  metalpath serve

  # Serve on an explicit port
  metalpath serve --addr :8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeServe(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Addr, "addr", "", "listen address (default: configured server address)")

	return cmd
}

// executeServe wires the engine and store into the HTTP server and blocks
// until shutdown.
func executeServe(cmd *cobra.Command, params ServeParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if params.Addr != "" {
		cfg.Server.Addr = params.Addr
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Addr:            cfg.Server.Addr,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		Version:         cmd.Root().Version,
		ShutdownTimeout: time.Duration(cfg.Server.ShutdownSeconds) * time.Second,
	}, eng, st, *log)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Ctx(ctx).
		Str("operation", "serve").
		Str("addr", cfg.Server.Addr).
		Msg("starting server")

	return srv.Run(ctx)
}
