package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/metalpath/metalpath/internal/config"
	"github.com/metalpath/metalpath/internal/logging"
)

// setupLogging builds the CLI logger from config, environment, and flags, and
// installs it on the command context along with a trace id. Precedence, lowest
// to highest: config file, METALPATH_LOG_* environment, --debug.
func setupLogging(cmd *cobra.Command, lookupEnv func(string) (string, bool)) logging.LogPathResult {
	// A failed config load falls back to defaults rather than aborting, so
	// the env and flag layers still apply when the config file is broken.
	logCfg := config.New().Logging
	if cfg, err := loadConfig(cmd); err == nil {
		logCfg = cfg.Logging
	}

	debug, _ := cmd.Flags().GetBool("debug")

	if envLevel, ok := lookupEnv("METALPATH_LOG_LEVEL"); ok && envLevel != "" && !debug {
		logCfg.Level = envLevel
	}
	if envFormat, ok := lookupEnv("METALPATH_LOG_FORMAT"); ok && envFormat != "" {
		logCfg.Format = envFormat
	}
	if envFile, ok := lookupEnv("METALPATH_LOG_FILE"); ok && envFile != "" {
		logCfg.File = envFile
	}

	if debug {
		logCfg.Level = "debug"
		logCfg.Format = "console"
		logCfg.File = ""
	}

	if logCfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(logCfg.File), 0o700); err != nil {
			// Best effort: NewLoggerWithPath falls back to stderr below.
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(logging.Config{
		Level:  logCfg.Level,
		Format: logCfg.Format,
		File:   logCfg.File,
	})
	logger := logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging releases the log file handle opened by setupLogging.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult == nil {
		return nil
	}
	if err := logResult.Close(); err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}
	return nil
}
