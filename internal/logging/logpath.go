package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// logFileMode restricts log files to the owning user.
const logFileMode = 0o600

// LogPathResult reports where NewLoggerWithPath actually sent log output.
// Callers use it to tell the user which file to inspect, and to close the
// file handle on shutdown.
type LogPathResult struct {
	// Logger is the constructed logger.
	Logger zerolog.Logger

	// UsingFile is true when events are being written to FilePath.
	UsingFile bool
	// FilePath is the resolved log file path when UsingFile is true.
	FilePath string

	// FallbackUsed is true when a file was requested but could not be opened.
	FallbackUsed bool
	// FallbackReason describes why the fallback happened.
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if any. Safe to call when no file is open.
func (r *LogPathResult) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLoggerWithPath builds a logger per cfg, preferring cfg.File when set.
// When the file cannot be opened the logger falls back to cfg.Output (or
// stderr) and the result records the reason so the caller can warn the user.
func NewLoggerWithPath(cfg Config) LogPathResult {
	result := LogPathResult{}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFileMode)
		if err != nil {
			result.FallbackUsed = true
			result.FallbackReason = err.Error()
		} else {
			cfg.Output = f
			// File logs are always JSON so they stay machine-readable.
			cfg.Format = FormatJSON
			result.UsingFile = true
			result.FilePath = cfg.File
			result.file = f
		}
	}

	result.Logger = New(cfg)
	return result
}

// PrintLogPathMessage tells the user where file logging is going.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user why file logging was not possible.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: could not open log file (%s), logging to stderr\n", reason)
}
