// Package config loads and validates the layered metalpath configuration:
// built-in defaults, overridden by the YAML file at ~/.metalpath/config.yaml
// (or METALPATH_HOME), overridden by METALPATH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/metalpath/metalpath/internal/engine"
	"github.com/metalpath/metalpath/internal/factors"
)

// File and directory names under the config home.
const (
	configDirName  = ".metalpath"
	configFileName = "config.yaml"
	databaseName   = "metalpath.db"
)

// Default section values.
const (
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
	DefaultServerAddr      = ":5000"
	DefaultShutdownSeconds = 30
	DefaultRecentLimit     = 5
	DefaultUser            = "anonymous"
)

// Dashboard recent-limit bounds.
const (
	minRecentLimit = 1
	maxRecentLimit = 100
)

// Validation errors.
var (
	ErrInvalidLogLevel  = errors.New("log level must be one of trace, debug, info, warn, error")
	ErrInvalidLogFormat = errors.New("log format must be 'json' or 'console'")
	ErrInvalidAddr      = errors.New("server addr must not be empty")
	ErrInvalidShutdown  = errors.New("server shutdown_seconds must be non-negative")
	ErrInvalidBounds    = errors.New("engine quantity bounds must satisfy 0 < min < max")
	ErrInvalidTransport = errors.New("engine max_transport_km must be positive")
	ErrInvalidRecent    = errors.New("dashboard recent_limit must be between 1 and 100")
)

// Config is the full configuration tree.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"   json:"logging"`
	Server    ServerConfig    `yaml:"server"    json:"server"`
	Store     StoreConfig     `yaml:"store"     json:"store"`
	Engine    EngineConfig    `yaml:"engine"    json:"engine"`
	Dashboard DashboardConfig `yaml:"dashboard" json:"dashboard"`
}

// LoggingConfig controls log output for every entry point.
type LoggingConfig struct {
	// Level is the minimum level to emit: trace, debug, info, warn, error.
	Level string `yaml:"level"          json:"level"`
	// Format selects "json" or "console" output.
	Format string `yaml:"format"         json:"format"`
	// File, when set, additionally writes logs to this path.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address, host:port.
	Addr string `yaml:"addr"                      json:"addr"`
	// AllowedOrigins configures CORS. Empty allows any http/https origin.
	AllowedOrigins []string `yaml:"allowed_origins,omitempty" json:"allowed_origins,omitempty"`
	// ShutdownSeconds bounds graceful connection draining on stop.
	ShutdownSeconds int `yaml:"shutdown_seconds"          json:"shutdown_seconds"`
}

// StoreConfig controls assessment persistence.
type StoreConfig struct {
	// Path is the SQLite database path. Empty resolves to
	// <config-home>/metalpath.db.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// EngineConfig controls normalization bounds and the variance model.
type EngineConfig struct {
	// MinQuantityKg is the smallest accepted production quantity.
	MinQuantityKg float64 `yaml:"min_quantity_kg"  json:"min_quantity_kg"`
	// MaxQuantityKg is the largest accepted production quantity.
	MaxQuantityKg float64 `yaml:"max_quantity_kg"  json:"max_quantity_kg"`
	// MaxTransportKm caps the transport-distance clamp range.
	MaxTransportKm float64 `yaml:"max_transport_km" json:"max_transport_km"`

	// NoiseEnabled turns on the stochastic variance model. Off by default so
	// estimates stay reproducible.
	NoiseEnabled bool `yaml:"noise_enabled,omitempty" json:"noise_enabled,omitempty"`
	// NoiseSeed seeds the variance model when enabled.
	NoiseSeed uint64 `yaml:"noise_seed,omitempty"    json:"noise_seed,omitempty"`

	// FactorPack is an optional YAML factor-pack path that overrides the
	// built-in coefficient tables.
	FactorPack string `yaml:"factor_pack,omitempty" json:"factor_pack,omitempty"`
}

// DashboardConfig controls history views in the CLI and API.
type DashboardConfig struct {
	// DefaultUser owns assessments submitted without a user id.
	DefaultUser string `yaml:"default_user,omitempty" json:"default_user,omitempty"`
	// RecentLimit is how many history rows dashboards show.
	RecentLimit int `yaml:"recent_limit"           json:"recent_limit"`
}

// New returns the built-in default configuration.
func New() *Config {
	bounds := engine.DefaultBounds()
	return &Config{
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Server: ServerConfig{
			Addr:            DefaultServerAddr,
			ShutdownSeconds: DefaultShutdownSeconds,
		},
		Store: StoreConfig{},
		Engine: EngineConfig{
			MinQuantityKg:  bounds.MinQuantityKg,
			MaxQuantityKg:  bounds.MaxQuantityKg,
			MaxTransportKm: bounds.MaxTransportKm,
		},
		Dashboard: DashboardConfig{
			DefaultUser: DefaultUser,
			RecentLimit: DefaultRecentLimit,
		},
	}
}

// ConfigDir returns the configuration home: METALPATH_HOME when set,
// otherwise ~/.metalpath.
func ConfigDir() (string, error) {
	if home := os.Getenv("METALPATH_HOME"); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving user home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// EnsureConfigDir creates the configuration home if it does not exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// DefaultConfigPath returns <config-home>/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// DatabasePath resolves the SQLite path: the configured one, or the default
// under the config home.
func (c *Config) DatabasePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, databaseName), nil
}

// Load reads and parses the YAML file at path onto the defaults, applies
// METALPATH_* environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := New()
	if err := ShallowMergeYAML(cfg, data); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the default config path. A missing file is not an
// error: defaults plus environment overrides are returned instead.
func LoadOrDefault() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(path); statErr != nil {
		if !os.IsNotExist(statErr) {
			return nil, fmt.Errorf("cannot access config path %s: %w", path, statErr)
		}
		cfg := New()
		cfg.applyEnv(os.LookupEnv)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return Load(path)
}

// Save writes the configuration as YAML to path, creating parent directories
// as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// WriteDefault writes the built-in defaults to path.
func WriteDefault(path string) error {
	return New().Save(path)
}

// Validate checks every section and returns the first violation.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		return ErrInvalidAddr
	}
	if c.Server.ShutdownSeconds < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidShutdown, c.Server.ShutdownSeconds)
	}

	if c.Engine.MinQuantityKg <= 0 || c.Engine.MaxQuantityKg <= c.Engine.MinQuantityKg {
		return fmt.Errorf("%w: got min %v, max %v", ErrInvalidBounds,
			c.Engine.MinQuantityKg, c.Engine.MaxQuantityKg)
	}
	if c.Engine.MaxTransportKm <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidTransport, c.Engine.MaxTransportKm)
	}

	if c.Dashboard.RecentLimit < minRecentLimit || c.Dashboard.RecentLimit > maxRecentLimit {
		return fmt.Errorf("%w: got %d", ErrInvalidRecent, c.Dashboard.RecentLimit)
	}

	return nil
}

// Tables resolves the factor tables: the configured pack, or the built-ins.
func (ec EngineConfig) Tables() (factors.Tables, error) {
	if ec.FactorPack == "" {
		return factors.Default(), nil
	}
	return factors.LoadPack(ec.FactorPack)
}

// Options assembles the engine construction options for this configuration.
func (ec EngineConfig) Options() []engine.Option {
	opts := []engine.Option{
		engine.WithBounds(engine.Bounds{
			MinQuantityKg:  ec.MinQuantityKg,
			MaxQuantityKg:  ec.MaxQuantityKg,
			MaxTransportKm: ec.MaxTransportKm,
		}),
	}
	if ec.NoiseEnabled {
		opts = append(opts, engine.WithNoise(engine.NewGaussianNoise(ec.NoiseSeed)))
	}
	return opts
}

// applyEnv overlays METALPATH_* environment variables. Unparseable numeric
// values are ignored rather than failing startup.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("METALPATH_LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup("METALPATH_LOG_FORMAT"); ok {
		c.Logging.Format = v
	}
	if v, ok := lookup("METALPATH_LOG_FILE"); ok {
		c.Logging.File = v
	}
	if v, ok := lookup("METALPATH_SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := lookup("METALPATH_ALLOWED_ORIGINS"); ok {
		c.Server.AllowedOrigins = splitOrigins(v)
	}
	if v, ok := lookup("METALPATH_DB_PATH"); ok {
		c.Store.Path = v
	}
	if v, ok := lookup("METALPATH_FACTOR_PACK"); ok {
		c.Engine.FactorPack = v
	}
	if v, ok := lookup("METALPATH_NOISE_SEED"); ok {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Engine.NoiseEnabled = true
			c.Engine.NoiseSeed = seed
		}
	}
	if v, ok := lookup("METALPATH_DEFAULT_USER"); ok {
		c.Dashboard.DefaultUser = v
	}
}

func splitOrigins(v string) []string {
	parts := strings.Split(v, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
