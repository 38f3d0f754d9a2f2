package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalpath/metalpath/internal/factors"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Empty(t, cfg.Logging.File)
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, 30, cfg.Server.ShutdownSeconds)
	assert.Empty(t, cfg.Store.Path)
	assert.Equal(t, 0.001, cfg.Engine.MinQuantityKg)
	assert.Equal(t, 1000000.0, cfg.Engine.MaxQuantityKg)
	assert.Equal(t, 10000.0, cfg.Engine.MaxTransportKm)
	assert.False(t, cfg.Engine.NoiseEnabled)
	assert.Equal(t, "anonymous", cfg.Dashboard.DefaultUser)
	assert.Equal(t, 5, cfg.Dashboard.RecentLimit)

	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `logging:
  level: debug
server:
  addr: ":8080"
  allowed_origins:
    - https://app.example.com
engine:
  noise_enabled: true
  noise_seed: 42
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30, cfg.Server.ShutdownSeconds)
	assert.True(t, cfg.Engine.NoiseEnabled)
	assert.Equal(t, uint64(42), cfg.Engine.NoiseSeed)
	assert.Equal(t, 0.001, cfg.Engine.MinQuantityKg)
	assert.Equal(t, 5, cfg.Dashboard.RecentLimit)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "malformed yaml",
			content: "logging: [unclosed",
		},
		{
			name:    "unknown section",
			content: "loging:\n  level: debug\n",
			wantErr: ErrUnknownSection,
		},
		{
			name:    "invalid log level",
			content: "logging:\n  level: verbose\n",
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "inverted quantity bounds",
			content: "engine:\n  min_quantity_kg: 10\n  max_quantity_kg: 1\n",
			wantErr: ErrInvalidBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := Load(path)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}

func TestLoadOrDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("METALPATH_HOME", home)

	cfg, err := LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Addr)

	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9999\"\n"), 0600))

	cfg, err = LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := New()
	cfg.Server.Addr = ":7070"
	cfg.Engine.NoiseEnabled = true
	cfg.Engine.NoiseSeed = 7
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "logging:")
	assert.Contains(t, string(data), "shutdown_seconds: 30")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults pass", mutate: func(*Config) {}},
		{name: "uppercase level accepted", mutate: func(c *Config) { c.Logging.Level = "DEBUG" }},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: ErrInvalidLogLevel},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: ErrInvalidLogFormat},
		{name: "blank addr", mutate: func(c *Config) { c.Server.Addr = "  " }, wantErr: ErrInvalidAddr},
		{name: "negative shutdown", mutate: func(c *Config) { c.Server.ShutdownSeconds = -1 }, wantErr: ErrInvalidShutdown},
		{name: "zero min quantity", mutate: func(c *Config) { c.Engine.MinQuantityKg = 0 }, wantErr: ErrInvalidBounds},
		{name: "max not above min", mutate: func(c *Config) { c.Engine.MaxQuantityKg = c.Engine.MinQuantityKg }, wantErr: ErrInvalidBounds},
		{name: "zero transport cap", mutate: func(c *Config) { c.Engine.MaxTransportKm = 0 }, wantErr: ErrInvalidTransport},
		{name: "recent limit too small", mutate: func(c *Config) { c.Dashboard.RecentLimit = 0 }, wantErr: ErrInvalidRecent},
		{name: "recent limit too large", mutate: func(c *Config) { c.Dashboard.RecentLimit = 101 }, wantErr: ErrInvalidRecent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"METALPATH_LOG_LEVEL":       "debug",
		"METALPATH_LOG_FORMAT":      "json",
		"METALPATH_LOG_FILE":        "/var/log/metalpath.log",
		"METALPATH_SERVER_ADDR":     ":8080",
		"METALPATH_ALLOWED_ORIGINS": "https://a.example.com, https://b.example.com,",
		"METALPATH_DB_PATH":         "/tmp/assessments.db",
		"METALPATH_FACTOR_PACK":     "/tmp/pack.yaml",
		"METALPATH_NOISE_SEED":      "1234",
		"METALPATH_DEFAULT_USER":    "plant-ops",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := New()
	cfg.applyEnv(lookup)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/var/log/metalpath.log", cfg.Logging.File)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "/tmp/assessments.db", cfg.Store.Path)
	assert.Equal(t, "/tmp/pack.yaml", cfg.Engine.FactorPack)
	assert.True(t, cfg.Engine.NoiseEnabled)
	assert.Equal(t, uint64(1234), cfg.Engine.NoiseSeed)
	assert.Equal(t, "plant-ops", cfg.Dashboard.DefaultUser)
}

func TestApplyEnvBadSeed(t *testing.T) {
	cfg := New()
	cfg.applyEnv(func(key string) (string, bool) {
		if key == "METALPATH_NOISE_SEED" {
			return "not-a-number", true
		}
		return "", false
	})

	assert.False(t, cfg.Engine.NoiseEnabled)
	assert.Zero(t, cfg.Engine.NoiseSeed)
}

func TestConfigPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("METALPATH_HOME", home)

	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)

	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), path)

	cfg := New()
	dbPath, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "metalpath.db"), dbPath)

	cfg.Store.Path = "/srv/data/lca.db"
	dbPath, err = cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/srv/data/lca.db", dbPath)

	require.NoError(t, EnsureConfigDir())
	info, err := os.Stat(home)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEngineConfigTables(t *testing.T) {
	t.Run("built-in tables without a pack", func(t *testing.T) {
		tables, err := EngineConfig{}.Tables()
		require.NoError(t, err)
		assert.Equal(t, 11.5, tables.Metals[factors.MetalAluminum].Carbon.Primary)
	})

	t.Run("pack overlays the baseline", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pack.yaml")
		pack := `schema_version: 1.0.0
metals:
  aluminum:
    carbon: {primary: 9.0, recycled: 0.5}
    energy: {primary: 14.0, recycled: 0.7}
    water: {primary: 1200, recycled: 120}
    recycling_potential: 0.9
    material_efficiency: 0.8
`
		require.NoError(t, os.WriteFile(path, []byte(pack), 0600))

		tables, err := EngineConfig{FactorPack: path}.Tables()
		require.NoError(t, err)
		assert.Equal(t, 9.0, tables.Metals[factors.MetalAluminum].Carbon.Primary)
		assert.Equal(t, 3.8, tables.Metals[factors.MetalCopper].Carbon.Primary)
	})

	t.Run("missing pack file", func(t *testing.T) {
		_, err := EngineConfig{FactorPack: "/nonexistent/pack.yaml"}.Tables()
		require.Error(t, err)
	})
}

func TestEngineConfigOptions(t *testing.T) {
	cfg := New()
	assert.Len(t, cfg.Engine.Options(), 1)

	cfg.Engine.NoiseEnabled = true
	cfg.Engine.NoiseSeed = 99
	assert.Len(t, cfg.Engine.Options(), 2)
}
