package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShallowMergeYAML(t *testing.T) {
	t.Run("present sections decode over current values", func(t *testing.T) {
		cfg := New()
		data := []byte("engine:\n  noise_enabled: true\n  noise_seed: 11\n")

		require.NoError(t, ShallowMergeYAML(cfg, data))

		assert.True(t, cfg.Engine.NoiseEnabled)
		assert.Equal(t, uint64(11), cfg.Engine.NoiseSeed)
		assert.Equal(t, 0.001, cfg.Engine.MinQuantityKg)
		assert.Equal(t, 1000000.0, cfg.Engine.MaxQuantityKg)
	})

	t.Run("absent sections keep their values", func(t *testing.T) {
		cfg := New()
		cfg.Server.Addr = ":7070"

		require.NoError(t, ShallowMergeYAML(cfg, []byte("logging:\n  level: warn\n")))

		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, ":7070", cfg.Server.Addr)
	})

	t.Run("null section is a no-op", func(t *testing.T) {
		cfg := New()

		require.NoError(t, ShallowMergeYAML(cfg, []byte("server:\n")))

		assert.Equal(t, ":5000", cfg.Server.Addr)
		assert.Equal(t, 30, cfg.Server.ShutdownSeconds)
	})

	t.Run("empty document is a no-op", func(t *testing.T) {
		cfg := New()

		require.NoError(t, ShallowMergeYAML(cfg, nil))

		assert.Equal(t, New(), cfg)
	})

	t.Run("unknown section is rejected", func(t *testing.T) {
		err := ShallowMergeYAML(New(), []byte("databse:\n  path: /tmp/x\n"))

		require.ErrorIs(t, err, ErrUnknownSection)
		assert.Contains(t, err.Error(), "databse")
	})

	t.Run("malformed document", func(t *testing.T) {
		require.Error(t, ShallowMergeYAML(New(), []byte("just a scalar")))
	})

	t.Run("section with wrong shape", func(t *testing.T) {
		err := ShallowMergeYAML(New(), []byte("server: 5000\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "server")
	})
}
