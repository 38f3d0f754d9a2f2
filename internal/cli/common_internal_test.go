package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPathwayFile(t *testing.T) {
	t.Run("yaml pathway", func(t *testing.T) {
		path := writeTempFile(t, "pathway.yaml", `metal_type: aluminum
production_route: primary
quantity: 1000
recycled_content: 0.35
`)

		raw, err := loadPathwayFile(path)
		require.NoError(t, err)

		assert.Equal(t, "aluminum", raw["metal_type"])
		assert.Equal(t, "primary", raw["production_route"])
		assert.EqualValues(t, 1000, raw["quantity"])
		assert.InDelta(t, 0.35, raw["recycled_content"], 0.0001)
	})

	t.Run("json pathway", func(t *testing.T) {
		// YAML is a JSON superset, so .json files parse through the same
		// decoder.
		path := writeTempFile(t, "pathway.json", `{"metal_type": "copper", "quantity": 500}`)

		raw, err := loadPathwayFile(path)
		require.NoError(t, err)

		assert.Equal(t, "copper", raw["metal_type"])
		assert.EqualValues(t, 500, raw["quantity"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadPathwayFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading pathway file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeTempFile(t, "broken.yaml", "metal_type: [unclosed\n")

		_, err := loadPathwayFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing pathway file")
	})

	t.Run("oversized file", func(t *testing.T) {
		path := writeTempFile(t, "huge.yaml", "padding: "+strings.Repeat("x", maxPathwayFileSize))

		_, err := loadPathwayFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds")
	})

	t.Run("scalar document is rejected", func(t *testing.T) {
		path := writeTempFile(t, "scalar.yaml", "just a string\n")

		_, err := loadPathwayFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing pathway file")
	})
}

func TestCleanupLogging_NilResult(t *testing.T) {
	assert.NoError(t, cleanupLogging(nil))
}

func TestSupportedMetalNames(t *testing.T) {
	names := supportedMetalNames()

	assert.Contains(t, names, "aluminum")
	assert.Contains(t, names, "nickel")
	assert.Contains(t, names, ", ")
}
