package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalpath/metalpath/internal/cli"
)

func TestNewServeCmd(t *testing.T) {
	cmd := cli.NewServeCmd()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Example)

	flag := cmd.Flags().Lookup("addr")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestExecuteServe_InvalidConfig(t *testing.T) {
	t.Setenv("METALPATH_HOME", t.TempDir())

	// A broken --config file fails before any socket is opened, so the
	// command returns instead of blocking on the server loop.
	_, _, err := executeCommand(t, "serve", "--config", "does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}
