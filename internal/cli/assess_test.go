package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalpath/metalpath/internal/cli"
	"github.com/metalpath/metalpath/internal/report"
)

// strPtr returns a pointer to the given string.
func strPtr(s string) *string { return &s }

// executeCommand runs a fresh root command with the given args and captures
// its output streams.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeCommandOn(t, cli.NewRootCmd("test"), args...)
}

// executeCommandOn runs the given root command, for tests that need to
// construct it themselves.
func executeCommandOn(t *testing.T, root *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), errOut.String(), err
}

// writePathwayFile writes a pathway fixture and returns its path.
func writePathwayFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const primaryAluminumYAML = `metal_type: aluminum
production_route: primary
quantity: 1000
transport_distance: 500
electricity_source: grid_mix
`

func TestNewAssessCmd_FlagParsing(t *testing.T) {
	cmd := cli.NewAssessCmd()

	tests := []struct {
		name           string
		flagName       string
		expectedDefVal *string
	}{
		{"metal", "metal", strPtr("")},
		{"route", "route", strPtr("")},
		{"quantity", "quantity", strPtr("0")},
		{"recycled-content", "recycled-content", strPtr("0")},
		{"energy-source", "energy-source", strPtr("")},
		{"transport", "transport", strPtr("0")},
		{"end-of-life", "end-of-life", strPtr("")},
		{"efficiency", "efficiency", strPtr("0")},
		{"input", "input", strPtr("")},
		{"set", "set", nil},
		{"output", "output", strPtr("table")},
		{"interactive", "interactive", strPtr("false")},
		{"save", "save", strPtr("false")},
		{"user", "user", strPtr("")},
	}

	for _, tt := range tests {
		t.Run("has "+tt.name+" flag", func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.flagName)
			require.NotNil(t, flag)
			if tt.expectedDefVal != nil {
				assert.Equal(t, *tt.expectedDefVal, flag.DefValue)
			}
		})
	}
}

func TestValidateAssessFlags(t *testing.T) {
	tests := []struct {
		name        string
		params      cli.AssessParams
		expectError bool
		errContains string
	}{
		{
			name:   "metal flag satisfies the pathway requirement",
			params: cli.AssessParams{Metal: "aluminum", Output: "table"},
		},
		{
			name:   "input file satisfies the pathway requirement",
			params: cli.AssessParams{InputPath: "pathway.yaml", Output: "json"},
		},
		{
			name:   "set overrides satisfy the pathway requirement",
			params: cli.AssessParams{Set: []string{"metal_type=copper"}, Output: "ndjson"},
		},
		{
			name:        "empty pathway is rejected",
			params:      cli.AssessParams{Output: "table"},
			expectError: true,
			errContains: "a pathway is required",
		},
		{
			name:        "unknown output format is rejected",
			params:      cli.AssessParams{Metal: "aluminum", Output: "xml"},
			expectError: true,
			errContains: "invalid output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.ValidateAssessFlags(tt.params)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseSetOverrides(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		expected    map[string]string
		expectError bool
		errContains string
	}{
		{
			name:     "single override",
			input:    []string{"metal_type=copper"},
			expected: map[string]string{"metal_type": "copper"},
		},
		{
			name:     "multiple overrides",
			input:    []string{"metal_type=copper", "quantity=500"},
			expected: map[string]string{"metal_type": "copper", "quantity": "500"},
		},
		{
			name:     "spaces trimmed",
			input:    []string{" metal_type = copper "},
			expected: map[string]string{"metal_type": "copper"},
		},
		{
			name:     "empty input",
			input:    []string{},
			expected: map[string]string{},
		},
		{
			name:     "value with equals sign",
			input:    []string{"note=a=b"},
			expected: map[string]string{"note": "a=b"},
		},
		{
			name:        "missing equals sign",
			input:       []string{"metal_type"},
			expectError: true,
			errContains: "expected key=value",
		},
		{
			name:        "empty key",
			input:       []string{"=copper"},
			expectError: true,
			errContains: "empty key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := cli.ParseSetOverrides(tt.input)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestParseSetOverrides_Limits(t *testing.T) {
	tests := []struct {
		name      string
		pairsFunc func() []string
		wantErr   string
	}{
		{
			name: "rejects too many overrides",
			pairsFunc: func() []string {
				pairs := make([]string, 101)
				for i := range pairs {
					pairs[i] = fmt.Sprintf("key%d=value%d", i, i)
				}
				return pairs
			},
			wantErr: "too many --set overrides",
		},
		{
			name: "rejects oversized value",
			pairsFunc: func() []string {
				return []string{"key=" + strings.Repeat("x", 11*1024)}
			},
			wantErr: "--set value too long",
		},
		{
			name: "rejects oversized key",
			pairsFunc: func() []string {
				return []string{strings.Repeat("k", 129) + "=value"}
			},
			wantErr: "--set key too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cli.ParseSetOverrides(tt.pairsFunc())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExecuteAssess_TableOutput(t *testing.T) {
	t.Setenv("METALPATH_HOME", t.TempDir())

	out, _, err := executeCommand(t,
		"assess", "--metal", "aluminum", "--route", "primary",
		"--quantity", "1000", "--transport", "500", "--energy-source", "grid_mix")
	require.NoError(t, err)

	assert.Contains(t, out, "Environmental Impact Assessment")
	assert.Contains(t, out, "Pathway:  aluminum (primary route)")
	assert.Contains(t, out, "Carbon footprint:    10,850.00 kg CO2e")
	assert.Contains(t, out, "Energy consumption:  15,000.00 kWh")
	assert.Contains(t, out, "Sustainability:       6.7/10")
	assert.Contains(t, out, "Recommendations:")
}

func TestExecuteAssess_JSONOutput(t *testing.T) {
	t.Setenv("METALPATH_HOME", t.TempDir())

	out, _, err := executeCommand(t,
		"assess", "--metal", "aluminum", "--route", "primary",
		"--quantity", "1000", "--transport", "500", "-o", "json")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	assert.InDelta(t, 10850, rep.Result.CarbonKg, 0.01)
	assert.InDelta(t, 15000, rep.Result.EnergyKWh, 0.01)
	assert.InDelta(t, 6.7, rep.Result.Sustainability, 0.01)
	assert.Equal(t, "aluminum", rep.Summary.Metal)
	assert.Equal(t, "assessment", rep.Metadata.ReportType)
	assert.NotEmpty(t, rep.Summary.KeyRecommendations)
}

func TestExecuteAssess_InputFile(t *testing.T) {
	t.Setenv("METALPATH_HOME", t.TempDir())
	path := writePathwayFile(t, "pathway.yaml", primaryAluminumYAML)

	t.Run("file values are used", func(t *testing.T) {
		out, _, err := executeCommand(t, "assess", "--input", path, "-o", "json")
		require.NoError(t, err)

		var rep report.Report
		require.NoError(t, json.Unmarshal([]byte(out), &rep))
		assert.InDelta(t, 10850, rep.Result.CarbonKg, 0.01)
	})

	t.Run("explicit flags override file values", func(t *testing.T) {
		out, _, err := executeCommand(t, "assess", "--input", path, "--route", "recycled", "-o", "json")
		require.NoError(t, err)

		var rep report.Report
		require.NoError(t, json.Unmarshal([]byte(out), &rep))
		assert.Equal(t, "recycled", string(rep.Result.Input.Route))
		assert.Less(t, rep.Result.CarbonKg, 10850.0)
	})

	t.Run("set overrides win over flags", func(t *testing.T) {
		out, _, err := executeCommand(t,
			"assess", "--input", path, "--metal", "aluminum",
			"--set", "metal_type=copper", "-o", "json")
		require.NoError(t, err)

		var rep report.Report
		require.NoError(t, json.Unmarshal([]byte(out), &rep))
		assert.Equal(t, "copper", string(rep.Result.Input.Metal))
	})

	t.Run("missing file reports the path", func(t *testing.T) {
		_, _, err := executeCommand(t, "assess", "--input", filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading pathway file")
	})
}

func TestExecuteAssess_Save(t *testing.T) {
	t.Setenv("METALPATH_HOME", t.TempDir())

	out, _, err := executeCommand(t,
		"assess", "--metal", "copper", "--route", "recycled",
		"--quantity", "500", "--save", "--user", "tester")
	require.NoError(t, err)
	require.Contains(t, out, "Saved assessment ")

	// The saved id is a ULID.
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Saved assessment ") {
			id := strings.TrimPrefix(line, "Saved assessment ")
			assert.Len(t, strings.TrimSpace(id), 26)
		}
	}
}

func TestExecuteAssess_UnknownMetalFallsBack(t *testing.T) {
	t.Setenv("METALPATH_HOME", t.TempDir())

	// Normalization is total: an unrecognized metal falls back to the
	// default instead of failing the command.
	out, _, err := executeCommand(t,
		"assess", "--metal", "unobtainium", "--route", "primary",
		"--quantity", "10", "-o", "json")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "aluminum", string(rep.Result.Input.Metal))
}

func TestExecuteAssess_Errors(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{
			name:        "no pathway given",
			args:        []string{"assess"},
			errContains: "a pathway is required",
		},
		{
			name:        "invalid output format",
			args:        []string{"assess", "--metal", "aluminum", "-o", "xml"},
			errContains: "invalid output format",
		},
		{
			name:        "missing quantity",
			args:        []string{"assess", "--metal", "aluminum", "--route", "primary"},
			errContains: "quantity",
		},
		{
			name:        "interactive without a terminal",
			args:        []string{"assess", "--metal", "aluminum", "--route", "primary", "--quantity", "10", "--interactive"},
			errContains: "interactive mode requires a terminal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("METALPATH_HOME", t.TempDir())

			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
