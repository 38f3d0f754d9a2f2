package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// FindingCode
// ---------------------------------------------------------------------------

func TestFindingCode_String(t *testing.T) {
	tests := []struct {
		name string
		code FindingCode
		want string
	}{
		{"low completeness", FindingLowCompleteness, "low_completeness"},
		{"unusual energy mix", FindingUnusualEnergyMix, "unusual_energy_mix"},
		{"inconsistent recycling", FindingInconsistentRecycling, "inconsistent_recycling"},
		{"unknown value", FindingCode(99), "unknown(99)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.String())
		})
	}
}

func TestFindingCode_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		code FindingCode
		want string
	}{
		{"low completeness", FindingLowCompleteness, `"low_completeness"`},
		{"unusual energy mix", FindingUnusualEnergyMix, `"unusual_energy_mix"`},
		{"inconsistent recycling", FindingInconsistentRecycling, `"inconsistent_recycling"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			var parsed FindingCode
			require.NoError(t, json.Unmarshal(data, &parsed))
			assert.Equal(t, tt.code, parsed)
		})
	}
}

func TestFindingCode_UnmarshalJSON_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		errContains string
	}{
		{"unknown label", `"solar_flare"`, "unknown finding code"},
		{"numeric input", `2`, "parsing finding code"},
		{"malformed json", `"unterminated`, "parsing finding code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var code FindingCode
			err := json.Unmarshal([]byte(tt.input), &code)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

// ---------------------------------------------------------------------------
// Finding
// ---------------------------------------------------------------------------

func TestFinding_MarshalJSON(t *testing.T) {
	finding := Finding{
		Code:    FindingInconsistentRecycling,
		Message: "low recycled content for recycled route, increase the recycled content ratio",
	}

	jsonBytes, err := json.Marshal(finding)
	require.NoError(t, err)
	jsonStr := string(jsonBytes)

	assert.Contains(t, jsonStr, `"code":"inconsistent_recycling"`)
	assert.Contains(t, jsonStr, `"message":"low recycled content`)
}
