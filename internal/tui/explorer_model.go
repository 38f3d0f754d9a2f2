package tui

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/metalpath/metalpath/internal/engine"
)

// ExplorerState represents the current state of the pathway explorer TUI.
type ExplorerState int

const (
	// ExplorerStateEditing indicates the user is editing pathway fields.
	ExplorerStateEditing ExplorerState = iota
	// ExplorerStateCalculating indicates an impact recalculation is in progress.
	ExplorerStateCalculating
	// ExplorerStateQuitting indicates the application is exiting.
	ExplorerStateQuitting
	// ExplorerStateError indicates a recalculation failed.
	ExplorerStateError
)

// FieldRow represents a single editable pathway field in the explorer TUI.
type FieldRow struct {
	Key           string
	OriginalValue string
	CurrentValue  string
}

// RecalculateFunc reruns the assessment pipeline over an edited raw input.
type RecalculateFunc func(context.Context, map[string]any) (engine.AssessmentResult, error)

// recalculatedMsg is sent when an impact recalculation completes.
type recalculatedMsg struct {
	result engine.AssessmentResult
	err    error
}

// editableFields lists the pathway fields exposed for editing, in display order.
//
//nolint:gochecknoglobals // Fixed display ordering for the explorer field table.
var editableFields = []string{
	"metal_type",
	"production_route",
	"quantity",
	"recycled_content",
	"electricity_source",
	"transport_distance",
	"end_of_life_scenario",
	"process_efficiency",
}

// ExplorerModel is the Bubble Tea model for interactive what-if pathway
// exploration. Field edits stay as strings; the engine normalizer coerces
// numeric strings when the assessment reruns.
type ExplorerModel struct {
	// Pathway context
	ctx  context.Context
	base map[string]any

	// Editable fields
	fields     []FieldRow
	focusedRow int
	editMode   bool
	editBuffer string

	// Impact display
	baseline engine.AssessmentResult
	current  engine.AssessmentResult

	// State management
	state   ExplorerState
	loading bool
	err     error

	// Display dimensions
	width  int
	height int

	// Recalculation callback
	recalculateFn RecalculateFunc
}

// NewExplorerModel creates an ExplorerModel seeded with a raw pathway input
// and the baseline assessment computed from it.
func NewExplorerModel(ctx context.Context, raw map[string]any, baseline engine.AssessmentResult) *ExplorerModel {
	m := &ExplorerModel{
		ctx:      ctx,
		base:     raw,
		baseline: baseline,
		current:  baseline,
		state:    ExplorerStateEditing,
		width:    defaultWidth,
		height:   defaultHeight,
	}

	m.initializeFields()

	return m
}

// NewExplorerModelWithCallback creates an ExplorerModel with a recalculation
// callback.
//
// The callback runs whenever a field edit is committed.
func NewExplorerModelWithCallback(
	ctx context.Context,
	raw map[string]any,
	baseline engine.AssessmentResult,
	recalculateFn RecalculateFunc,
) *ExplorerModel {
	m := NewExplorerModel(ctx, raw, baseline)
	m.recalculateFn = recalculateFn
	return m
}

// initializeFields seeds the editable rows, preferring the caller's raw values
// and falling back to the normalized baseline for fields the input left unset.
func (m *ExplorerModel) initializeFields() {
	m.fields = make([]FieldRow, 0, len(editableFields))
	for _, key := range editableFields {
		value := m.seedValue(key)
		m.fields = append(m.fields, FieldRow{
			Key:           key,
			OriginalValue: value,
			CurrentValue:  value,
		})
	}
}

// seedValue resolves the initial display value for one editable field.
func (m *ExplorerModel) seedValue(key string) string {
	if raw, ok := m.base[key]; ok && raw != nil {
		return fmt.Sprintf("%v", raw)
	}

	in := m.baseline.Input
	switch key {
	case "metal_type":
		return string(in.Metal)
	case "production_route":
		return string(in.Route)
	case "quantity":
		return formatFieldNumber(in.QuantityKg)
	case "recycled_content":
		return formatFieldNumber(in.RecycledContent)
	case "electricity_source":
		return string(in.ElectricitySource)
	case "transport_distance":
		return formatFieldNumber(in.TransportKm)
	case "end_of_life_scenario":
		return string(in.EndOfLife)
	case "process_efficiency":
		return formatFieldNumber(in.ProcessEfficiency)
	}

	return ""
}

// formatFieldNumber renders a numeric field without exponent notation.
func formatFieldNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Init initializes the model.
func (m *ExplorerModel) Init() tea.Cmd {
	// No initial commands needed for editing state
	return nil
}

// Update handles messages and updates the model state.
func (m *ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case recalculatedMsg:
		return m.handleRecalculated(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

//nolint:exhaustive // Only handling relevant key types for explorer navigation.
func (m *ExplorerModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle edit mode separately
	if m.editMode {
		return m.handleEditModeKey(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = ExplorerStateQuitting
		return m, tea.Quit

	case tea.KeyRunes:
		if string(msg.Runes) == keyQuit {
			m.state = ExplorerStateQuitting
			return m, tea.Quit
		}

	case tea.KeyUp:
		if m.focusedRow > 0 {
			m.focusedRow--
		}
		return m, nil

	case tea.KeyDown:
		if m.focusedRow < len(m.fields)-1 {
			m.focusedRow++
		}
		return m, nil

	case tea.KeyEnter:
		if len(m.fields) > 0 && m.focusedRow < len(m.fields) {
			m.editMode = true
			m.editBuffer = m.fields[m.focusedRow].CurrentValue
		}
		return m, nil

	case tea.KeyEsc:
		if m.state == ExplorerStateError {
			m.err = nil
			m.state = ExplorerStateEditing
		}
		return m, nil
	}

	return m, nil
}

//nolint:exhaustive // Only handling relevant key types for text editing.
func (m *ExplorerModel) handleEditModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		// Commit the edit
		if m.focusedRow < len(m.fields) {
			m.fields[m.focusedRow].CurrentValue = m.editBuffer
		}
		m.editMode = false

		// Trigger recalculation if callback is set
		if m.recalculateFn != nil {
			return m, m.triggerRecalculation()
		}
		return m, nil

	case tea.KeyEsc:
		// Cancel the edit
		m.editMode = false
		m.editBuffer = ""
		return m, nil

	case tea.KeyBackspace:
		runes := []rune(m.editBuffer)
		if len(runes) > 0 {
			m.editBuffer = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeyRunes:
		m.editBuffer += string(msg.Runes)
		return m, nil
	}

	return m, nil
}

// assembleInput copies the base input and overlays the edited field values.
func (m *ExplorerModel) assembleInput() map[string]any {
	input := make(map[string]any, len(m.base)+len(m.fields))
	for k, v := range m.base {
		input[k] = v
	}
	for _, field := range m.fields {
		if field.CurrentValue != field.OriginalValue {
			input[field.Key] = field.CurrentValue
		}
	}
	return input
}

// triggerRecalculation creates a command that reruns the assessment over the
// edited input.
func (m *ExplorerModel) triggerRecalculation() tea.Cmd {
	m.loading = true
	m.state = ExplorerStateCalculating

	input := m.assembleInput()

	// Capture references before goroutine to avoid accessing model fields concurrently
	ctx := m.ctx
	recalculateFn := m.recalculateFn

	return func() tea.Msg {
		result, err := recalculateFn(ctx, input)
		return recalculatedMsg{result: result, err: err}
	}
}

// handleRecalculated processes the result of an impact recalculation.
func (m *ExplorerModel) handleRecalculated(msg recalculatedMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	if msg.err != nil {
		m.err = msg.err
		m.state = ExplorerStateError
		return m, nil
	}

	m.current = msg.result
	m.err = nil
	m.state = ExplorerStateEditing

	return m, nil
}

// View renders the current view.
func (m *ExplorerModel) View() string {
	switch m.state {
	case ExplorerStateQuitting:
		return ""

	case ExplorerStateError:
		return fmt.Sprintf("Error: %v\n\nPress Esc to keep editing, q to quit.", m.err)

	case ExplorerStateEditing, ExplorerStateCalculating:
		// Handled below
	}

	if m.loading {
		return RenderCalculating()
	}

	return m.renderEditingView()
}

// renderEditingView renders the main exploration interface.
func (m *ExplorerModel) renderEditingView() string {
	var output string

	output += RenderExplorerHeader(string(m.current.Input.Metal), string(m.current.Input.Route))
	output += "\n\n"

	output += RenderMetricComparison(m.baseline, m.current)
	output += "\n\n"

	// Field table with edit buffer if in edit mode
	if m.editMode && m.focusedRow < len(m.fields) {
		// Show the edit buffer in the field table
		fieldsCopy := make([]FieldRow, len(m.fields))
		copy(fieldsCopy, m.fields)
		fieldsCopy[m.focusedRow].CurrentValue = m.editBuffer + "▌" // Cursor indicator
		output += RenderFieldTable(fieldsCopy, m.focusedRow, true)
	} else {
		output += RenderFieldTable(m.fields, m.focusedRow, false)
	}

	output += "\n\n"

	// Help text
	output += RenderExplorerHelp()

	return output
}

// GetOverrides returns the field values changed from the original input.
func (m *ExplorerModel) GetOverrides() map[string]string {
	overrides := make(map[string]string)
	for _, field := range m.fields {
		if field.CurrentValue != field.OriginalValue {
			overrides[field.Key] = field.CurrentValue
		}
	}
	return overrides
}

// GetResult returns the most recent assessment.
func (m *ExplorerModel) GetResult() engine.AssessmentResult {
	return m.current
}

// GetBaseline returns the assessment the exploration started from.
func (m *ExplorerModel) GetBaseline() engine.AssessmentResult {
	return m.baseline
}
