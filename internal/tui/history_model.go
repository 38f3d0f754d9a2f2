package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/metalpath/metalpath/internal/equivalency"
	"github.com/metalpath/metalpath/internal/store"
)

// ViewState represents the active screen of the history browser.
type ViewState int

const (
	// ViewStateList shows the assessment table.
	ViewStateList ViewState = iota
	// ViewStateDetail shows a single stored assessment.
	ViewStateDetail
	// ViewStateQuitting indicates the application is exiting.
	ViewStateQuitting
)

// HistorySortField represents the field to sort assessments by.
type HistorySortField int

const (
	// SortByCreated sorts by creation time (newest first).
	SortByCreated HistorySortField = iota
	// SortByCarbon sorts by carbon footprint (highest first).
	SortByCarbon
	// SortByScore sorts by sustainability score (highest first).
	SortByScore
)

const (
	// numHistorySortFields is the number of available sort fields.
	numHistorySortFields = 3

	// histSummaryHeight is the vertical space reserved around the table.
	histSummaryHeight = 8

	// histMinTableHeight keeps the table usable on short terminals.
	histMinTableHeight = 5

	// createdListFormat renders creation times in table rows.
	createdListFormat = "2006-01-02 15:04"
)

// HistoryModel is the Bubble Tea model for the interactive assessment history
// browser. Assessments are loaded before the program starts, so the model
// never touches the store itself.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type HistoryModel struct {
	// View state
	state   ViewState
	allRows []store.Assessment // All loaded assessments (source of truth)
	rows    []store.Assessment // Filtered/sorted assessments

	// Interactive components
	table     table.Model
	textInput textinput.Model
	selected  int

	// Display configuration
	width      int
	height     int
	sortBy     HistorySortField
	showFilter bool
}

// NewHistoryModel creates an interactive browser over preloaded assessments.
func NewHistoryModel(assessments []store.Assessment) HistoryModel {
	m := HistoryModel{
		state:     ViewStateList,
		allRows:   assessments,
		rows:      assessments,
		width:     defaultWidth,
		height:    defaultHeight,
		sortBy:    SortByCreated,
		textInput: newFilterInput(),
	}

	m.refreshTable()

	return m
}

// newFilterInput builds the filter text input for the history browser.
func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "metal or route"
	ti.CharLimit = 40 //nolint:mnd // Filter query length cap.
	ti.Width = 30     //nolint:mnd // Filter input display width.
	return ti
}

// Init initializes the model (Bubble Tea interface).
func (m HistoryModel) Init() tea.Cmd {
	// Assessments are preloaded, nothing to fetch
	return nil
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resizing
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.rebuildTable()
		return m, nil
	}

	// Handle filter input
	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	// Handle state-specific updates
	switch m.state {
	case ViewStateList:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			return m.handleListKeypress(keyMsg)
		}
	case ViewStateDetail:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			return m.handleDetailKeypress(keyMsg)
		}
	case ViewStateQuitting:
	}

	return m, nil
}

// handleFilterInput routes messages to the filter text input.
func (m HistoryModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.textInput.Blur()
			m.applyFilter(m.textInput.Value())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// handleListKeypress processes key events in the list view.
func (m HistoryModel) handleListKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEnter:
		m.selected = m.table.Cursor()
		if m.selected >= 0 && m.selected < len(m.rows) {
			m.state = ViewStateDetail
		}
		return m, nil
	case keySlash:
		m.showFilter = true
		m.textInput.Focus()
		return m, textinput.Blink
	case keyS:
		m.cycleSort()
		return m, nil
	case keyEsc:
		if m.textInput.Value() != "" {
			m.textInput.SetValue("")
			m.applyFilter("")
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

// handleDetailKeypress processes key events in the detail view.
func (m HistoryModel) handleDetailKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEsc:
		m.state = ViewStateList
		return m, nil
	}
	return m, nil
}

// cycleSort advances to the next sort field.
func (m *HistoryModel) cycleSort() {
	m.sortBy = (m.sortBy + 1) % numHistorySortFields
	m.refreshTable()
}

// refreshTable re-sorts and rebuilds the table.
func (m *HistoryModel) refreshTable() {
	switch m.sortBy {
	case SortByCreated:
		sort.Slice(m.rows, func(i, j int) bool {
			return m.rows[i].CreatedAt.After(m.rows[j].CreatedAt)
		})
	case SortByCarbon:
		sort.Slice(m.rows, func(i, j int) bool {
			return m.rows[i].CarbonKg > m.rows[j].CarbonKg
		})
	case SortByScore:
		sort.Slice(m.rows, func(i, j int) bool {
			return m.rows[i].Sustainability > m.rows[j].Sustainability
		})
	}

	m.rebuildTable()
}

// rebuildTable reconstructs the table with current rows.
func (m *HistoryModel) rebuildTable() {
	m.table = m.buildHistoryTable()
}

// buildHistoryTable creates a new table model with current configuration.
func (m *HistoryModel) buildHistoryTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 26},          //nolint:mnd // Column width.
		{Title: "Metal", Width: 10},       //nolint:mnd // Column width.
		{Title: "Route", Width: 10},       //nolint:mnd // Column width.
		{Title: "Carbon (kg)", Width: 14}, //nolint:mnd // Column width.
		{Title: "Score", Width: 7},        //nolint:mnd // Column width.
		{Title: "Created", Width: 16},     //nolint:mnd // Column width.
	}

	rows := make([]table.Row, len(m.rows))
	for i, a := range m.rows {
		rows[i] = table.Row{
			a.ID,
			a.Metal,
			a.Route,
			equivalency.FormatFloat(a.CarbonKg, 2),
			fmt.Sprintf("%.1f", a.Sustainability),
			a.CreatedAt.Format(createdListFormat),
		}
	}

	availableHeight := m.height - histSummaryHeight
	if availableHeight < histMinTableHeight {
		availableHeight = histMinTableHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(availableHeight),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// applyFilter filters assessments whose metal or route contains the query.
// It always calls refreshTable to keep sort order consistent.
func (m *HistoryModel) applyFilter(filterText string) {
	if filterText == "" {
		m.rows = m.allRows
	} else {
		query := strings.ToLower(filterText)
		filtered := []store.Assessment{}

		for _, a := range m.allRows {
			if strings.Contains(strings.ToLower(a.Metal), query) ||
				strings.Contains(strings.ToLower(a.Route), query) {
				filtered = append(filtered, a)
			}
		}

		m.rows = filtered
	}

	m.refreshTable()
}
