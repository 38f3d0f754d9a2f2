package tui

import "github.com/charmbracelet/lipgloss"

// Key strings matched against tea.KeyMsg.String().
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyS     = "s"
)

// Default dimensions used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
	borderPadding = 4
)

// Directional icons for metric delta rendering.
const (
	// IconArrowUp marks a metric that increased.
	IconArrowUp = "↑"
	// IconArrowDown marks a metric that decreased.
	IconArrowDown = "↓"
	// IconArrowRight marks an unchanged metric.
	IconArrowRight = "→"
)

// ANSI 256 palette shared by all metalpath terminal views.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorBorder    = lipgloss.Color("240")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("241")
	ColorHighlight = lipgloss.Color("212")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorSpinner   = lipgloss.Color("69")
)

//nolint:gochecknoglobals // Lipgloss styles are shared across all views.
var (
	// HeaderStyle renders section and view titles.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)

	// LabelStyle renders field labels in detail and summary views.
	LabelStyle = lipgloss.NewStyle().Foreground(ColorLabel)

	// ValueStyle renders field values.
	ValueStyle = lipgloss.NewStyle().Foreground(ColorValue)

	// SubtleStyle renders help text and other secondary content.
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	// InfoStyle renders status banners.
	InfoStyle = lipgloss.NewStyle().Foreground(ColorHighlight)

	// WarningStyle renders degraded metrics.
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	// CriticalStyle renders errors.
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)

	// BoxStyle wraps detail panes in a rounded border.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// TableHeaderStyle is applied to bubbles table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true).
				Bold(true)

	// TableSelectedStyle is applied to the focused bubbles table row.
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Bold(true)
)
