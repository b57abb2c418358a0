package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary     = lipgloss.Color("#00BFFF") // Cyan: elevator chrome
	colorAccent      = lipgloss.Color("#FFD700") // Gold: appraiser voice
	colorSuccess     = lipgloss.Color("#00E676") // Green: ready floors
	colorDanger      = lipgloss.Color("#FF5252") // Red: errors
	colorMuted       = lipgloss.Color("#636363") // Gray: locked floors
	colorMutedLight  = lipgloss.Color("#8C8C8C") // Lighter gray: normal text
	colorBrightWhite = lipgloss.Color("#FFFFFF") // Pure white: emphatic text
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

const (
	iconLock  = "⊘"
	iconReady = "ready"
	iconDown  = "▼"
)

var (
	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleRowLocked = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleReady = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleVerdict = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger)

	styleHint = lipgloss.NewStyle().
			Foreground(colorMuted)
)
