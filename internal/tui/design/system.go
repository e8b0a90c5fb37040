// Package design holds the colors and lipgloss styles of the dashboard.
package design

import (
	"github.com/charmbracelet/lipgloss"
)

// pad is the horizontal padding of bars and tabs.
const pad = 1

// Palette. Every color adapts to the background chosen in Initialize.
var (
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FB923C"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}

	ColorBase    = lipgloss.AdaptiveColor{Light: "#FAFAF9", Dark: "#121212"}
	ColorBar     = lipgloss.AdaptiveColor{Light: "#E7E5E4", Dark: "#292524"}
	ColorOverlay = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1C1917"}
	ColorRule    = lipgloss.AdaptiveColor{Light: "#D6D3D1", Dark: "#57534E"}
	ColorCursor  = lipgloss.AdaptiveColor{Light: "#FEF3C7", Dark: "#44403C"}

	ColorFg      = lipgloss.AdaptiveColor{Light: "#1C1917", Dark: "#F5F5F4"}
	ColorFgMuted = lipgloss.AdaptiveColor{Light: "#78716C", Dark: "#A8A29E"}
	ColorFgFaint = lipgloss.AdaptiveColor{Light: "#A8A29E", Dark: "#78716C"}
)

// Text styles
var (
	TextStyle          = lipgloss.NewStyle().Foreground(ColorFg)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(ColorFgMuted)
	TextErrorStyle     = lipgloss.NewStyle().Foreground(ColorError)
	DimStyle           = lipgloss.NewStyle().Foreground(ColorFgFaint)
)

// Dashboard styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Background(ColorBar).
			Foreground(ColorFg).
			Padding(0, pad)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			Padding(0, pad)

	TabActiveStyle = TabStyle.
			Foreground(ColorBase).
			Background(ColorAccent).
			Bold(true)

	ColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(ColorFg)

	RowStyle     = lipgloss.NewStyle().Foreground(ColorFg)
	RowBoldStyle = RowStyle.Bold(true)

	// RowHighlightStyle marks the selected row.
	RowHighlightStyle = lipgloss.NewStyle().
				Background(ColorCursor).
				Foreground(ColorFg)

	// ChainTargetStyle marks the searched clock at the end of a parent chain.
	ChainTargetStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	SearchPromptStyle    = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	ScrollIndicatorStyle = lipgloss.NewStyle().Foreground(ColorFgFaint)
)

// Status bar styles. A single line, whatever the content.
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBar).
			Foreground(ColorFg).
			Padding(0, pad).
			Height(1).
			MaxHeight(1)

	StatusBarSuccessStyle = StatusBarStyle.Background(ColorSuccess).Foreground(ColorBase)
	StatusBarErrorStyle   = StatusBarStyle.Background(ColorError).Foreground(ColorBase)
	StatusBarWarningStyle = StatusBarStyle.Background(ColorWarning).Foreground(ColorBase)
	StatusBarInfoStyle    = StatusBarStyle.Background(ColorInfo).Foreground(ColorBase)
)

// Overlay styles
var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorRule).
			Background(ColorOverlay).
			Foreground(ColorFg).
			Padding(1, 2)

	HelpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1).
			Align(lipgloss.Center).
			Foreground(ColorFg)

	CenteredOverlayContainerStyle = overlayStyle
	LogOverlayStyle               = overlayStyle

	LogPanelTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				MarginBottom(1).
				Foreground(ColorFg)
)

// Log level styles
var (
	LogInfoStyle  = lipgloss.NewStyle().Foreground(ColorFg)
	LogWarnStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	LogErrorStyle = lipgloss.NewStyle().Foreground(ColorError)
	LogDebugStyle = lipgloss.NewStyle().Foreground(ColorFgFaint).Italic(true)
)
