package design

import "github.com/charmbracelet/lipgloss"

var darkMode = true

// Initialize fixes the background the adaptive colors are chosen for,
// instead of querying the terminal.
func Initialize(isDarkMode bool) {
	darkMode = isDarkMode
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// MarkdownStyle names the glamour style matching the background.
func MarkdownStyle() string {
	if darkMode {
		return "dark"
	}
	return "light"
}
