package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for borders
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
)

// Styles contains shared style definitions used across the console view.
var Styles = struct {
	Title  lipgloss.Style // Bold accent color - for the header
	Hint   lipgloss.Style // Help/hint text (muted color)
	Status lipgloss.Style // Status bar text (accent color)
	Normal lipgloss.Style // Normal text (text color)
	Pre    lipgloss.Style // Preformatted JSON blocks (bordered)
	Bold   lipgloss.Style // <b>/<strong> wrapper children
	Italic lipgloss.Style // <em>/<i> wrapper children
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Pre: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Bold: lipgloss.NewStyle().
		Bold(true),
	Italic: lipgloss.NewStyle().
		Italic(true),
}
