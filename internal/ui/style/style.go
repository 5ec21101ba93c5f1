// Package style provides the colors, icons and text styles shared by the CLI output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Amber = lipgloss.Color("#F59E0B")
	Slate = lipgloss.Color("#667085")
	Green = lipgloss.Color("#22A06B")
	Red   = lipgloss.Color("#D93025")
	Teal  = lipgloss.Color("#0EA5A4")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// Text styles.
var (
	Header = lipgloss.NewStyle().Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Slate)
	Good   = lipgloss.NewStyle().Foreground(Green)
	Bad    = lipgloss.NewStyle().Foreground(Red)
	Warm   = lipgloss.NewStyle().Foreground(Amber)
	Cool   = lipgloss.NewStyle().Foreground(Teal)
)
