package ui

import "github.com/charmbracelet/lipgloss"

// mates' color palette: parchment, olive and ember.
var (
	// Primary colors
	Parchment = lipgloss.Color("#F3E5AB")
	Ember     = lipgloss.Color("#FF8C42")
	Olive     = lipgloss.Color("#8A9A5B")
	Ink       = lipgloss.Color("#2D2D2D")
	Sky       = lipgloss.Color("#6CA6CD")
	Berry     = lipgloss.Color("#C2185B")
	Dim       = lipgloss.Color("#666666")
	Bright    = lipgloss.Color("#FFFFFF")
	Subtle    = lipgloss.Color("#AAAAAA")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ember)

	Subtitle = lipgloss.NewStyle().
			Foreground(Parchment)

	Success = lipgloss.NewStyle().
		Foreground(Olive)

	Error = lipgloss.NewStyle().
		Foreground(Berry)

	Warning = lipgloss.NewStyle().
		Foreground(Ember)

	Info = lipgloss.NewStyle().
		Foreground(Sky)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Ember).
		Bold(true)

	// Component styles
	Banner = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Ember).
		Padding(0, 1)

	TodayStyle = lipgloss.NewStyle().
			Foreground(Ink).
			Background(Parchment).
			Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Ember).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)
)

// Icon constants.
const (
	IconBook     = "📖 "
	IconCalendar = "📅"
	IconGroup    = "👥"
	IconFire     = "🔥"
	IconWarn     = "⚠️ "
	IconError    = "✗ "
	IconOk       = "✓ "
	IconArrow    = "→"
	IconDot      = "·"
	IconSwatch   = "■"
)

// MateStyle returns a bar style for a palette hex color.
func MateStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Ink).
		Background(lipgloss.Color(hex))
}

// Swatch renders a colored square for a mate.
func Swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(IconSwatch)
}
