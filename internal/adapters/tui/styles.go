package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("#EAFF00")
	colorSecondary = lipgloss.Color("#00E5E5")
	colorMuted     = lipgloss.Color("#6B7280")
	colorGrid      = lipgloss.Color("#27272A")

	logoStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FFFFFF")).Padding(0, 1)
	navStyle       = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	navActiveStyle = lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1)
	toggleStyle    = lipgloss.NewStyle().Bold(true).Border(lipgloss.NormalBorder()).BorderForeground(colorMuted).Padding(0, 1)
	headerStyle    = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(colorGrid)
	footerStyle    = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)

	titleStyle    = lipgloss.NewStyle().Bold(true)
	headlineStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	accentStyle   = lipgloss.NewStyle().Foreground(colorSecondary)
	statStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorGrid).Padding(0, 1).MarginRight(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	chipStyle       = lipgloss.NewStyle().Foreground(colorMuted).Border(lipgloss.NormalBorder()).BorderForeground(colorGrid).Padding(0, 1)
	chipActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(colorPrimary).Bold(true).Padding(0, 1).Margin(1, 0)
	cardStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorGrid).Padding(0, 1).Width(38)

	lcdStyle       = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(colorGrid).Padding(0, 2).Width(30).Align(lipgloss.Center)
	padStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorGrid).Width(10).Height(3).Align(lipgloss.Center)
	padActiveStyle = padStyle.BorderForeground(colorPrimary).Foreground(lipgloss.Color("#000000")).Bold(true)

	// Pages fade by rendering faint while exiting or entering.
	fadingStyle = lipgloss.NewStyle().Faint(true)
)

func statusColor(name string) lipgloss.Color {
	switch name {
	case "red":
		return lipgloss.Color("#EF4444")
	case "yellow":
		return lipgloss.Color("#EAB308")
	default:
		return lipgloss.Color("#22C55E")
	}
}

func padColor(color string) lipgloss.Color {
	if color == "primary" {
		return colorPrimary
	}
	return colorSecondary
}
