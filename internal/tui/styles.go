package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("74")  // Steel blue
	accentColor  = lipgloss.Color("173") // Amber
	mutedColor   = lipgloss.Color("241") // Gray
	successColor = lipgloss.Color("71")  // Green
	warningColor = lipgloss.Color("214") // Orange
	errorColor   = lipgloss.Color("196") // Red

	// Base styles
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("117")) // Bright cyan
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("0"))

	// Layout
	borderColor    = lipgloss.Color("60") // Muted indigo
	appBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// Header/Footer
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Bold(true) // Sand

	// Composer specific
	stageActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	stageDoneStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	totalStyle       = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	lowStockStyle    = lipgloss.NewStyle().Bold(true).Foreground(warningColor)
)
