package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the lipgloss styles of the menu and scoreboard screens.
type Theme struct {
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuControls    lipgloss.Style

	Border       lipgloss.Color
	Highlight    lipgloss.Color
	HighlightBg  lipgloss.Color
	EmptyMessage lipgloss.Style
}

// DefaultTheme returns the night-sky theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("183")).Bold(true), // Lavender
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuControls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		Border:      lipgloss.Color("240"),
		Highlight:   lipgloss.Color("229"),
		HighlightBg: lipgloss.Color("57"),
		EmptyMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4),
	}
}

// MonochromeTheme returns a grayscale theme for terminals with few colors.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.Highlight = lipgloss.Color("255")
	theme.HighlightBg = lipgloss.Color("238")
	return theme
}

// ThemeByName resolves a theme name; unknown names fall back to the default.
func ThemeByName(name string) Theme {
	if name == "mono" || name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}
