package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains the shared TUI styles.
type Styles struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Bold   lipgloss.Style
	Active lipgloss.Style

	Inactive lipgloss.Style
	HelpKey  lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style

	// Rate grades, matching the dashboard colors.
	Good   lipgloss.Style
	Medium lipgloss.Style
	Low    lipgloss.Style
	Error  lipgloss.Style
}

var (
	defaultStyles *Styles
	once          sync.Once
)

// Default returns the singleton default Styles instance
func Default() *Styles {
	once.Do(func() {
		defaultStyles = newStyles()
	})
	return defaultStyles
}

// Grade maps a grade name (good, medium, low) to its style.
func (s *Styles) Grade(name string) lipgloss.Style {
	switch name {
	case "good":
		return s.Good
	case "medium":
		return s.Medium
	default:
		return s.Low
	}
}

func newStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			MarginBottom(1),

		Muted: lipgloss.NewStyle().
			Foreground(Gray500),

		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(White),

		Active: lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true),

		Inactive: lipgloss.NewStyle().
			Foreground(Gray500),

		HelpKey: lipgloss.NewStyle().
			Foreground(Gray400).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(Gray500).
			MarginTop(1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray700).
			Padding(0, 2),

		Good:   lipgloss.NewStyle().Foreground(Green),
		Medium: lipgloss.NewStyle().Foreground(Amber),
		Low:    lipgloss.NewStyle().Foreground(Red),
		Error:  lipgloss.NewStyle().Foreground(Red).Bold(true),
	}
}
