package theme

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Teal     = lipgloss.Color("#14B8A6")
	DeepTeal = lipgloss.Color("#0F766E")

	White   = lipgloss.Color("#FFFFFF")
	Gray400 = lipgloss.Color("#9CA3AF")
	Gray500 = lipgloss.Color("#6B7280")
	Gray700 = lipgloss.Color("#374151")

	Green = lipgloss.Color("#22C55E")
	Amber = lipgloss.Color("#F59E0B")
	Red   = lipgloss.Color("#EF4444")
)
