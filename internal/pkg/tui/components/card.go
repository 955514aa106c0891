package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/churnboard/internal/pkg/tui/theme"
)

// MetricCard displays a single KPI.
type MetricCard struct {
	Title string
	Value string
	// Grade colors the value: good, medium or low. Empty renders it plain.
	Grade string
}

func (m MetricCard) View(width int) string {
	styles := theme.Default()

	value := styles.Bold
	if m.Grade != "" {
		value = styles.Grade(m.Grade).Bold(true)
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.Muted.Render(m.Title),
		value.Render(m.Value),
	)
	return styles.Card.Width(width).Render(content)
}

// RenderCards lays cards out three per row within totalWidth.
func RenderCards(cards []MetricCard, totalWidth int) string {
	if len(cards) == 0 {
		return ""
	}
	if totalWidth <= 0 {
		totalWidth = 80
	}
	const perRow = 3
	width := max((totalWidth-perRow*2)/perRow, 18)

	var rows []string
	for i := 0; i < len(cards); i += perRow {
		var row []string
		for _, c := range cards[i:min(i+perRow, len(cards))] {
			row = append(row, c.View(width))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
