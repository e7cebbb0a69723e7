package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderBox draws content inside a rounded border with title set into the
// top edge. width and height are the outer dimensions.
func (m Model) renderBox(title, content string, width, height int) string {
	if width < 6 {
		width = 6
	}
	if height < 3 {
		height = 3
	}
	border := lipgloss.RoundedBorder()
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BorderFocus))
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text)).Bold(true)

	label := truncate(title, width-6)
	fill := width - lipgloss.Width(label) - 5
	if fill < 0 {
		fill = 0
	}
	top := borderStyle.Render(border.TopLeft+border.Top+" ") +
		titleStyle.Render(label) +
		borderStyle.Render(" "+strings.Repeat(border.Top, fill)+border.TopRight)

	body := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 1).
		Width(width - 2).
		Height(height - 2).
		MaxHeight(height - 1).
		Render(content)

	return top + "\n" + body
}
