package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hyquery/internal/query"
)

type column struct {
	title string
	width int
}

// renderTable lays out rows in fixed-width columns. The last column takes
// the remaining width.
func (m Model) renderTable(cols []column, rows [][]string, width int) string {
	styles := m.theme.Styles()
	used := 0
	for _, c := range cols[:len(cols)-1] {
		used += c.width + 2
	}
	last := width - used
	if last < 8 {
		last = 8
	}

	cell := func(text string, w int, style lipgloss.Style) string {
		return style.Width(w).MaxWidth(w).Render(truncate(text, w))
	}

	var b strings.Builder
	for i, c := range cols {
		w := c.width
		if i == len(cols)-1 {
			w = last
		}
		b.WriteString(cell(c.title, w, styles.MutedText.Bold(true)))
		if i < len(cols)-1 {
			b.WriteString("  ")
		}
	}
	for _, r := range rows {
		b.WriteString("\n")
		for i, c := range cols {
			w := c.width
			if i == len(cols)-1 {
				w = last
			}
			b.WriteString(cell(r[i], w, styles.Text))
			if i < len(cols)-1 {
				b.WriteString("  ")
			}
		}
	}
	return b.String()
}

// renderPlayers renders the player list.
func (m Model) renderPlayers(width int) string {
	styles := m.theme.Styles()
	if m.response == nil {
		return styles.MutedText.Render("No decoded response yet.")
	}
	players := m.response.Players
	if players == nil {
		return styles.WarningText.Render("Players section not returned. Grant " + playersPermission + " to list players.")
	}
	if players.Count() == 0 {
		return styles.MutedText.Render("No players listed.")
	}

	rows := make([][]string, 0, players.Count())
	for _, p := range players.Entries {
		id := p.ID
		if p.IDGenerated {
			id += " (generated)"
		}
		rows = append(rows, []string{query.Str(p.Name, "-"), query.Str(p.World, "-"), id})
	}
	return m.renderTable([]column{{"NAME", 24}, {"WORLD", 16}, {"ID", 0}}, rows, width)
}

// renderPlugins renders the plugin list.
func (m Model) renderPlugins(width int) string {
	styles := m.theme.Styles()
	if m.response == nil {
		return styles.MutedText.Render("No decoded response yet.")
	}
	plugins := m.response.Plugins
	if plugins == nil {
		return styles.WarningText.Render("Plugins section not returned. Grant " + pluginsPermission + " to list plugins.")
	}
	if plugins.Count() == 0 {
		return styles.MutedText.Render("No plugins listed.")
	}

	rows := make([][]string, 0, plugins.Count())
	for _, p := range plugins.Entries {
		rows = append(rows, []string{
			query.Str(p.Name, "-"),
			query.Str(p.Version, "-"),
			formatOptBool(p.Loaded),
			formatOptBool(p.Enabled),
			query.Str(p.State, "-"),
		})
	}
	return m.renderTable([]column{{"NAME", 28}, {"VERSION", 14}, {"LOADED", 7}, {"ENABLED", 7}, {"STATE", 0}}, rows, width)
}

func formatOptBool(v *bool) string {
	switch {
	case v == nil:
		return "-"
	case *v:
		return "yes"
	default:
		return "no"
	}
}
