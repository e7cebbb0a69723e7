package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hyquery/internal/query"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < 100

	parts := []string{bg.Render("hyquery", styles.Logo)}

	if u, err := query.BuildURL(m.cfg.Endpoint()); err == nil {
		target := u.Host
		if !compact {
			target = u.String()
		}
		parts = append(parts, bg.Render(target, styles.AccentText))
	} else {
		parts = append(parts, bg.Render("invalid endpoint", styles.DangerText))
	}

	parts = append(parts, m.statusBadge(styles))

	if m.polling {
		parts = append(parts,
			bg.Render("●", styles.SuccessText)+bg.Space()+
				bg.Render("every "+formatInterval(m.interval), styles.Text))
	} else {
		parts = append(parts,
			bg.Render("○", styles.MutedText)+bg.Space()+
				bg.Render("polling off", styles.MutedText))
	}

	if m.fetching {
		parts = append(parts, bg.Render("fetching...", styles.WarningText))
	}

	if ts := m.formatUpdated(time.Now()); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if m.notice != "" {
		parts = append(parts,
			bg.Render("!", styles.WarningText.Bold(true))+bg.Space()+
				bg.Render(truncate(m.notice, 60), styles.WarningText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// statusBadge renders the latest outcome class.
func (m Model) statusBadge(styles Styles) string {
	class := "idle"
	switch {
	case !m.snapshot.HasOutcome:
	case m.snapshot.IsOffline():
		class = "offline"
	default:
		class = m.snapshot.Outcome.Class()
	}
	label := strings.ToUpper(class)
	if class == "http status" {
		label = fmt.Sprintf("HTTP %d", m.snapshot.Outcome.StatusCode)
	}
	return styles.ClassStyle(class).Render(label)
}

// formatUpdated returns "updated 15:04:05 (3s ago)" or "" before any fetch.
func (m Model) formatUpdated(now time.Time) string {
	if !m.snapshot.HasOutcome || m.snapshot.LastUpdated.IsZero() {
		return ""
	}
	ts := m.snapshot.LastUpdated
	ago := now.Sub(ts).Round(time.Second)
	if ago < time.Second {
		return "updated " + ts.Format("15:04:05")
	}
	return fmt.Sprintf("updated %s (%s ago)", ts.Format("15:04:05"), ago)
}

// renderCommandBar renders the key hints below the content box.
func (m Model) renderCommandBar() string {
	bindings := m.keys.ShortHelp()
	if m.view == ViewLogs {
		bindings = append([]key.Binding{m.keys.ToggleFollow, m.keys.ClearLogs}, bindings...)
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(0, 1).
		Width(m.width).
		Render(m.help.ShortHelpView(bindings))
}

// formatInterval renders a polling interval as "5s" or "1m".
func formatInterval(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d%time.Minute == 0 {
		return fmt.Sprintf("%dm", int(d/time.Minute))
	}
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", int(d/time.Second))
	}
	return d.String()
}
