package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/hyquery/internal/query"
)

const (
	playersPermission = "nitrado.query.web.read.players"
	pluginsPermission = "nitrado.query.web.read.plugins"
)

// renderDashboard renders the summary page.
func (m Model) renderDashboard() string {
	styles := m.theme.Styles()
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%-16s", label)))
		b.WriteString(styles.Text.Render(value))
		b.WriteString("\n")
	}
	heading := func(title string) {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render(title))
		b.WriteString("\n")
	}
	hint := func(text string) {
		b.WriteString(styles.WarningText.Render("  " + text))
		b.WriteString("\n")
	}

	if u, err := query.BuildURL(m.cfg.Endpoint()); err == nil {
		row("Endpoint", u.String())
	} else {
		row("Endpoint", err.Error())
	}
	if m.polling {
		row("Polling", "every "+formatInterval(m.interval))
	} else {
		row("Polling", "off ("+formatInterval(m.interval)+" when enabled)")
	}

	snap := m.snapshot
	if !snap.HasOutcome {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("No fetch yet. Press r to fetch now or p to start polling."))
		b.WriteString("\n")
		return b.String()
	}

	out := snap.Outcome
	row("Last update", snap.LastUpdated.Format("15:04:05")+" ("+out.Reason+")")
	row("Result", describeOutcome(out.Class(), out.StatusCode, out.Bytes, out.Duration))
	if out.Err != nil {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%-16s", "Error")))
		b.WriteString(styles.DangerText.Render(out.Err.Error()))
		b.WriteString("\n")
	}
	if snap.IsOffline() {
		hint(fmt.Sprintf("Endpoint offline: %d consecutive failures", snap.ConsecutiveFailures))
	}

	resp := m.response
	if resp == nil {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("No decoded response yet. The Raw view shows the last body received."))
		b.WriteString("\n")
		return b.String()
	}
	if out.Response == nil {
		hint("Showing the last decoded response; the latest fetch did not decode.")
	}

	heading("Server")
	if s := resp.Server; s != nil {
		row("Name", query.Str(s.Name, "-"))
		version := query.Str(s.Version, "-")
		if s.Revision != nil {
			version += " (rev " + *s.Revision + ")"
		}
		row("Version", version)
		row("Patchline", query.Str(s.Patchline, "-"))
		if s.ProtocolVersion != nil {
			row("Protocol", fmt.Sprintf("%d %s", *s.ProtocolVersion, query.Str(s.ProtocolHash, "")))
		}
	} else {
		hint("Server section not returned")
	}

	heading("Universe")
	if u := resp.Universe; u != nil {
		row("Online", formatOnline(u.CurrentPlayers, maxPlayers(resp)))
		row("Default world", query.Str(u.DefaultWorld, "-"))
	} else {
		row("Max players", formatOptInt(maxPlayers(resp)))
	}

	heading("Sections")
	if resp.Players != nil {
		row("Players listed", fmt.Sprintf("%d", resp.Players.Count()))
	} else {
		row("Players listed", "-")
		hint("Players section missing: grant " + playersPermission)
	}
	if resp.Plugins != nil {
		row("Plugins listed", fmt.Sprintf("%d", resp.Plugins.Count()))
	} else {
		row("Plugins listed", "-")
		hint("Plugins section missing: grant " + pluginsPermission)
	}

	return b.String()
}

func describeOutcome(class string, status, bytes int, d time.Duration) string {
	parts := []string{class}
	if status != 0 {
		parts = append(parts, fmt.Sprintf("HTTP %d", status))
	}
	if bytes > 0 {
		parts = append(parts, fmt.Sprintf("%d bytes", bytes))
	}
	if d > 0 {
		parts = append(parts, d.Round(time.Millisecond).String())
	}
	return strings.Join(parts, " · ")
}

func maxPlayers(resp *query.Response) *int {
	if resp == nil || resp.Server == nil {
		return nil
	}
	return resp.Server.MaxPlayers
}

func formatOptInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func formatOnline(current, limit *int) string {
	return formatOptInt(current) + " / " + formatOptInt(limit)
}
