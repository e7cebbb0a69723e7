package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"

	"github.com/five82/hyquery/internal/eventlog"
)

// renderRaw renders the last normalized body received.
func (m Model) renderRaw() string {
	if m.snapshot.RawText == "" {
		return m.theme.Styles().MutedText.Render("No body received yet.")
	}
	return m.snapshot.RawText
}

// renderLogs renders buffered events, oldest first.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	if m.events == nil || m.events.Len() == 0 {
		return styles.MutedText.Render("No log entries")
	}

	entries := m.events.Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, m.formatEntry(e, styles))
	}
	return strings.Join(lines, "\n")
}

// formatEntry colors the timestamp and level of one event. Multi-line
// messages (headers, body preview) are indented under the first line.
func (m Model) formatEntry(e eventlog.Entry, styles Styles) string {
	msg := strings.ReplaceAll(e.Message, "\n", "\n             ")
	return styles.FaintText.Render(e.Time.Format("15:04:05")) + " " +
		levelStyle(e.Level, styles).Bold(true).Render(padLevel(e.Level)) + " " +
		styles.Text.Render(msg)
}

func padLevel(l zapcore.Level) string {
	s := l.CapitalString()
	if len(s) < 5 {
		s += strings.Repeat(" ", 5-len(s))
	}
	return s
}

func levelStyle(l zapcore.Level, styles Styles) lipgloss.Style {
	switch {
	case l >= zapcore.ErrorLevel:
		return styles.DangerText
	case l == zapcore.WarnLevel:
		return styles.WarningText
	case l == zapcore.InfoLevel:
		return styles.SuccessText
	default:
		return styles.InfoText
	}
}
