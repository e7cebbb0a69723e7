// Package ui provides the terminal user interface for hyquery.
//
// # Overview
//
// The UI is a Bubble Tea program that observes fetch outcomes. It never
// talks to the endpoint itself: it reads state.Store snapshots on a tick,
// renders the eventlog.Buffer, and forwards operator actions to a
// Controller (manual fetch, polling toggle, interval step).
//
// # Views
//
//   - Dashboard: endpoint, polling state, last result and a summary of the
//     decoded sections, with permission hints when Players or Plugins are
//     missing
//   - Players / Plugins: tables of the decoded entries
//   - Raw: the last normalized body received, kept across transport failures
//   - Logs: buffered diagnostic events with follow mode
//
// The dashboard and tables keep showing the last decoded response when a
// later fetch fails; the header badge always reflects the latest outcome.
//
// # Files
//
//   - app.go: Model, Update loop, messages and Run
//   - header.go: status bar and command bar
//   - dashboard.go, sections.go, logs.go: page rendering
//   - box.go: titled border used around the active page
//   - keys.go, help.go: key map and help overlay (bubbles/key, bubbles/help)
//   - theme.go, style_helpers.go: lipgloss themes and background helpers
package ui
