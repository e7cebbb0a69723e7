// Package app provides the orchestration layer for hyquery.
//
// # Overview
//
// This package wires configuration, the query client, the shared
// state.Store, the event buffer and the UI together. It also owns the two
// pieces of fetch scheduling: the single-flight Fetcher and the Poller.
//
// # Components
//
//   - app.go: Run, the composition root, and the -once JSON mode
//   - fetcher.go: one fetch cycle (build URL, GET, normalize, decode,
//     publish) guarded by an in-flight flag
//   - poller.go: restartable polling sessions driving the Fetcher
//   - controller.go: operator actions (manual fetch, toggle, interval
//     step) and persisting the config after a change
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        Read TOML/YAML config
//	       ├─────> eventlog.New()       Event buffer behind the zap logger
//	       ├─────> NewFetcher()         query.Client + state.Store
//	       ├─────> NewPoller()          Started when polling is enabled
//	       └─────> ui.Run()             TUI (blocks)
//
//	Fetch cycle (manual or polling):
//	┌─────────────────────────────────────────┐
//	│ RunOnce(reason)                         │
//	│  ├─> skip if another fetch in flight    │
//	│  ├─> query.BuildURL / Client.Fetch      │
//	│  ├─> query.Normalize (charset)          │
//	│  ├─> query.Decode (tolerant JSON)       │
//	│  └─> store.Publish(outcome)             │
//	└─────────────────────────────────────────┘
//
// # Single Flight
//
// Fetcher.RunOnce claims an atomic flag before doing any work and releases
// it on every return path. A call that finds the flag set logs a debug
// "Skipped" event and returns immediately; it is never queued. Manual and
// polling fetches share the same Fetcher, so at most one request is ever in
// flight and writes to the store are serialized.
//
// # Polling Sessions
//
// Poller.Start cancels any running session and starts a new one that fetches
// immediately and then waits the interval between cycles. Stopping or
// restarting cancels the wait, not the fetch: a request already in flight
// completes and publishes its outcome. Stop on a stopped poller does nothing
// and logs nothing.
//
// # Once Mode
//
// With Options.Once the app performs a single manual fetch, prints the
// outcome as indented JSON and returns an error when the fetch did not fully
// succeed. Log events go to stderr as well as the buffer.
package app
