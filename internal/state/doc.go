// Package state holds the most recent fetch outcome for observers.
//
// # Overview
//
// The Store is the single "current outcome" slot. The fetch orchestrator
// publishes into it after every completed fetch, and the UI reads snapshots on
// its own tick:
//
//	Producer (fetcher):            Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ RunOnce()      │            │                 │
//	│      ↓         │            │                 │
//	│ store.Publish()│───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  next poll...  │            │  render view    │
//	└────────────────┘            └─────────────────┘
//
// # Update Semantics
//
// Publish is last-write-wins. No history is kept; the previous outcome is
// simply replaced. Skipped fetches never publish.
//
// RawText is the one exception: it tracks the last body actually received, so
// a transport failure does not blank the raw view.
//
// ConsecutiveFailures counts non-OK outcomes since the last OK one, and
// IsOffline turns true after two.
//
// # Concurrency Model
//
// Publish takes the write lock; Snapshot takes the read lock and returns a
// copy with cloned headers and error. Fetch completions are already
// serialized by the single-flight guard, so the lock only protects readers.
package state
