// Package config loads and saves the query endpoint configuration.
//
// # Overview
//
// A Config names one server endpoint (host, port, path, HTTPS flag), the
// request timeout, and the polling settings. Callers read a Config snapshot
// per fetch; the fetch path never holds on to one.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/hyquery/config.toml (default)
//  3. If the file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - host: 192.168.0.203
//   - port: 5523
//   - path: /Nitrado/Query
//   - use_https: true
//   - timeout_seconds: 5
//   - polling_enabled: false
//   - polling_interval_seconds: 5
//
// # File Formats
//
// TOML is the default. Paths ending in .yaml or .yml are read and written as
// YAML with the same keys:
//
//	host = "nuctax.local"
//	port = 5523
//	path = "/Nitrado/Query"
//	use_https = true
//	timeout_seconds = 5
//	polling_enabled = true
//	polling_interval_seconds = 10
//
// # Saving
//
// Save writes the full config back, creating parent directories. The TUI
// uses it to persist interval changes made with +/-.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML or YAML parsing errors ("parse config: ...")
//
// Endpoint values are not validated here. query.BuildURL rejects malformed
// endpoints per fetch, so a bad host only fails that fetch.
package config
