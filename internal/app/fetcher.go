package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/five82/hyquery/internal/config"
	"github.com/five82/hyquery/internal/query"
	"github.com/five82/hyquery/internal/state"
)

const (
	ReasonManual  = "Manual Test"
	ReasonPolling = "Polling"

	bodyPreviewLimit = 1200
)

// Fetcher runs one fetch-and-publish cycle at a time. A call made while
// another is in flight is skipped, never queued.
type Fetcher struct {
	client query.Fetcher
	store  *state.Store
	logger *zap.Logger

	inFlight atomic.Bool

	mu  sync.RWMutex
	cfg config.Config
}

// NewFetcher wires a Fetcher. A nil logger discards events.
func NewFetcher(client query.Fetcher, store *state.Store, cfg config.Config, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = &state.Store{}
	}
	return &Fetcher{client: client, store: store, cfg: cfg, logger: logger}
}

// Config returns the config snapshot the next fetch will use.
func (f *Fetcher) Config() config.Config {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cfg
}

// SetConfig replaces the config read by subsequent fetches.
func (f *Fetcher) SetConfig(cfg config.Config) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg = cfg
}

// InFlight reports whether a fetch is currently running.
func (f *Fetcher) InFlight() bool {
	return f.inFlight.Load()
}

// RunOnce fetches, normalizes and decodes the endpoint response, publishes
// the outcome and returns it. ran is false when the call was skipped because
// another fetch held the in-flight flag.
func (f *Fetcher) RunOnce(ctx context.Context, reason string) (out state.Outcome, ran bool) {
	if !f.inFlight.CompareAndSwap(false, true) {
		f.logger.Debug(fmt.Sprintf("Skipped %s: request already in flight", reason), zap.String("reason", reason))
		return state.Outcome{}, false
	}
	defer f.inFlight.Store(false)

	out = f.fetch(ctx, f.Config(), reason)
	f.store.Publish(out)
	return out, true
}

func (f *Fetcher) fetch(ctx context.Context, cfg config.Config, reason string) state.Outcome {
	log := f.logger.With(zap.String("reason", reason))
	out := state.Outcome{Reason: reason, StartedAt: time.Now()}
	defer func() { out.Duration = time.Since(out.StartedAt) }()

	ep := cfg.Endpoint()
	u, err := query.BuildURL(ep)
	if err != nil {
		log.Error(reason+": bad URL (host/port/path)", zap.Error(err))
		out.Err = err
		return out
	}
	out.URL = u.String()

	log.Info(fmt.Sprintf("%s: GET %s", reason, out.URL))
	log.Debug("Accept: " + query.AcceptHeader)

	raw, err := f.client.Fetch(ctx, ep)
	if err != nil {
		log.Error(fmt.Sprintf("%s: %v", reason, err), zap.Error(err))
		out.Err = err
		return out
	}

	out.StatusCode = raw.StatusCode
	out.Header = raw.Header
	out.Bytes = len(raw.Body)
	out.HasBody = true
	log.Info(fmt.Sprintf("%s: HTTP %d (%d bytes)", reason, raw.StatusCode, len(raw.Body)),
		zap.Int("status", raw.StatusCode), zap.Int("bytes", len(raw.Body)))
	log.Debug("Response headers:\n" + formatHeaders(raw.Header))

	text, err := query.Normalize(raw.Body, raw.ContentType())
	if err != nil {
		log.Warn("Charset decode failed", zap.String("content_type", raw.ContentType()), zap.Error(err))
	}
	out.RawText = text

	resp, err := query.Decode(text)
	if err != nil {
		log.Warn("Decode failed: "+err.Error(), zap.Error(err))
		out.Err = err
	} else {
		out.Response = resp
	}

	log.Debug("Body preview:\n" + preview(text, bodyPreviewLimit))

	if raw.StatusCode < 200 || raw.StatusCode > 299 {
		herr := &query.HTTPError{StatusCode: raw.StatusCode}
		if hint := herr.Hint(); hint != "" {
			log.Warn(fmt.Sprintf("HTTP %d: %s", raw.StatusCode, hint), zap.Int("status", raw.StatusCode))
		}
		if out.Err != nil {
			out.Err = errors.Join(herr, out.Err)
		} else {
			out.Err = herr
		}
	}
	return out
}

// formatHeaders renders headers as "Key: value" lines sorted case-insensitively.
func formatHeaders(h http.Header) string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return strings.ToLower(keys[i]) < strings.ToLower(keys[j]) })

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+strings.Join(h[k], ", "))
	}
	return strings.Join(lines, "\n")
}

func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "\n…(truncated)…"
}
