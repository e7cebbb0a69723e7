package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/hyquery/internal/config"
	"github.com/five82/hyquery/internal/eventlog"
	"github.com/five82/hyquery/internal/prefs"
	"github.com/five82/hyquery/internal/query"
	"github.com/five82/hyquery/internal/state"
	"github.com/five82/hyquery/internal/ui"
)

const eventBufferSize = 1000

// Options configure the hyquery application.
type Options struct {
	ConfigPath string    // empty uses default ~/.config/hyquery/config.toml
	PollEvery  int       // seconds; non-zero enables polling at this interval
	Once       bool      // fetch once, print the outcome and exit
	Stdout     io.Writer // output for Once; nil uses os.Stdout
}

// Run boots hyquery until the context is cancelled or the UI exits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollingEnabled = true
		cfg.PollingInterval = time.Duration(opts.PollEvery) * time.Second
	}

	events := eventlog.New(eventBufferSize)
	logger := newLogger(events, opts.Once)
	defer func() { _ = logger.Sync() }()

	store := &state.Store{}
	fetcher := NewFetcher(query.NewClient(), store, cfg, logger)

	if opts.Once {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		return runOnce(ctx, fetcher, out)
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	poller := NewPoller(fetcher, logger)
	ctrl := NewController(ctx, fetcher, poller, configPath, logger)
	defer ctrl.Shutdown()

	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: ctrl,
		Store:      store,
		Events:     events,
		PrefsPath:  prefs.DefaultPath(),
	})
}

// onceResult is the JSON document printed by Once mode.
type onceResult struct {
	Reason   string          `json:"reason"`
	URL      string          `json:"url,omitempty"`
	Status   int             `json:"status,omitempty"`
	Class    string          `json:"class"`
	Error    string          `json:"error,omitempty"`
	Duration string          `json:"duration"`
	Response *query.Response `json:"response,omitempty"`
	RawText  string          `json:"raw,omitempty"`
}

func runOnce(ctx context.Context, fetcher *Fetcher, w io.Writer) error {
	out, _ := fetcher.RunOnce(ctx, ReasonManual)

	result := onceResult{
		Reason:   out.Reason,
		URL:      out.URL,
		Status:   out.StatusCode,
		Class:    out.Class(),
		Duration: out.Duration.Round(time.Millisecond).String(),
		Response: out.Response,
	}
	if out.Err != nil {
		result.Error = out.Err.Error()
		if out.Response == nil {
			result.RawText = out.RawText
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if !out.OK() {
		return fmt.Errorf("fetch failed: %s", out.Class())
	}
	return nil
}

// newLogger records every event into the buffer. With console set, info and
// above are also written to stderr.
func newLogger(events *eventlog.Buffer, console bool) *zap.Logger {
	cores := []zapcore.Core{events.Core(zapcore.DebugLevel)}
	if console {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.Lock(os.Stderr),
			zapcore.InfoLevel,
		))
	}
	return zap.New(zapcore.NewTee(cores...))
}
