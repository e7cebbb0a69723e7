package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/hyquery/internal/config"
	"github.com/five82/hyquery/internal/state"
)

// Controller exposes the operator actions: manual fetch, polling toggle and
// interval changes. It keeps the Fetcher's config and the Poller in step.
type Controller struct {
	ctx        context.Context
	fetcher    *Fetcher
	poller     *Poller
	configPath string // empty disables persisting changes
	logger     *zap.Logger
}

// NewController wires a Controller. Polling is started when cfg enables it.
func NewController(ctx context.Context, fetcher *Fetcher, poller *Poller, configPath string, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{ctx: ctx, fetcher: fetcher, poller: poller, configPath: configPath, logger: logger}
	if cfg := fetcher.Config(); cfg.PollingEnabled {
		poller.Start(ctx, cfg.PollingInterval)
	}
	return c
}

// FetchNow runs a manual fetch. It blocks until the fetch completes or is
// skipped.
func (c *Controller) FetchNow() (state.Outcome, bool) {
	return c.fetcher.RunOnce(c.ctx, ReasonManual)
}

// Config returns the current config.
func (c *Controller) Config() config.Config {
	return c.fetcher.Config()
}

// Polling reports whether polling is active and at which interval.
func (c *Controller) Polling() (bool, time.Duration) {
	return c.poller.Running()
}

// SetPolling starts or stops polling.
func (c *Controller) SetPolling(enabled bool) {
	cfg := c.fetcher.Config()
	cfg.PollingEnabled = enabled
	c.fetcher.SetConfig(cfg)
	if enabled {
		c.poller.Start(c.ctx, cfg.PollingInterval)
	} else {
		c.poller.Stop()
	}
	c.persist(cfg)
}

// TogglePolling flips the polling state.
func (c *Controller) TogglePolling() {
	running, _ := c.poller.Running()
	c.SetPolling(!running)
}

// StepInterval moves the polling interval to the neighbouring preset and
// restarts a running session so the change applies immediately.
func (c *Controller) StepInterval(dir int) time.Duration {
	cfg := c.fetcher.Config()
	next := config.StepInterval(cfg.PollingInterval, dir)
	if next == cfg.PollingInterval {
		return next
	}
	cfg.PollingInterval = next
	c.fetcher.SetConfig(cfg)
	if running, _ := c.poller.Running(); running {
		c.poller.Start(c.ctx, next)
	}
	c.persist(cfg)
	return next
}

// Shutdown stops polling.
func (c *Controller) Shutdown() {
	c.poller.Stop()
}

func (c *Controller) persist(cfg config.Config) {
	if c.configPath == "" {
		return
	}
	if err := config.Save(c.configPath, cfg); err != nil {
		c.logger.Warn("Saving config failed", zap.String("path", c.configPath), zap.Error(err))
	}
}
