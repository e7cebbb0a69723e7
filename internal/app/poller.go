package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/hyquery/internal/state"
)

const defaultPollInterval = 5 * time.Second

type runner interface {
	RunOnce(ctx context.Context, reason string) (state.Outcome, bool)
}

// Poller drives a runner on a fixed interval. At most one polling session
// exists at a time.
type Poller struct {
	run    runner
	logger *zap.Logger

	mu      sync.Mutex
	session *pollSession
}

type pollSession struct {
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewPoller creates a stopped Poller.
func NewPoller(run runner, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{run: run, logger: logger}
}

// Start begins polling at interval, cancelling any running session first.
// The first fetch happens immediately. Fetches use ctx, so a fetch in flight
// when the session is cancelled still runs to completion.
func (p *Poller) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session != nil {
		p.session.cancel()
		p.session = nil
	}

	sessCtx, cancel := context.WithCancel(ctx)
	s := &pollSession{interval: interval, cancel: cancel, done: make(chan struct{})}
	p.session = s

	p.logger.Info("Polling started: every "+interval.String(), zap.Duration("interval", interval))
	go p.loop(ctx, sessCtx, s)
}

// Stop cancels the running session. It is a no-op when stopped.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return
	}
	p.session.cancel()
	p.session = nil
	p.logger.Info("Polling stopped")
}

// Running reports whether a session is active and its interval.
func (p *Poller) Running() (bool, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return false, 0
	}
	select {
	case <-p.session.done:
		return false, 0
	default:
		return true, p.session.interval
	}
}

func (p *Poller) loop(fetchCtx, sessCtx context.Context, s *pollSession) {
	defer close(s.done)

	for {
		select {
		case <-sessCtx.Done():
			return
		default:
		}

		p.run.RunOnce(fetchCtx, ReasonPolling)

		timer := time.NewTimer(s.interval)
		select {
		case <-sessCtx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
