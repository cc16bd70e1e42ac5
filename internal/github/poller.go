package github

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultRefresh is the feed refresh interval.
const DefaultRefresh = 5 * time.Minute

// Fetcher loads activity for a user. *Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, username string) ([]Activity, error)
}

// Poller refreshes the feed on an interval. A tick that arrives while a
// fetch is still running is skipped.
type Poller struct {
	Fetcher  Fetcher
	Username string
	Interval time.Duration
	Logger   *zap.Logger

	inFlight atomic.Bool
	mu       sync.Mutex
	last     []Activity
}

// Run fetches immediately and then on every tick until ctx is done. publish
// receives a loading snapshot before each fetch and the result after it.
// Run returns once every fetch it started has finished.
func (p *Poller) Run(ctx context.Context, publish func(Snapshot)) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultRefresh
	}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	refresh := func() {
		if !p.inFlight.CompareAndSwap(false, true) {
			logger.Debug("github refresh skipped, fetch in flight")
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer p.inFlight.Store(false)
			p.refresh(ctx, logger, publish)
		}()
	}

	refresh()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}

func (p *Poller) refresh(ctx context.Context, logger *zap.Logger, publish func(Snapshot)) {
	publish(Snapshot{Activities: p.snapshot(), Loading: true})
	activities, err := p.Fetcher.Fetch(ctx, p.Username)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		logger.Warn("github fetch failed", zap.String("user", p.Username), zap.Error(err))
		publish(Snapshot{Activities: p.snapshot(), Err: ErrFetchFailed})
		return
	}
	p.mu.Lock()
	p.last = activities
	p.mu.Unlock()
	publish(Snapshot{Activities: append([]Activity(nil), activities...)})
}

func (p *Poller) snapshot() []Activity {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Activity(nil), p.last...)
}
