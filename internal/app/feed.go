package app

import (
	"context"
	"sync"

	"devfolio/internal/github"
)

// FeedHub runs one poller and fans its snapshots out to every session.
// Each subscriber holds at most one pending snapshot; a newer snapshot
// replaces an unread one.
type FeedHub struct {
	poller *github.Poller

	mu     sync.Mutex
	last   *github.Snapshot
	subs   map[int]chan github.Snapshot
	nextID int
}

// NewFeedHub wraps poller. A nil poller yields a hub that never publishes.
func NewFeedHub(poller *github.Poller) *FeedHub {
	return &FeedHub{poller: poller, subs: map[int]chan github.Snapshot{}}
}

// Run polls until ctx is done.
func (h *FeedHub) Run(ctx context.Context) {
	if h.poller == nil || h.poller.Fetcher == nil {
		<-ctx.Done()
		return
	}
	h.poller.Run(ctx, h.Publish)
}

// Subscribe returns a channel of snapshots, primed with the latest one, and
// a cancel func that closes it.
func (h *FeedHub) Subscribe() (<-chan github.Snapshot, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan github.Snapshot, 1)
	if h.last != nil {
		ch <- *h.last
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish records s and offers it to every subscriber without blocking.
func (h *FeedHub) Publish(s github.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &s
	for _, ch := range h.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
}

// Subscribers reports the number of live subscriptions.
func (h *FeedHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
