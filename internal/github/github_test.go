package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const eventsJSON = `[
  {"type":"PushEvent","repo":{"name":"johndoe/site"},"created_at":"2024-05-03T10:00:00Z","payload":{}},
  {"type":"CreateEvent","repo":{"name":"johndoe/cli"},"created_at":"2024-05-01T10:00:00Z","payload":{"ref_type":"branch"}},
  {"type":"WatchEvent","repo":{"name":"other/lib"},"created_at":"2024-04-20T10:00:00Z","payload":{}}
]`

const reposJSON = `[
  {"name":"site","description":"Personal site","html_url":"https://github.com/johndoe/site","stargazers_count":12,"forks_count":3,"updated_at":"2024-05-02T10:00:00Z"}
]`

func newGitHubServer(t *testing.T, eventsStatus int) (*httptest.Server, *queryRecorder) {
	t.Helper()
	seen := &queryRecorder{}
	mux := http.NewServeMux()
	mux.HandleFunc("/users/johndoe/events/public", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(eventsStatus)
		if eventsStatus == http.StatusOK {
			fmt.Fprint(w, eventsJSON)
		}
	})
	mux.HandleFunc("/users/johndoe/repos", func(w http.ResponseWriter, r *http.Request) {
		seen.set(r.URL.RawQuery)
		fmt.Fprint(w, reposJSON)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, seen
}

type queryRecorder struct {
	mu    sync.Mutex
	query string
}

func (u *queryRecorder) set(q string) {
	u.mu.Lock()
	u.query = q
	u.mu.Unlock()
}

func (u *queryRecorder) get() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.query
}

func TestClient_FetchMergesAndSorts(t *testing.T) {
	srv, seen := newGitHubServer(t, http.StatusOK)
	c, err := NewClient(ClientConfig{BaseURL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	got, err := c.Fetch(context.Background(), "johndoe")
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "Pushed to johndoe/site", got[0].Describe())
	assert.Equal(t, KindRepo, got[1].Kind)
	assert.Equal(t, "site: Personal site  ★ 12  ⑂ 3", got[1].Describe())
	assert.Equal(t, "Created branch in johndoe/cli", got[2].Describe())
	assert.Equal(t, "Activity in other/lib", got[3].Describe())

	assert.Contains(t, seen.get(), "sort=updated")
	assert.Contains(t, seen.get(), "per_page=5")
}

func TestClient_FetchFailure(t *testing.T) {
	srv, _ := newGitHubServer(t, http.StatusInternalServerError)
	c, err := NewClient(ClientConfig{BaseURL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), "johndoe")
	assert.Error(t, err)
}

func TestActivity_URLAndAgo(t *testing.T) {
	now := time.Date(2024, 5, 3, 13, 0, 0, 0, time.UTC)
	ev := Activity{Kind: KindEvent, RepoName: "a/b", CreatedAt: now.Add(-3 * time.Hour)}
	assert.Equal(t, "https://github.com/a/b", ev.URL())
	assert.Equal(t, "3 hours ago", ev.Ago(now))

	repo := Activity{Kind: KindRepo, HTMLURL: "https://github.com/a/c", UpdatedAt: now}
	assert.Equal(t, "https://github.com/a/c", repo.URL())
	assert.Equal(t, now, repo.When())
}

type fakeFetcher struct {
	calls   atomic.Int32
	block   chan struct{}
	err     error
	results []Activity
}

func (f *fakeFetcher) Fetch(ctx context.Context, _ string) ([]Activity, error) {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.results, f.err
}

type collector struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (c *collector) publish(s Snapshot) {
	c.mu.Lock()
	c.snaps = append(c.snaps, s)
	c.mu.Unlock()
}

func (c *collector) all() []Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Snapshot(nil), c.snaps...)
}

func TestPoller_PublishesLoadingThenResult(t *testing.T) {
	f := &fakeFetcher{results: []Activity{{Kind: KindEvent, Type: "PushEvent", RepoName: "a/b"}}}
	p := &Poller{Fetcher: f, Username: "johndoe", Interval: time.Hour}
	c := &collector{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, c.publish)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(c.all()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	snaps := c.all()
	assert.True(t, snaps[0].Loading)
	assert.False(t, snaps[1].Loading)
	assert.Len(t, snaps[1].Activities, 1)
	assert.Empty(t, snaps[1].Err)
}

func TestPoller_ErrorKeepsPreviousActivities(t *testing.T) {
	f := &fakeFetcher{err: errors.New("rate limited")}
	p := &Poller{Fetcher: f, Username: "johndoe", Interval: time.Hour}
	p.last = []Activity{{Kind: KindRepo, Name: "kept"}}
	c := &collector{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, c.publish)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(c.all()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	last := c.all()[1]
	assert.Equal(t, ErrFetchFailed, last.Err)
	require.Len(t, last.Activities, 1)
	assert.Equal(t, "kept", last.Activities[0].Name)
}

func TestPoller_SkipsTicksWhileInFlight(t *testing.T) {
	f := &fakeFetcher{block: make(chan struct{})}
	p := &Poller{Fetcher: f, Username: "johndoe", Interval: 5 * time.Millisecond}
	c := &collector{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, c.publish)
		close(done)
	}()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), f.calls.Load(), "ticks during a fetch must not start another")

	close(f.block)
	require.Eventually(t, func() bool { return f.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
