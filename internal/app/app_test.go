package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"devfolio/internal/catalog"
	"devfolio/internal/config"
	"devfolio/internal/github"
	"devfolio/internal/resume"
	"devfolio/internal/theme"
	"devfolio/internal/ui"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, username string) ([]github.Activity, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if username == "broken" {
		return nil, errors.New("boom")
	}
	return []github.Activity{{Kind: github.KindRepo, Name: username + "/site"}}, nil
}

func testServices(t *testing.T) *Services {
	t.Helper()
	cfg, err := config.DefaultConfig()
	require.NoError(t, err)
	cfg.Resume.URL = "https://example.com/cv.pdf"
	return &Services{
		Config: cfg,
		Logger: zap.NewNop(),
		Feed:   NewFeedHub(nil),
		Now:    time.Now,
	}
}

func asciiRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

func TestFeedHub_SubscribePrimedWithLatest(t *testing.T) {
	h := NewFeedHub(nil)
	h.Publish(github.Snapshot{Loading: true})
	h.Publish(github.Snapshot{Err: github.ErrFetchFailed})

	ch, cancel := h.Subscribe()
	defer cancel()
	select {
	case s := <-ch:
		assert.Equal(t, github.ErrFetchFailed, s.Err)
	default:
		t.Fatal("expected primed snapshot")
	}
}

func TestFeedHub_NewestReplacesUnread(t *testing.T) {
	h := NewFeedHub(nil)
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Publish(github.Snapshot{Loading: true})
	h.Publish(github.Snapshot{Activities: []github.Activity{{Kind: github.KindRepo, Name: "a/b"}}})

	s := <-ch
	assert.False(t, s.Loading)
	require.Len(t, s.Activities, 1)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected second snapshot %+v", extra)
	default:
	}
}

func TestFeedHub_CancelClosesChannel(t *testing.T) {
	h := NewFeedHub(nil)
	ch, cancel := h.Subscribe()
	assert.Equal(t, 1, h.Subscribers())
	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, h.Subscribers())
	h.Publish(github.Snapshot{})
}

func TestFeedHub_RunPublishesFromPoller(t *testing.T) {
	f := &fakeFetcher{}
	h := NewFeedHub(&github.Poller{Fetcher: f, Username: "octocat", Interval: time.Hour})
	ch, cancel := h.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		select {
		case s := <-ch:
			return !s.Loading && len(s.Activities) == 1
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
	stop()
	<-done
}

func TestFeedHub_RunWithoutPollerWaits(t *testing.T) {
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewFeedHub(nil).Run(ctx)
		close(done)
	}()
	stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRenderer_CachedPerProfile(t *testing.T) {
	s := testServices(t)
	a := s.Renderer(termenv.Ascii)
	assert.Same(t, a, s.Renderer(termenv.Ascii))
	assert.NotSame(t, a, s.Renderer(termenv.TrueColor))
}

func TestNewModel_SessionsAreIndependent(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()
	one := s.NewModel(ctx, SessionOptions{ID: "one", LipGloss: asciiRenderer(), Opener: &resume.LinkQueue{}})
	two := s.NewModel(ctx, SessionOptions{ID: "two", LipGloss: asciiRenderer(), Opener: &resume.LinkQueue{}})

	m := one.AsTeaModel()
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	m.Update(ui.ThemeSelectedMsg{Mode: theme.ModeCyberpunk})
	m.Update(ui.OpenFileMsg{Name: catalog.ContactFile})

	assert.Equal(t, theme.ModeCyberpunk, one.Styles().Theme.ID)
	assert.Equal(t, theme.ModeDark, two.Styles().Theme.ID)
	active, ok := one.Workspace().Active()
	require.True(t, ok)
	assert.Equal(t, catalog.ContactFile, active.File.Name)
	active, ok = two.Workspace().Active()
	require.True(t, ok)
	assert.Equal(t, catalog.HomeFile, active.File.Name)
}

func TestNewServices_NoAPIKeyLeavesAssistantUnconfigured(t *testing.T) {
	cfg, err := config.DefaultConfig()
	require.NoError(t, err)
	cfg.Copilot.APIKey = ""

	s, err := NewServices(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.False(t, s.Assistant.Configured())
	assert.NotNil(t, s.Feed)
	assert.NotNil(t, s.Resume)
}

func TestRunSession_QuitKey(t *testing.T) {
	s := testServices(t)
	s.Feed.Publish(github.Snapshot{Loading: true})

	done := make(chan error, 1)
	go func() {
		done <- s.RunSession(context.Background(), SessionOptions{
			LipGloss: asciiRenderer(),
			Opener:   &resume.LinkQueue{},
			ProgramOptions: []tea.ProgramOption{
				tea.WithInput(strings.NewReader("q")),
				tea.WithOutput(io.Discard),
				tea.WithoutSignalHandler(),
			},
		})
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not quit")
	}
	assert.Equal(t, 0, s.Feed.Subscribers())
}

func TestRunSession_ContextCancelIsClean(t *testing.T) {
	s := testServices(t)
	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()
	defer pw.Close()

	done := make(chan error, 1)
	go func() {
		done <- s.RunSession(ctx, SessionOptions{
			LipGloss: asciiRenderer(),
			Opener:   &resume.LinkQueue{},
			ProgramOptions: []tea.ProgramOption{
				tea.WithInput(pr),
				tea.WithOutput(io.Discard),
				tea.WithoutSignalHandler(),
			},
		})
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop")
	}
}
