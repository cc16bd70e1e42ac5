package ui

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"devfolio/internal/catalog"
	"devfolio/internal/copilot"
	"devfolio/internal/render"
	"devfolio/internal/resume"
	"devfolio/internal/theme"
	"devfolio/internal/workspace"
)

const testResumeURL = "https://example.com/resume.pdf"

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type stubCompleter struct {
	reply string
	calls int
}

func (s *stubCompleter) Complete(_ context.Context, _ []copilot.Turn) (string, error) {
	s.calls++
	return s.reply, nil
}

type stubLoader struct {
	doc   *resume.Document
	err   error
	calls int
}

func (l *stubLoader) Load(_ context.Context, _ string) (*resume.Document, error) {
	l.calls++
	return l.doc, l.err
}

func asciiRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

func testStyles() *Styles {
	_, t := theme.NewStore().Current()
	s := NewStyles(asciiRenderer(), t)
	return &s
}

type testEnv struct {
	app       *AppModel
	adapter   *appModelAdapter
	store     *workspace.Store
	themes    *theme.Store
	links     *resume.LinkQueue
	loader    *stubLoader
	completer *stubCompleter
}

func newTestEnv(t *testing.T, configure ...func(*Deps)) *testEnv {
	t.Helper()
	env := &testEnv{
		store:     workspace.NewStore(catalog.Default()),
		themes:    theme.NewStore(),
		links:     &resume.LinkQueue{},
		loader:    &stubLoader{doc: &resume.Document{URL: testResumeURL, Pages: []string{"John Doe\nSenior Engineer", "References on request"}}},
		completer: &stubCompleter{reply: "I build **things**."},
	}
	d := Deps{
		Workspace:    env.store,
		Themes:       env.themes,
		Assistant:    copilot.NewAssistant(env.completer, catalog.Default(), nil),
		ResumeLoader: env.loader,
		ResumeURL:    testResumeURL,
		Opener:       env.links,
		Links:        env.links,
		GitHubUser:   "johndoe",
		LipGloss:     asciiRenderer(),
		Render:       render.New(termenv.Ascii),
		Now:          func() time.Time { return testNow },
	}
	for _, c := range configure {
		c(&d)
	}
	env.app = NewAppModel(d)
	env.adapter = env.app.AsTeaModel().(*appModelAdapter)
	env.send(tea.WindowSizeMsg{Width: 160, Height: 40})
	return env
}

// send delivers msg and returns the resulting command without running it.
func (e *testEnv) send(msg tea.Msg) tea.Cmd {
	_, cmd := e.adapter.Update(msg)
	return cmd
}

func (e *testEnv) press(key string) tea.Cmd {
	return e.send(keyMsg(key))
}

// follow runs cmd (which must return immediately) and delivers its
// message, or every message of a batch. It returns the last resulting
// command.
func (e *testEnv) follow(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return e.send(msg)
	}
	var next tea.Cmd
	for _, c := range batch {
		if c != nil {
			next = e.send(c())
		}
	}
	return next
}
