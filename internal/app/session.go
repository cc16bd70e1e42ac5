package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"devfolio/internal/catalog"
	"devfolio/internal/resume"
	"devfolio/internal/terminal"
	"devfolio/internal/theme"
	"devfolio/internal/ui"
	"devfolio/internal/workspace"
)

// SessionOptions describe where a session is displayed.
type SessionOptions struct {
	ID string
	// Opener opens the resume. Defaults to the local browser.
	Opener resume.Opener
	// Links, when set, is where Opener queues URLs for the status bar.
	Links *resume.LinkQueue
	// LipGloss is the session's renderer. Defaults to the process renderer.
	LipGloss *lipgloss.Renderer
	// Resize delivers terminal size changes for outputs that are not a
	// local tty.
	Resize <-chan tea.WindowSizeMsg
	// ProgramOptions are appended to the defaults (context, alt screen).
	ProgramOptions []tea.ProgramOption
}

// NewModel builds a fresh UI with its own workspace, theme and terminal.
func (s *Services) NewModel(ctx context.Context, opts SessionOptions) *ui.AppModel {
	if opts.LipGloss == nil {
		opts.LipGloss = lipgloss.DefaultRenderer()
	}
	if opts.Opener == nil {
		opts.Opener = resume.BrowserOpener{}
	}
	logger := s.Logger
	if opts.ID != "" {
		logger = logger.With(zap.String("session", opts.ID))
	}

	files := catalog.Default()
	themes := theme.NewStore()
	term := terminal.New(terminal.Config{
		MaxLines:  s.Config.Terminal.MaxLines,
		ResumeURL: s.Config.Resume.URL,
	}, themes, opts.Opener, logger.Named("terminal"))

	return ui.NewAppModel(ui.Deps{
		Context:      ctx,
		Workspace:    workspace.NewStore(files),
		Themes:       themes,
		Terminal:     term,
		Assistant:    s.Assistant,
		ResumeLoader: s.Resume,
		ResumeURL:    s.Config.Resume.URL,
		Opener:       opts.Opener,
		Links:        opts.Links,
		GitHubUser:   s.Config.GitHub.Username,
		LipGloss:     opts.LipGloss,
		Render:       s.Renderer(opts.LipGloss.ColorProfile()),
		Logger:       logger,
		Now:          s.Now,
	})
}

// RunSession runs a UI until the visitor quits or ctx is cancelled.
// Feed snapshots are forwarded to the program as they arrive.
func (s *Services) RunSession(ctx context.Context, opts SessionOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := s.NewModel(ctx, opts)
	popts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	}, opts.ProgramOptions...)
	p := tea.NewProgram(model.AsTeaModel(), popts...)

	feed, unsubscribe := s.Feed.Subscribe()
	defer unsubscribe()
	resize := opts.Resize
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-feed:
				if !ok {
					return
				}
				p.Send(ui.FeedUpdatedMsg{Snapshot: snap})
			case size, ok := <-resize:
				if !ok {
					resize = nil
					continue
				}
				p.Send(size)
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
