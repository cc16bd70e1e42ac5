// Package app assembles the shared services and runs one UI session, either
// on the local terminal or over an SSH channel.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"devfolio/internal/catalog"
	"devfolio/internal/config"
	"devfolio/internal/copilot"
	"devfolio/internal/github"
	"devfolio/internal/render"
	"devfolio/internal/resume"
	"devfolio/internal/ui"
)

// Services are shared by every session. Session state (tabs, theme,
// terminal log) is never stored here.
type Services struct {
	Config    config.Config
	Logger    *zap.Logger
	Assistant *copilot.Assistant
	Resume    ui.ResumeLoader
	Feed      *FeedHub
	Now       func() time.Time

	mu        sync.Mutex
	renderers map[termenv.Profile]*render.Renderer
}

// NewServices builds the services described by cfg. A Gemini client that
// cannot be created leaves the assistant unconfigured rather than failing.
func NewServices(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Services, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var completer copilot.Completer
	if cfg.Copilot.APIKey != "" {
		g, err := copilot.NewGemini(ctx, copilot.GeminiConfig{
			APIKey: cfg.Copilot.APIKey,
			Model:  cfg.Copilot.Model,
		})
		if err != nil {
			logger.Warn("copilot disabled", zap.Error(err))
		} else {
			completer = g
		}
	} else {
		logger.Info("copilot disabled, no API key configured")
	}

	client, err := github.NewClient(github.ClientConfig{Token: cfg.GitHub.Token})
	if err != nil {
		return nil, err
	}

	return &Services{
		Config:    cfg,
		Logger:    logger,
		Assistant: copilot.NewAssistant(completer, catalog.Default(), logger.Named("copilot")),
		Resume:    &resume.Loader{},
		Feed: NewFeedHub(&github.Poller{
			Fetcher:  client,
			Username: cfg.GitHub.Username,
			Interval: cfg.GitHub.Refresh,
			Logger:   logger.Named("github"),
		}),
		Now: time.Now,
	}, nil
}

// Renderer returns the content renderer for profile, creating it once.
func (s *Services) Renderer(profile termenv.Profile) *render.Renderer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.renderers == nil {
		s.renderers = map[termenv.Profile]*render.Renderer{}
	}
	r, ok := s.renderers[profile]
	if !ok {
		r = render.New(profile)
		s.renderers[profile] = r
	}
	return r
}
