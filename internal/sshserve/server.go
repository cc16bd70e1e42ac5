// Package sshserve serves the portfolio UI to SSH visitors, one independent
// session per connection.
package sshserve

import (
	"context"
	"io"
	"net"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	gliderssh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"devfolio/internal/app"
	"devfolio/internal/resume"
)

// SessionRunner runs one UI. *app.Services implements it.
type SessionRunner interface {
	RunSession(ctx context.Context, opts app.SessionOptions) error
}

// Server exposes the UI over SSH. Visitors are not authenticated.
type Server struct {
	Addr        string
	HostKeyPath string
	Listener    net.Listener
	Sessions    SessionRunner
	Logger      *zap.Logger
	IdleTimeout time.Duration
}

// ListenAndServe starts the SSH server and shuts down on context
// cancellation.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	signer, err := EnsureHostKey(s.HostKeyPath)
	if err != nil {
		return err
	}

	server := &gliderssh.Server{
		Addr:        s.Addr,
		Handler:     s.handleSession,
		IdleTimeout: s.IdleTimeout,
	}
	server.AddHostKey(signer)

	errCh := make(chan error, 1)
	go func() {
		if s.Listener != nil {
			errCh <- server.Serve(s.Listener)
			return
		}
		errCh <- server.ListenAndServe()
	}()
	s.Logger.Info("ssh server listening", zap.String("addr", s.addr()))

	select {
	case <-ctx.Done():
		_ = server.Close()
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) addr() string {
	if s.Listener != nil {
		return s.Listener.Addr().String()
	}
	return s.Addr
}

func (s *Server) handleSession(sess gliderssh.Session) {
	log := s.Logger.With(
		zap.String("session", uuid.NewString()),
		zap.String("remote", sess.RemoteAddr().String()),
		zap.String("user", sess.User()),
	)

	pty, winCh, ok := sess.Pty()
	if !ok {
		log.Info("ssh session rejected", zap.String("reason", "pty required"))
		_, _ = io.WriteString(sess, "pty required\n")
		_ = sess.Exit(1)
		return
	}
	log.Info("ssh session opened", zap.String("term", pty.Term),
		zap.Int("width", pty.Window.Width), zap.Int("height", pty.Window.Height))
	started := time.Now()

	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	resize := make(chan tea.WindowSizeMsg, 1)
	resize <- tea.WindowSizeMsg{Width: pty.Window.Width, Height: pty.Window.Height}
	go forwardWindows(ctx, winCh, resize)

	links := &resume.LinkQueue{}
	err := s.Sessions.RunSession(ctx, app.SessionOptions{
		ID:       sess.Context().SessionID(),
		Opener:   links,
		Links:    links,
		LipGloss: sessionRenderer(sess),
		Resize:   resize,
		ProgramOptions: []tea.ProgramOption{
			tea.WithInput(sess),
			tea.WithOutput(sess),
			tea.WithoutSignalHandler(),
		},
	})
	if err != nil {
		log.Warn("ssh session failed", zap.Error(err))
		_ = sess.Exit(1)
		return
	}
	log.Info("ssh session closed", zap.Duration("duration", time.Since(started)))
	_ = sess.Exit(0)
}

// sessionRenderer styles output for the remote terminal. SSH clients cannot
// be probed for colour support, so true colour is assumed.
func sessionRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)
	return r
}

// forwardWindows relays window changes, keeping only the newest when the
// UI falls behind.
func forwardWindows(ctx context.Context, winCh <-chan gliderssh.Window, out chan tea.WindowSizeMsg) {
	for {
		select {
		case <-ctx.Done():
			return
		case w, ok := <-winCh:
			if !ok {
				return
			}
			msg := tea.WindowSizeMsg{Width: w.Width, Height: w.Height}
			select {
			case <-out:
			default:
			}
			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
	}
}
