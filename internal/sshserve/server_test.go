package sshserve

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	gliderssh "github.com/gliderlabs/ssh"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"devfolio/internal/app"
	"devfolio/internal/resume"
)

type recordingRunner struct {
	mu    sync.Mutex
	opts  []app.SessionOptions
	sizes []tea.WindowSizeMsg
}

func (r *recordingRunner) RunSession(ctx context.Context, opts app.SessionOptions) error {
	var size tea.WindowSizeMsg
	select {
	case size = <-opts.Resize:
	case <-time.After(time.Second):
	}
	r.mu.Lock()
	r.opts = append(r.opts, opts)
	r.sizes = append(r.sizes, size)
	r.mu.Unlock()
	return nil
}

func startServer(t *testing.T, runner SessionRunner) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	srv := &Server{
		HostKeyPath: filepath.Join(t.TempDir(), "host_key"),
		Listener:    ln,
		Sessions:    runner,
	}
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return ln.Addr().String()
}

func dial(t *testing.T, addr string) *ssh.Client {
	t.Helper()
	client, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            "visitor",
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         2 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestEnsureHostKey_CreatesThenReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "host_ed25519")

	first, err := EnsureHostKey(path)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Equal(t, ssh.KeyAlgoED25519, first.PublicKey().Type())

	second, err := EnsureHostKey(path)
	require.NoError(t, err)
	assert.Equal(t, first.PublicKey().Marshal(), second.PublicKey().Marshal())
}

func TestEnsureHostKey_ConcurrentFirstStartAgree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_ed25519")

	const n = 8
	keys := make([][]byte, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			signer, err := EnsureHostKey(path)
			errs[i] = err
			if err == nil {
				keys[i] = signer.PublicKey().Marshal()
			}
		}(i)
	}
	wg.Wait()

	onDisk, err := loadHostKey(path)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, onDisk.PublicKey().Marshal(), keys[i], "caller %d", i)
	}
}

func TestEnsureHostKey_Errors(t *testing.T) {
	_, err := EnsureHostKey("  ")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage")
	require.NoError(t, os.WriteFile(path, []byte("not a key"), 0o600))
	_, err = EnsureHostKey(path)
	assert.Error(t, err)
}

func TestServer_SessionGetsRemoteOptions(t *testing.T) {
	runner := &recordingRunner{}
	client := dial(t, startServer(t, runner))

	sess, err := client.NewSession()
	require.NoError(t, err)
	defer sess.Close()
	require.NoError(t, sess.RequestPty("xterm-256color", 30, 100, ssh.TerminalModes{}))
	require.NoError(t, sess.Shell())
	require.NoError(t, sess.Wait())

	runner.mu.Lock()
	defer runner.mu.Unlock()
	require.Len(t, runner.opts, 1)
	opts := runner.opts[0]
	assert.NotEmpty(t, opts.ID)
	assert.Equal(t, termenv.TrueColor, opts.LipGloss.ColorProfile())
	require.NotNil(t, opts.Links)
	q, ok := opts.Opener.(*resume.LinkQueue)
	require.True(t, ok, "remote sessions queue links instead of opening a browser")
	assert.Same(t, opts.Links, q)
	assert.Equal(t, tea.WindowSizeMsg{Width: 100, Height: 30}, runner.sizes[0])
}

func TestServer_PtyRequired(t *testing.T) {
	runner := &recordingRunner{}
	client := dial(t, startServer(t, runner))

	sess, err := client.NewSession()
	require.NoError(t, err)
	defer sess.Close()
	out, err := sess.Output("whoami")

	var exitErr *ssh.ExitError
	require.True(t, errors.As(err, &exitErr), "got %v", err)
	assert.Equal(t, 1, exitErr.ExitStatus())
	assert.Equal(t, "pty required\n", string(out))
	runner.mu.Lock()
	assert.Empty(t, runner.opts)
	runner.mu.Unlock()
}

func TestServer_BadHostKeyPath(t *testing.T) {
	srv := &Server{Sessions: &recordingRunner{}}
	err := srv.ListenAndServe(context.Background())
	assert.Error(t, err)
}

func TestForwardWindows_KeepsNewest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	in := make(chan gliderssh.Window, 3)
	out := make(chan tea.WindowSizeMsg, 1)
	in <- gliderssh.Window{Width: 80, Height: 24}
	in <- gliderssh.Window{Width: 120, Height: 40}
	close(in)

	forwardWindows(ctx, in, out)
	assert.Equal(t, tea.WindowSizeMsg{Width: 120, Height: 40}, <-out)
}
