package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DEVFOLIO_COPILOT_API_KEY", "")
	t.Setenv("DEVFOLIO_GITHUB_USERNAME", "")
	return dir
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "johndoe", cfg.GitHub.Username)
	assert.Equal(t, 5*time.Minute, cfg.GitHub.Refresh)
	assert.Equal(t, 500, cfg.Terminal.MaxLines)
	assert.Equal(t, ":2222", cfg.SSH.Addr)
	assert.Equal(t, filepath.Join(dir, "state", "devfolio", "devfolio.log"), cfg.Log.File)
	assert.Empty(t, cfg.Copilot.APIKey)
}

func TestLoad_FileValues(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
github:
  username: octocat
  refresh: 90s
resume:
  url: https://cdn.example.com/cv.pdf
terminal:
  max_lines: 50
log:
  file: ""
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "octocat", cfg.GitHub.Username)
	assert.Equal(t, 90*time.Second, cfg.GitHub.Refresh)
	assert.Equal(t, "https://cdn.example.com/cv.pdf", cfg.Resume.URL)
	assert.Equal(t, 50, cfg.Terminal.MaxLines)
	assert.Empty(t, cfg.Log.File)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	t.Setenv("DEVFOLIO_GITHUB_USERNAME", "envuser")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := Load(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "envuser", cfg.GitHub.Username)
	assert.Equal(t, "secret", cfg.Copilot.APIKey)
}

func TestLoad_PrefixedKeyWins(t *testing.T) {
	dir := isolate(t)
	t.Setenv("DEVFOLIO_COPILOT_API_KEY", "prefixed")
	t.Setenv("GEMINI_API_KEY", "plain")

	cfg, err := Load(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.Copilot.APIKey)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("terminal:\n  max_lines: -1\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "cfg", "config.yaml")

	written, err := WriteDefault(path, false)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	_, err = WriteDefault(path, false)
	assert.Error(t, err, "second write without overwrite should fail")

	cfg, err := Load(path)
	require.NoError(t, err)
	def, err := DefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, def, cfg)
}
