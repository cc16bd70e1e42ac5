package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "devfolio dev\n" {
		t.Fatalf("version output = %q", out)
	}
}

func TestConfigInitThenShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devfolio.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("config init output = %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	if _, err := execute(t, "--config", path, "config", "init"); err == nil {
		t.Fatal("second init without --force should fail")
	}
	if _, err := execute(t, "--config", path, "config", "init", "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}

	t.Setenv("GEMINI_API_KEY", "sekrit")
	out, err = execute(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "sekrit") {
		t.Fatalf("api key leaked: %q", out)
	}
	if !strings.Contains(out, "<redacted>") || !strings.Contains(out, "username: johndoe") {
		t.Fatalf("config show output = %q", out)
	}
}

func TestInvalidConfigFailsBeforeRunning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("github:\n  refresh: 10ms\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--config", path, "config", "show"); err == nil {
		t.Fatal("expected validation error")
	}
}
