// Package config loads devfolio settings from a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. DEVFOLIO_GITHUB_USERNAME.
const EnvPrefix = "DEVFOLIO"

// APIKeyEnv is the conventional Gemini key variable, honoured alongside
// DEVFOLIO_COPILOT_API_KEY.
const APIKeyEnv = "GEMINI_API_KEY"

// Config is the top-level application configuration.
type Config struct {
	GitHub   GitHubConfig   `mapstructure:"github" yaml:"github"`
	Resume   ResumeConfig   `mapstructure:"resume" yaml:"resume"`
	Copilot  CopilotConfig  `mapstructure:"copilot" yaml:"copilot"`
	Terminal TerminalConfig `mapstructure:"terminal" yaml:"terminal"`
	SSH      SSHConfig      `mapstructure:"ssh" yaml:"ssh"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// GitHubConfig controls the activity feed.
type GitHubConfig struct {
	Username string        `mapstructure:"username" yaml:"username"`
	Token    string        `mapstructure:"token" yaml:"token,omitempty"`
	Refresh  time.Duration `mapstructure:"refresh" yaml:"refresh"`
}

// ResumeConfig names the one resume URL used for viewing and opening.
type ResumeConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

// CopilotConfig configures the assistant.
type CopilotConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	Model  string `mapstructure:"model" yaml:"model"`
}

// TerminalConfig bounds the simulated terminal.
type TerminalConfig struct {
	MaxLines int `mapstructure:"max_lines" yaml:"max_lines"`
}

// SSHConfig configures `devfolio serve`.
type SSHConfig struct {
	Addr        string `mapstructure:"addr" yaml:"addr"`
	HostKeyPath string `mapstructure:"host_key_path" yaml:"host_key_path"`
}

// LogConfig controls the log file. An empty File disables logging.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() (Config, error) {
	state, err := stateDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		GitHub: GitHubConfig{
			Username: "johndoe",
			Refresh:  5 * time.Minute,
		},
		Resume: ResumeConfig{
			URL: "https://example.com/resume.pdf",
		},
		Copilot: CopilotConfig{
			Model: "gemini-2.0-flash",
		},
		Terminal: TerminalConfig{
			MaxLines: 500,
		},
		SSH: SSHConfig{
			Addr:        ":2222",
			HostKeyPath: filepath.Join(state, "ssh_host_ed25519_key"),
		},
		Log: LogConfig{
			File:  filepath.Join(state, "devfolio.log"),
			Level: "info",
		},
	}, nil
}

// DefaultConfigPath is $XDG_CONFIG_HOME/devfolio/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "devfolio", "config.yaml"), nil
}

func stateDir() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "devfolio"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "devfolio"), nil
}

// Load reads configuration from path, falling back to DefaultConfigPath when
// path is empty. A missing file is not an error. Environment variables
// override file values.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("copilot.api_key", EnvPrefix+"_COPILOT_API_KEY", APIKeyEnv); err != nil {
		return Config{}, err
	}

	v.SetDefault("github.username", cfg.GitHub.Username)
	v.SetDefault("github.token", cfg.GitHub.Token)
	v.SetDefault("github.refresh", cfg.GitHub.Refresh)
	v.SetDefault("resume.url", cfg.Resume.URL)
	v.SetDefault("copilot.api_key", cfg.Copilot.APIKey)
	v.SetDefault("copilot.model", cfg.Copilot.Model)
	v.SetDefault("terminal.max_lines", cfg.Terminal.MaxLines)
	v.SetDefault("ssh.addr", cfg.SSH.Addr)
	v.SetDefault("ssh.host_key_path", cfg.SSH.HostKeyPath)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.level", cfg.Log.Level)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("stat config %s: %w", path, err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.SSH.HostKeyPath = os.ExpandEnv(cfg.SSH.HostKeyPath)
	cfg.Log.File = os.ExpandEnv(cfg.Log.File)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the UI cannot run with.
func (c Config) Validate() error {
	if c.GitHub.Refresh < time.Second {
		return fmt.Errorf("github.refresh must be at least 1s, got %s", c.GitHub.Refresh)
	}
	if c.Terminal.MaxLines < 0 {
		return fmt.Errorf("terminal.max_lines must not be negative")
	}
	if strings.TrimSpace(c.Resume.URL) == "" {
		return fmt.Errorf("resume.url is required")
	}
	return nil
}

// WriteDefault writes the default config to path (or DefaultConfigPath).
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
