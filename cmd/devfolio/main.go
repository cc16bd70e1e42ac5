package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"devfolio/internal/config"
	"devfolio/internal/logx"
	"devfolio/internal/telemetry"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const skipSetup = "skip-setup"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env is what PersistentPreRunE loads for every command that needs it.
type env struct {
	configPath string
	verbose    bool

	cfg      config.Config
	logger   *zap.Logger
	exporter *telemetry.Exporter
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "devfolio",
		Short:         "Portfolio IDE in the terminal",
		Long:          "devfolio shows a developer portfolio as an IDE-styled terminal UI, locally or over SSH.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] == "true" {
				return nil
			}
			return e.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.close(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal(cmd.Context(), e)
		},
	}
	root.PersistentFlags().StringVarP(&e.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/devfolio/config.yaml)")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newServeCmd(e))
	root.AddCommand(newConfigCmd(e))
	root.AddCommand(newVersionCmd())
	return root
}

func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}
	logger, err := logx.New(logx.Options{
		File:    cfg.Log.File,
		Level:   cfg.Log.Level,
		Verbose: e.verbose,
		Stderr:  cmd.Annotations["log-stderr"] == "true",
	})
	if err != nil {
		return err
	}
	exporter, err := telemetry.Setup(cmd.Context(), version)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
	}
	e.cfg, e.logger, e.exporter = cfg, logger, exporter
	logger.Debug("config loaded", zap.String("command", cmd.Name()), zap.String("github_user", cfg.GitHub.Username))
	return nil
}

func (e *env) close(ctx context.Context) error {
	if e.logger == nil {
		return nil
	}
	if err := e.exporter.Shutdown(ctx); err != nil {
		e.logger.Warn("tracing shutdown", zap.Error(err))
	}
	_ = e.logger.Sync()
	return nil
}
