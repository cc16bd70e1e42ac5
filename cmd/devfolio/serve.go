package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"devfolio/internal/app"
	"devfolio/internal/sshserve"
)

func newServeCmd(e *env) *cobra.Command {
	var addr string
	var idle time.Duration
	cmd := &cobra.Command{
		Use:         "serve",
		Short:       "Serve the portfolio over SSH",
		Annotations: map[string]string{"log-stderr": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr != "" {
				e.cfg.SSH.Addr = addr
			}
			services, err := app.NewServices(ctx, e.cfg, e.logger)
			if err != nil {
				return err
			}

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				services.Feed.Run(ctx)
			}()
			defer wg.Wait()

			srv := &sshserve.Server{
				Addr:        e.cfg.SSH.Addr,
				HostKeyPath: e.cfg.SSH.HostKeyPath,
				Sessions:    services,
				Logger:      e.logger.Named("ssh"),
				IdleTimeout: idle,
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "devfolio %s listening on %s\n", version, e.cfg.SSH.Addr)
			err = srv.ListenAndServe(ctx)
			stop()
			if err != nil {
				e.logger.Error("ssh server stopped", zap.Error(err))
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ssh.addr)")
	cmd.Flags().DurationVar(&idle, "idle-timeout", 30*time.Minute, "disconnect idle visitors after this long (0 disables)")
	return cmd
}
