package main

import (
	"context"
	"sync"

	"devfolio/internal/app"
)

// runLocal runs one session on this terminal.
func runLocal(ctx context.Context, e *env) error {
	services, err := app.NewServices(ctx, e.cfg, e.logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		services.Feed.Run(ctx)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	e.logger.Info("starting local session")
	return services.RunSession(ctx, app.SessionOptions{ID: "local"})
}
