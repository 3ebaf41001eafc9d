package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-console-go/internal/app"
	"github.com/cmlabs-hris/hris-console-go/internal/cli"
	"github.com/cmlabs-hris/hris-console-go/internal/config"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-console-go/internal/session"
)

func main() {
	root := cli.NewRootCommand(start)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// start opens the single session of this user, sealed in a local file.
func start(ctx context.Context) (*app.Instance, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Commands print to stdout, logs are kept off it
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	local, err := storage.NewLocalStorage(cfg.Session.Dir)
	if err != nil {
		return nil, err
	}
	persister, err := storage.NewSealed(local, cfg.Session.Secret)
	if err != nil {
		return nil, err
	}

	return app.Start(ctx, persister, session.DefaultNamespace, app.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Locale:  cfg.App.Locale,
		Logger:  logger,
	})
}
