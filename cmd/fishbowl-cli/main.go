package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bloops-games/fishbowl/internal/fishbowl"
	"github.com/bloops-games/fishbowl/internal/fishbowl/console"
	"github.com/bloops-games/fishbowl/internal/logging"
	"github.com/bloops-games/fishbowl/internal/shutdown"
	"github.com/enescakir/emoji"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"
)

const historySize = 5

func main() {
	_, _ = fmt.Fprintf(os.Stdout, "%s Fishbowl: describe, one word, charades.\n", emoji.GameDie)

	ctx, done := shutdown.New()
	defer done()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.DefaultLogger().Fatalf("loading .env: %v", err)
	}

	config := fishbowl.Config{}
	if err := envconfig.Process("", &config); err != nil {
		logging.DefaultLogger().Fatalf("processing the config: %v", err)
	}

	logger := logging.NewLogger(config.Debug)
	ctx = logging.WithLogger(ctx, logger)

	if err := realMain(ctx, &config); err != nil {
		logger.Fatalf("main.realMain: %v", err)
	}
}

func realMain(ctx context.Context, config *fishbowl.Config) error {
	logger := logging.FromContext(ctx).Named("main.realMain")

	manager, err := fishbowl.NewManager(ctx, config)
	if err != nil {
		return fmt.Errorf("new manager: %w", err)
	}

	defer func() {
		if err := manager.Close(ctx); err != nil {
			logger.Errorf("close manager: %v", err)
		}
	}()

	history, err := manager.History(historySize)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	for _, result := range history {
		_, _ = fmt.Fprintf(os.Stdout, "%s %s  Team A %d : %d Team B\n",
			emoji.Trophy, result.FinishedAt.Format("2006-01-02 15:04"), result.TeamA, result.TeamB)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return manager.Run(ctx)
	})
	g.Go(func() error {
		return console.New(ctx, manager.Session(), os.Stdin, os.Stdout).WithProfiler(manager).Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, console.ErrQuit) {
		return fmt.Errorf("run: %w", err)
	}

	return nil
}
