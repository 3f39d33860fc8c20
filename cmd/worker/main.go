package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/crickstat/xfactor/internal/app"
	"github.com/crickstat/xfactor/internal/config"
	"github.com/crickstat/xfactor/internal/observability"
	"github.com/crickstat/xfactor/internal/platform/logging"
)

const usageText = `usage:
  worker refresh-dirty          recompute every career flagged dirty
  worker refresh <player_ref>   force a refresh of one player reference`

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, usageText)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer logger.Sync()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, application, flag.Args()); err != nil {
		logger.Error("worker failed", "command", flag.Arg(0), "error", err)
		shutdownUptrace(context.Background())
		os.Exit(1)
	}

	if err := shutdownUptrace(context.Background()); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}
}

func run(ctx context.Context, application *app.Application, args []string) error {
	switch args[0] {
	case "refresh-dirty":
		result, err := application.RefreshService.RefreshDirty(ctx)
		if err != nil {
			return err
		}
		logging.Default().Info("refresh dirty finished",
			"processed", result.Processed,
			"cleaned", result.Cleaned,
			"removed", result.Removed,
			"failed", result.Failed,
		)
		return nil
	case "refresh":
		if len(args) < 2 {
			return fmt.Errorf("refresh requires a player reference")
		}
		playerRef, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid player reference %q: %w", args[1], err)
		}
		result, err := application.RefreshService.RefreshPlayerRef(ctx, playerRef)
		if err != nil {
			return err
		}
		logging.Default().Info("refresh finished",
			"player_ref", playerRef,
			"cleaned", result.Cleaned,
			"removed", result.Removed,
		)
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}
