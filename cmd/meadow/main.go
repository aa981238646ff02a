// Package main is the entry point for the meadow grass demo.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/app"
	"github.com/Faultbox/meadow/internal/app/viewer"
	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()
	run := config.Run()

	cfg, configPath, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Meadow ===", zap.String("config", configPath))
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runMeadow(ctx, cfg, configPath, run); err != nil {
		logger.Error("meadow error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("closed normally")
}

func runMeadow(ctx context.Context, cfg *config.Config, configPath string, run config.RunOptions) error {
	s, err := app.NewScene(cfg, logger.Named("app"))
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}

	if run.Watch {
		if configPath == "" {
			logger.Warn("no config file to watch")
		} else {
			updates, err := config.Watch(ctx, configPath, logger.Named("config"))
			if err != nil {
				return err
			}
			s.WatchConfig(updates)
			logger.Info("watching config", zap.String("path", configPath))
		}
	}

	if run.Headless {
		return app.RunHeadless(ctx, s, run.Frames, logger.Named("headless"))
	}

	v, err := viewer.New(s, cfg, configPath, logger.Named("viewer"))
	if err != nil {
		return err
	}
	defer v.Close()

	return v.Run(ctx)
}
