package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ShayCichocki/archguide/internal/config"
	"github.com/ShayCichocki/archguide/internal/tui"
)

func runInteractive(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, cleanup, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer cleanup()

	handler, err := newHandler(ctx, cfg, logger)
	if err != nil {
		return err
	}

	program, _ := tui.NewFormProgram(handler)

	// Rebuild the handler when a config file changes. Usage counters carry over.
	usage := handler.Usage()
	watcher, err := config.NewWatcher(config.WatchedPaths(), func() {
		newCfg, err := loadConfig()
		if err != nil {
			logger.Warn("config reload failed", zap.Error(err))
			program.Send(tui.HandlerReloadedMsg{Err: err})
			return
		}
		next, err := newHandler(ctx, newCfg, logger)
		if err != nil {
			logger.Warn("handler rebuild failed", zap.Error(err))
			program.Send(tui.HandlerReloadedMsg{Err: err})
			return
		}
		logger.Info("config reloaded", zap.String("model", next.Model()))
		program.Send(tui.HandlerReloadedMsg{Fetcher: next.WithUsage(usage)})
	})
	if err != nil {
		logger.Warn("config watcher disabled", zap.Error(err))
	} else {
		defer watcher.Close()
	}

	logger.Info("interactive form started", zap.String("model", handler.Model()))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run form: %w", err)
	}
	return nil
}
