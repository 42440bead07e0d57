// Package main is the entry point for the fuel scene viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	fuelassets "github.com/fuel3d/fuel/assets"
	"github.com/fuel3d/fuel/internal/app"
	"github.com/fuel3d/fuel/internal/assets"
	"github.com/fuel3d/fuel/internal/config"
	"github.com/fuel3d/fuel/internal/engine/gfx"
	"github.com/fuel3d/fuel/internal/engine/window"
	"github.com/fuel3d/fuel/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("=== Fuel ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("fuel stopped with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("closed normally")
	logger.Sync()
}

func run(cfg *config.Config) error {
	manager := assets.NewManager()
	defer manager.Close()

	manager.AddFS(fuelassets.FS)
	if cfg.Assets.Dir != "" {
		if err := manager.AddDir(cfg.Assets.Dir); err != nil {
			return err
		}
	}

	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	// The device needs the context made current by window.New.
	dev, err := gfx.NewGL(win.ProcAddress)
	if err != nil {
		return err
	}

	a, err := app.New(cfg, dev, win, manager)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		return err
	}

	hits, misses := manager.Stats()
	logger.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
	return nil
}
