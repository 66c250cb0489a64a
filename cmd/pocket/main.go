// Package main is the entry point for the PocketSprite player.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gopxl/mainthread/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/pocketsprite/internal/config"
	"github.com/Faultbox/pocketsprite/internal/engine/debug"
	"github.com/Faultbox/pocketsprite/internal/engine/input"
	"github.com/Faultbox/pocketsprite/internal/game"
	"github.com/Faultbox/pocketsprite/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== PocketSprite ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	opts := config.Run()

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if opts.Headless {
		err = runHeadless(g, opts)
	} else {
		if script, serr := loadScript(opts); serr != nil {
			logger.Error("loading input script", zap.Error(serr))
			os.Exit(1)
		} else if script != nil {
			g.SetScript(script)
		}
		mainthread.Run(func() {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			err = g.Run(ctx)
		})
	}
	if err != nil {
		logger.Error("game error", zap.Error(err))
		os.Exit(1)
	}

	if opts.Record != "" {
		if err := input.SaveRecording(opts.Record, g.Recording()); err != nil {
			logger.Error("saving replay", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("replay saved", zap.String("path", opts.Record))
	}

	logger.Info("game closed normally")
}

// loadScript returns the scripted input requested on the command line, if any.
func loadScript(opts config.RunOptions) (*input.Script, error) {
	switch {
	case opts.Replay != "":
		return input.LoadReplay(opts.Replay)
	case opts.Script != "":
		return input.ParseScript(opts.Script)
	}
	return nil, nil
}

func runHeadless(g *game.Game, opts config.RunOptions) error {
	script, err := loadScript(opts)
	if err != nil {
		return err
	}
	if script == nil && opts.Ticks <= 0 {
		return fmt.Errorf("headless run needs -ticks, -script or -replay")
	}

	fb, err := g.RunHeadless(opts.Ticks, script)
	if err != nil {
		return err
	}
	fmt.Printf("%016x\n", fb.Checksum())

	if opts.Screenshot != "" {
		if err := debug.SaveFile(opts.Screenshot, fb.RGBA(), 1); err != nil {
			return err
		}
		logger.Info("frame saved", zap.String("path", opts.Screenshot))
	}
	return nil
}
