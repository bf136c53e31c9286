// Package main is the entry point for the litter-collection game.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/config"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/game"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/logger"
)

func main() {
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
	defer logger.Sync()

	logger.Info("=== " + game.Title + " ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	if err := g.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
	}
	g.Close()

	logger.Info("game closed normally")
}
