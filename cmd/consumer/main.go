package main

import (
	"go-calypso/internal/app"
	"go-calypso/internal/config"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewDevelopment()
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := app.RunConsumer(cfg, logger); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
