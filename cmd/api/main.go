package main

import (
	"context"
	"time"

	"go-payroll/internal/app"
	"go-payroll/internal/bootstrap"
	"go-payroll/internal/config"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.Load()

	application, err := app.Build(cfg, logger)
	if err != nil {
		logger.Fatal("build application failed", zap.Error(err))
	}

	if err := application.SeedRateTable(context.Background()); err != nil {
		logger.Fatal("seed statutory rate table failed", zap.Error(err))
	}

	router := application.BuildRouter()

	bootstrap.StartHTTPServer(router, bootstrap.ServerConfig{
		Port:         cfg.Port,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, bootstrap.NewStdoutAuditLogger())
}
