package main

import (
	"go-hris-payroll/internal/app"
	"go-hris-payroll/internal/bootstrap"
	"go-hris-payroll/internal/config"
	"go-hris-payroll/internal/middleware"
	"go-hris-payroll/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	cfg := config.Load()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.ContextLogger(logger))

	cleanup, err := app.BuildApp(r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	err = bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		bootstrap.NewStdoutAuditLogger(logger),
	)
	if err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
