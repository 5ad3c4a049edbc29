package app

import (
	"errors"

	"go-hris-payroll/internal/config"
	"go-hris-payroll/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the stores, migrates the schema when asked to, and
// mounts every module on router. The returned cleanup closes the
// connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	log := zap.L().Named("app")

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.RedisAddr == "" {
		return nil, errors.New("REDIS_ADDR is required")
	}

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		cfg.ConnectRetries,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrate {
		if err := Migrate(gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		if err := redisClient.Close(); err != nil {
			log.Warn("close redis failed", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			log.Warn("close database failed", zap.Error(err))
		}
	}

	// 2. Register Modules & Routes
	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}
