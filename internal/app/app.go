package app

import (
	"go-leave/internal/config"
	"go-leave/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, migrates the schema and registers
// every HTTP module on router.
func BuildApp(router *gin.Engine, cfg *config.Config) error {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, cfg.DBRetries)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := migrate(gormDB); err != nil {
		return err
	}
	logger.Info("database schema migrated")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBRetries)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	// 2. Register Modules & Routes
	return registerModules(router, cfg, sqlDB, gormDB, redisClient, zap.L())
}
