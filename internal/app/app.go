package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"go-calypso/internal/bootstrap"
	"go-calypso/internal/config"
	"go-calypso/internal/middleware"
	"go-calypso/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App owns the process-wide resources built at startup.
type App struct {
	DB    *gorm.DB
	SQL   *sql.DB
	Redis *redis.Client
	Audit bootstrap.AuditLogger
}

// BuildApp connects the infrastructure, migrates the schema when enabled and
// mounts every module on router.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("app")

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	middleware.SetJWTSecret(cfg.JWTSecret)

	db, err := ConnectDB(cfg, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBAutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Info("database schema migrated")
	}

	// Redis only backs Idempotency-Key replay; without it requests go through.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, 3, logger)
		if err != nil {
			log.Warn("redis unavailable, idempotency keys disabled", zap.Error(err))
			rdb = nil
		}
	}

	a := &App{
		DB:    db,
		SQL:   sqlDB,
		Redis: rdb,
		Audit: bootstrap.NewStdoutAuditLogger(logger),
	}

	router.Use(middleware.RequestID(), middleware.ContextLogger(logger))
	router.GET("/healthz", func(c *gin.Context) {
		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := registerModules(router, cfg, a, logger); err != nil {
		return nil, err
	}
	log.Info("modules registered")
	return a, nil
}

// Close releases the pool and the redis client. Used as a shutdown hook.
func (a *App) Close(context.Context) error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.SQL != nil {
		errs = append(errs, a.SQL.Close())
	}
	return errors.Join(errs...)
}

// ConnectDB opens the Postgres pool described by cfg, retrying with backoff.
func ConnectDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(connection.PostgresConfig{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		Port:     cfg.DBPort,
		SSLMode:  cfg.DBSSLMode,
	}, cfg.DBMaxRetries, logger)
}
